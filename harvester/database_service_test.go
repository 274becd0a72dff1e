package harvester

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *DatabaseService {
	dbPath := filepath.Join(t.TempDir(), "test_database.db")

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	service, err := newDatabaseServiceWithDB(db)
	require.NoError(t, err)

	return service
}

func TestDatabaseService_PromptOperations(t *testing.T) {
	db := setupTestDB(t)

	prompt := &PromptModel{
		Title:        "Neon Alley Cat",
		Prompt:       "a neon cat in a rainy alley, cinematic lighting",
		Category:     "Cyberpunk",
		Tags:         []string{"neon", "cat"},
		Images:       []string{"https://pbs.twimg.com/media/one.jpg"},
		SourceLink:   "https://x.com/artist/status/111",
		Author:       "artist",
		ImportSource: IMPORT_SOURCE_X_MONITOR,
	}

	t.Run("SavePrompt", func(t *testing.T) {
		err := db.SavePrompt(prompt)
		assert.NoError(t, err)
		assert.NotZero(t, prompt.ID)
	})

	t.Run("PromptExists", func(t *testing.T) {
		exists, err := db.PromptExists("https://x.com/artist/status/111")
		assert.NoError(t, err)
		assert.True(t, exists)

		exists, err = db.PromptExists("https://x.com/artist/status/999")
		assert.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("GetPrompt", func(t *testing.T) {
		loaded, err := db.GetPrompt("https://x.com/artist/status/111")
		require.NoError(t, err)
		assert.Equal(t, prompt.Title, loaded.Title)
		assert.Equal(t, prompt.Category, loaded.Category)
		assert.Equal(t, []string{"neon", "cat"}, []string(loaded.Tags))
		assert.Equal(t, IMPORT_SOURCE_X_MONITOR, loaded.ImportSource)
	})

	t.Run("DuplicateSourceLinkRejected", func(t *testing.T) {
		err := db.SavePrompt(&PromptModel{
			Title:      "Copy",
			Prompt:     "same tweet again",
			Category:   "Other",
			SourceLink: "https://x.com/artist/status/111",
		})
		assert.Error(t, err)
	})

	t.Run("CountPrompts", func(t *testing.T) {
		count, err := db.CountPrompts()
		assert.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})
}

func TestDatabaseService_EmailRecords(t *testing.T) {
	db := setupTestDB(t)

	t.Run("UnknownMessage", func(t *testing.T) {
		processed, err := db.EmailProcessed("<msg-1@mail.gmail.com>")
		assert.NoError(t, err)
		assert.False(t, processed)
	})

	t.Run("SaveAndCheck", func(t *testing.T) {
		receivedAt := time.Date(2026, 8, 1, 9, 30, 0, 0, time.UTC)
		err := db.SaveEmail(&EmailRecordModel{
			MessageID:    "<msg-1@mail.gmail.com>",
			Subject:      "Your daily prompts",
			Sender:       "grok@x.com",
			ReceivedAt:   receivedAt,
			Body:         "Today's picks §NB§artist/status/1§",
			TwitterLinks: []string{"https://x.com/artist/status/1"},
			Processed:    true,
			Imported:     3,
		})
		require.NoError(t, err)

		processed, err := db.EmailProcessed("<msg-1@mail.gmail.com>")
		assert.NoError(t, err)
		assert.True(t, processed)

		var record EmailRecordModel
		require.NoError(t, db.db.Where("message_id = ?", "<msg-1@mail.gmail.com>").First(&record).Error)
		assert.Equal(t, "Today's picks §NB§artist/status/1§", record.Body)
		assert.Equal(t, []string{"https://x.com/artist/status/1"}, []string(record.TwitterLinks))
		assert.True(t, record.Processed)
		assert.True(t, record.ReceivedAt.Equal(receivedAt))
		assert.Equal(t, 3, record.Imported)
	})

	t.Run("DuplicateMessageIDRejected", func(t *testing.T) {
		err := db.SaveEmail(&EmailRecordModel{MessageID: "<msg-1@mail.gmail.com>"})
		assert.Error(t, err)
	})
}

func TestDatabaseService_GetTopAuthors(t *testing.T) {
	db := setupTestDB(t)

	seed := []struct {
		author string
		count  int
	}{
		{"alice", 3},
		{"bob", 1},
		{"carol", 2},
	}
	n := 0
	for _, s := range seed {
		for i := 0; i < s.count; i++ {
			n++
			require.NoError(t, db.SavePrompt(&PromptModel{
				Title:      "t",
				Prompt:     "p",
				Category:   "Other",
				SourceLink: "https://x.com/" + s.author + "/status/" + string(rune('a'+n)),
				Author:     s.author,
			}))
		}
	}
	// One authorless row, must not show up.
	require.NoError(t, db.SavePrompt(&PromptModel{
		Title: "t", Prompt: "p", Category: "Other",
		SourceLink: "https://x.com/unknown/status/zzz",
	}))

	authors, err := db.GetTopAuthors(2)
	require.NoError(t, err)
	require.Len(t, authors, 2)
	assert.Equal(t, "alice", authors[0].Author)
	assert.Equal(t, int64(3), authors[0].Count)
	assert.Equal(t, "carol", authors[1].Author)
}
