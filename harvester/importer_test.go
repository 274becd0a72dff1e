package harvester

import (
	"errors"
	"testing"

	"github.com/promptscout/worker/llmchain"
	"github.com/promptscout/worker/twitterfetch"
	"github.com/promptscout/worker/twitterreverse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	existing map[string]bool
	saveErr  error
	saved    []*PromptModel
}

func (s *fakeStore) PromptExists(sourceLink string) (bool, error) {
	return s.existing[sourceLink], nil
}

func (s *fakeStore) SavePrompt(prompt *PromptModel) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = append(s.saved, prompt)
	return nil
}

type fakeFetcher struct {
	content *twitterfetch.TweetContent
	err     error
	calls   int
}

func (f *fakeFetcher) FetchTweet(tweetURL string) (*twitterfetch.TweetContent, error) {
	f.calls++
	return f.content, f.err
}

type fakeReplies struct {
	replies []twitterreverse.AuthorReply
	err     error
	calls   int
}

func (f *fakeReplies) AuthorReplies(tweetID, authorUsername string) ([]twitterreverse.AuthorReply, error) {
	f.calls++
	return f.replies, f.err
}

const testTweetURL = "https://x.com/artist/status/1234567890123456"

const goodClassification = `{"title": "Neon Alley Cat", "category": "Cyberpunk", "sub_categories": ["Anime"], "style": "unknown", "confidence": "high", "reason": "neon city scene"}`

func newTestImporter(store *fakeStore, fetcher *fakeFetcher, replies *fakeReplies, extractAnswer, classifyAnswer string) (*ImporterService, *stubProvider) {
	classifyProvider := &stubProvider{name: "classify", enabled: true, response: classifyAnswer}
	return NewImporterService(
		store, fetcher, replies,
		NewExtractorService(stubChain(extractAnswer)),
		NewClassifierService(llmchain.NewChain(classifyProvider)),
	), classifyProvider
}

func TestImporterService_ProcessTweetForImport(t *testing.T) {
	content := &twitterfetch.TweetContent{
		Text:   "amazing render!",
		Images: []string{"https://pbs.twimg.com/media/one.jpg"},
	}

	t.Run("NoURL", func(t *testing.T) {
		importer, _ := newTestImporter(&fakeStore{}, &fakeFetcher{}, &fakeReplies{}, longPrompt, goodClassification)
		outcome := importer.ProcessTweetForImport(ImportRequest{})
		assert.False(t, outcome.Success)
		assert.Equal(t, "No tweet URL", outcome.Error)
	})

	t.Run("AlreadyExists", func(t *testing.T) {
		store := &fakeStore{existing: map[string]bool{testTweetURL: true}}
		fetcher := &fakeFetcher{content: content}
		importer, _ := newTestImporter(store, fetcher, &fakeReplies{}, longPrompt, goodClassification)

		outcome := importer.ProcessTweetForImport(ImportRequest{TweetURL: testTweetURL})
		assert.False(t, outcome.Success)
		assert.Equal(t, "Already exists", outcome.Error)
		assert.Equal(t, 0, fetcher.calls)
	})

	t.Run("FetchFailed", func(t *testing.T) {
		fetcher := &fakeFetcher{err: errors.New("all fetch methods failed")}
		importer, _ := newTestImporter(&fakeStore{}, fetcher, &fakeReplies{}, longPrompt, goodClassification)

		outcome := importer.ProcessTweetForImport(ImportRequest{TweetURL: testTweetURL})
		assert.False(t, outcome.Success)
		assert.Equal(t, METHOD_TWITTER_FAILED, outcome.Method)
		assert.True(t, outcome.TwitterFailed)
	})

	t.Run("NoImagesFromTwitter", func(t *testing.T) {
		fetcher := &fakeFetcher{content: &twitterfetch.TweetContent{Text: "text but no pics"}}
		importer, _ := newTestImporter(&fakeStore{}, fetcher, &fakeReplies{}, longPrompt, goodClassification)

		outcome := importer.ProcessTweetForImport(ImportRequest{TweetURL: testTweetURL})
		assert.Equal(t, METHOD_TWITTER_FAILED, outcome.Method)
		assert.Equal(t, "No images from Twitter", outcome.TwitterError)
	})

	t.Run("SkipFetchUsesProvidedContent", func(t *testing.T) {
		store := &fakeStore{}
		fetcher := &fakeFetcher{err: errors.New("should not be called")}
		importer, _ := newTestImporter(store, fetcher, &fakeReplies{}, longPrompt, goodClassification)

		outcome := importer.ProcessTweetForImport(ImportRequest{
			TweetURL:         testTweetURL,
			RawText:          "great art, prompt inside",
			RawImages:        []string{"https://pbs.twimg.com/media/one.jpg"},
			SkipTwitterFetch: true,
		})
		assert.True(t, outcome.Success)
		assert.Equal(t, METHOD_IMPORTED, outcome.Method)
		assert.Equal(t, 0, fetcher.calls)
	})

	t.Run("NoTextContent", func(t *testing.T) {
		fetcher := &fakeFetcher{content: &twitterfetch.TweetContent{Images: []string{"https://pbs.twimg.com/media/one.jpg"}}}
		importer, _ := newTestImporter(&fakeStore{}, fetcher, &fakeReplies{}, longPrompt, goodClassification)

		outcome := importer.ProcessTweetForImport(ImportRequest{TweetURL: testTweetURL})
		assert.False(t, outcome.Success)
		assert.Equal(t, "No text content", outcome.Error)
	})

	t.Run("ImportedFromPost", func(t *testing.T) {
		store := &fakeStore{}
		importer, _ := newTestImporter(store, &fakeFetcher{content: content}, &fakeReplies{}, longPrompt, goodClassification)

		outcome := importer.ProcessTweetForImport(ImportRequest{
			TweetURL:     testTweetURL,
			ImportSource: IMPORT_SOURCE_X_MONITOR,
		})
		require.True(t, outcome.Success)
		assert.Equal(t, METHOD_IMPORTED, outcome.Method)
		assert.False(t, outcome.FromReply)

		require.Len(t, store.saved, 1)
		record := store.saved[0]
		assert.Equal(t, "Neon Alley Cat", record.Title)
		assert.Equal(t, longPrompt, record.Prompt)
		assert.Equal(t, "Cyberpunk", record.Category)
		assert.Equal(t, []string{"Anime"}, []string(record.Tags))
		assert.Equal(t, testTweetURL, record.SourceLink)
		assert.Equal(t, "artist", record.Author)
		assert.Equal(t, IMPORT_SOURCE_X_MONITOR, record.ImportSource)
	})

	t.Run("AdvertisementStopsBeforeClassification", func(t *testing.T) {
		store := &fakeStore{}
		importer, classifyProvider := newTestImporter(store, &fakeFetcher{content: content}, &fakeReplies{}, "Advertisement", goodClassification)

		outcome := importer.ProcessTweetForImport(ImportRequest{TweetURL: testTweetURL})
		assert.False(t, outcome.Success)
		assert.Equal(t, "Advertisement", outcome.Error)
		assert.Equal(t, 0, classifyProvider.calls)
		assert.Empty(t, store.saved)
	})

	t.Run("PromptTooShort", func(t *testing.T) {
		importer, _ := newTestImporter(&fakeStore{}, &fakeFetcher{content: content}, &fakeReplies{}, "tiny cat", goodClassification)

		outcome := importer.ProcessTweetForImport(ImportRequest{TweetURL: testTweetURL})
		assert.False(t, outcome.Success)
		assert.Contains(t, outcome.Error, "Prompt too short")
	})

	t.Run("RecoveredFromReply", func(t *testing.T) {
		store := &fakeStore{}
		replies := &fakeReplies{replies: []twitterreverse.AuthorReply{
			{Text: "Prompt: " + longPrompt, Username: "artist", IsAuthor: true},
		}}
		importer, _ := newTestImporter(store, &fakeFetcher{content: content}, replies, "Prompt in reply", goodClassification)

		outcome := importer.ProcessTweetForImport(ImportRequest{TweetURL: testTweetURL})
		require.True(t, outcome.Success)
		assert.True(t, outcome.FromReply)
		assert.Equal(t, 1, replies.calls)
		require.Len(t, store.saved, 1)
		assert.Equal(t, longPrompt, store.saved[0].Prompt)
	})

	t.Run("NoAuthorReplies", func(t *testing.T) {
		importer, _ := newTestImporter(&fakeStore{}, &fakeFetcher{content: content}, &fakeReplies{}, "Prompt in reply", goodClassification)

		outcome := importer.ProcessTweetForImport(ImportRequest{TweetURL: testTweetURL})
		assert.False(t, outcome.Success)
		assert.Equal(t, "No author replies found", outcome.Error)
	})

	t.Run("RecoveredFromAltText", func(t *testing.T) {
		store := &fakeStore{}
		withAlt := &twitterfetch.TweetContent{
			Text:     "prompt in ALT!",
			Images:   []string{"https://pbs.twimg.com/media/one.jpg"},
			AltTexts: []string{"", longPrompt},
		}
		importer, _ := newTestImporter(store, &fakeFetcher{content: withAlt}, &fakeReplies{}, "Prompt in ALT", goodClassification)

		outcome := importer.ProcessTweetForImport(ImportRequest{TweetURL: testTweetURL})
		require.True(t, outcome.Success)
		require.Len(t, store.saved, 1)
		assert.Equal(t, longPrompt, store.saved[0].Prompt)
	})

	t.Run("AltIndicatedButMissing", func(t *testing.T) {
		importer, _ := newTestImporter(&fakeStore{}, &fakeFetcher{content: content}, &fakeReplies{}, "Prompt in ALT", goodClassification)

		outcome := importer.ProcessTweetForImport(ImportRequest{TweetURL: testTweetURL})
		assert.False(t, outcome.Success)
		assert.Equal(t, "Prompt in ALT but no ALT text available", outcome.Error)
	})

	t.Run("DryRun", func(t *testing.T) {
		store := &fakeStore{}
		importer, _ := newTestImporter(store, &fakeFetcher{content: content}, &fakeReplies{}, longPrompt, goodClassification)

		outcome := importer.ProcessTweetForImport(ImportRequest{TweetURL: testTweetURL, DryRun: true})
		assert.True(t, outcome.Success)
		assert.Equal(t, METHOD_DRY_RUN, outcome.Method)
		assert.Empty(t, store.saved)
	})

	t.Run("SaveFailed", func(t *testing.T) {
		store := &fakeStore{saveErr: errors.New("duplicate key value violates unique constraint")}
		importer, _ := newTestImporter(store, &fakeFetcher{content: content}, &fakeReplies{}, longPrompt, goodClassification)

		outcome := importer.ProcessTweetForImport(ImportRequest{TweetURL: testTweetURL})
		assert.False(t, outcome.Success)
		assert.Equal(t, METHOD_SAVE_FAILED, outcome.Method)
	})

	t.Run("TagsCapped", func(t *testing.T) {
		store := &fakeStore{}
		manyTags := `{"title": "Busy Scene", "category": "Other", "sub_categories": ["a", "b", "c", "d", "e", "f", "g"], "style": "unknown", "confidence": "high", "reason": "r"}`
		importer, _ := newTestImporter(store, &fakeFetcher{content: content}, &fakeReplies{}, longPrompt, manyTags)

		outcome := importer.ProcessTweetForImport(ImportRequest{TweetURL: testTweetURL})
		require.True(t, outcome.Success)
		require.Len(t, store.saved, 1)
		assert.Len(t, store.saved[0].Tags, MAX_TAGS)
	})

	t.Run("TagsDeduplicated", func(t *testing.T) {
		store := &fakeStore{}
		repeated := `{"title": "Dup Scene", "category": "Anime", "sub_categories": ["Anime", "anime", "Anime", "Manga"], "style": "unknown", "confidence": "high", "reason": "r"}`
		importer, _ := newTestImporter(store, &fakeFetcher{content: content}, &fakeReplies{}, longPrompt, repeated)

		outcome := importer.ProcessTweetForImport(ImportRequest{TweetURL: testTweetURL})
		require.True(t, outcome.Success)
		require.Len(t, store.saved, 1)
		assert.Equal(t, []string{"Anime", "Manga"}, []string(store.saved[0].Tags))
	})

	t.Run("PromptFloorCountsCharacters", func(t *testing.T) {
		// 8 characters, 24 bytes.
		importer, _ := newTestImporter(&fakeStore{}, &fakeFetcher{content: content}, &fakeReplies{}, "赛博朋克城市夜景", goodClassification)

		outcome := importer.ProcessTweetForImport(ImportRequest{TweetURL: testTweetURL})
		assert.False(t, outcome.Success)
		assert.Equal(t, "Prompt too short (8 chars)", outcome.Error)
	})

	t.Run("CJKPromptOverFloorImports", func(t *testing.T) {
		store := &fakeStore{}
		importer, _ := newTestImporter(store, &fakeFetcher{content: content}, &fakeReplies{}, "赛博朋克城市夜景霓虹灯光雨后街道反射行人撑伞走过", goodClassification)

		outcome := importer.ProcessTweetForImport(ImportRequest{TweetURL: testTweetURL})
		require.True(t, outcome.Success)
		require.Len(t, store.saved, 1)
	})

	t.Run("ClassificationFailureStillImports", func(t *testing.T) {
		store := &fakeStore{}
		classifier := NewClassifierService(failingChain())
		importer := NewImporterService(store, &fakeFetcher{content: content}, &fakeReplies{},
			NewExtractorService(stubChain(longPrompt)), classifier)

		outcome := importer.ProcessTweetForImport(ImportRequest{TweetURL: testTweetURL})
		require.True(t, outcome.Success)
		require.Len(t, store.saved, 1)
		// Empty classification falls through to the fallbacks.
		assert.Equal(t, "@artist #123456", store.saved[0].Title)
		assert.Equal(t, "Other", store.saved[0].Category)
	})
}

func TestDedupeTags(t *testing.T) {
	assert.Equal(t, []string{"Anime", "Manga"}, dedupeTags([]string{"Anime", "anime", "Manga", "ANIME"}))
	assert.Empty(t, dedupeTags(nil))
}

func TestNormalizeTitle(t *testing.T) {
	t.Run("GoodTitleKept", func(t *testing.T) {
		assert.Equal(t, "Neon Alley Cat", normalizeTitle("Neon Alley Cat", "artist", "1234567890"))
	})

	t.Run("PlaceholderReplaced", func(t *testing.T) {
		assert.Equal(t, "@artist #567890", normalizeTitle("Untitled Prompt", "artist", "1234567890"))
		assert.Equal(t, "@artist #567890", normalizeTitle("n/a", "artist", "1234567890"))
		assert.Equal(t, "@artist #567890", normalizeTitle("", "artist", "1234567890"))
	})

	t.Run("ShortTweetID", func(t *testing.T) {
		assert.Equal(t, "@artist", normalizeTitle("", "artist", "123"))
	})
}
