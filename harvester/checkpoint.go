package harvester

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Keep at most this many processed IDs; when exceeded, truncate to the
// newest half of the cap.
const CHECKPOINT_MAX_IDS = 10000
const CHECKPOINT_KEEP_IDS = 5000

// Flush to disk every N marks instead of every mark.
const CHECKPOINT_FLUSH_EVERY = 10

type checkpointState struct {
	ProcessedTweets []string `json:"processed_tweets"`
	LastCheck       string   `json:"last_check"`
}

// Checkpoint tracks which tweet IDs a driver already handled so reruns resume
// instead of reprocessing. One file per driver, owned by a single process.
type Checkpoint struct {
	path      string
	state     checkpointState
	processed map[string]bool
	dirty     int
}

func LoadCheckpoint(path string) *Checkpoint {
	cp := &Checkpoint{
		path:      path,
		processed: make(map[string]bool),
	}

	data, err := os.ReadFile(path)
	if err == nil {
		// A corrupt file just means starting fresh.
		if err := json.Unmarshal(data, &cp.state); err != nil {
			cp.state = checkpointState{}
		}
	}

	for _, id := range cp.state.ProcessedTweets {
		cp.processed[id] = true
	}

	return cp
}

func (c *Checkpoint) IsProcessed(tweetID string) bool {
	return c.processed[tweetID]
}

func (c *Checkpoint) MarkProcessed(tweetID string) {
	if c.processed[tweetID] {
		return
	}
	c.processed[tweetID] = true
	c.state.ProcessedTweets = append(c.state.ProcessedTweets, tweetID)

	if len(c.state.ProcessedTweets) > CHECKPOINT_MAX_IDS {
		kept := c.state.ProcessedTweets[len(c.state.ProcessedTweets)-CHECKPOINT_KEEP_IDS:]
		c.state.ProcessedTweets = append([]string{}, kept...)
		c.processed = make(map[string]bool, len(c.state.ProcessedTweets))
		for _, id := range c.state.ProcessedTweets {
			c.processed[id] = true
		}
	}

	c.dirty++
	if c.dirty >= CHECKPOINT_FLUSH_EVERY {
		if err := c.Flush(); err != nil {
			fmt.Printf("⚠️ Checkpoint flush failed: %s\n", err)
		}
	}
}

func (c *Checkpoint) Size() int {
	return len(c.state.ProcessedTweets)
}

// Flush writes the checkpoint file and stamps the last-check time.
func (c *Checkpoint) Flush() error {
	c.state.LastCheck = time.Now().UTC().Format(time.RFC3339)

	data, err := json.MarshalIndent(c.state, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(c.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write checkpoint %s: %w", c.path, err)
	}

	c.dirty = 0
	return nil
}
