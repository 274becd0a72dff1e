package harvester

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// FailedImport records an item the pipeline could not import, so it can be
// retried later or inspected by hand.
type FailedImport struct {
	ID           string   `json:"id"`
	TweetURL     string   `json:"tweet_url"`
	Title        string   `json:"title,omitempty"`
	Prompt       string   `json:"prompt,omitempty"`
	Images       []string `json:"images,omitempty"`
	Author       string   `json:"author,omitempty"`
	ImportSource string   `json:"import_source"`
	Error        string   `json:"error"`
	FailedAt     string   `json:"failed_at"`
}

// SaveFailedImports appends entries to a per-day JSON file under
// failed_imports/.
func SaveFailedImports(dir string, importSource string, items []FailedImport) (string, error) {
	if len(items) == 0 {
		return "", nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dir, err)
	}

	now := time.Now().UTC()
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.json", importSource, now.Format("2006-01-02")))

	var existing []FailedImport
	if data, err := os.ReadFile(path); err == nil {
		json.Unmarshal(data, &existing)
	}

	for i := range items {
		if items[i].ID == "" {
			items[i].ID = uuid.NewString()
		}
		if items[i].FailedAt == "" {
			items[i].FailedAt = now.Format(time.RFC3339)
		}
		items[i].ImportSource = importSource
	}
	existing = append(existing, items...)

	data, err := json.MarshalIndent(existing, "", "  ")
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	return path, nil
}
