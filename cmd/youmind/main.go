package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/promptscout/worker/harvester"
	"github.com/promptscout/worker/llmchain"
	"github.com/promptscout/worker/twitterfetch"
	"github.com/promptscout/worker/twitterreverse"
)

const YOUMIND_API_URL = "https://youmind.com/youhome-api/prompts"
const YOUMIND_CAMPAIGN = "nano-banana-pro-prompts"
const YOUMIND_STATE_FILE = "youmind_progress.json"
const DEFAULT_PAGE_SIZE = 20
const DEFAULT_MAX_PAGES = 5

var tweetURLPattern = regexp.MustCompile(`https?://(?:twitter\.com|x\.com)/\w+/status/\d+`)

type youmindItem struct {
	ID                string `json:"id"`
	Title             string `json:"title"`
	Content           string `json:"content"`
	TranslatedContent string `json:"translatedContent"`
	Description       string `json:"description"`
	Author            string `json:"author"`
	SourceLink        string `json:"sourceLink"`
}

// The API has shipped the item list under different keys over time.
type youmindResponse struct {
	Prompts []youmindItem `json:"prompts"`
	Data    []youmindItem `json:"data"`
	Items   []youmindItem `json:"items"`
	HasMore bool          `json:"hasMore"`
	Total   int           `json:"total"`
}

func (r *youmindResponse) items() []youmindItem {
	if len(r.Prompts) > 0 {
		return r.Prompts
	}
	if len(r.Data) > 0 {
		return r.Data
	}
	return r.Items
}

func main() {
	configFile := flag.String("config", ".env", "Configuration file to load")
	pageSize := flag.Int("limit", DEFAULT_PAGE_SIZE, "Items per page")
	maxPages := flag.Int("max-pages", DEFAULT_MAX_PAGES, "Pages to scan (0 = all)")
	dryRun := flag.Bool("dry-run", false, "Do not save to the database")
	reset := flag.Bool("reset", false, "Forget previous progress and start over")
	flag.Parse()

	if *configFile != "" {
		if err := godotenv.Load(*configFile); err != nil {
			log.Printf("Warning: failed to load config file %s: %v", *configFile, err)
		}
	}

	databaseURL := os.Getenv(harvester.ENV_DATABASE_URL)
	if databaseURL == "" {
		log.Fatalf("%s not set", harvester.ENV_DATABASE_URL)
	}

	db, err := harvester.NewDatabaseService(databaseURL)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	aiModel := os.Getenv(harvester.ENV_AI_MODEL)
	if aiModel == "" {
		aiModel = llmchain.DEFAULT_MODEL
	}
	chain := llmchain.NewChain(
		llmchain.NewPollinationsProvider(aiModel),
		llmchain.NewGiteeProvider(os.Getenv(harvester.ENV_GITEE_AI_API_KEY)),
		llmchain.NewNvidiaProvider(os.Getenv(harvester.ENV_NVIDIA_API_KEY)),
	)

	proxyDSN := os.Getenv(harvester.ENV_X_PROXY)
	fetcher := twitterfetch.NewFetcherService(proxyDSN)
	auth := twitterreverse.LoadAuth(os.Getenv(harvester.ENV_X_COOKIE), harvester.COOKIES_FILE)
	reverse := twitterreverse.NewTwitterReverseService(auth, proxyDSN)

	importer := harvester.NewImporterService(db, fetcher, reverse,
		harvester.NewExtractorService(chain), harvester.NewClassifierService(chain))

	if *reset {
		os.Remove(YOUMIND_STATE_FILE)
	}
	checkpoint := harvester.LoadCheckpoint(YOUMIND_STATE_FILE)

	httpClient := &http.Client{Timeout: 30 * time.Second}

	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("YouMind Prompt Import")
	fmt.Printf("Campaign: %s\n", YOUMIND_CAMPAIGN)
	fmt.Println(strings.Repeat("=", 60))

	saved := 0
	scanned := 0
	var failed []harvester.FailedImport

	page := 1
	for {
		if *maxPages > 0 && page > *maxPages {
			break
		}

		response, err := fetchPage(httpClient, YOUMIND_API_URL, page, *pageSize)
		if err != nil {
			log.Printf("page %d failed: %v", page, err)
			break
		}

		items := response.items()
		fmt.Printf("\n📄 Page %d: %d items (total %d)\n", page, len(items), response.Total)
		if len(items) == 0 {
			break
		}

		for _, item := range items {
			scanned++
			key := item.ID
			if key == "" {
				key = item.SourceLink
			}
			if key == "" || checkpoint.IsProcessed(key) {
				continue
			}

			outcome, fail := processItem(importer, item, *dryRun)
			if outcome != nil && outcome.Success {
				saved++
			}
			if fail != nil {
				failed = append(failed, *fail)
			}
			checkpoint.MarkProcessed(key)

			time.Sleep(500 * time.Millisecond)
		}

		if !response.HasMore {
			break
		}
		page++
	}

	if err := checkpoint.Flush(); err != nil {
		fmt.Printf("⚠️ Checkpoint flush failed: %s\n", err)
	}

	if len(failed) > 0 && !*dryRun {
		path, err := harvester.SaveFailedImports(harvester.FAILED_IMPORTS_DIR, harvester.IMPORT_SOURCE_YOUMIND, failed)
		if err != nil {
			log.Printf("failed to save failed imports: %v", err)
		} else {
			fmt.Printf("⚠️ %d failed imports saved to %s\n", len(failed), path)
		}
	}

	fmt.Printf("\n✅ Scanned %d items, saved %d prompts\n", scanned, saved)
}

func fetchPage(client *http.Client, apiURL string, page, limit int) (*youmindResponse, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"page":     page,
		"limit":    limit,
		"campaign": YOUMIND_CAMPAIGN,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest("POST", apiURL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Referer", "https://youmind.com/"+YOUMIND_CAMPAIGN)

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("youmind API returned status %d: %s", resp.StatusCode, string(body))
	}

	var response youmindResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to decode youmind response: %w", err)
	}
	return &response, nil
}

func processItem(importer *harvester.ImporterService, item youmindItem, dryRun bool) (*harvester.ImportOutcome, *harvester.FailedImport) {
	promptText := strings.TrimSpace(item.Content)
	if promptText == "" {
		promptText = strings.TrimSpace(item.TranslatedContent)
	}
	if promptText == "" {
		promptText = strings.TrimSpace(item.Description)
	}
	if promptText == "" {
		fmt.Printf("   [Skip] %s: no prompt text\n", item.ID)
		return nil, nil
	}

	sourceURL := normalizeSourceURL(item.SourceLink)
	if sourceURL == "" {
		fmt.Printf("   [Skip] %s: no tweet source\n", item.ID)
		return nil, nil
	}

	fmt.Printf("\n🔗 %s\n", sourceURL)
	outcome := importer.ProcessTweetForImport(harvester.ImportRequest{
		TweetURL:     sourceURL,
		RawText:      promptText,
		Author:       item.Author,
		ImportSource: harvester.IMPORT_SOURCE_YOUMIND,
		DryRun:       dryRun,
	})

	if outcome.TwitterFailed {
		return &outcome, &harvester.FailedImport{
			TweetURL: sourceURL,
			Title:    item.Title,
			Prompt:   promptText,
			Author:   item.Author,
			Error:    outcome.TwitterError,
		}
	}
	if !outcome.Success && outcome.Error != "" && outcome.Error != "Already exists" {
		fmt.Printf("   [Skip] %s\n", outcome.Error)
	}
	return &outcome, nil
}

func normalizeSourceURL(raw string) string {
	match := tweetURLPattern.FindString(raw)
	if match == "" {
		return ""
	}
	return strings.Replace(match, "twitter.com", "x.com", 1)
}
