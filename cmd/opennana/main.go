package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
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

const OPENNANA_API_BASE = "https://api.opennana.com"
const OPENNANA_STATE_FILE = "opennana_progress.json"
const DEFAULT_PAGE_SIZE = 20
const DEFAULT_MAX_PAGES = 2

var tweetURLPattern = regexp.MustCompile(`https?://(?:twitter\.com|x\.com)/\w+/status/\d+`)

type opennanaEnvelope struct {
	Status int             `json:"status"`
	Data   json.RawMessage `json:"data"`
}

type opennanaListing struct {
	Items      []opennanaItem     `json:"items"`
	Pagination opennanaPagination `json:"pagination"`
}

type opennanaPagination struct {
	TotalPages int  `json:"total_pages"`
	HasMore    bool `json:"has_more"`
	Total      int  `json:"total"`
}

type opennanaItem struct {
	Slug      string           `json:"slug"`
	Title     string           `json:"title"`
	Author    string           `json:"author"`
	SourceURL string           `json:"source_url"`
	Prompts   []opennanaPrompt `json:"prompts"`
}

type opennanaPrompt struct {
	Text string `json:"text"`
	Type string `json:"type"`
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
		os.Remove(OPENNANA_STATE_FILE)
	}
	checkpoint := harvester.LoadCheckpoint(OPENNANA_STATE_FILE)

	client := newOpennanaClient(OPENNANA_API_BASE)

	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("OpenNana Prompt Import")
	fmt.Println(strings.Repeat("=", 60))

	saved := 0
	scanned := 0
	var failed []harvester.FailedImport

	page := 1
	for {
		if *maxPages > 0 && page > *maxPages {
			break
		}

		listing, err := client.ListPrompts(page, *pageSize)
		if err != nil {
			log.Printf("page %d failed: %v", page, err)
			break
		}
		fmt.Printf("\n📄 Page %d: %d items (total %d)\n", page, len(listing.Items), listing.Pagination.Total)

		for _, item := range listing.Items {
			scanned++
			if item.Slug == "" || checkpoint.IsProcessed(item.Slug) {
				continue
			}

			outcome, fail := processItem(client, importer, item, *dryRun)
			if outcome != nil && outcome.Success {
				saved++
			}
			if fail != nil {
				failed = append(failed, *fail)
			}
			checkpoint.MarkProcessed(item.Slug)

			time.Sleep(500 * time.Millisecond)
		}

		if !listing.Pagination.HasMore || page >= listing.Pagination.TotalPages {
			break
		}
		page++
	}

	if err := checkpoint.Flush(); err != nil {
		fmt.Printf("⚠️ Checkpoint flush failed: %s\n", err)
	}

	if len(failed) > 0 && !*dryRun {
		path, err := harvester.SaveFailedImports(harvester.FAILED_IMPORTS_DIR, harvester.IMPORT_SOURCE_OPENNANA, failed)
		if err != nil {
			log.Printf("failed to save failed imports: %v", err)
		} else {
			fmt.Printf("⚠️ %d failed imports saved to %s\n", len(failed), path)
		}
	}

	fmt.Printf("\n✅ Scanned %d items, saved %d prompts\n", scanned, saved)
}

func processItem(client *opennanaClient, importer *harvester.ImporterService, item opennanaItem, dryRun bool) (*harvester.ImportOutcome, *harvester.FailedImport) {
	// Listings carry only metadata, the detail page has the prompt texts.
	if len(item.Prompts) == 0 && item.Slug != "" {
		detail, err := client.GetPrompt(item.Slug)
		if err != nil {
			fmt.Printf("   [Skip] %s: %s\n", item.Slug, err)
			return nil, nil
		}
		item = *detail
	}

	sourceURL := normalizeSourceURL(item.SourceURL)
	if sourceURL == "" {
		fmt.Printf("   [Skip] %s: no tweet source\n", item.Slug)
		return nil, nil
	}

	promptText := pickPromptText(item.Prompts)
	if promptText == "" {
		fmt.Printf("   [Skip] %s: no prompt text\n", item.Slug)
		return nil, nil
	}

	fmt.Printf("\n🔗 %s (%s)\n", item.Slug, sourceURL)
	outcome := importer.ProcessTweetForImport(harvester.ImportRequest{
		TweetURL:     sourceURL,
		RawText:      promptText,
		Author:       item.Author,
		ImportSource: harvester.IMPORT_SOURCE_OPENNANA,
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

// pickPromptText prefers the English variant, falling back to the first
// non-empty one.
func pickPromptText(prompts []opennanaPrompt) string {
	for _, p := range prompts {
		if p.Type == "en" && strings.TrimSpace(p.Text) != "" {
			return strings.TrimSpace(p.Text)
		}
	}
	for _, p := range prompts {
		if strings.TrimSpace(p.Text) != "" {
			return strings.TrimSpace(p.Text)
		}
	}
	return ""
}

func normalizeSourceURL(raw string) string {
	match := tweetURLPattern.FindString(raw)
	if match == "" {
		return ""
	}
	return strings.Replace(match, "twitter.com", "x.com", 1)
}

type opennanaClient struct {
	baseURL    string
	httpClient *http.Client
}

func newOpennanaClient(baseURL string) *opennanaClient {
	return &opennanaClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *opennanaClient) ListPrompts(page, limit int) (*opennanaListing, error) {
	query := url.Values{}
	query.Set("page", fmt.Sprintf("%d", page))
	query.Set("limit", fmt.Sprintf("%d", limit))
	query.Set("sort", "created_at")
	query.Set("order", "DESC")

	var listing opennanaListing
	if err := c.getJSON("/api/prompts?"+query.Encode(), &listing); err != nil {
		return nil, err
	}
	return &listing, nil
}

func (c *opennanaClient) GetPrompt(slug string) (*opennanaItem, error) {
	var item opennanaItem
	if err := c.getJSON("/api/prompts/"+url.PathEscape(slug), &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *opennanaClient) getJSON(path string, out interface{}) error {
	req, err := http.NewRequest("GET", c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Referer", "https://opennana.com/")
	req.Header.Set("Origin", "https://opennana.com")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("opennana API returned status %d: %s", resp.StatusCode, string(body))
	}

	var envelope opennanaEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("failed to decode opennana response: %w", err)
	}
	if envelope.Status != 200 {
		return fmt.Errorf("opennana API error status %d", envelope.Status)
	}

	return json.Unmarshal(envelope.Data, out)
}
