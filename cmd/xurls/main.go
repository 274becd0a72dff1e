package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/promptscout/worker/harvester"
	"github.com/promptscout/worker/llmchain"
	"github.com/promptscout/worker/twitterfetch"
	"github.com/promptscout/worker/twitterreverse"
)

const DEFAULT_CACHE_FILE = "cache/aiart_pics_x_urls.json"
const XURLS_STATE_FILE = "aiart_x_urls_progress.json"

// Cache file produced by the gallery scraper: tweet URLs resolved from
// aiart.pics detail pages.
type urlCache struct {
	Total    int        `json:"total"`
	WithXURL int        `json:"with_x_url"`
	Items    []urlEntry `json:"items"`
}

type urlEntry struct {
	XURL   string `json:"x_url"`
	Title  string `json:"title"`
	Prompt string `json:"prompt"`
	Author string `json:"author"`
}

func main() {
	configFile := flag.String("config", ".env", "Configuration file to load")
	cacheFile := flag.String("file", DEFAULT_CACHE_FILE, "URL cache file to import")
	limit := flag.Int("limit", 0, "Stop after N imports (0 = all)")
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

	data, err := os.ReadFile(*cacheFile)
	if err != nil {
		log.Fatalf("failed to read %s: %v", *cacheFile, err)
	}
	var cache urlCache
	if err := json.Unmarshal(data, &cache); err != nil {
		log.Fatalf("failed to parse %s: %v", *cacheFile, err)
	}

	if *reset {
		os.Remove(XURLS_STATE_FILE)
	}
	checkpoint := harvester.LoadCheckpoint(XURLS_STATE_FILE)

	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("aiart.pics Tweet URL Import")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Items: %d (with tweet URL: %d)\n", cache.Total, cache.WithXURL)
	fmt.Printf("Already processed: %d\n", checkpoint.Size())
	fmt.Println(strings.Repeat("=", 60))

	saved := 0
	processed := 0
	var failed []harvester.FailedImport

	for _, item := range cache.Items {
		if *limit > 0 && processed >= *limit {
			break
		}

		url := normalizeTweetURL(item.XURL)
		if url == "" || checkpoint.IsProcessed(url) {
			continue
		}
		processed++

		fmt.Printf("\n🔗 [%d] %s\n", processed, url)
		outcome := importer.ProcessTweetForImport(harvester.ImportRequest{
			TweetURL:     url,
			RawText:      strings.TrimSpace(item.Prompt),
			Author:       item.Author,
			ImportSource: harvester.IMPORT_SOURCE_X_URLS,
			DryRun:       *dryRun,
		})

		if outcome.Success {
			saved++
		} else if outcome.TwitterFailed {
			failed = append(failed, harvester.FailedImport{
				TweetURL: url,
				Title:    item.Title,
				Prompt:   item.Prompt,
				Author:   item.Author,
				Error:    outcome.TwitterError,
			})
		} else if outcome.Error != "" && outcome.Error != "Already exists" {
			fmt.Printf("   [Skip] %s\n", outcome.Error)
		}

		checkpoint.MarkProcessed(url)
		time.Sleep(time.Second)
	}

	if err := checkpoint.Flush(); err != nil {
		fmt.Printf("⚠️ Checkpoint flush failed: %s\n", err)
	}

	if len(failed) > 0 && !*dryRun {
		path, err := harvester.SaveFailedImports(harvester.FAILED_IMPORTS_DIR, harvester.IMPORT_SOURCE_X_URLS, failed)
		if err != nil {
			log.Printf("failed to save failed imports: %v", err)
		} else {
			fmt.Printf("⚠️ %d failed imports saved to %s\n", len(failed), path)
		}
	}

	fmt.Printf("\n✅ Processed %d items, saved %d prompts\n", processed, saved)
}

func normalizeTweetURL(url string) string {
	url = strings.TrimSpace(url)
	if url == "" || !strings.Contains(url, "/status/") {
		return ""
	}
	return strings.Replace(url, "twitter.com", "x.com", 1)
}
