package main

import (
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

const SEARCH_STATE_FILE = "x_search_state.json"

// Default search terms for fresh generator content.
var SearchKeywords = []string{
	`"nano banana"`,
	`nanobanana`,
	`"Nano Banana Pro"`,
	`"gemini image"`,
	`"gemini 2.5" image`,
	`gemini生图`,
	`小香蕉 提示词`,
	`小香蕉 prompt`,
}

const DEFAULT_MIN_LIKES = 100
const DEFAULT_MIN_RETWEETS = 20
const DEFAULT_RESULTS_PER_KEYWORD = 30
const DEFAULT_DAYS_BACK = 1

func main() {
	configFile := flag.String("config", ".env", "Configuration file to load")
	keywordsFlag := flag.String("keywords", "", "Comma-separated search keywords (default: built-in list)")
	minLikes := flag.Int("min-likes", DEFAULT_MIN_LIKES, "Minimum likes (min_faves search filter)")
	minRetweets := flag.Int("min-retweets", DEFAULT_MIN_RETWEETS, "Minimum retweets")
	count := flag.Int("count", DEFAULT_RESULTS_PER_KEYWORD, "Results per keyword")
	daysBack := flag.Int("days", DEFAULT_DAYS_BACK, "Only search tweets from the last N days")
	interval := flag.Int("interval", 0, "Continuous mode interval in minutes (0 = run once)")
	dryRun := flag.Bool("dry-run", false, "Do not save to the database")
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

	auth := twitterreverse.LoadAuth(os.Getenv(harvester.ENV_X_COOKIE), harvester.COOKIES_FILE)
	reverse := twitterreverse.NewTwitterReverseService(auth, os.Getenv(harvester.ENV_X_PROXY))
	if !reverse.Authenticated() {
		log.Fatalf("keyword search needs a logged-in session: set %s or provide %s", harvester.ENV_X_COOKIE, harvester.COOKIES_FILE)
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

	fetcher := twitterfetch.NewFetcherService(os.Getenv(harvester.ENV_X_PROXY))
	importer := harvester.NewImporterService(db, fetcher, reverse,
		harvester.NewExtractorService(chain), harvester.NewClassifierService(chain))

	keywords := SearchKeywords
	if *keywordsFlag != "" {
		keywords = nil
		for _, keyword := range strings.Split(*keywordsFlag, ",") {
			if trimmed := strings.TrimSpace(keyword); trimmed != "" {
				keywords = append(keywords, trimmed)
			}
		}
	}

	run := func() {
		runSearch(db, reverse, fetcher, importer, keywords, *minLikes, *minRetweets, *count, *daysBack, *dryRun)
	}

	if *interval <= 0 {
		run()
		return
	}

	log.Printf("Starting continuous search (interval: %d min)", *interval)
	for {
		run()
		log.Printf("Next search in %d minutes...", *interval)
		time.Sleep(time.Duration(*interval) * time.Minute)
	}
}

// buildQuery assembles a Twitter advanced-search query: only recent original
// tweets with images above the engagement floors.
func buildQuery(keyword string, minLikes, minRetweets, daysBack int) string {
	parts := []string{keyword}

	if daysBack > 0 {
		since := time.Now().AddDate(0, 0, -daysBack).Format("2006-01-02")
		parts = append(parts, "since:"+since)
	}
	parts = append(parts, "filter:images")
	if minLikes > 0 {
		parts = append(parts, fmt.Sprintf("min_faves:%d", minLikes))
	}
	if minRetweets > 0 {
		parts = append(parts, fmt.Sprintf("min_retweets:%d", minRetweets))
	}
	parts = append(parts, "-filter:retweets")

	return strings.Join(parts, " ")
}

func runSearch(db *harvester.DatabaseService, reverse *twitterreverse.TwitterReverseService, fetcher *twitterfetch.FetcherService, importer *harvester.ImporterService, keywords []string, minLikes, minRetweets, count, daysBack int, dryRun bool) {
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("X/Twitter Viral Prompt Search")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Keywords: %d\n", len(keywords))
	fmt.Printf("Min likes: %d | Min retweets: %d\n", minLikes, minRetweets)
	fmt.Printf("Dry Run: %v\n", dryRun)
	fmt.Println(strings.Repeat("=", 60))

	checkpoint := harvester.LoadCheckpoint(SEARCH_STATE_FILE)

	saved := 0
	seen := map[string]bool{}

	for _, keyword := range keywords {
		query := buildQuery(keyword, minLikes, minRetweets, daysBack)
		fmt.Printf("\n[Search] Keyword: %s\n", keyword)
		fmt.Printf("   Query: %s\n", query)

		tweets, err := reverse.SearchTweets(query, count)
		if err != nil {
			fmt.Printf("   [Error] Search failed: %s\n", err)
			continue
		}
		fmt.Printf("   Found %d tweets\n", len(tweets))

		for _, tweet := range tweets {
			if seen[tweet.ID] || checkpoint.IsProcessed(tweet.ID) {
				continue
			}
			seen[tweet.ID] = true

			if processSearchTweet(fetcher, importer, tweet, dryRun) {
				saved++
			}
			checkpoint.MarkProcessed(tweet.ID)
		}

		time.Sleep(2 * time.Second)
	}

	if err := checkpoint.Flush(); err != nil {
		fmt.Printf("⚠️ Checkpoint flush failed: %s\n", err)
	}

	fmt.Printf("\nSaved %d prompts\n", saved)
}

func processSearchTweet(fetcher *twitterfetch.FetcherService, importer *harvester.ImporterService, tweet twitterreverse.SearchTweet, dryRun bool) bool {
	text := tweet.Text

	// The search timeline truncates long tweets; the mirror cascade has the
	// full text and the image list.
	content, err := fetcher.FetchTweet(tweet.URL)
	if err != nil {
		fmt.Printf("   [Skip] @%s/%s: %s\n", tweet.Username, tweet.ID, err)
		return false
	}
	if len(content.Text) > len(text) {
		text = content.Text
	}
	if len(content.Images) == 0 {
		fmt.Printf("   [Skip] No images: @%s/%s\n", tweet.Username, tweet.ID)
		return false
	}

	fmt.Printf("\n   [Tweet] @%s - %s\n", tweet.Username, tweet.ID)
	fmt.Printf("   Stats: ❤️ %d | 🔁 %d\n", tweet.Likes, tweet.Retweets)
	fmt.Printf("   Images: %d\n", len(content.Images))

	outcome := importer.ProcessTweetForImport(harvester.ImportRequest{
		TweetURL:         tweet.URL,
		RawText:          text,
		RawImages:        content.Images,
		Author:           tweet.Username,
		ImportSource:     harvester.IMPORT_SOURCE_X_SEARCH,
		DryRun:           dryRun,
		SkipTwitterFetch: true,
	})

	if !outcome.Success && outcome.Error != "" && outcome.Error != "Already exists" {
		fmt.Printf("   [Skip] %s\n", outcome.Error)
	}
	return outcome.Success
}
