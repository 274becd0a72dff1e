package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/promptscout/worker/harvester"
	"github.com/promptscout/worker/twitterfetch"
)

// Default watch list, seeded from the most productive authors already in the
// database.
var DefaultAccounts = []string{
	"songguoxiansen",
	"Gdgtify",
	"Ankit_patel211",
	"dotey",
	"azed_ai",
	"lexx_aura",
	"YaseenK7212",
	"saniaspeaks_",
	"ZaraIrahh",
	"Just_sharon7",
	"xmliisu",
	"Vivekhy",
	"astronomerozge1",
	"siennalovesai",
	"Strength04_X",
	"aleenaamiir",
	"SimplyAnnisa",
	"umesh_ai",
	"oggii_0",
	"xmiiru_",
}

// Keywords that mark a tweet as a likely prompt post. Covers product names,
// tool names, CJK prompt markers, natural-language openers and generator
// parameters.
var PromptKeywords = []string{
	"nano banana", "nanobanana", "小香蕉", "香蕉",
	"nano banana pro", "gemini", "gemini 2.5", "gemini 3",
	"gemini image", "gemini pro",

	"midjourney", "mj", "stable diffusion", "sd", "dall-e", "dalle",
	"flux", "comfyui", "leonardo", "ideogram", "runway",
	"可灵", "kling", "即梦", "通义万相", "文心一格",

	"提示词", "咒语", "prompt", "prompts",

	"创建一个", "生成一个", "设计一个", "制作一个", "画一个",
	"create a", "generate a", "design a", "make a", "draw a",

	"--ar", "--v ", "--style", "--s ", "--c ", "--q ",

	"(masterpiece", "best quality", "8k uhd", "highly detailed",
}

var chineseDescriptors = []string{"风格", "场景", "背景", "人物", "颜色", "光线", "氛围", "构图"}

const MIN_IMAGES = 1
const MIN_TEXT_LENGTH = 30

// Engagement floors for the viral filter.
const VIRAL_LIKES_MIN = 1000
const VIRAL_RETWEETS_MIN = 500
const VIRAL_VIEWS_MIN = 100000
const VIRAL_LIKES_SMALL_ACCOUNT = 500
const VIRAL_ENGAGEMENT_RATE_MIN = 0.01

// Followers below this count as a small account.
const SMALL_ACCOUNT_FOLLOWERS = 10000

// IsLikelyPromptTweet is the cheap first-stage filter run before any AI
// call. Returns whether the tweet looks like a prompt post and why.
func IsLikelyPromptTweet(text string, imageCount int) (bool, string) {
	textLower := strings.ToLower(text)

	if imageCount < MIN_IMAGES {
		return false, "no_images"
	}
	if len(textLower) < MIN_TEXT_LENGTH {
		return false, "text_too_short"
	}

	var matched []string
	for _, keyword := range PromptKeywords {
		if strings.Contains(textLower, strings.ToLower(keyword)) {
			matched = append(matched, keyword)
		}
	}
	if len(matched) > 0 {
		if len(matched) > 3 {
			matched = matched[:3]
		}
		return true, "keywords: " + strings.Join(matched, ", ")
	}

	// Long natural-language prompts without tool keywords, detected by CJK
	// descriptive vocabulary.
	if len(textLower) > 200 {
		for _, descriptor := range chineseDescriptors {
			if strings.Contains(textLower, descriptor) {
				return true, "descriptive: " + descriptor
			}
		}
	}

	return false, "no_match"
}

// IsViralTweet checks the engagement floors, with the lower small-account
// likes floor and the engagement-rate check when follower count is known.
func IsViralTweet(stats twitterfetch.TweetStats, followerCount int) (bool, string) {
	var reasons []string

	if stats.Likes >= VIRAL_LIKES_MIN {
		reasons = append(reasons, fmt.Sprintf("likes=%d", stats.Likes))
	}
	if stats.Retweets >= VIRAL_RETWEETS_MIN {
		reasons = append(reasons, fmt.Sprintf("retweets=%d", stats.Retweets))
	}
	if stats.Views >= VIRAL_VIEWS_MIN {
		reasons = append(reasons, fmt.Sprintf("views=%d", stats.Views))
	}
	if followerCount > 0 && followerCount < SMALL_ACCOUNT_FOLLOWERS && stats.Likes >= VIRAL_LIKES_SMALL_ACCOUNT {
		reasons = append(reasons, fmt.Sprintf("small_account_viral(likes=%d)", stats.Likes))
	}
	if followerCount > 0 {
		engagement := float64(stats.Likes+stats.Retweets) / float64(followerCount)
		if engagement >= VIRAL_ENGAGEMENT_RATE_MIN {
			reasons = append(reasons, fmt.Sprintf("engagement_rate=%.1f%%", engagement*100))
		}
	}

	if len(reasons) == 0 {
		return false, "not_viral"
	}
	return true, strings.Join(reasons, ", ")
}

// ViralScore ranks tweets by weighted engagement.
func ViralScore(stats twitterfetch.TweetStats) int {
	return stats.Likes*30 + stats.Retweets*20 + int(float64(stats.Views)*0.001)
}

type MonitorStats struct {
	AccountsChecked int
	TweetsFound     int
	FilteredStage1  int
	FilteredStage2  int
	PromptsSaved    int
	Errors          int
}

// MonitorService walks the account watch list, resolves each timeline entry
// through the fetch cascade and hands likely prompt tweets to the importer.
type MonitorService struct {
	timeline   *twitterfetch.TimelineService
	fetcher    harvester.TweetFetcher
	importer   *harvester.ImporterService
	checkpoint *harvester.Checkpoint

	ViralOnly bool
	DryRun    bool
	// Pause between accounts, lowered in tests.
	AccountPause time.Duration
}

func NewMonitorService(timeline *twitterfetch.TimelineService, fetcher harvester.TweetFetcher, importer *harvester.ImporterService, checkpoint *harvester.Checkpoint) *MonitorService {
	return &MonitorService{
		timeline:     timeline,
		fetcher:      fetcher,
		importer:     importer,
		checkpoint:   checkpoint,
		AccountPause: 2 * time.Second,
	}
}

// MonitorAccounts runs one pass over the watch list.
func (m *MonitorService) MonitorAccounts(accounts []string, tweetsPerAccount int) MonitorStats {
	stats := MonitorStats{}

	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("X/Twitter AI Art Monitor")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Accounts: %d\n", len(accounts))
	fmt.Printf("Viral Only: %v\n", m.ViralOnly)
	fmt.Printf("Dry Run: %v\n", m.DryRun)
	fmt.Println(strings.Repeat("=", 60))

	for i, username := range accounts {
		fmt.Printf("\n[%d/%d] Checking @%s...\n", i+1, len(accounts), username)

		timelineTweets, err := m.timeline.UserTimeline(username, tweetsPerAccount)
		if err != nil {
			fmt.Printf("   [Error] %s\n", err)
			stats.Errors++
			continue
		}
		stats.AccountsChecked++
		stats.TweetsFound += len(timelineTweets)
		fmt.Printf("   Found %d tweets\n", len(timelineTweets))

		for _, entry := range timelineTweets {
			m.processTimelineTweet(entry, &stats)
		}

		if m.AccountPause > 0 {
			time.Sleep(m.AccountPause)
		}
	}

	if err := m.checkpoint.Flush(); err != nil {
		fmt.Printf("⚠️ Checkpoint flush failed: %s\n", err)
	}

	fmt.Println("\n" + strings.Repeat("=", 60))
	fmt.Println("Summary")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Accounts checked: %d\n", stats.AccountsChecked)
	fmt.Printf("Tweets found: %d\n", stats.TweetsFound)
	fmt.Printf("  ├─ Stage 1 filtered (no keywords): %d\n", stats.FilteredStage1)
	fmt.Printf("  ├─ Stage 2 filtered (AI no prompt): %d\n", stats.FilteredStage2)
	fmt.Printf("  └─ Prompts saved: %d\n", stats.PromptsSaved)
	fmt.Printf("Errors: %d\n", stats.Errors)
	fmt.Println(strings.Repeat("=", 60))

	return stats
}

func (m *MonitorService) processTimelineTweet(entry twitterfetch.TimelineTweet, stats *MonitorStats) {
	if m.checkpoint.IsProcessed(entry.ID) {
		return
	}

	// Timeline sources carry at most text and a media flag; the cascade
	// resolves the full content and stats.
	content, err := m.fetcher.FetchTweet(entry.URL)
	if err != nil {
		fmt.Printf("   [Skip] @%s %s: %s\n", entry.Username, entry.ID, err)
		m.checkpoint.MarkProcessed(entry.ID)
		stats.Errors++
		return
	}

	likely, likelyReason := IsLikelyPromptTweet(content.Text, len(content.Images))
	if !likely {
		m.checkpoint.MarkProcessed(entry.ID)
		stats.FilteredStage1++
		return
	}

	isViral, viralReason := IsViralTweet(content.Stats, 0)
	score := ViralScore(content.Stats)

	if m.ViralOnly && !isViral {
		m.checkpoint.MarkProcessed(entry.ID)
		return
	}

	viralBadge := ""
	if isViral {
		viralBadge = "🔥 VIRAL"
	}
	fmt.Printf("\n   [Tweet] @%s - %s %s\n", entry.Username, entry.ID, viralBadge)
	fmt.Printf("   Match: %s\n", likelyReason)
	fmt.Printf("   Stats: ❤️ %d | 🔁 %d | 👁️ %d | Score: %d\n",
		content.Stats.Likes, content.Stats.Retweets, content.Stats.Views, score)
	if isViral {
		fmt.Printf("   Viral: %s\n", viralReason)
	}

	outcome := m.importer.ProcessTweetForImport(harvester.ImportRequest{
		TweetURL:         entry.URL,
		RawText:          content.Text,
		RawImages:        content.Images,
		Author:           entry.Username,
		ImportSource:     harvester.IMPORT_SOURCE_X_MONITOR,
		DryRun:           m.DryRun,
		SkipTwitterFetch: true,
	})

	m.checkpoint.MarkProcessed(entry.ID)

	switch {
	case outcome.Success:
		stats.PromptsSaved++
	case outcome.Error == "Already exists":
		// Counted as nothing, same as the checkpoint hit.
	default:
		stats.FilteredStage2++
	}
}
