package harvester

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/promptscout/worker/twitterfetch"
	"github.com/promptscout/worker/twitterreverse"
)

// Terminal outcomes of a single import attempt.
const METHOD_IMPORTED = "imported"
const METHOD_SKIPPED = "skipped"
const METHOD_TWITTER_FAILED = "twitter_failed"
const METHOD_SAVE_FAILED = "save_failed"
const METHOD_DRY_RUN = "dry_run"

type PromptStore interface {
	PromptExists(sourceLink string) (bool, error)
	SavePrompt(prompt *PromptModel) error
}

type TweetFetcher interface {
	FetchTweet(tweetURL string) (*twitterfetch.TweetContent, error)
}

type ReplyFetcher interface {
	AuthorReplies(tweetID string, authorUsername string) ([]twitterreverse.AuthorReply, error)
}

type ImportRequest struct {
	TweetURL         string
	RawText          string
	RawImages        []string
	Author           string
	ImportSource     string
	DryRun           bool
	SkipTwitterFetch bool
}

type ImportOutcome struct {
	Success       bool
	Method        string
	Error         string
	TwitterFailed bool
	TwitterError  string
	FromReply     bool
}

// ImporterService runs the whole pipeline for one tweet URL: dedup check,
// content fetch, prompt extraction (with reply and ALT recovery), AI
// classification, insert.
type ImporterService struct {
	store      PromptStore
	fetcher    TweetFetcher
	replies    ReplyFetcher
	extractor  *ExtractorService
	classifier *ClassifierService
}

func NewImporterService(store PromptStore, fetcher TweetFetcher, replies ReplyFetcher, extractor *ExtractorService, classifier *ClassifierService) *ImporterService {
	return &ImporterService{
		store:      store,
		fetcher:    fetcher,
		replies:    replies,
		extractor:  extractor,
		classifier: classifier,
	}
}

// Titles the classifier emits when it has nothing useful to say. Replaced by
// the @author fallback.
var invalidTitles = []string{
	"untitled prompt", "no prompt provided", "unknown prompt",
	"no title", "untitled", "n/a",
}

func (s *ImporterService) ProcessTweetForImport(req ImportRequest) ImportOutcome {
	outcome := ImportOutcome{Method: METHOD_SKIPPED}

	if req.TweetURL == "" {
		outcome.Error = "No tweet URL"
		return outcome
	}

	exists, err := s.store.PromptExists(req.TweetURL)
	if err != nil {
		outcome.Error = fmt.Sprintf("duplicate check failed: %s", err)
		return outcome
	}
	if exists {
		outcome.Error = "Already exists"
		return outcome
	}

	text := req.RawText
	images := req.RawImages
	var altTexts []string

	if !req.SkipTwitterFetch || len(images) == 0 {
		fmt.Printf("   🐦 Fetching tweet content...\n")
		content, err := s.fetcher.FetchTweet(req.TweetURL)
		if err != nil {
			outcome.Method = METHOD_TWITTER_FAILED
			outcome.TwitterFailed = true
			outcome.TwitterError = err.Error()
			outcome.Error = err.Error()
			return outcome
		}

		if len(content.Images) == 0 {
			outcome.Method = METHOD_TWITTER_FAILED
			outcome.TwitterFailed = true
			outcome.TwitterError = "No images from Twitter"
			outcome.Error = outcome.TwitterError
			return outcome
		}

		images = content.Images
		if len(images) > MAX_IMAGES {
			images = images[:MAX_IMAGES]
		}
		fmt.Printf("   ✅ Got %d images\n", len(images))

		if text == "" {
			text = content.Text
		}
		altTexts = content.AltTexts
	}

	if len(images) == 0 {
		outcome.Method = METHOD_TWITTER_FAILED
		outcome.TwitterFailed = true
		outcome.TwitterError = "No images available"
		outcome.Error = outcome.TwitterError
		return outcome
	}

	if text == "" {
		outcome.Error = "No text content"
		return outcome
	}

	tweetID := twitterfetch.ExtractTweetID(req.TweetURL)
	username := req.Author
	if username == "" {
		username = twitterfetch.ExtractUsername(req.TweetURL)
	}

	fmt.Printf("   🤖 Extracting prompt...\n")
	prompt, fromReply, extractErr := s.extractWithRecovery(text, tweetID, username, altTexts)
	if extractErr != "" {
		outcome.Error = extractErr
		return outcome
	}
	outcome.FromReply = fromReply

	promptLength := utf8.RuneCountInString(strings.TrimSpace(prompt))
	if promptLength < MIN_PROMPT_LENGTH {
		outcome.Error = fmt.Sprintf("Prompt too short (%d chars)", promptLength)
		return outcome
	}

	fmt.Printf("   🤖 Classifying...\n")
	classification, err := s.classifier.ClassifyPrompt(prompt)
	if err != nil {
		fmt.Printf("   ⚠️ Classification failed: %s\n", err)
		classification = Classification{}
	}

	title := normalizeTitle(classification.Title, username, tweetID)
	category := MapCategory(classification.Category)

	tags := dedupeTags(classification.SubCategories)
	if len(tags) > MAX_TAGS {
		tags = tags[:MAX_TAGS]
	}

	fmt.Printf("   ✅ Category: %s, tags: %v\n", category, tags)

	if req.DryRun {
		fmt.Printf("   🔍 [Dry Run] Would import: %s (%d images)\n", title, len(images))
		outcome.Success = true
		outcome.Method = METHOD_DRY_RUN
		return outcome
	}

	record := &PromptModel{
		Title:        title,
		Prompt:       prompt,
		Category:     category,
		Tags:         tags,
		Images:       images,
		SourceLink:   req.TweetURL,
		Author:       username,
		ImportSource: req.ImportSource,
	}

	if err := s.store.SavePrompt(record); err != nil {
		outcome.Method = METHOD_SAVE_FAILED
		outcome.Error = err.Error()
		fmt.Printf("   ❌ Save failed: %s\n", err)
		return outcome
	}

	fmt.Printf("   ✅ Saved: %s\n", title)
	outcome.Success = true
	outcome.Method = METHOD_IMPORTED
	return outcome
}

// extractWithRecovery extracts a prompt from post text, chasing it into the
// author's replies or the image ALT text when the post says it lives there.
// Returns the prompt, whether it came from a reply, and a terminal error
// string ("" on success).
func (s *ImporterService) extractWithRecovery(text, tweetID, username string, altTexts []string) (string, bool, string) {
	result := s.extractor.ExtractPrompt(text)

	switch result.Location {
	case LocationAd:
		fmt.Printf("   🚫 Advertisement content, skipping\n")
		return "", false, "Advertisement"

	case LocationAlt:
		for _, alt := range altTexts {
			if strings.TrimSpace(alt) != "" {
				fmt.Printf("   ✅ Prompt found in image ALT text\n")
				return alt, false, ""
			}
		}
		return "", false, "Prompt in ALT but no ALT text available"

	case LocationReply:
		fmt.Printf("   ⚠️ Prompt is in a reply, fetching author replies...\n")
		replies, err := s.replies.AuthorReplies(tweetID, username)
		if err != nil {
			return "", false, fmt.Sprintf("Failed to fetch replies: %s", err)
		}
		if len(replies) == 0 {
			return "", false, "No author replies found"
		}
		fmt.Printf("   ✓ Got %d author replies\n", len(replies))

		if prompt := s.extractor.ExtractPromptFromReplies(replies); prompt != "" {
			fmt.Printf("   ✅ Extracted prompt from reply\n")
			return prompt, true, ""
		}
		return "", false, "Failed to extract prompt from replies"

	case LocationPost:
		return result.Prompt, false, ""

	default:
		return "", false, "No prompt found"
	}
}

// dedupeTags drops repeated tags case-insensitively, keeping the first
// occurrence as written.
func dedupeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	deduped := make([]string, 0, len(tags))
	for _, tag := range tags {
		key := strings.ToLower(tag)
		if seen[key] {
			continue
		}
		seen[key] = true
		deduped = append(deduped, tag)
	}
	return deduped
}

func normalizeTitle(title, username, tweetID string) string {
	title = strings.TrimSpace(title)
	titleLower := strings.ToLower(title)

	invalid := title == ""
	for _, bad := range invalidTitles {
		if titleLower == bad {
			invalid = true
			break
		}
	}

	if invalid {
		if len(tweetID) >= 6 {
			return fmt.Sprintf("@%s #%s", username, tweetID[len(tweetID)-6:])
		}
		return "@" + username
	}

	return title
}
