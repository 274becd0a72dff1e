package harvester

import (
	"log"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/promptscout/worker/llmchain"
	"github.com/promptscout/worker/twitterreverse"
)

// Location says where the prompt actually lives relative to the post.
type Location int

const (
	LocationNone Location = iota
	LocationPost
	LocationAlt
	LocationReply
	LocationAd
)

func (l Location) String() string {
	switch l {
	case LocationPost:
		return "post"
	case LocationAlt:
		return "alt"
	case LocationReply:
		return "reply"
	case LocationAd:
		return "advertisement"
	default:
		return "none"
	}
}

const METHOD_REGEX = "regex"
const METHOD_AI = "ai"

type ExtractionResult struct {
	Prompt   string
	Location Location
	Method   string
}

// Only the most unambiguous format is handled by regex; everything else goes
// to the AI.
var promptColonPattern = regexp.MustCompile(`(?is)(?:👉\s*)?prompt\s*:\s*(.+)`)
var leadingQuotesPattern = regexp.MustCompile(`^["'\[\(]+`)

var promptInReplyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)prompt\s*[👇⬇️↓🔽⤵️]`),
	regexp.MustCompile(`(?i)[👇⬇️↓🔽⤵️]\s*prompt`),
	regexp.MustCompile(`(?i)prompt\s+below`),
	regexp.MustCompile(`(?i)prompt\s+in\s+(the\s+)?(comment|reply|replies|thread)`),
	regexp.MustCompile(`(?i)check\s+(the\s+)?(comment|reply|replies)`),
	regexp.MustCompile(`(?i)see\s+(the\s+)?(comment|reply|replies)`),
	regexp.MustCompile(`(?i)(comment|reply|replies)\s+for\s+prompt`),
	regexp.MustCompile(`(?i)full\s+prompt\s+[👇⬇️↓🔽⤵️]`),
	regexp.MustCompile(`提示词\s*[👇⬇️↓🔽⤵️]`),
	regexp.MustCompile(`[👇⬇️↓🔽⤵️]\s*提示词`),
	// A trailing down arrow means "content below" even without the keyword.
	regexp.MustCompile(`[👇⬇️↓🔽⤵️]\s*$`),
}

var promptInAltPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)prompt\s+in\s+(the\s+)?alt`),
	regexp.MustCompile(`(?i)alt\s+for\s+prompt`),
	regexp.MustCompile(`(?i)see\s+alt`),
	regexp.MustCompile(`(?i)check\s+alt`),
	regexp.MustCompile(`(?i)\(prompt\s+in\s+alt\s*!?\s*\)`),
	regexp.MustCompile(`提示词在\s*alt`),
	regexp.MustCompile(`(?i)alt\s*里`),
}

// ExtractPromptRegex pulls a prompt out of "Prompt: ..." text. Anything the
// pattern matches still has to be over 50 chars to count, shorter matches are
// usually just titles.
func ExtractPromptRegex(text string) string {
	if text == "" {
		return ""
	}

	match := promptColonPattern.FindStringSubmatch(text)
	if match == nil {
		return ""
	}

	prompt := strings.TrimSpace(match[1])
	prompt = leadingQuotesPattern.ReplaceAllString(prompt, "")
	if utf8.RuneCountInString(prompt) > 50 {
		return prompt
	}

	return ""
}

func DetectPromptInReply(text string) bool {
	if text == "" {
		return false
	}
	lower := strings.ToLower(text)
	for _, pattern := range promptInReplyPatterns {
		if pattern.MatchString(lower) {
			return true
		}
	}
	return false
}

func DetectPromptInAlt(text string) bool {
	if text == "" {
		return false
	}
	lower := strings.ToLower(text)
	for _, pattern := range promptInAltPatterns {
		if pattern.MatchString(lower) {
			return true
		}
	}
	return false
}

const extractionSystemPrompt = `You are a helpful assistant that extracts AI image generation prompts from text.

IMPORTANT RULES:
1. FIRST, check if this is an advertisement or promotional content. Signs of ads include:
   - Product promotions, sales, discounts, deals
   - Service promotions (courses, tools, subscriptions)
   - Affiliate links, referral codes, promo codes
   - "Buy now", "Limited time", "Sign up", "Join", "Subscribe"
   - App/software promotions without actual prompts
   - Giveaways that require following/retweeting
   - Self-promotion of services or products
   - Lists of AI tools or software recommendations (e.g., "Top 10 AI tools", "100+ AI Tools")
   - Engagement bait: "Like", "Comment", "RT", "Retweet", "Follow me", "Must follow", "Bookmark this"
   - Numbered lists of tool names or categories (e.g., "1. Research - ChatGPT, YouChat...")
   If it's an advertisement or tool list, return 'Advertisement'.

2. Extract only the actual prompt itself, without any additional explanation or formatting.
3. CRITICAL: Check if the prompt is NOT in the main post but in a reply/comment. Return 'Prompt in reply' if:
   - Text ends with down arrow emoji: 👇 ⬇️ ↓ 🔽 ⤵️ (these mean "see below/in comments")
   - Text says "prompt below", "check comment", "prompt in reply", "see thread"
   - Text discusses a prompt (e.g., "This prompt works great!", "Try this prompt") but doesn't include the actual detailed prompt text
   - Text is short (under 200 chars) and talks ABOUT a prompt without containing one
   When in doubt and the text ends with ⤵️ or similar arrows, return 'Prompt in reply'.
4. If the text contains indicators like "Prompt in ALT", "see ALT", "check ALT", "ALT for prompt", or mentions that the prompt is in the image's alt text, return 'Prompt in ALT'.
5. If the text only contains a title or description of what the image shows (like "Nano Banana prompt" or "Any person to Trash Pop Collage") but NOT the actual detailed prompt, return 'No prompt found'.
6. A real AI image generation prompt usually contains:
   - Detailed scene descriptions (subjects, actions, environments)
   - Visual style specifications (lighting, colors, mood)
   - Technical parameters (--ar, --v, --style, resolution)
   - Art style references (photorealistic, anime, oil painting, etc.)
7. The following are NOT prompts - return 'No prompt found':
   - Lists of AI tools or software names
   - News or commentary about AI
   - Tutorials without actual prompts
   - General discussions about image generation
8. If no actual prompt is found, return 'No prompt found'.`

const simpleExtractionSystemPrompt = `You are a helpful assistant that extracts AI image generation prompts from text. Extract only the prompt itself, without any additional explanation or formatting. If no prompt is found, return 'No prompt found'.`

// ExtractorService turns raw post text into an ExtractionResult via the AI
// chain, classifying the answer into post/alt/reply/ad buckets.
type ExtractorService struct {
	chain *llmchain.Chain
}

func NewExtractorService(chain *llmchain.Chain) *ExtractorService {
	return &ExtractorService{chain: chain}
}

// ExtractPrompt asks the AI chain where the prompt is and what it says. The
// AI sometimes answers with an explanation instead of the exact sentinel, so
// the answer is matched loosely against known paraphrases.
func (e *ExtractorService) ExtractPrompt(text string) ExtractionResult {
	result := ExtractionResult{Location: LocationNone}
	if text == "" {
		return result
	}

	// Cheap checks first, the AI call only runs when none of them decide.
	if prompt := ExtractPromptRegex(text); prompt != "" {
		return ExtractionResult{Prompt: prompt, Location: LocationPost, Method: METHOD_REGEX}
	}
	if DetectPromptInAlt(text) {
		return ExtractionResult{Location: LocationAlt, Method: METHOD_REGEX}
	}
	if DetectPromptInReply(text) {
		return ExtractionResult{Location: LocationReply, Method: METHOD_REGEX}
	}

	answer, err := e.chain.Complete(llmchain.Messages{
		{Role: llmchain.ROLE_SYSTEM, Content: extractionSystemPrompt},
		{Role: llmchain.ROLE_USER, Content: "Extract the AI image generation prompt from this text and return only the prompt itself:\n\n" + text},
	})
	if err != nil {
		log.Printf("AI extraction failed: %s", err)
		return result
	}
	if answer == "" {
		return result
	}

	answerLower := strings.ToLower(answer)

	isAd := answer == "Advertisement" ||
		strings.Contains(answerLower, "promotional content") ||
		strings.Contains(answerLower, "advertisement") ||
		strings.Contains(answerLower, "does not contain") ||
		strings.Contains(answerLower, "no actual prompt") ||
		strings.Contains(answerLower, "not an actual prompt") ||
		strings.Contains(answerLower, "is not a prompt") ||
		strings.Contains(answerLower, "doesn't contain") ||
		strings.Contains(answerLower, "self-promotion") ||
		strings.Contains(answerLower, "engagement bait")
	isNoPrompt := answer == "No prompt found" ||
		strings.Contains(answerLower, "no prompt") ||
		strings.Contains(answerLower, "not found")
	isInAlt := answer == "Prompt in ALT" ||
		strings.Contains(answerLower, "prompt in alt")
	isInReply := answer == "Prompt in reply" ||
		strings.Contains(answerLower, "prompt in reply") ||
		strings.Contains(answerLower, "in the reply") ||
		strings.Contains(answerLower, "in the comment")

	result.Method = METHOD_AI
	switch {
	case isAd:
		result.Location = LocationAd
	case isInAlt:
		result.Location = LocationAlt
	case isInReply:
		result.Location = LocationReply
	case isNoPrompt:
		result.Location = LocationNone
	default:
		result.Prompt = answer
		result.Location = LocationPost
	}

	return result
}

// ExtractSimple extracts from text known to contain a prompt: regex first,
// AI without the reply/alt/ad detection second.
func (e *ExtractorService) ExtractSimple(text string) string {
	if prompt := ExtractPromptRegex(text); prompt != "" {
		return prompt
	}

	answer, err := e.chain.Complete(llmchain.Messages{
		{Role: llmchain.ROLE_SYSTEM, Content: simpleExtractionSystemPrompt},
		{Role: llmchain.ROLE_USER, Content: "Extract the AI image generation prompt from this text and return only the prompt itself:\n\n" + text},
	})
	if err != nil {
		log.Printf("AI extraction failed: %s", err)
		return ""
	}
	if answer == "" || answer == "No prompt found" {
		return ""
	}
	return answer
}

// ExtractPromptFromReplies tries regex per reply first, then one AI pass over
// the concatenated reply text.
func (e *ExtractorService) ExtractPromptFromReplies(replies []twitterreverse.AuthorReply) string {
	if len(replies) == 0 {
		return ""
	}

	for _, reply := range replies {
		if prompt := ExtractPromptRegex(reply.Text); prompt != "" {
			return prompt
		}
	}

	texts := make([]string, 0, len(replies))
	for _, reply := range replies {
		texts = append(texts, reply.Text)
	}

	return e.ExtractSimple(strings.Join(texts, "\n\n"))
}
