package harvester

import (
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/promptscout/worker/llmchain"
)

type Classification struct {
	Title         string   `json:"title"`
	Category      string   `json:"category"`
	SubCategories []string `json:"sub_categories"`
	Style         string   `json:"style"`
	Confidence    string   `json:"confidence"`
	Reason        string   `json:"reason"`
}

var jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)

// ClassifierService assigns a title, category and tags to an extracted
// prompt via the AI chain.
type ClassifierService struct {
	chain *llmchain.Chain
}

func NewClassifierService(chain *llmchain.Chain) *ClassifierService {
	return &ClassifierService{chain: chain}
}

func classificationSystemPrompt() string {
	var categories strings.Builder
	for _, category := range PromptCategories {
		categories.WriteString("- " + category + "\n")
	}

	return fmt.Sprintf(`You are an AI image prompt classifier. Analyze the given prompt and classify it into one of the following categories:

%s
Respond in JSON format with exactly these fields:
- "title": a concise, descriptive title for this prompt in English (3-8 words, like a short headline)
- "category": the main category (choose from the list above, use the English part only, e.g., "Portrait", "Landscape/Nature")
- "sub_categories": array of 1-3 secondary categories in English (e.g., ["Fashion/Clothing", "Realistic Photography"])
- "style": detected art style (e.g., "photorealistic", "anime", "oil painting", "3D render", etc.)
- "confidence": "high", "medium", or "low"
- "reason": brief explanation in English (1 sentence)

Example response:
{"title": "Fashion Actress Bird's Eye View", "category": "Portrait", "sub_categories": ["Fashion/Clothing"], "style": "photorealistic", "confidence": "high", "reason": "The prompt describes a Japanese actress in a black coat from above"}`, categories.String())
}

// ClassifyPrompt runs the chain and normalizes whatever comes back. A
// response that cannot be parsed at all yields the low-confidence default
// rather than an error, the orchestrator proceeds either way.
func (c *ClassifierService) ClassifyPrompt(prompt string) (Classification, error) {
	response, err := c.chain.Complete(llmchain.Messages{
		{Role: llmchain.ROLE_SYSTEM, Content: classificationSystemPrompt()},
		{Role: llmchain.ROLE_USER, Content: "Classify this AI image generation prompt:\n\n" + prompt},
	})
	if err != nil {
		return Classification{}, fmt.Errorf("classification failed: %w", err)
	}

	return parseClassification(response), nil
}

func parseClassification(response string) Classification {
	cleaned := strings.TrimSpace(response)
	if strings.HasPrefix(cleaned, "```json") {
		cleaned = cleaned[7:]
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = cleaned[3:]
	}
	cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")
	cleaned = strings.TrimSpace(cleaned)

	var result Classification
	parsed := json.Unmarshal([]byte(cleaned), &result) == nil

	if !parsed {
		// The model sometimes wraps the JSON in prose.
		if match := jsonObjectPattern.FindString(cleaned); match != "" {
			parsed = json.Unmarshal([]byte(match), &result) == nil
		}
	}

	if !parsed {
		preview := response
		if len(preview) > 200 {
			preview = preview[:200]
		}
		log.Printf("classification JSON parse failed, raw response: %s", preview)
		return Classification{
			Title:         "Untitled Prompt",
			Category:      "Other",
			SubCategories: []string{},
			Style:         "unknown",
			Confidence:    "low",
			Reason:        "Failed to parse classification result",
		}
	}

	return normalizeClassification(result)
}

func normalizeClassification(result Classification) Classification {
	if strings.TrimSpace(result.Title) == "" {
		result.Title = "Untitled Prompt"
	}
	if result.Category == "" {
		result.Category = "Other"
	}
	if result.Style == "" {
		result.Style = "unknown"
	}
	if result.Confidence == "" {
		result.Confidence = "medium"
	}

	cleaned := make([]string, 0, len(result.SubCategories))
	for _, tag := range result.SubCategories {
		if trimmed := strings.TrimSpace(tag); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	result.SubCategories = cleaned

	// A detected style doubles as a tag.
	if result.Style != "" && result.Style != "unknown" {
		found := false
		for _, tag := range result.SubCategories {
			if tag == result.Style {
				found = true
				break
			}
		}
		if !found {
			result.SubCategories = append(result.SubCategories, result.Style)
		}
	}

	return result
}
