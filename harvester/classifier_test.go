package harvester

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClassification(t *testing.T) {
	t.Run("PlainJSON", func(t *testing.T) {
		result := parseClassification(`{"title": "Neon Alley Cat", "category": "Cyberpunk", "sub_categories": ["Anime"], "style": "unknown", "confidence": "high", "reason": "neon city scene"}`)
		assert.Equal(t, "Neon Alley Cat", result.Title)
		assert.Equal(t, "Cyberpunk", result.Category)
		assert.Equal(t, []string{"Anime"}, result.SubCategories)
		assert.Equal(t, "high", result.Confidence)
	})

	t.Run("MarkdownFence", func(t *testing.T) {
		result := parseClassification("```json\n{\"title\": \"Foggy Lighthouse\", \"category\": \"Landscape\", \"sub_categories\": [], \"style\": \"unknown\", \"confidence\": \"medium\", \"reason\": \"coastal scene\"}\n```")
		assert.Equal(t, "Foggy Lighthouse", result.Title)
		assert.Equal(t, "Landscape", result.Category)
	})

	t.Run("BareFence", func(t *testing.T) {
		result := parseClassification("```\n{\"title\": \"Foggy Lighthouse\", \"category\": \"Landscape\"}\n```")
		assert.Equal(t, "Foggy Lighthouse", result.Title)
	})

	t.Run("JSONWrappedInProse", func(t *testing.T) {
		result := parseClassification(`Sure! Here is the classification: {"title": "Clay Robot Friend", "category": "Cute", "sub_categories": ["3D"], "style": "claymation", "confidence": "high", "reason": "toy-like render"} Hope that helps.`)
		assert.Equal(t, "Clay Robot Friend", result.Title)
		assert.Equal(t, "Cute", result.Category)
	})

	t.Run("GarbageYieldsLowConfidenceDefault", func(t *testing.T) {
		result := parseClassification("I cannot classify this prompt, sorry.")
		assert.Equal(t, "Untitled Prompt", result.Title)
		assert.Equal(t, "Other", result.Category)
		assert.Equal(t, "low", result.Confidence)
		assert.Empty(t, result.SubCategories)
	})

	t.Run("StyleFoldedIntoTags", func(t *testing.T) {
		result := parseClassification(`{"title": "Oil Portrait", "category": "Portrait", "sub_categories": ["Fashion"], "style": "oil painting", "confidence": "high", "reason": "classical look"}`)
		assert.Contains(t, result.SubCategories, "oil painting")
		assert.Contains(t, result.SubCategories, "Fashion")
	})

	t.Run("UnknownStyleNotFolded", func(t *testing.T) {
		result := parseClassification(`{"title": "Oil Portrait", "category": "Portrait", "sub_categories": ["Fashion"], "style": "unknown", "confidence": "high", "reason": "classical look"}`)
		assert.Equal(t, []string{"Fashion"}, result.SubCategories)
	})

	t.Run("DuplicateStyleNotAddedTwice", func(t *testing.T) {
		result := parseClassification(`{"title": "Oil Portrait", "category": "Portrait", "sub_categories": ["oil painting"], "style": "oil painting", "confidence": "high", "reason": "classical look"}`)
		assert.Equal(t, []string{"oil painting"}, result.SubCategories)
	})

	t.Run("MissingFieldsGetDefaults", func(t *testing.T) {
		result := parseClassification(`{"title": "", "category": "", "sub_categories": ["  ", "Anime"]}`)
		assert.Equal(t, "Untitled Prompt", result.Title)
		assert.Equal(t, "Other", result.Category)
		assert.Equal(t, "unknown", result.Style)
		assert.Equal(t, "medium", result.Confidence)
		assert.Equal(t, []string{"Anime"}, result.SubCategories)
	})
}

func TestClassifierService_ClassifyPrompt(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		classifier := NewClassifierService(stubChain(`{"title": "Neon Alley Cat", "category": "Cyberpunk", "sub_categories": [], "style": "unknown", "confidence": "high", "reason": "neon"}`))
		result, err := classifier.ClassifyPrompt("a neon cat in a rainy alley")
		require.NoError(t, err)
		assert.Equal(t, "Neon Alley Cat", result.Title)
	})

	t.Run("ChainFailure", func(t *testing.T) {
		classifier := NewClassifierService(failingChain())
		_, err := classifier.ClassifyPrompt("a neon cat in a rainy alley")
		assert.Error(t, err)
	})
}

func TestClassificationSystemPrompt(t *testing.T) {
	prompt := classificationSystemPrompt()
	for _, category := range PromptCategories {
		assert.Contains(t, prompt, category)
	}
	assert.Contains(t, prompt, `"confidence"`)
}
