package harvester

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapCategory(t *testing.T) {
	t.Run("CanonicalNamesPassThrough", func(t *testing.T) {
		for _, category := range ValidCategories {
			assert.Equal(t, category, MapCategory(category))
		}
	})

	t.Run("LegacyAliases", func(t *testing.T) {
		assert.Equal(t, "Landscape", MapCategory("Landscape/Nature"))
		assert.Equal(t, "Nature", MapCategory("Animals"))
		assert.Equal(t, "Sci-Fi", MapCategory("Sci-Fi/Futuristic"))
		assert.Equal(t, "Anime", MapCategory("Anime/Cartoon"))
		assert.Equal(t, "Photography", MapCategory("Realistic Photography"))
		assert.Equal(t, "Retro", MapCategory("Retro / Vintage"))
		assert.Equal(t, "Cute", MapCategory("Clay / Felt"))
		assert.Equal(t, "3D Render", MapCategory("3D"))
	})

	t.Run("CaseInsensitive", func(t *testing.T) {
		assert.Equal(t, "Portrait", MapCategory("portrait"))
		assert.Equal(t, "Cyberpunk", MapCategory("CYBERPUNK"))
	})

	t.Run("SubstringMatch", func(t *testing.T) {
		assert.Equal(t, "Pixel Art", MapCategory("Pixel Art Style"))
	})

	t.Run("UnknownDefaultsToIllustration", func(t *testing.T) {
		assert.Equal(t, "Illustration", MapCategory("Quantum Chromodynamics"))
	})

	t.Run("EmptyMeansOther", func(t *testing.T) {
		assert.Equal(t, "Other", MapCategory(""))
		assert.Equal(t, "Other", MapCategory("   "))
	})

	t.Run("AmbiguousMatchIsStable", func(t *testing.T) {
		// Matches Portrait, Fantasy and Horror; the first key in scan order
		// must win on every call.
		for i := 0; i < 100; i++ {
			assert.Equal(t, "Portrait", MapCategory("dark fantasy portrait"))
		}
	})
}

func TestInferCategoryFromTags(t *testing.T) {
	t.Run("FirstMappedTagWins", func(t *testing.T) {
		assert.Equal(t, "Cyberpunk", InferCategoryFromTags([]string{"neon", "portrait"}))
		assert.Equal(t, "Nature", InferCategoryFromTags([]string{"cat"}))
	})

	t.Run("TagsAreTrimmedAndLowercased", func(t *testing.T) {
		assert.Equal(t, "Pixel Art", InferCategoryFromTags([]string{"  Pixel Art  "}))
	})

	t.Run("NoTagsMeansOther", func(t *testing.T) {
		assert.Equal(t, "Other", InferCategoryFromTags(nil))
		assert.Equal(t, "Other", InferCategoryFromTags([]string{}))
	})

	t.Run("UnknownTagsMeanIllustration", func(t *testing.T) {
		assert.Equal(t, "Illustration", InferCategoryFromTags([]string{"zorbix", "flurbl"}))
	})
}
