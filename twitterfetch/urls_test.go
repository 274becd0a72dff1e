package twitterfetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractTweetID(t *testing.T) {
	assert.Equal(t, "1234567890", ExtractTweetID("https://x.com/artist/status/1234567890"))
	assert.Equal(t, "1234567890", ExtractTweetID("https://twitter.com/artist/status/1234567890?s=20"))
	assert.Equal(t, "", ExtractTweetID("https://x.com/artist"))
	assert.Equal(t, "", ExtractTweetID(""))
}

func TestExtractUsername(t *testing.T) {
	assert.Equal(t, "artist", ExtractUsername("https://x.com/artist/status/1234567890"))
	assert.Equal(t, "artist", ExtractUsername("https://twitter.com/artist/status/1234567890"))
	assert.Equal(t, "", ExtractUsername("https://example.com/artist/status/123"))
}

func TestHighResImageURL(t *testing.T) {
	assert.Equal(t,
		"https://pbs.twimg.com/media/abc?format=jpg&name=large",
		HighResImageURL("https://pbs.twimg.com/media/abc?format=jpg&name=small"))
	assert.Equal(t,
		"https://pbs.twimg.com/media/abc?format=jpg&name=large",
		HighResImageURL("https://pbs.twimg.com/media/abc"))
}
