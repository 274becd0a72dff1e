package twitterfetch

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testTweetURL = "https://x.com/artist/status/1234567890"

const fxBody = `{"tweet": {"text": "fx text", "author": {"name": "Artist", "screen_name": "artist"},
	"likes": 42, "retweets": 7, "views": 1000,
	"media": {"photos": [{"url": "https://pbs.twimg.com/media/fx1.jpg", "altText": "an alt"}]}}}`

const vxBody = `{"text": "vx text", "user_name": "Artist", "user_screen_name": "artist",
	"likes": 42, "media_extended": [
		{"type": "image", "url": "https://pbs.twimg.com/media/vx1.jpg", "altText": "vx alt"},
		{"type": "video", "url": "https://video.twimg.com/vx2.mp4"}]}`

const syndicationBody = `{"text": "syndication text", "user": {"name": "Artist", "screen_name": "artist"},
	"favorite_count": 42,
	"mediaDetails": [{"type": "photo", "media_url_https": "https://pbs.twimg.com/media/sy1.jpg", "ext_alt_text": "sy alt"}],
	"photos": [{"url": "https://pbs.twimg.com/media/sy1.jpg"}, {"url": "https://pbs.twimg.com/media/sy2.jpg"}]}`

func newStubServer(t *testing.T, status int, body string) *httptest.Server {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestFetcherService_FetchTweet(t *testing.T) {
	t.Run("FxTwitterFirst", func(t *testing.T) {
		fx := newStubServer(t, 200, fxBody)
		vx := newStubServer(t, 200, vxBody)
		syndication := newStubServer(t, 200, syndicationBody)

		service := NewFetcherService("")
		service.SetBaseURLs(fx.URL, vx.URL, syndication.URL)

		content, err := service.FetchTweet(testTweetURL)
		require.NoError(t, err)
		assert.Equal(t, "fx text", content.Text)
		assert.Equal(t, []string{"https://pbs.twimg.com/media/fx1.jpg"}, content.Images)
		assert.Equal(t, []string{"an alt"}, content.AltTexts)
		assert.Equal(t, "artist", content.Author.ScreenName)
		assert.Equal(t, 42, content.Stats.Likes)
	})

	t.Run("FallsBackToVxTwitter", func(t *testing.T) {
		fx := newStubServer(t, 503, "down")
		vx := newStubServer(t, 200, vxBody)
		syndication := newStubServer(t, 200, syndicationBody)

		service := NewFetcherService("")
		service.SetBaseURLs(fx.URL, vx.URL, syndication.URL)

		content, err := service.FetchTweet(testTweetURL)
		require.NoError(t, err)
		assert.Equal(t, "vx text", content.Text)
		// Videos are filtered out.
		assert.Equal(t, []string{"https://pbs.twimg.com/media/vx1.jpg"}, content.Images)
	})

	t.Run("FallsBackToSyndication", func(t *testing.T) {
		fx := newStubServer(t, 503, "down")
		vx := newStubServer(t, 200, `{"text": ""}`)
		syndication := newStubServer(t, 200, syndicationBody)

		service := NewFetcherService("")
		service.SetBaseURLs(fx.URL, vx.URL, syndication.URL)

		content, err := service.FetchTweet(testTweetURL)
		require.NoError(t, err)
		assert.Equal(t, "syndication text", content.Text)
		// The photos list supplements mediaDetails without duplicating it.
		assert.Equal(t, []string{
			"https://pbs.twimg.com/media/sy1.jpg",
			"https://pbs.twimg.com/media/sy2.jpg",
		}, content.Images)
		assert.Equal(t, 42, content.Stats.Likes)
	})

	t.Run("AllMethodsFailNamesEachOne", func(t *testing.T) {
		fx := newStubServer(t, 503, "down")
		vx := newStubServer(t, 404, "gone")
		syndication := newStubServer(t, 500, "broken")

		service := NewFetcherService("")
		service.SetBaseURLs(fx.URL, vx.URL, syndication.URL)

		_, err := service.FetchTweet(testTweetURL)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "FxTwitter")
		assert.Contains(t, err.Error(), "VxTwitter")
		assert.Contains(t, err.Error(), "Syndication")
	})

	t.Run("InvalidURL", func(t *testing.T) {
		service := NewFetcherService("")
		_, err := service.FetchTweet("https://x.com/artist")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid tweet url")
	})
}

func TestNewFetcherServiceBadProxy(t *testing.T) {
	assert.NotPanics(t, func() {
		service := NewFetcherService("://not-a-proxy")
		assert.NotNil(t, service)
	})
}
