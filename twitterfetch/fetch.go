package twitterfetch

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const FXTWITTER_BASE_URL = "https://api.fxtwitter.com"
const VXTWITTER_BASE_URL = "https://api.vxtwitter.com"
const SYNDICATION_BASE_URL = "https://cdn.syndication.twimg.com"

const BROWSER_USER_AGENT = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
const BOT_USER_AGENT = "Mozilla/5.0 (compatible; TwitterBot/1.0)"

// FetcherService resolves a tweet URL to its text/images/stats by walking a
// fixed cascade of mirror APIs: FxTwitter, then VxTwitter, then the official
// syndication endpoint. The first response with non-empty text wins.
type FetcherService struct {
	httpClient         *http.Client
	fxBaseURL          string
	vxBaseURL          string
	syndicationBaseURL string
}

func NewFetcherService(proxyDSN string) *FetcherService {
	transport := &http.Transport{}
	if proxyDSN != "" {
		proxyURL, err := url.Parse(proxyDSN)
		if err != nil {
			log.Printf("Warning: invalid proxy DSN %q, continuing without proxy: %v", proxyDSN, err)
		} else {
			transport.Proxy = http.ProxyURL(proxyURL)
		}
	}

	return &FetcherService{
		httpClient: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		fxBaseURL:          FXTWITTER_BASE_URL,
		vxBaseURL:          VXTWITTER_BASE_URL,
		syndicationBaseURL: SYNDICATION_BASE_URL,
	}
}

// SetBaseURLs points the cascade at alternate mirrors.
func (s *FetcherService) SetBaseURLs(fx, vx, syndication string) {
	s.fxBaseURL = fx
	s.vxBaseURL = vx
	s.syndicationBaseURL = syndication
}

// FetchTweet runs the cascade. Every method's failure is recorded and the
// final error names all of them; a single method failing never aborts the
// cascade.
func (s *FetcherService) FetchTweet(tweetURL string) (*TweetContent, error) {
	tweetID := ExtractTweetID(tweetURL)
	username := ExtractUsername(tweetURL)
	if tweetID == "" {
		return nil, fmt.Errorf("invalid tweet url: %s", tweetURL)
	}

	var fetchErrors []string

	content, err := s.fetchWithFxTwitter(tweetID, username)
	if err == nil && content.Text != "" {
		return content, nil
	}
	fetchErrors = append(fetchErrors, "FxTwitter: "+errorOrEmpty(err))

	content, err = s.fetchWithVxTwitter(tweetID, username)
	if err == nil && content.Text != "" {
		return content, nil
	}
	fetchErrors = append(fetchErrors, "VxTwitter: "+errorOrEmpty(err))

	content, err = s.fetchWithSyndication(tweetID)
	if err == nil && content.Text != "" {
		return content, nil
	}
	fetchErrors = append(fetchErrors, "Syndication: "+errorOrEmpty(err))

	return nil, fmt.Errorf("all fetch methods failed for %s: %s", tweetURL, strings.Join(fetchErrors, "; "))
}

func errorOrEmpty(err error) string {
	if err != nil {
		return err.Error()
	}
	return "empty response"
}

func (s *FetcherService) getJSON(uri string, userAgent string, out interface{}) error {
	req, err := http.NewRequest("GET", uri, nil)
	if err != nil {
		return fmt.Errorf("error create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error read response: %w", err)
	}
	if resp.StatusCode != 200 {
		return fmt.Errorf("status non 200: %d", resp.StatusCode)
	}

	return json.Unmarshal(body, out)
}

func (s *FetcherService) fetchWithFxTwitter(tweetID, username string) (*TweetContent, error) {
	uri := fmt.Sprintf("%s/%s/status/%s", s.fxBaseURL, username, tweetID)

	data := fxTwitterResponse{}
	if err := s.getJSON(uri, BOT_USER_AGENT, &data); err != nil {
		return nil, fmt.Errorf("fxtwitter: %w", err)
	}
	return parseFxTwitter(&data), nil
}

func (s *FetcherService) fetchWithVxTwitter(tweetID, username string) (*TweetContent, error) {
	uri := fmt.Sprintf("%s/%s/status/%s", s.vxBaseURL, username, tweetID)

	data := vxTwitterResponse{}
	if err := s.getJSON(uri, BOT_USER_AGENT, &data); err != nil {
		return nil, fmt.Errorf("vxtwitter: %w", err)
	}
	return parseVxTwitter(&data), nil
}

func (s *FetcherService) fetchWithSyndication(tweetID string) (*TweetContent, error) {
	uri := fmt.Sprintf("%s/tweet-result?id=%s&token=0", s.syndicationBaseURL, tweetID)

	data := syndicationResponse{}
	if err := s.getJSON(uri, BROWSER_USER_AGENT, &data); err != nil {
		return nil, fmt.Errorf("syndication: %w", err)
	}
	return parseSyndication(&data), nil
}
