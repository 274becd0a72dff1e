package twitterfetch

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

// Public Nitter mirrors, tried in order. Individual instances come and go,
// the cascade just moves on.
var NitterInstances = []string{
	"https://nitter.poast.org",
	"https://nitter.privacydev.net",
	"https://nitter.1d4.us",
	"https://nitter.net",
	"https://nitter.cz",
}

var RSSHubInstances = []string{
	"https://rsshub.app",
	"https://rsshub.rssforever.com",
}

const SYNDICATION_TIMELINE_URL = "https://syndication.twitter.com/srv/timeline-profile/screen-name/%s"

var idStrPattern = regexp.MustCompile(`"id_str":"(\d+)"`)
var mediaImgPattern = regexp.MustCompile(`<img[^>]+src="([^"]*twimg\.com[^"]*)"`)
var htmlTagPattern = regexp.MustCompile(`<[^>]+>`)

// TimelineService enumerates a user's recent tweets without authentication,
// falling back across Nitter RSS, RSSHub, and the syndication timeline. The
// RSS sources carry text, the syndication source only IDs; callers resolve
// details through the fetch cascade either way.
type TimelineService struct {
	httpClient      *http.Client
	feedParser      *gofeed.Parser
	nitterInstances []string
	rsshubInstances []string
	syndicationURL  string
}

func NewTimelineService() *TimelineService {
	return &TimelineService{
		httpClient:      &http.Client{Timeout: 15 * time.Second},
		feedParser:      gofeed.NewParser(),
		nitterInstances: NitterInstances,
		rsshubInstances: RSSHubInstances,
		syndicationURL:  SYNDICATION_TIMELINE_URL,
	}
}

// SetInstances overrides the mirror lists.
func (s *TimelineService) SetInstances(nitter, rsshub []string, syndicationURL string) {
	s.nitterInstances = nitter
	s.rsshubInstances = rsshub
	s.syndicationURL = syndicationURL
}

// UserTimeline returns up to count recent tweets for a user, from the first
// source that yields anything.
func (s *TimelineService) UserTimeline(username string, count int) ([]TimelineTweet, error) {
	tweets := s.fetchNitter(username, count)
	if len(tweets) > 0 {
		return tweets, nil
	}

	tweets = s.fetchSyndicationTimeline(username, count)
	if len(tweets) > 0 {
		return tweets, nil
	}

	tweets = s.fetchRSSHub(username, count)
	if len(tweets) > 0 {
		return tweets, nil
	}

	return nil, fmt.Errorf("no timeline source returned tweets for @%s", username)
}

func (s *TimelineService) fetchNitter(username string, count int) []TimelineTweet {
	for _, instance := range s.nitterInstances {
		feed, err := s.fetchFeed(instance + "/" + username + "/rss")
		if err != nil {
			log.Printf("[Nitter] %s failed: %s", instance, err)
			continue
		}

		tweets := parseTimelineFeed(feed, username, count, true)
		if len(tweets) > 0 {
			log.Printf("[Nitter] Got %d tweets from %s", len(tweets), instance)
			return tweets
		}
	}
	return nil
}

func (s *TimelineService) fetchRSSHub(username string, count int) []TimelineTweet {
	for _, instance := range s.rsshubInstances {
		feed, err := s.fetchFeed(instance + "/twitter/user/" + username)
		if err != nil {
			log.Printf("[RSSHub] %s failed: %s", instance, err)
			continue
		}

		tweets := parseTimelineFeed(feed, username, count, false)
		if len(tweets) > 0 {
			log.Printf("[RSSHub] Got %d tweet IDs from %s", len(tweets), instance)
			return tweets
		}
	}
	return nil
}

func (s *TimelineService) fetchFeed(feedURL string) (*gofeed.Feed, error) {
	req, err := http.NewRequest("GET", feedURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", BROWSER_USER_AGENT)
	req.Header.Set("Accept", "application/rss+xml, application/xml, text/xml")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("status non 200: %d", resp.StatusCode)
	}

	return s.feedParser.Parse(resp.Body)
}

func parseTimelineFeed(feed *gofeed.Feed, username string, count int, withText bool) []TimelineTweet {
	var tweets []TimelineTweet

	for _, item := range feed.Items {
		if len(tweets) >= count {
			break
		}

		tweetID := ExtractTweetID(item.Link)
		if tweetID == "" {
			continue
		}

		tweet := TimelineTweet{
			ID:       tweetID,
			URL:      fmt.Sprintf("https://x.com/%s/status/%s", username, tweetID),
			Username: username,
		}
		if item.PublishedParsed != nil {
			tweet.CreatedAt = item.PublishedParsed.Format(time.RFC3339)
		}
		if withText {
			tweet.HasMedia = mediaImgPattern.MatchString(item.Description)
			tweet.Text = stripDescriptionHTML(item.Description)
		}

		tweets = append(tweets, tweet)
	}

	return tweets
}

func stripDescriptionHTML(description string) string {
	text := htmlTagPattern.ReplaceAllString(description, " ")
	text = strings.ReplaceAll(text, "&quot;", `"`)
	text = strings.ReplaceAll(text, "&amp;", "&")
	text = strings.ReplaceAll(text, "&lt;", "<")
	text = strings.ReplaceAll(text, "&gt;", ">")
	text = strings.ReplaceAll(text, "&#39;", "'")
	return strings.TrimSpace(strings.Join(strings.Fields(text), " "))
}

// The syndication timeline only exposes raw tweet IDs inside an embedded
// JSON blob, so this source never carries text.
func (s *TimelineService) fetchSyndicationTimeline(username string, count int) []TimelineTweet {
	uri := fmt.Sprintf(s.syndicationURL, username)

	req, err := http.NewRequest("GET", uri, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", BROWSER_USER_AGENT)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		log.Printf("[Syndication] error: %s", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		log.Printf("[Syndication] HTTP %d", resp.StatusCode)
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil
	}

	if strings.Contains(string(body), "UserUnavailable") {
		log.Printf("[Syndication] Account @%s unavailable or suspended", username)
		return nil
	}

	var tweets []TimelineTweet
	seen := map[string]bool{}
	for _, match := range idStrPattern.FindAllStringSubmatch(string(body), -1) {
		tweetID := match[1]
		if seen[tweetID] {
			continue
		}
		seen[tweetID] = true
		tweets = append(tweets, TimelineTweet{
			ID:       tweetID,
			URL:      fmt.Sprintf("https://x.com/%s/status/%s", username, tweetID),
			Username: username,
		})
		if len(tweets) >= count {
			break
		}
	}

	return tweets
}
