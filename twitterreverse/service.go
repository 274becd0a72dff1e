package twitterreverse

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"
)

const TWEET_DETAIL_ENDPOINT = "/i/api/graphql/nBS-WpgA6ZG0CyNHD517JQ/TweetDetail"
const SEARCH_TIMELINE_ENDPOINT = "/i/api/graphql/UN1i3zUiCWa-6r-Uaho4fw/SearchTimeline"

// TwitterReverseService talks to the x.com GraphQL API with a logged-in
// session (auth_token + ct0 cookie pair). Used for the two things the public
// mirrors cannot do: reading a full conversation thread and keyword search.
type TwitterReverseService struct {
	auth      *TwitterAuth
	client    *http.Client
	baseURL   string
	userAgent string
}

func NewTwitterReverseService(auth *TwitterAuth, proxyDSN string) *TwitterReverseService {
	service := &TwitterReverseService{
		auth:      auth,
		baseURL:   "https://x.com",
		userAgent: "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/130.0.0.0 Safari/537.36",
		client:    &http.Client{Timeout: 60 * time.Second},
	}

	if proxyDSN != "" {
		proxyURL, err := url.Parse(proxyDSN)
		if err != nil {
			log.Printf("Warning: invalid proxy DSN %q, continuing without proxy: %v", proxyDSN, err)
		} else {
			service.client.Transport = &http.Transport{Proxy: http.ProxyURL(proxyURL)}
		}
	}

	return service
}

func (s *TwitterReverseService) SetBaseURL(baseURL string) {
	s.baseURL = baseURL
}

func (s *TwitterReverseService) Authenticated() bool {
	return s.auth.Valid()
}

func (s *TwitterReverseService) makeRequest(endpoint string, params map[string]interface{}) ([]byte, error) {
	values := url.Values{}
	for key, value := range params {
		switch v := value.(type) {
		case string:
			values.Add(key, v)
		default:
			jsonBytes, _ := json.Marshal(v)
			values.Add(key, string(jsonBytes))
		}
	}
	reqURL := s.baseURL + endpoint + "?" + values.Encode()

	req, err := http.NewRequest("GET", reqURL, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "*/*")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", WEB_BEARER_TOKEN)
	req.Header.Set("x-csrf-token", s.auth.CSRFToken)
	req.Header.Set("Cookie", fmt.Sprintf("auth_token=%s; ct0=%s", s.auth.AuthToken, s.auth.CSRFToken))
	req.Header.Set("x-twitter-active-user", "yes")
	req.Header.Set("x-twitter-auth-type", "OAuth2Session")
	req.Header.Set("x-twitter-client-language", "en")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d - %s", resp.StatusCode, string(body))
	}

	return body, nil
}

// AuthorReplies fetches the conversation thread of a tweet and keeps only
// the original poster's own follow-ups. Missing credentials return an empty
// list, not an error: the caller reports "prompt in reply, unrecoverable."
func (s *TwitterReverseService) AuthorReplies(tweetID string, authorUsername string) ([]AuthorReply, error) {
	if !s.Authenticated() {
		return nil, nil
	}

	variables := map[string]interface{}{
		"focalTweetId":                           tweetID,
		"with_rux_injections":                    false,
		"rankingMode":                            "Relevance",
		"includePromotedContent":                 true,
		"withCommunity":                          true,
		"withQuickPromoteEligibilityTweetFields": true,
		"withBirdwatchNotes":                     true,
		"withVoice":                              true,
	}

	params := map[string]interface{}{
		"variables": variables,
		"features":  graphqlFeatures(),
	}

	data, err := s.makeRequest(TWEET_DETAIL_ENDPOINT, params)
	if err != nil {
		return nil, fmt.Errorf("tweet detail request: %w", err)
	}

	return ParseAuthorReplies(data, authorUsername)
}

// SearchTweets runs an authenticated "Top" search for the given query.
func (s *TwitterReverseService) SearchTweets(query string, count int) ([]SearchTweet, error) {
	if !s.Authenticated() {
		return nil, fmt.Errorf("search requires a logged-in session")
	}

	variables := map[string]interface{}{
		"rawQuery":    query,
		"count":       count,
		"querySource": "typed_query",
		"product":     "Top",
	}

	params := map[string]interface{}{
		"variables": variables,
		"features":  graphqlFeatures(),
	}

	data, err := s.makeRequest(SEARCH_TIMELINE_ENDPOINT, params)
	if err != nil {
		return nil, fmt.Errorf("search timeline request: %w", err)
	}

	return ParseSearchTweets(data)
}

func graphqlFeatures() map[string]interface{} {
	return map[string]interface{}{
		"rweb_tipjar_consumption_enabled":                                         true,
		"responsive_web_graphql_exclude_directive_enabled":                        true,
		"verified_phone_label_enabled":                                            false,
		"creator_subscriptions_tweet_preview_api_enabled":                         true,
		"responsive_web_graphql_timeline_navigation_enabled":                      true,
		"responsive_web_graphql_skip_user_profile_image_extensions_enabled":       false,
		"communities_web_enable_tweet_community_results_fetch":                    true,
		"c9s_tweet_anatomy_moderator_badge_enabled":                               true,
		"articles_preview_enabled":                                                true,
		"responsive_web_edit_tweet_api_enabled":                                   true,
		"graphql_is_translatable_rweb_tweet_is_translatable_enabled":              true,
		"view_counts_everywhere_api_enabled":                                      true,
		"longform_notetweets_consumption_enabled":                                 true,
		"responsive_web_twitter_article_tweet_consumption_enabled":                true,
		"tweet_awards_web_tipping_enabled":                                        false,
		"creator_subscriptions_quote_tweet_preview_enabled":                       false,
		"freedom_of_speech_not_reach_fetch_enabled":                               true,
		"standardized_nudges_misinfo":                                             true,
		"tweet_with_visibility_results_prefer_gql_limited_actions_policy_enabled": true,
		"rweb_video_timestamps_enabled":                                           true,
		"longform_notetweets_rich_text_read_enabled":                              true,
		"longform_notetweets_inline_media_enabled":                                true,
		"responsive_web_enhance_cards_enabled":                                    false,
	}
}
