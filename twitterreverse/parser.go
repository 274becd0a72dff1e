package twitterreverse

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/buger/jsonparser"
)

// Replies below this length are courtesy replies ("thanks!", emoji) unless
// they mention the word prompt.
const MIN_REPLY_LENGTH = 50

// ParseAuthorReplies walks a TweetDetail response and collects the thread
// replies written by authorUsername (case-insensitive match).
func ParseAuthorReplies(data []byte, authorUsername string) ([]AuthorReply, error) {
	var replies []AuthorReply

	instructionsPath := []string{"data", "threaded_conversation_with_injections_v2", "instructions"}
	_, err := jsonparser.ArrayEach(data, func(instruction []byte, dataType jsonparser.ValueType, offset int, err error) {
		if err != nil {
			return
		}

		instructionType, _ := jsonparser.GetString(instruction, "type")
		if instructionType != "TimelineAddEntries" {
			return
		}

		jsonparser.ArrayEach(instruction, func(entry []byte, dataType jsonparser.ValueType, offset int, err error) {
			if err != nil {
				return
			}

			entryID, _ := jsonparser.GetString(entry, "entryId")
			if !strings.Contains(strings.ToLower(entryID), "conversationthread") {
				return
			}

			jsonparser.ArrayEach(entry, func(item []byte, dataType jsonparser.ValueType, offset int, err error) {
				if err != nil {
					return
				}

				tweetResult, _, _, err := jsonparser.Get(item, "item", "itemContent", "tweet_results", "result")
				if err != nil {
					return
				}

				reply, ok := parseThreadReply(tweetResult, authorUsername)
				if ok {
					replies = append(replies, reply)
				}
			}, "content", "items")
		}, "entries")
	}, instructionsPath...)

	if err != nil {
		return nil, fmt.Errorf("failed to parse tweet detail response: %w", err)
	}

	return replies, nil
}

func parseThreadReply(tweetResult []byte, authorUsername string) (AuthorReply, bool) {
	username, err := jsonparser.GetString(tweetResult, "core", "user_results", "result", "legacy", "screen_name")
	if err != nil || !strings.EqualFold(username, authorUsername) {
		return AuthorReply{}, false
	}

	// Long tweets carry their full text in note_tweet, not legacy.
	text, err := jsonparser.GetString(tweetResult, "note_tweet", "note_tweet_results", "result", "text")
	if err != nil || text == "" {
		text, _ = jsonparser.GetString(tweetResult, "legacy", "full_text")
	}
	if text == "" {
		return AuthorReply{}, false
	}

	if utf8.RuneCountInString(text) <= MIN_REPLY_LENGTH && !strings.Contains(strings.ToLower(text), "prompt") {
		return AuthorReply{}, false
	}

	return AuthorReply{Text: text, Username: username, IsAuthor: true}, true
}

// ParseSearchTweets walks a SearchTimeline response.
func ParseSearchTweets(data []byte) ([]SearchTweet, error) {
	var tweets []SearchTweet

	instructionsPath := []string{"data", "search_by_raw_query", "search_timeline", "timeline", "instructions"}
	_, err := jsonparser.ArrayEach(data, func(instruction []byte, dataType jsonparser.ValueType, offset int, err error) {
		if err != nil {
			return
		}

		jsonparser.ArrayEach(instruction, func(entry []byte, dataType jsonparser.ValueType, offset int, err error) {
			if err != nil {
				return
			}

			tweetResult, _, _, err := jsonparser.Get(entry, "content", "itemContent", "tweet_results", "result")
			if err != nil {
				return
			}

			tweet := SearchTweet{}
			tweet.ID, _ = jsonparser.GetString(tweetResult, "legacy", "id_str")
			if tweet.ID == "" {
				tweet.ID, _ = jsonparser.GetString(tweetResult, "rest_id")
			}
			if tweet.ID == "" {
				return
			}

			tweet.Text, _ = jsonparser.GetString(tweetResult, "legacy", "full_text")
			tweet.CreatedAt, _ = jsonparser.GetString(tweetResult, "legacy", "created_at")

			if likes, err := jsonparser.GetInt(tweetResult, "legacy", "favorite_count"); err == nil {
				tweet.Likes = int(likes)
			}
			if retweets, err := jsonparser.GetInt(tweetResult, "legacy", "retweet_count"); err == nil {
				tweet.Retweets = int(retweets)
			}

			tweet.Username, _ = jsonparser.GetString(tweetResult, "core", "user_results", "result", "legacy", "screen_name")
			if tweet.Username != "" {
				tweet.URL = fmt.Sprintf("https://x.com/%s/status/%s", tweet.Username, tweet.ID)
			}

			tweets = append(tweets, tweet)
		}, "entries")
	}, instructionsPath...)

	if err != nil {
		return nil, fmt.Errorf("failed to parse search timeline response: %w", err)
	}

	return tweets, nil
}
