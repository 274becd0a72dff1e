package twitterfetch

import "regexp"

var tweetIDPattern = regexp.MustCompile(`/status/(\d+)`)
var usernamePattern = regexp.MustCompile(`(?:twitter\.com|x\.com)/([^/]+)/status`)

// ExtractTweetID pulls the numeric status ID out of a tweet URL, or "".
func ExtractTweetID(url string) string {
	match := tweetIDPattern.FindStringSubmatch(url)
	if match == nil {
		return ""
	}
	return match[1]
}

// ExtractUsername pulls the handle out of a tweet URL, or "".
func ExtractUsername(url string) string {
	match := usernamePattern.FindStringSubmatch(url)
	if match == nil {
		return ""
	}
	return match[1]
}
