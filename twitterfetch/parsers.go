package twitterfetch

import (
	"regexp"
	"strings"
)

var imageNameParam = regexp.MustCompile(`name=\w+`)

// HighResImageURL rewrites a pbs.twimg.com media URL to its large variant.
func HighResImageURL(imageURL string) string {
	if strings.Contains(imageURL, "?") {
		return imageNameParam.ReplaceAllString(imageURL, "name=large")
	}
	return imageURL + "?format=jpg&name=large"
}

func parseFxTwitter(data *fxTwitterResponse) *TweetContent {
	tweet := data.Tweet

	content := &TweetContent{
		Text:      tweet.Text,
		CreatedAt: tweet.CreatedAt,
		Author: TweetUser{
			Name:       tweet.Author.Name,
			ScreenName: tweet.Author.ScreenName,
		},
		Stats: TweetStats{
			Replies:   tweet.Replies,
			Retweets:  tweet.Retweets,
			Likes:     tweet.Likes,
			Bookmarks: tweet.Bookmarks,
			Views:     tweet.Views,
		},
	}

	for _, photo := range tweet.Media.Photos {
		if photo.URL == "" {
			continue
		}
		content.Images = append(content.Images, photo.URL)
		if photo.AltText != "" {
			content.AltTexts = append(content.AltTexts, photo.AltText)
		}
	}

	return content
}

func parseVxTwitter(data *vxTwitterResponse) *TweetContent {
	content := &TweetContent{
		Text:      data.Text,
		CreatedAt: data.Date,
		Author: TweetUser{
			Name:       data.UserName,
			ScreenName: data.UserScreenName,
		},
		Stats: TweetStats{
			Replies:   data.Replies,
			Retweets:  data.Retweets,
			Likes:     data.Likes,
			Bookmarks: data.Bookmarks,
			Views:     data.Views,
		},
	}

	for _, media := range data.MediaExtended {
		if media.Type != "image" || media.URL == "" {
			continue
		}
		content.Images = append(content.Images, media.URL)
		if media.AltText != "" {
			content.AltTexts = append(content.AltTexts, media.AltText)
		}
	}

	return content
}

func parseSyndication(data *syndicationResponse) *TweetContent {
	content := &TweetContent{
		Text:      data.Text,
		CreatedAt: data.CreatedAt,
		Author: TweetUser{
			Name:       data.User.Name,
			ScreenName: data.User.ScreenName,
		},
		Stats: TweetStats{
			Replies:   data.ReplyCount,
			Retweets:  data.RetweetCount,
			Likes:     data.FavoriteCount,
			Bookmarks: data.BookmarkCount,
			Views:     data.ViewsCount,
		},
	}

	for _, media := range data.MediaDetails {
		if media.Type != "photo" || media.MediaURLHTTPS == "" {
			continue
		}
		content.Images = append(content.Images, media.MediaURLHTTPS)
		if media.ExtAltText != "" {
			content.AltTexts = append(content.AltTexts, media.ExtAltText)
		}
	}

	// Some syndication payloads only carry photos, not mediaDetails.
	for _, photo := range data.Photos {
		if photo.URL == "" || contains(content.Images, photo.URL) {
			continue
		}
		content.Images = append(content.Images, photo.URL)
	}

	return content
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
