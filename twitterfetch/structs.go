package twitterfetch

// TweetContent is the normalized result of the fetch cascade, whichever
// mirror produced it.
type TweetContent struct {
	Text      string     `json:"text"`
	Images    []string   `json:"images"`
	AltTexts  []string   `json:"image_alt_texts"`
	Author    TweetUser  `json:"user"`
	CreatedAt string     `json:"created_at"`
	Stats     TweetStats `json:"stats"`
}

type TweetUser struct {
	Name       string `json:"name"`
	ScreenName string `json:"screen_name"`
}

type TweetStats struct {
	Replies   int `json:"replies"`
	Retweets  int `json:"retweets"`
	Likes     int `json:"likes"`
	Bookmarks int `json:"bookmarks"`
	Views     int `json:"views"`
}

// TimelineTweet is one entry of a user timeline, as returned by the
// Nitter/RSSHub/syndication timeline sources.
type TimelineTweet struct {
	ID        string `json:"id"`
	URL       string `json:"url"`
	Text      string `json:"text"`
	Username  string `json:"username"`
	CreatedAt string `json:"created_at"`
	Likes     int    `json:"likes"`
	Retweets  int    `json:"retweets"`
	HasMedia  bool   `json:"has_media"`
}

type fxTwitterResponse struct {
	Tweet struct {
		Text   string `json:"text"`
		Author struct {
			Name       string `json:"name"`
			ScreenName string `json:"screen_name"`
		} `json:"author"`
		CreatedAt string `json:"created_at"`
		Replies   int    `json:"replies"`
		Retweets  int    `json:"retweets"`
		Likes     int    `json:"likes"`
		Bookmarks int    `json:"bookmarks"`
		Views     int    `json:"views"`
		Media     struct {
			Photos []struct {
				URL     string `json:"url"`
				AltText string `json:"altText"`
			} `json:"photos"`
		} `json:"media"`
	} `json:"tweet"`
}

type vxTwitterResponse struct {
	Text           string `json:"text"`
	UserName       string `json:"user_name"`
	UserScreenName string `json:"user_screen_name"`
	Date           string `json:"date"`
	Replies        int    `json:"replies"`
	Retweets       int    `json:"retweets"`
	Likes          int    `json:"likes"`
	Bookmarks      int    `json:"bookmarks"`
	Views          int    `json:"views"`
	MediaExtended  []struct {
		Type    string `json:"type"`
		URL     string `json:"url"`
		AltText string `json:"altText"`
	} `json:"media_extended"`
}

type syndicationResponse struct {
	Text string `json:"text"`
	User struct {
		Name       string `json:"name"`
		ScreenName string `json:"screen_name"`
	} `json:"user"`
	CreatedAt     string `json:"created_at"`
	ReplyCount    int    `json:"reply_count"`
	RetweetCount  int    `json:"retweet_count"`
	FavoriteCount int    `json:"favorite_count"`
	BookmarkCount int    `json:"bookmark_count"`
	ViewsCount    int    `json:"views_count"`
	MediaDetails  []struct {
		Type          string `json:"type"`
		MediaURLHTTPS string `json:"media_url_https"`
		ExtAltText    string `json:"ext_alt_text"`
	} `json:"mediaDetails"`
	Photos []struct {
		URL string `json:"url"`
	} `json:"photos"`
}
