package twitterreverse

// AuthorReply is one reply by the original poster inside their own thread.
type AuthorReply struct {
	Text     string `json:"text"`
	Username string `json:"username"`
	IsAuthor bool   `json:"is_author"`
}

// SearchTweet is one result of an authenticated keyword search.
type SearchTweet struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Username  string `json:"username"`
	URL       string `json:"url"`
	Likes     int    `json:"likes"`
	Retweets  int    `json:"retweets"`
	CreatedAt string `json:"created_at"`
}
