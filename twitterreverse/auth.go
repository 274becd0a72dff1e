package twitterreverse

import (
	"encoding/json"
	"os"
)

// Public bearer used by the x.com web client itself.
const WEB_BEARER_TOKEN = "Bearer AAAAAAAAAAAAAAAAAAAAANRILgAAAAAAnNwIzUejRCOuH5E6I8xnZz4puTs%3D1Zv7ttfk8LF81IUq16cHjhLTvJu4FA33AGWWjCpTnA"

type TwitterAuth struct {
	AuthToken string `json:"auth_token"`
	CSRFToken string `json:"ct0"`
}

func NewTwitterAuth(authToken, csrfToken string) *TwitterAuth {
	return &TwitterAuth{AuthToken: authToken, CSRFToken: csrfToken}
}

func (a *TwitterAuth) Valid() bool {
	return a != nil && a.AuthToken != "" && a.CSRFToken != ""
}

// LoadAuth reads session cookies from the given env value (a JSON string)
// first, then from the cookie file. An unusable source yields nil, not an
// error; callers treat nil auth as "reply recovery unavailable."
func LoadAuth(cookieEnv string, cookieFile string) *TwitterAuth {
	if cookieEnv != "" {
		auth := &TwitterAuth{}
		if err := json.Unmarshal([]byte(cookieEnv), auth); err == nil && auth.Valid() {
			return auth
		}
	}

	if cookieFile != "" {
		data, err := os.ReadFile(cookieFile)
		if err == nil {
			auth := &TwitterAuth{}
			if err := json.Unmarshal(data, auth); err == nil && auth.Valid() {
				return auth
			}
		}
	}

	return nil
}
