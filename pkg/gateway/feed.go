package gateway

import "context"

// feed upstream query
const feedPreferencesQuery = `query GetFeedUserPreferences {
  userSettings {
    allowMentions
    feedViewPreference
  }
}`

// FeedUserSettings mirrors the feed upstream payload, fields may be omitted
// by the upstream and are left as nil.
type FeedUserSettings struct {
	AllowMentions      *bool   `json:"allowMentions"`
	FeedViewPreference *string `json:"feedViewPreference"`
}

// FeedResult is the feed gateway response.
type FeedResult struct {
	UserSettings *FeedUserSettings `json:"userSettings"`
}

// Feed fetches feed preferences from the feed upstream.
type Feed struct {
	client *Client
}

// NewFeed creates the feed gateway
func NewFeed(cfg Config) *Feed {
	return &Feed{client: NewClient("feed", cfg)}
}

// Fetch returns the feed preferences for the credential's user
func (g *Feed) Fetch(ctx context.Context, credential string) (*FeedResult, error) {
	res := &FeedResult{}
	if err := g.client.query(ctx, credential, feedPreferencesQuery, res); err != nil {
		return nil, err
	}
	return res, nil
}
