package gateway

import "context"

// profile upstream query
const profilePreferencesQuery = `query GetLoggedUser {
  user {
    userVisibilitySettings {
      profileViewMode
      profilePublic
      profilePictureScope
      followingVisibility
      notifyMentionsInMedia
      allowMentions
    }
  }
}`

// VisibilitySettings mirrors the profile upstream payload, all fields optional.
type VisibilitySettings struct {
	ProfileViewMode       *string `json:"profileViewMode"`
	ProfilePublic         *bool   `json:"profilePublic"`
	ProfilePictureScope   *string `json:"profilePictureScope"`
	FollowingVisibility   *string `json:"followingVisibility"`
	NotifyMentionsInMedia *bool   `json:"notifyMentionsInMedia"`
	AllowMentions         *bool   `json:"allowMentions"`
}

// ProfileUser wraps the visibility settings of the logged user.
type ProfileUser struct {
	UserVisibilitySettings *VisibilitySettings `json:"userVisibilitySettings"`
}

// ProfileResult is the profile gateway response.
type ProfileResult struct {
	User *ProfileUser `json:"user"`
}

// Profile fetches visibility preferences from the profile upstream.
type Profile struct {
	client *Client
}

// NewProfile creates the profile gateway
func NewProfile(cfg Config) *Profile {
	return &Profile{client: NewClient("profile", cfg)}
}

// Fetch returns the profile visibility settings for the credential's user
func (g *Profile) Fetch(ctx context.Context, credential string) (*ProfileResult, error) {
	res := &ProfileResult{}
	if err := g.client.query(ctx, credential, profilePreferencesQuery, res); err != nil {
		return nil, err
	}
	return res, nil
}
