package domain

// FeedPreferences holds feed-related user settings. Both fields are always
// present in a consolidated snapshot; missing upstream values are defaulted
// to false and "DEFAULT" by the aggregator.
type FeedPreferences struct {
	AllowMentions      bool   `json:"allowMentions"`
	FeedViewPreference string `json:"feedViewPreference"`
}

// ProfilePreferences holds profile visibility settings. All fields are
// optional and passed through verbatim from the upstream, no defaulting.
type ProfilePreferences struct {
	ProfileViewMode       *string `json:"profileViewMode,omitempty"`
	ProfilePublic         *bool   `json:"profilePublic,omitempty"`
	ProfilePictureScope   *string `json:"profilePictureScope,omitempty"`
	FollowingVisibility   *string `json:"followingVisibility,omitempty"`
	NotifyMentionsInMedia *bool   `json:"notifyMentionsInMedia,omitempty"`
	AllowMentions         *bool   `json:"allowMentions,omitempty"`
}

// ThemeLanguagePreferences holds language settings, optional pass-through.
type ThemeLanguagePreferences struct {
	PreferredLanguage *string `json:"preferredLanguage,omitempty"`
}

// SettingsSnapshot is the consolidated result of one aggregation call.
// It is always a total merge of the three upstream sections.
type SettingsSnapshot struct {
	Feed          FeedPreferences          `json:"feed"`
	Profile       ProfilePreferences       `json:"profile"`
	ThemeLanguage ThemeLanguagePreferences `json:"themeLanguage"`
}
