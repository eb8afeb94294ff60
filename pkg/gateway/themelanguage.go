package gateway

import "context"

// theme-language upstream query
const themeLanguageQuery = `query GetLanguageContent {
  languagePreference {
    systemLanguage
    preferredLanguage
  }
}`

// LanguagePreference mirrors the theme-language upstream payload.
type LanguagePreference struct {
	SystemLanguage    *string `json:"systemLanguage"`
	PreferredLanguage *string `json:"preferredLanguage"`
}

// ThemeLanguageResult is the theme-language gateway response.
type ThemeLanguageResult struct {
	LanguagePreference *LanguagePreference `json:"languagePreference"`
}

// ThemeLanguage fetches language preferences from its upstream.
type ThemeLanguage struct {
	client *Client
}

// NewThemeLanguage creates the theme-language gateway
func NewThemeLanguage(cfg Config) *ThemeLanguage {
	return &ThemeLanguage{client: NewClient("theme-language", cfg)}
}

// Fetch returns the language preferences for the credential's user
func (g *ThemeLanguage) Fetch(ctx context.Context, credential string) (*ThemeLanguageResult, error) {
	res := &ThemeLanguageResult{}
	if err := g.client.query(ctx, credential, themeLanguageQuery, res); err != nil {
		return nil, err
	}
	return res, nil
}
