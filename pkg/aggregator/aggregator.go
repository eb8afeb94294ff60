// Package aggregator orchestrates the user-settings aggregation: cache-aside
// read, parallel fan-out to the three preference gateways, consolidation into
// a single snapshot and best-effort cache population.
package aggregator

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/umputun/prefhub/pkg/cache"
	"github.com/umputun/prefhub/pkg/domain"
	"github.com/umputun/prefhub/pkg/gateway"
)

//go:generate moq -out mocks/feed_gateway.go -pkg mocks -skip-ensure -fmt goimports . FeedGateway
//go:generate moq -out mocks/profile_gateway.go -pkg mocks -skip-ensure -fmt goimports . ProfileGateway
//go:generate moq -out mocks/theme_language_gateway.go -pkg mocks -skip-ensure -fmt goimports . ThemeLanguageGateway
//go:generate moq -out mocks/cache.go -pkg mocks -skip-ensure -fmt goimports . Cache

// FeedGateway fetches feed preferences from its upstream
type FeedGateway interface {
	Fetch(ctx context.Context, credential string) (*gateway.FeedResult, error)
}

// ProfileGateway fetches profile visibility preferences from its upstream
type ProfileGateway interface {
	Fetch(ctx context.Context, credential string) (*gateway.ProfileResult, error)
}

// ThemeLanguageGateway fetches language preferences from its upstream
type ThemeLanguageGateway interface {
	Fetch(ctx context.Context, credential string) (*gateway.ThemeLanguageResult, error)
}

// Cache is the best-effort key-value store for consolidated snapshots
type Cache interface {
	Save(ctx context.Context, key string, value []byte, ttl cache.TTL)
	Get(ctx context.Context, key string) []byte
}

// defaultKeyPrefix prefixes cache keys derived from the caller's credential
const defaultKeyPrefix = "user-settings:"

// Config holds aggregation policy.
type Config struct {
	TTL          cache.TTL // cache lifetime for snapshots, default 5s
	KeyPrefix    string    // cache key prefix, default "user-settings:"
	Singleflight bool      // dedup concurrent misses per key, off by default
}

// Service aggregates user settings from the three upstream gateways.
type Service struct {
	feed          FeedGateway
	profile       ProfileGateway
	themeLanguage ThemeLanguageGateway
	cache         Cache
	ttl           cache.TTL
	keyPrefix     string
	group         *singleflight.Group
}

// New creates the aggregation service
func New(feed FeedGateway, profile ProfileGateway, themeLanguage ThemeLanguageGateway, c Cache, cfg Config) *Service {
	if cfg.TTL == "" {
		cfg.TTL = cache.DefaultTTL
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = defaultKeyPrefix
	}
	s := &Service{
		feed:          feed,
		profile:       profile,
		themeLanguage: themeLanguage,
		cache:         c,
		ttl:           cfg.TTL,
		keyPrefix:     cfg.KeyPrefix,
	}
	if cfg.Singleflight {
		s.group = &singleflight.Group{}
	}
	return s
}

// GetSettings returns the consolidated settings for the credential's user.
// Cache hits are returned as-is with no fan-out. On a miss all three gateways
// are called concurrently with the same credential; any gateway failure fails
// the whole call and nothing is cached. Partial aggregation is not a success.
func (s *Service) GetSettings(ctx context.Context, credential string) (*domain.SettingsSnapshot, error) {
	key := s.key(credential)

	if data := s.cache.Get(ctx, key); data != nil {
		var snap domain.SettingsSnapshot
		if err := json.Unmarshal(data, &snap); err == nil {
			return &snap, nil
		}
		lgr.Printf("[WARN] corrupted cache entry for %s, refetching", key)
	}

	if s.group != nil {
		v, err, _ := s.group.Do(key, func() (any, error) {
			return s.fetchAndCache(ctx, key, credential)
		})
		if err != nil {
			return nil, err
		}
		return v.(*domain.SettingsSnapshot), nil
	}

	return s.fetchAndCache(ctx, key, credential)
}

// key derives the cache key from the credential, identical credentials always
// produce identical keys
func (s *Service) key(credential string) string {
	return s.keyPrefix + credential
}

func (s *Service) fetchAndCache(ctx context.Context, key, credential string) (*domain.SettingsSnapshot, error) {
	var feedRes *gateway.FeedResult
	var profileRes *gateway.ProfileResult
	var themeRes *gateway.ThemeLanguageResult

	// plain errgroup, not WithContext: a failed call must not cancel its
	// siblings, they run to completion and their results are discarded
	var g errgroup.Group
	g.Go(func() (err error) {
		feedRes, err = s.feed.Fetch(ctx, credential)
		return err
	})
	g.Go(func() (err error) {
		profileRes, err = s.profile.Fetch(ctx, credential)
		return err
	})
	g.Go(func() (err error) {
		themeRes, err = s.themeLanguage.Fetch(ctx, credential)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetch user settings: %w", err)
	}

	snap := consolidate(feedRes, profileRes, themeRes)

	if data, err := json.Marshal(snap); err == nil {
		s.cache.Save(ctx, key, data, s.ttl) // best-effort, never fails the request
	}

	return snap, nil
}

// consolidate merges the three partial results into a total snapshot. Feed
// fields are defaulted when missing, profile and theme-language fields pass
// through verbatim.
func consolidate(feed *gateway.FeedResult, profile *gateway.ProfileResult, theme *gateway.ThemeLanguageResult) *domain.SettingsSnapshot {
	snap := &domain.SettingsSnapshot{
		Feed: domain.FeedPreferences{AllowMentions: false, FeedViewPreference: "DEFAULT"},
	}

	if feed != nil && feed.UserSettings != nil {
		if feed.UserSettings.AllowMentions != nil {
			snap.Feed.AllowMentions = *feed.UserSettings.AllowMentions
		}
		if v := feed.UserSettings.FeedViewPreference; v != nil && *v != "" {
			snap.Feed.FeedViewPreference = *v
		}
	}

	if profile != nil && profile.User != nil && profile.User.UserVisibilitySettings != nil {
		vs := profile.User.UserVisibilitySettings
		snap.Profile = domain.ProfilePreferences{
			ProfileViewMode:       vs.ProfileViewMode,
			ProfilePublic:         vs.ProfilePublic,
			ProfilePictureScope:   vs.ProfilePictureScope,
			FollowingVisibility:   vs.FollowingVisibility,
			NotifyMentionsInMedia: vs.NotifyMentionsInMedia,
			AllowMentions:         vs.AllowMentions,
		}
	}

	if theme != nil && theme.LanguagePreference != nil {
		snap.ThemeLanguage.PreferredLanguage = theme.LanguagePreference.PreferredLanguage
	}

	return snap
}
