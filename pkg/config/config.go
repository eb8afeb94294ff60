package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/umputun/prefhub/pkg/cache"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server struct {
		Listen        string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
		Timeout       time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
		SlowThreshold time.Duration `yaml:"slow_threshold" json:"slow_threshold" jsonschema:"default=1s,description=Elapsed time above which a request is logged as slow"`
	} `yaml:"server" json:"server" jsonschema:"description=Server configuration"`

	Upstreams struct {
		Feed          UpstreamConfig `yaml:"feed" json:"feed" jsonschema:"description=Feed preferences upstream"`
		Profile       UpstreamConfig `yaml:"profile" json:"profile" jsonschema:"description=Profile preferences upstream"`
		ThemeLanguage UpstreamConfig `yaml:"theme_language" json:"theme_language" jsonschema:"description=Theme and language preferences upstream"`
	} `yaml:"upstreams" json:"upstreams" jsonschema:"description=Upstream preference services"`

	Cache struct {
		RedisURL  string `yaml:"redis_url" json:"redis_url" jsonschema:"description=Redis URL; in-memory cache is used when empty"`
		TTL       string `yaml:"ttl" json:"ttl" jsonschema:"default=5s,description=Snapshot cache TTL (1-10h 1-10m or 5-10s)"`
		KeyPrefix string `yaml:"key_prefix" json:"key_prefix" jsonschema:"default=user-settings:,description=Cache key prefix"`
	} `yaml:"cache" json:"cache" jsonschema:"description=Cache configuration"`

	RateLimit struct {
		MaxRequests   int           `yaml:"max_requests" json:"max_requests" jsonschema:"default=100,description=Requests allowed per window per client"`
		Window        time.Duration `yaml:"window" json:"window" jsonschema:"default=15m,description=Rate limit window"`
		SweepInterval time.Duration `yaml:"sweep_interval" json:"sweep_interval" jsonschema:"description=Interval for sweeping stale limiter entries (defaults to the window)"`
	} `yaml:"rate_limit" json:"rate_limit" jsonschema:"description=Rate limiting configuration"`

	Aggregator struct {
		Singleflight bool `yaml:"singleflight" json:"singleflight" jsonschema:"default=false,description=Share one fan-out between concurrent cache misses for the same user"`
	} `yaml:"aggregator" json:"aggregator" jsonschema:"description=Aggregation policy"`
}

// UpstreamConfig holds settings for one upstream preference service
type UpstreamConfig struct {
	Endpoint      string        `yaml:"endpoint" json:"endpoint" jsonschema:"required,description=GraphQL endpoint URL"`
	Timeout       time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=10s,description=Per-call timeout"`
	RetryAttempts int           `yaml:"retry_attempts" json:"retry_attempts" jsonschema:"default=1,description=Call attempts; 1 means fail-fast"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.setDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.Server.Listen == "" {
		c.Server.Listen = ":8080"
	}
	if c.Server.Timeout == 0 {
		c.Server.Timeout = 30 * time.Second
	}
	if c.Server.SlowThreshold == 0 {
		c.Server.SlowThreshold = time.Second
	}

	for _, u := range []*UpstreamConfig{&c.Upstreams.Feed, &c.Upstreams.Profile, &c.Upstreams.ThemeLanguage} {
		if u.Timeout == 0 {
			u.Timeout = 10 * time.Second
		}
		if u.RetryAttempts == 0 {
			u.RetryAttempts = 1
		}
	}

	if c.Cache.TTL == "" {
		c.Cache.TTL = string(cache.DefaultTTL)
	}
	if c.Cache.KeyPrefix == "" {
		c.Cache.KeyPrefix = "user-settings:"
	}

	if c.RateLimit.MaxRequests == 0 {
		c.RateLimit.MaxRequests = 100
	}
	if c.RateLimit.Window == 0 {
		c.RateLimit.Window = 15 * time.Minute
	}
	if c.RateLimit.SweepInterval == 0 {
		c.RateLimit.SweepInterval = c.RateLimit.Window
	}
}

func (c *Config) validate() error {
	if c.Upstreams.Feed.Endpoint == "" {
		return fmt.Errorf("upstreams.feed.endpoint is required")
	}
	if c.Upstreams.Profile.Endpoint == "" {
		return fmt.Errorf("upstreams.profile.endpoint is required")
	}
	if c.Upstreams.ThemeLanguage.Endpoint == "" {
		return fmt.Errorf("upstreams.theme_language.endpoint is required")
	}
	if _, err := cache.TTL(c.Cache.TTL).Duration(); err != nil {
		return fmt.Errorf("cache.ttl: %w", err)
	}
	return nil
}

// GetServerConfig returns listen address, timeout and slow request threshold
func (c *Config) GetServerConfig() (listen string, timeout, slowThreshold time.Duration) {
	return c.Server.Listen, c.Server.Timeout, c.Server.SlowThreshold
}
