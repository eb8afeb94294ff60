package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/umputun/prefhub/pkg/aggregator"
	"github.com/umputun/prefhub/pkg/cache"
	"github.com/umputun/prefhub/pkg/config"
	"github.com/umputun/prefhub/pkg/errs"
	"github.com/umputun/prefhub/pkg/gateway"
	"github.com/umputun/prefhub/pkg/limiter"
	"github.com/umputun/prefhub/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"f" long:"config" env:"CONFIG" default:"prefhub.yml" description:"config file"`
	Listen string `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides config"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	setupLog(opts.Debug)

	log.Printf("[INFO] starting prefhub version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts)
	cancel()

	if err != nil {
		log.Printf("[ERROR] server failed: %v", err)
		os.Exit(1)
	}

	log.Print("[INFO] shutdown complete")
}

// run loads the config, wires the components and runs the server until the
// context is canceled
func run(ctx context.Context, opts Opts) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}
	if cfg.Cache.RedisURL != "" {
		setupLog(opts.Debug, cfg.Cache.RedisURL) // keep redis credentials out of logs
	}

	settingsCache := makeCache(cfg)

	feedGw := gateway.NewFeed(gateway.Config{
		Endpoint:      cfg.Upstreams.Feed.Endpoint,
		Timeout:       cfg.Upstreams.Feed.Timeout,
		RetryAttempts: cfg.Upstreams.Feed.RetryAttempts,
	})
	profileGw := gateway.NewProfile(gateway.Config{
		Endpoint:      cfg.Upstreams.Profile.Endpoint,
		Timeout:       cfg.Upstreams.Profile.Timeout,
		RetryAttempts: cfg.Upstreams.Profile.RetryAttempts,
	})
	themeGw := gateway.NewThemeLanguage(gateway.Config{
		Endpoint:      cfg.Upstreams.ThemeLanguage.Endpoint,
		Timeout:       cfg.Upstreams.ThemeLanguage.Timeout,
		RetryAttempts: cfg.Upstreams.ThemeLanguage.RetryAttempts,
	})

	settings := aggregator.New(feedGw, profileGw, themeGw, settingsCache, aggregator.Config{
		TTL:          cache.TTL(cfg.Cache.TTL),
		KeyPrefix:    cfg.Cache.KeyPrefix,
		Singleflight: cfg.Aggregator.Singleflight,
	})

	lim := limiter.New(cfg.RateLimit.MaxRequests, cfg.RateLimit.Window)
	go lim.Run(ctx, cfg.RateLimit.SweepInterval)

	classifier := errs.NewClassifier(opts.Debug)

	srv := server.New(cfg, settings, lim, classifier, revision, opts.Debug)
	return srv.Run(ctx)
}

// makeCache picks the cache backend, redis when configured and reachable,
// in-memory otherwise
func makeCache(cfg *config.Config) aggregator.Cache {
	if cfg.Cache.RedisURL == "" {
		log.Printf("[INFO] using in-memory cache")
		return cache.NewMemory()
	}
	redisCache, err := cache.NewRedis(cfg.Cache.RedisURL)
	if err != nil {
		log.Printf("[WARN] redis unavailable, falling back to in-memory cache: %v", err)
		return cache.NewMemory()
	}
	log.Printf("[INFO] using redis cache")
	return redisCache
}

func setupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
