package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/umputun/prefhub/pkg/domain"
	"github.com/umputun/prefhub/pkg/errs"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/settings.go -pkg mocks -skip-ensure -fmt goimports . Settings
//go:generate moq -out mocks/rate_limiter.go -pkg mocks -skip-ensure -fmt goimports . RateLimiter

// Server represents HTTP server instance
type Server struct {
	config     ConfigProvider
	settings   Settings
	limiter    RateLimiter
	classifier *errs.Classifier
	version    string
	debug      bool

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// Settings interface for the aggregation operation
type Settings interface {
	GetSettings(ctx context.Context, credential string) (*domain.SettingsSnapshot, error)
}

// RateLimiter interface for pre-execution admission checks
type RateLimiter interface {
	Allow(identifier string) (allowed bool, retryAfter int)
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout, slowThreshold time.Duration)
}

// New initializes a new server instance
func New(cfg ConfigProvider, settings Settings, limiter RateLimiter, classifier *errs.Classifier, version string, debug bool) *Server {
	s := &Server{
		config:     cfg,
		settings:   settings,
		limiter:    limiter,
		classifier: classifier,
		version:    version,
		debug:      debug,
		router:     routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout, _ := s.config.GetServerConfig()
	log.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:         listen,
		Handler:      s.router,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		log.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("prefhub", "umputun", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(1000))
	s.router.Use(rest.SizeLimit(64 * 1024)) // inbound requests carry no payload

	// the request pipeline: rate limit first, slow-op timing around everything else
	s.router.Use(s.rateLimitMiddleware)
	s.router.Use(s.slowRequestMiddleware)
}

// setupRoutes configures server routes
func (s *Server) setupRoutes() {
	s.router.Mount("/api/v1").Route(func(api *routegroup.Bundle) {
		api.HandleFunc("GET /status", s.statusHandler)
		api.With(s.authMiddleware).HandleFunc("GET /settings", s.settingsHandler)
	})
}
