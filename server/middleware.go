package server

import (
	"log"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/umputun/prefhub/pkg/errs"
)

// rateLimitMiddleware denies requests over the per-client limit before the
// operation executes. Denials are classified errors with retryAfter set.
func (s *Server) rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := requestIP(r)
		allowed, retryAfter := s.limiter.Allow(id)
		if !allowed {
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			s.renderClassified(w, r, errs.NewRateLimit(retryAfter))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// authMiddleware rejects requests without a credential. Only presence is
// checked here, shape validation happens in the handler.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Access-Token") == "" {
			s.renderClassified(w, r, errs.NewUnauthorized("authentication token is required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// slowRequestMiddleware logs a warning for requests slower than the
// configured threshold. Observability only, the response is never changed.
func (s *Server) slowRequestMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		st := time.Now()
		next.ServeHTTP(w, r)
		_, _, threshold := s.config.GetServerConfig()
		if elapsed := time.Since(st); elapsed > threshold {
			log.Printf("[WARN] slow request: %s %s took %v", r.Method, r.URL.Path, elapsed)
		}
	})
}

// requestIP extracts the client identifier from the request, "unknown" when
// the remote address can't be parsed
func requestIP(r *http.Request) string {
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil || host == "" {
		return "unknown"
	}
	return host
}
