// Package limiter implements a per-identifier sliding-window rate limiter.
// The window is reset-based rather than continuously sliding: once the stored
// window start falls out of the current window the counter starts over. A
// burst at the window boundary can therefore admit up to twice the limit in
// a short span, this matches the intended admission policy.
package limiter

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
)

type window struct {
	count       int
	windowStart time.Time
}

// Limiter counts requests per identifier within a fixed window. Safe for
// concurrent use. Construct with New, no global state.
type Limiter struct {
	maxRequests int
	window      time.Duration

	mu      sync.Mutex
	entries map[string]*window

	nowFn func() time.Time // replaceable in tests
}

// New creates a limiter allowing maxRequests per window for each identifier.
// Zero or negative arguments fall back to 100 requests per 15 minutes.
func New(maxRequests int, windowDur time.Duration) *Limiter {
	if maxRequests <= 0 {
		maxRequests = 100
	}
	if windowDur <= 0 {
		windowDur = 15 * time.Minute
	}
	return &Limiter{
		maxRequests: maxRequests,
		window:      windowDur,
		entries:     map[string]*window{},
		nowFn:       time.Now,
	}
}

// Allow reports whether a request from the identifier may proceed. When
// denied, retryAfter holds the whole seconds until the window resets, always
// at least 1 for a denial.
func (l *Limiter) Allow(identifier string) (allowed bool, retryAfter int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.nowFn()

	e, ok := l.entries[identifier]
	if !ok || e.windowStart.Before(now.Add(-l.window)) {
		l.entries[identifier] = &window{count: 1, windowStart: now}
		return true, 0
	}

	if e.count >= l.maxRequests {
		secs := int(math.Ceil(e.windowStart.Add(l.window).Sub(now).Seconds()))
		if secs < 1 {
			secs = 1
		}
		return false, secs
	}

	e.count++
	return true, 0
}

// Run sweeps stale entries periodically until the context is canceled,
// bounding memory for long-running processes. Entries idle for a full window
// can no longer deny anything and are safe to drop.
func (l *Limiter) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = l.window
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.sweep()
		}
	}
}

func (l *Limiter) sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.nowFn().Add(-l.window)
	removed := 0
	for id, e := range l.entries {
		if e.windowStart.Before(cutoff) {
			delete(l.entries, id)
			removed++
		}
	}
	if removed > 0 {
		lgr.Printf("[DEBUG] rate limiter swept %d stale entries, %d remaining", removed, len(l.entries))
	}
}
