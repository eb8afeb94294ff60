// Package cache provides the key-value cache port used by the aggregator.
// All backends are best-effort: store failures are logged and swallowed, a
// failed Save is a no-op and a failed Get is a miss. The cache can never
// fail a request.
package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

// Cache is the backend-agnostic port. Get returns nil on miss.
type Cache interface {
	Save(ctx context.Context, key string, value []byte, ttl TTL)
	Get(ctx context.Context, key string) []byte
}

// TTL is a bounded cache lifetime. Only a small enumerated set of magnitudes
// is valid: 1-10 hours, 1-10 minutes, 5-10 seconds. This keeps staleness
// policy to a few pre-approved values and prevents ad-hoc long-lived entries.
type TTL string

// DefaultTTL is short on purpose, upstream preferences can change and the
// aggregator has no invalidation signal.
const DefaultTTL = TTL("5s")

// Duration converts the TTL to a time.Duration, rejecting values outside
// the allowed set.
func (t TTL) Duration() (time.Duration, error) {
	s := string(t)
	if len(s) < 2 {
		return 0, fmt.Errorf("invalid ttl %q", s)
	}

	n, err := strconv.Atoi(s[:len(s)-1])
	if err != nil {
		return 0, fmt.Errorf("invalid ttl %q: %w", s, err)
	}

	switch s[len(s)-1] {
	case 'h':
		if n < 1 || n > 10 {
			return 0, fmt.Errorf("invalid ttl %q: hours must be 1-10", s)
		}
		return time.Duration(n) * time.Hour, nil
	case 'm':
		if n < 1 || n > 10 {
			return 0, fmt.Errorf("invalid ttl %q: minutes must be 1-10", s)
		}
		return time.Duration(n) * time.Minute, nil
	case 's':
		if n < 5 || n > 10 {
			return 0, fmt.Errorf("invalid ttl %q: seconds must be 5-10", s)
		}
		return time.Duration(n) * time.Second, nil
	}
	return 0, fmt.Errorf("invalid ttl %q: unit must be h, m or s", s)
}
