package cache

import (
	"context"

	"github.com/go-pkgz/lgr"
	"github.com/jellydator/ttlcache/v3"
)

// Memory is an in-process cache backend, used when no redis is configured.
// Entries expire by their per-write TTL.
type Memory struct {
	cache *ttlcache.Cache[string, []byte]
}

// NewMemory creates a memory cache and starts its expiry loop. Reads must
// not extend an entry's lifetime, expiry is set once at write time.
func NewMemory() *Memory {
	c := ttlcache.New[string, []byte](ttlcache.WithDisableTouchOnHit[string, []byte]())
	go c.Start()
	return &Memory{cache: c}
}

// Save stores the value under key with the given TTL
func (m *Memory) Save(_ context.Context, key string, value []byte, ttl TTL) {
	d, err := ttl.Duration()
	if err != nil {
		lgr.Printf("[WARN] cache save skipped for %s: %v", key, err)
		return
	}
	m.cache.Set(key, value, d)
}

// Get returns the value under key or nil when absent or expired
func (m *Memory) Get(_ context.Context, key string) []byte {
	item := m.cache.Get(key)
	if item == nil {
		return nil
	}
	return item.Value()
}

// Close stops the expiry loop
func (m *Memory) Close() error {
	m.cache.Stop()
	return nil
}
