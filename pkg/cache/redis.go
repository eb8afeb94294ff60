package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/redis/go-redis/v9"
)

// Redis is a cache backend on top of a redis server.
type Redis struct {
	client *redis.Client
}

// NewRedis creates a redis cache from a URL like redis://[:password@]host:port/db
// and verifies connectivity with a ping.
func NewRedis(redisURL string) (*Redis, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	opts.PoolSize = 10
	opts.MinIdleConns = 2
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	return &Redis{client: client}, nil
}

// Save stores the value under key with the given TTL, best-effort
func (r *Redis) Save(ctx context.Context, key string, value []byte, ttl TTL) {
	d, err := ttl.Duration()
	if err != nil {
		lgr.Printf("[WARN] cache save skipped for %s: %v", key, err)
		return
	}
	if err := r.client.Set(ctx, key, value, d).Err(); err != nil {
		lgr.Printf("[WARN] cache save failed for %s: %v", key, err)
	}
}

// Get returns the value under key or nil on miss or backend failure
func (r *Redis) Get(ctx context.Context, key string) []byte {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		lgr.Printf("[WARN] cache get failed for %s: %v", key, err)
		return nil
	}
	return data
}

// Close releases the underlying client
func (r *Redis) Close() error { return r.client.Close() }
