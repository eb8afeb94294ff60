package limiter

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimiter_Allow(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	l := New(3, time.Second)
	l.nowFn = func() time.Time { return now }

	// first three within the window pass
	for i := 0; i < 3; i++ {
		allowed, retryAfter := l.Allow("10.0.0.1")
		assert.True(t, allowed, "request %d should be allowed", i+1)
		assert.Zero(t, retryAfter)
	}

	// fourth is denied with a positive retryAfter
	allowed, retryAfter := l.Allow("10.0.0.1")
	assert.False(t, allowed)
	assert.Positive(t, retryAfter)

	// after the window elapses the counter resets
	now = now.Add(1001 * time.Millisecond)
	allowed, retryAfter = l.Allow("10.0.0.1")
	assert.True(t, allowed)
	assert.Zero(t, retryAfter)
	assert.Equal(t, 1, l.entries["10.0.0.1"].count)
}

func TestLimiter_AllowPerIdentifier(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	l := New(1, time.Minute)
	l.nowFn = func() time.Time { return now }

	allowed, _ := l.Allow("10.0.0.1")
	assert.True(t, allowed)
	allowed, _ = l.Allow("10.0.0.1")
	assert.False(t, allowed, "same identifier over the limit")

	allowed, _ = l.Allow("10.0.0.2")
	assert.True(t, allowed, "different identifier has its own counter")
}

func TestLimiter_RetryAfter(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	l := New(1, 15*time.Minute)
	l.nowFn = func() time.Time { return now }

	allowed, _ := l.Allow("10.0.0.1")
	require.True(t, allowed)

	// one second into the window, 899 whole seconds remain
	now = now.Add(time.Second)
	allowed, retryAfter := l.Allow("10.0.0.1")
	assert.False(t, allowed)
	assert.Equal(t, 899, retryAfter)

	// near the end of the window retryAfter stays at least 1
	now = now.Add(14*time.Minute + 58*time.Second + 900*time.Millisecond)
	allowed, retryAfter = l.Allow("10.0.0.1")
	assert.False(t, allowed)
	assert.Equal(t, 1, retryAfter)
}

func TestLimiter_Defaults(t *testing.T) {
	l := New(0, 0)
	assert.Equal(t, 100, l.maxRequests)
	assert.Equal(t, 15*time.Minute, l.window)
}

func TestLimiter_Sweep(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	l := New(10, time.Minute)
	l.nowFn = func() time.Time { return now }

	l.Allow("10.0.0.1")
	l.Allow("10.0.0.2")
	require.Len(t, l.entries, 2)

	// advance past the window for the first entry only
	now = now.Add(30 * time.Second)
	l.Allow("10.0.0.3")
	now = now.Add(45 * time.Second)

	l.sweep()
	assert.Len(t, l.entries, 1)
	assert.Contains(t, l.entries, "10.0.0.3")
}

func TestLimiter_Concurrent(t *testing.T) {
	l := New(50, time.Minute)

	var allowed int64
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := l.Allow("10.0.0.1"); ok {
				atomic.AddInt64(&allowed, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(50), allowed, "exactly the limit should pass")
}
