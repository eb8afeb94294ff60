package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTTL_Duration(t *testing.T) {
	tests := []struct {
		ttl      string
		expected time.Duration
		ok       bool
	}{
		{"1h", time.Hour, true},
		{"10h", 10 * time.Hour, true},
		{"1m", time.Minute, true},
		{"10m", 10 * time.Minute, true},
		{"5s", 5 * time.Second, true},
		{"10s", 10 * time.Second, true},
		{"11h", 0, false},
		{"0h", 0, false},
		{"0m", 0, false},
		{"11m", 0, false},
		{"4s", 0, false}, // seconds start at 5
		{"1s", 0, false},
		{"11s", 0, false},
		{"5d", 0, false},
		{"abc", 0, false},
		{"", 0, false},
		{"s", 0, false},
		{"-1m", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.ttl, func(t *testing.T) {
			d, err := TTL(tt.ttl).Duration()
			if !tt.ok {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, d)
		})
	}
}

func TestDefaultTTL(t *testing.T) {
	d, err := DefaultTTL.Duration()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, d)
}
