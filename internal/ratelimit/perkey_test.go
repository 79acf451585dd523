package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPerKeyIsolation(t *testing.T) {
	t.Parallel()

	p := NewPerKey(PerKeyConfig{MaxTokens: 1, RefillRate: 0.001})
	defer p.Stop()

	assert.True(t, p.Allow("sub-a"))
	assert.False(t, p.Allow("sub-a"), "second request from same subscriber should be dropped")
	assert.True(t, p.Allow("sub-b"), "other subscribers keep their own bucket")
}

func TestPerKeyOnDrop(t *testing.T) {
	t.Parallel()

	var dropped []string
	p := NewPerKey(PerKeyConfig{
		MaxTokens:  1,
		RefillRate: 0.001,
		OnDrop:     func(key string) { dropped = append(dropped, key) },
	})
	defer p.Stop()

	p.Allow("sub-a")
	p.Allow("sub-a")
	p.Allow("sub-a")

	assert.Equal(t, []string{"sub-a", "sub-a"}, dropped)
}

func TestPerKeyCleanup(t *testing.T) {
	t.Parallel()

	p := NewPerKey(PerKeyConfig{
		MaxTokens:     1,
		RefillRate:    100, // refills almost instantly
		CleanupPeriod: 20 * time.Millisecond,
	})
	defer p.Stop()

	p.Allow("sub-a")
	p.Allow("sub-b")
	assert.Equal(t, 2, p.Len())

	// buckets refill to capacity and the loop reclaims them
	assert.Eventually(t, func() bool { return p.Len() == 0 },
		time.Second, 10*time.Millisecond)
}

func TestPerKeyStopIdempotent(t *testing.T) {
	t.Parallel()

	p := NewPerKey(PerKeyConfig{MaxTokens: 1, RefillRate: 1, CleanupPeriod: time.Minute})
	p.Stop()
	p.Stop()
}
