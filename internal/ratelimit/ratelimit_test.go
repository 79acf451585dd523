package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLimiterAllow(t *testing.T) {
	t.Parallel()

	l := New(3, 0.001)

	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow(), "request %d within burst should pass", i)
	}
	assert.False(t, l.Allow(), "request beyond burst should be rejected")
}

func TestLimiterRefill(t *testing.T) {
	t.Parallel()

	l := New(1, 50) // 50 tokens/sec, refills within a few ms

	assert.True(t, l.Allow())
	assert.False(t, l.Allow())

	time.Sleep(50 * time.Millisecond)
	assert.True(t, l.Allow(), "bucket should refill after waiting")
}

func TestLimiterAvailableCap(t *testing.T) {
	t.Parallel()

	l := New(2, 1000)
	time.Sleep(20 * time.Millisecond)

	assert.LessOrEqual(t, l.Available(), 2.0, "tokens must not exceed capacity")
	assert.True(t, l.IsFull())
}

func TestLimiterConcurrent(t *testing.T) {
	t.Parallel()

	l := New(10, 0.001)

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.Allow() {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, allowed, "exactly burst-many requests should pass")
}
