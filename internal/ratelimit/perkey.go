package ratelimit

import (
	"sync"
	"time"
)

// PerKeyConfig configures a PerKeyLimiter.
type PerKeyConfig struct {
	// MaxTokens is the burst capacity of each subscriber's bucket.
	MaxTokens float64
	// RefillRate is tokens added per second.
	RefillRate float64
	// CleanupPeriod is how often idle buckets are reclaimed.
	// Zero disables the cleanup loop.
	CleanupPeriod time.Duration
	// OnDrop is invoked with the key whenever a request is rejected.
	OnDrop func(key string)
}

// PerKeyLimiter maintains an independent token bucket per key, lazily
// created on first use. Buckets that have refilled to capacity are
// reclaimed by a background cleanup loop so the map stays bounded by
// the set of recently active subscribers.
type PerKeyLimiter struct {
	mu       sync.RWMutex
	limiters map[string]*Limiter
	cfg      PerKeyConfig
	stop     chan struct{}
	stopOnce sync.Once
}

// NewPerKey creates a per-key limiter and starts its cleanup loop when
// CleanupPeriod is positive. Call Stop to release the loop.
func NewPerKey(cfg PerKeyConfig) *PerKeyLimiter {
	p := &PerKeyLimiter{
		limiters: make(map[string]*Limiter),
		cfg:      cfg,
		stop:     make(chan struct{}),
	}
	if cfg.CleanupPeriod > 0 {
		go p.cleanupLoop()
	}
	return p
}

// get returns the limiter for key, creating it if needed.
func (p *PerKeyLimiter) get(key string) *Limiter {
	p.mu.RLock()
	l, ok := p.limiters[key]
	p.mu.RUnlock()
	if ok {
		return l
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if l, ok = p.limiters[key]; ok {
		return l
	}
	l = New(p.cfg.MaxTokens, p.cfg.RefillRate)
	p.limiters[key] = l
	return l
}

// Allow reports whether a request for the given key is allowed,
// consuming a token when it is.
func (p *PerKeyLimiter) Allow(key string) bool {
	ok := p.get(key).Allow()
	if !ok && p.cfg.OnDrop != nil {
		p.cfg.OnDrop(key)
	}
	return ok
}

// Len returns the number of tracked keys.
func (p *PerKeyLimiter) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.limiters)
}

// Stop terminates the cleanup loop. Idempotent.
func (p *PerKeyLimiter) Stop() {
	p.stopOnce.Do(func() { close(p.stop) })
}

func (p *PerKeyLimiter) cleanupLoop() {
	ticker := time.NewTicker(p.cfg.CleanupPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-p.stop:
			return
		case <-ticker.C:
			p.cleanup()
		}
	}
}

// cleanup removes buckets that are back at full capacity.
func (p *PerKeyLimiter) cleanup() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for key, l := range p.limiters {
		if l.IsFull() {
			delete(p.limiters, key)
		}
	}
}
