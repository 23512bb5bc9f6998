package provider

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// RateLimiter implements a token bucket limiter for the quote API. The
// bucket starts full so a single dashboard fan-out (one token per ticker)
// never throttles itself; sustained traffic refills one token per interval.
type RateLimiter struct {
	mu             sync.Mutex
	clock          clockwork.Clock
	tokens         int
	maxTokens      int
	refillInterval time.Duration
	lastRefill     time.Time
}

// NewRateLimiter creates a limiter with maxTokens burst capacity refilling
// one token every refillInterval.
func NewRateLimiter(maxTokens int, refillInterval time.Duration) *RateLimiter {
	return NewRateLimiterWith(clockwork.NewRealClock(), maxTokens, refillInterval)
}

// NewRateLimiterWith injects the clock for deterministic tests.
func NewRateLimiterWith(clock clockwork.Clock, maxTokens int, refillInterval time.Duration) *RateLimiter {
	return &RateLimiter{
		clock:          clock,
		tokens:         maxTokens,
		maxTokens:      maxTokens,
		refillInterval: refillInterval,
		lastRefill:     clock.Now(),
	}
}

// Wait blocks until a token is available or ctx is cancelled.
func (r *RateLimiter) Wait(ctx context.Context) error {
	for {
		r.mu.Lock()
		r.refill()
		if r.tokens > 0 {
			r.tokens--
			r.mu.Unlock()
			return nil
		}
		r.mu.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-r.clock.After(r.refillInterval):
		}
	}
}

func (r *RateLimiter) refill() {
	now := r.clock.Now()
	elapsed := now.Sub(r.lastRefill)
	newTokens := int(elapsed / r.refillInterval)
	if newTokens > 0 {
		r.tokens += newTokens
		if r.tokens > r.maxTokens {
			r.tokens = r.maxTokens
		}
		r.lastRefill = r.lastRefill.Add(time.Duration(newTokens) * r.refillInterval)
	}
}
