package openai

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// RateLimiter paces outbound model calls with a token bucket.
// It only paces requests; failed requests are never retried.
type RateLimiter struct {
	mu       sync.Mutex
	limiter  *rate.Limiter
	baseRate rate.Limit
}

// RateLimiterConfig holds configuration for the rate limiter
type RateLimiterConfig struct {
	MaxTokens  int     // burst capacity
	RefillRate float64 // tokens per second
}

// DefaultRateLimiterConfig allows bursts of 10 and a sustained 2 requests per second
func DefaultRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		MaxTokens:  10,
		RefillRate: 2,
	}
}

// NewRateLimiter creates a new rate limiter with a full bucket
func NewRateLimiter(config RateLimiterConfig) *RateLimiter {
	if config.MaxTokens <= 0 {
		config.MaxTokens = 1
	}
	if config.RefillRate <= 0 {
		config.RefillRate = 1
	}
	base := rate.Limit(config.RefillRate)
	return &RateLimiter{
		limiter:  rate.NewLimiter(base, config.MaxTokens),
		baseRate: base,
	}
}

// Wait blocks until a token is available or ctx is done
func (r *RateLimiter) Wait(ctx context.Context) error {
	return r.limiter.Wait(ctx)
}

// Backoff slows the refill rate after a 429. The rate never drops below an eighth of the base.
func (r *RateLimiter) Backoff(multiplier float64) {
	if multiplier <= 1 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	next := r.limiter.Limit() / rate.Limit(multiplier)
	if floor := r.baseRate / 8; next < floor {
		next = floor
	}
	r.limiter.SetLimit(next)
}

// Recover restores the configured refill rate
func (r *RateLimiter) Recover() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.limiter.SetLimit(r.baseRate)
}

// RefillRate returns the current refill rate in tokens per second
func (r *RateLimiter) RefillRate() float64 {
	return float64(r.limiter.Limit())
}
