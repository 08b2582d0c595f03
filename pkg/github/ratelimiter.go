package github

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fumiya-kume/ghflow/pkg/clock"
)

// RateLimiter implements a token bucket rate limiter for GitHub API calls
type RateLimiter struct {
	clock      clock.Clock
	tokens     int
	maxTokens  int
	refillRate time.Duration
	lastRefill time.Time
	mutex      sync.Mutex
}

// NewRateLimiter creates a new rate limiter.
// maxRequests: maximum number of requests allowed
// window: time window for the rate limit (e.g., time.Hour for hourly limit)
func NewRateLimiter(maxRequests int, window time.Duration) *RateLimiter {
	return NewRateLimiterWithClock(maxRequests, window, clock.NewRealClock())
}

// NewRateLimiterWithClock creates a new rate limiter with a custom clock
func NewRateLimiterWithClock(maxRequests int, window time.Duration, clk clock.Clock) *RateLimiter {
	return &RateLimiter{
		clock:      clk,
		tokens:     maxRequests,
		maxTokens:  maxRequests,
		refillRate: window / time.Duration(maxRequests),
		lastRefill: clk.Now(),
	}
}

// Wait blocks until a token is available or the context is canceled
func (r *RateLimiter) Wait(ctx context.Context) error {
	for {
		if r.tryTakeToken() {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-r.clock.After(r.refillRate):
			// try again
		}
	}
}

// TryTakeToken attempts to take a token without blocking
func (r *RateLimiter) TryTakeToken() bool {
	return r.tryTakeToken()
}

// tryTakeToken attempts to take a token, refilling the bucket first
func (r *RateLimiter) tryTakeToken() bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.refillLocked()

	if r.tokens > 0 {
		r.tokens--
		return true
	}

	return false
}

// AvailableTokens returns the current number of available tokens
func (r *RateLimiter) AvailableTokens() int {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.refillLocked()
	return r.tokens
}

func (r *RateLimiter) refillLocked() {
	now := r.clock.Now()
	elapsed := r.clock.Since(r.lastRefill)
	tokensToAdd := int(elapsed / r.refillRate)

	if tokensToAdd > 0 {
		r.tokens += tokensToAdd
		if r.tokens > r.maxTokens {
			r.tokens = r.maxTokens
		}
		r.lastRefill = now
	}
}

// String returns a string representation of the rate limiter status
func (r *RateLimiter) String() string {
	return fmt.Sprintf("RateLimiter{tokens: %d/%d}", r.AvailableTokens(), r.maxTokens)
}
