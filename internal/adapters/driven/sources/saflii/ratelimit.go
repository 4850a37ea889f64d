package saflii

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// HeaderRetryAfter is the retry-after header (seconds or HTTP date).
const HeaderRetryAfter = "Retry-After"

// DefaultRetryAfter applies when a 429 carries no usable Retry-After.
const DefaultRetryAfter = 30 * time.Second

// RateLimiter combines proactive throttling with the server's Retry-After.
//
// While the server has asked us to back off, Wait fails fast with a
// RateLimitError rather than blocking, so the caller can fall back.
type RateLimiter struct {
	mu           sync.Mutex
	bucket       *rate.Limiter
	blockedUntil time.Time
	now          func() time.Time
}

// NewRateLimiter creates a limiter allowing perSecond requests per second.
// A non-positive rate disables proactive throttling.
func NewRateLimiter(perSecond float64) *RateLimiter {
	limit := rate.Inf
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
	}
	return &RateLimiter{
		bucket: rate.NewLimiter(limit, 1),
		now:    time.Now,
	}
}

// Wait blocks until a request may be made.
func (r *RateLimiter) Wait(ctx context.Context) error {
	r.mu.Lock()
	blockedUntil := r.blockedUntil
	r.mu.Unlock()

	if r.now().Before(blockedUntil) {
		return &RateLimitError{RetryAt: blockedUntil}
	}
	return r.bucket.Wait(ctx)
}

// CheckRateLimit inspects a response. For HTTP 429 it records the back-off
// window and returns a RateLimitError; otherwise it returns nil.
func (r *RateLimiter) CheckRateLimit(resp *http.Response) error {
	if resp == nil || resp.StatusCode != http.StatusTooManyRequests {
		return nil
	}

	retryAt := r.now().Add(parseRetryAfter(resp.Header.Get(HeaderRetryAfter), r.now()))

	r.mu.Lock()
	r.blockedUntil = retryAt
	r.mu.Unlock()

	return &RateLimitError{RetryAt: retryAt}
}

// BlockedUntil returns the end of the current back-off window.
func (r *RateLimiter) BlockedUntil() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.blockedUntil
}

func parseRetryAfter(value string, now time.Time) time.Duration {
	if value == "" {
		return DefaultRetryAfter
	}
	if seconds, err := strconv.Atoi(value); err == nil && seconds >= 0 {
		return time.Duration(seconds) * time.Second
	}
	if at, err := http.ParseTime(value); err == nil && at.After(now) {
		return at.Sub(now)
	}
	return DefaultRetryAfter
}
