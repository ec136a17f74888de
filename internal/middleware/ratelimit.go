package middleware

import (
	"math"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	apierrors "github.com/avencia/company-cms-api/internal/errors"
)

// RateLimiter decides whether a request from the given client key may
// proceed, returning a retry hint when it may not. Implementations other than
// the in-memory one (e.g. a shared key-value store) can be injected for
// horizontally scaled deployments.
type RateLimiter interface {
	Allow(key string) (ok bool, retryAfter time.Duration)
}

// MemoryRateLimiter is a sliding-window counter over a process-local map.
// State does not survive restarts and is not shared across instances; this is
// the single-instance deployment default.
type MemoryRateLimiter struct {
	mu     sync.Mutex
	hits   map[string][]time.Time
	max    int
	window time.Duration
	now    func() time.Time
}

// NewMemoryRateLimiter creates a limiter allowing max requests per window.
func NewMemoryRateLimiter(max int, window time.Duration) *MemoryRateLimiter {
	return &MemoryRateLimiter{
		hits:   make(map[string][]time.Time),
		max:    max,
		window: window,
		now:    time.Now,
	}
}

// Allow prunes entries older than the window, then admits the request unless
// the ceiling is already reached.
func (l *MemoryRateLimiter) Allow(key string) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	kept := l.hits[key][:0]
	for _, t := range l.hits[key] {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}

	if len(kept) >= l.max {
		l.hits[key] = kept
		// The window slides; the oldest hit falling out frees a slot.
		return false, kept[0].Sub(cutoff)
	}

	l.hits[key] = append(kept, now)
	return true, 0
}

// RateLimit rejects requests over the limit with 429 and a Retry-After hint,
// keyed by client IP.
func RateLimit(limiter RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, retryAfter := limiter.Allow(c.ClientIP())
		if !ok {
			apierrors.TooManyRequests(c, int(math.Ceil(retryAfter.Seconds())))
			c.Abort()
			return
		}
		c.Next()
	}
}
