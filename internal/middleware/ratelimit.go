package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimiter applies a fixed-window request limit per key.
type RateLimiter struct {
	limit     int
	window    time.Duration
	mu        sync.Mutex
	items     map[string]*windowEntry
	lastSweep time.Time
}

type windowEntry struct {
	windowStart time.Time
	count       int
}

// NewRateLimiter builds a limiter allowing limit requests per window
// per key. A non-positive limit disables limiting.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:  limit,
		window: window,
		items:  make(map[string]*windowEntry),
	}
}

// Allow reports whether a request under key fits in the current window.
func (r *RateLimiter) Allow(key string) bool {
	if r == nil || r.limit <= 0 {
		return true
	}
	if key == "" {
		return false
	}

	now := time.Now().UTC()
	r.mu.Lock()
	defer r.mu.Unlock()

	// Drop stale windows at most once per window so the map does not
	// grow with one entry per client IP ever seen.
	if now.Sub(r.lastSweep) > r.window {
		for k, e := range r.items {
			if now.Sub(e.windowStart) > r.window {
				delete(r.items, k)
			}
		}
		r.lastSweep = now
	}

	entry := r.items[key]
	if entry == nil || now.Sub(entry.windowStart) > r.window {
		entry = &windowEntry{windowStart: now}
		r.items[key] = entry
	}

	if entry.count >= r.limit {
		return false
	}

	entry.count++
	return true
}

// RateLimit rejects requests over the per-client-IP limit with 429.
func RateLimit(limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
