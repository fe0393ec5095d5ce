package main

import (
	"net"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimiter tracks per-client request timestamps within a sliding window.
// One mutex guards the whole prune-check-append cycle so concurrent requests
// cannot admit more than the limit for any client.
type RateLimiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	entries map[string][]time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		limit:   limit,
		window:  window,
		entries: make(map[string][]time.Time),
	}
}

// Allow prunes timestamps strictly older than the window, then admits the
// request if the client is under the limit, recording now on admission.
// Denied requests are not recorded.
func (rl *RateLimiter) Allow(key string, now time.Time) bool {
	if rl.limit <= 0 {
		return true
	}
	cutoff := now.Add(-rl.window)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	bucket := rl.entries[key]
	drop := 0
	for drop < len(bucket) && bucket[drop].Before(cutoff) {
		drop++
	}
	bucket = bucket[drop:]

	if len(bucket) >= rl.limit {
		rl.entries[key] = bucket
		return false
	}

	rl.entries[key] = append(bucket, now)
	return true
}

// EvictIdle removes clients whose recorded timestamps have all aged out of
// the window, so the map does not grow with every client ever seen.
func (rl *RateLimiter) EvictIdle(now time.Time) int {
	cutoff := now.Add(-rl.window)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	evicted := 0
	for key, bucket := range rl.entries {
		if len(bucket) == 0 || bucket[len(bucket)-1].Before(cutoff) {
			delete(rl.entries, key)
			evicted++
		}
	}
	return evicted
}

type RateLimiterStats struct {
	Keys int `json:"keys"`
}

func (rl *RateLimiter) Stats() RateLimiterStats {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return RateLimiterStats{Keys: len(rl.entries)}
}

// clientIdentifier derives the rate limit key from transport metadata: the
// first X-Forwarded-For token when present, otherwise the peer host, with a
// literal fallback when neither is usable.
func clientIdentifier(c *gin.Context) string {
	if forwarded := c.GetHeader("X-Forwarded-For"); forwarded != "" {
		if first := strings.TrimSpace(strings.Split(forwarded, ",")[0]); first != "" {
			return first
		}
	}
	remote := strings.TrimSpace(c.Request.RemoteAddr)
	if host, _, err := net.SplitHostPort(remote); err == nil && host != "" {
		return host
	}
	if remote != "" {
		return remote
	}
	return "unknown-client"
}
