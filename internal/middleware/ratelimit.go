package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/samber/lo"
)

const (
	windowDuration  = 1 * time.Minute
	cleanupInterval = 1 * time.Minute
)

// RateLimiter limits state-changing requests (form posts, lead submissions)
// with a sliding window per client IP and path, so that API bursts do not lock
// a visitor out of the form. Safe methods pass through.
type RateLimiter struct {
	limit       int                    // Maximum requests per window
	window      time.Duration          // Time window for rate limiting
	trustProxy  bool                   // Read the client IP from proxy headers
	requests    map[string][]time.Time // IP and path -> request timestamps
	mu          sync.Mutex
	cleanupDone chan struct{}
	closeOnce   sync.Once
}

// NewRateLimiter creates a rate limiter allowing limit posts per minute per IP.
//
// Close must be called on shutdown to stop the background cleanup goroutine.
func NewRateLimiter(limit int, trustProxy bool) (*RateLimiter, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("rate limit must be positive, got %d", limit)
	}

	rl := &RateLimiter{
		limit:       limit,
		window:      windowDuration,
		trustProxy:  trustProxy,
		requests:    make(map[string][]time.Time),
		cleanupDone: make(chan struct{}),
	}

	go rl.cleanupLoop()

	slog.Info("rate limiter initialized",
		"limit", limit,
		"window", windowDuration.String(),
		"trust_proxy", trustProxy,
	)

	return rl, nil
}

// Middleware wraps next with rate limiting of non-GET/HEAD requests.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet || r.Method == http.MethodHead || r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		ip := ExtractIP(r, rl.trustProxy)
		if ip == "" {
			slog.Warn("failed to extract IP from request", "path", r.URL.Path)
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}

		allowed, oldest := rl.allow(ip+" "+r.URL.Path, time.Now())
		if !allowed {
			retryAfter := int(rl.window.Seconds() - time.Since(oldest).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}

			slog.Debug("rate limit exceeded", "ip", ip, "path", r.URL.Path, "limit", rl.limit)

			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			http.Error(w, "Too many requests, please wait a moment and try again", http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// allow records a request under key at now. When the limit is reached it
// returns false and the oldest timestamp still in the window.
func (rl *RateLimiter) allow(key string, now time.Time) (bool, time.Time) {
	cutoff := now.Add(-rl.window)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	valid := filterValidTimestamps(rl.requests[key], cutoff)
	if len(valid) >= rl.limit {
		rl.requests[key] = valid
		return false, valid[0]
	}

	rl.requests[key] = append(valid, now)
	return true, time.Time{}
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup(time.Now())
		case <-rl.cleanupDone:
			return
		}
	}
}

// cleanup drops keys without requests in the current window.
func (rl *RateLimiter) cleanup(now time.Time) {
	cutoff := now.Add(-rl.window)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, timestamps := range rl.requests {
		if valid := filterValidTimestamps(timestamps, cutoff); len(valid) > 0 {
			rl.requests[key] = valid
			continue
		}
		delete(rl.requests, key)
	}
}

func filterValidTimestamps(timestamps []time.Time, cutoff time.Time) []time.Time {
	return lo.Filter(timestamps, func(ts time.Time, _ int) bool {
		return ts.After(cutoff)
	})
}

// Close stops the background cleanup goroutine. Safe to call multiple times.
func (rl *RateLimiter) Close() {
	rl.closeOnce.Do(func() {
		close(rl.cleanupDone)
	})
}
