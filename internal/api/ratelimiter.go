package api

import (
	"net"
	"net/http"
	"sync"

	"golang.org/x/time/rate"
)

// maxTrackedClients caps the number of per-client buckets kept in memory.
const maxTrackedClients = 4096

// rateLimiter decides whether a request from the given client may proceed.
type rateLimiter interface {
	Allow(client string) bool
}

// clientLimiter keeps one token bucket per client address.
type clientLimiter struct {
	mu      sync.Mutex
	limit   rate.Limit
	burst   int
	buckets map[string]*rate.Limiter
}

func newTokenBucketLimiter(ratePerSecond float64, burst int) rateLimiter {
	if ratePerSecond <= 0 {
		ratePerSecond = 1
	}
	if burst <= 0 {
		burst = 1
	}

	return &clientLimiter{
		limit:   rate.Limit(ratePerSecond),
		burst:   burst,
		buckets: make(map[string]*rate.Limiter),
	}
}

func (l *clientLimiter) Allow(client string) bool {
	if l == nil {
		return true
	}

	l.mu.Lock()
	bucket, ok := l.buckets[client]
	if !ok {
		if len(l.buckets) >= maxTrackedClients {
			l.buckets = make(map[string]*rate.Limiter)
		}
		bucket = rate.NewLimiter(l.limit, l.burst)
		l.buckets[client] = bucket
	}
	l.mu.Unlock()

	return bucket.Allow()
}

func rateLimitMiddleware(limiter rateLimiter, next http.Handler) http.Handler {
	if limiter == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if limiter.Allow(clientKey(r)) {
			next.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Retry-After", "1")
		writeError(w, http.StatusTooManyRequests, "Too many requests", "planning rate limit exceeded, please retry shortly")
	})
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
