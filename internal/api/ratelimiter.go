package api

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const clientIdleTTL = 10 * time.Minute

type rateLimiter interface {
	Allow(client string) bool
}

// clientLimiter keeps one token bucket per client and forgets clients that
// have been idle for longer than idleTTL.
type clientLimiter struct {
	mu        sync.Mutex
	limit     rate.Limit
	burst     int
	idleTTL   time.Duration
	now       func() time.Time
	lastSweep time.Time
	clients   map[string]*clientBucket
}

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newTokenBucketLimiter(ratePerSecond float64, burst int) *clientLimiter {
	if ratePerSecond <= 0 {
		ratePerSecond = 1
	}
	if burst <= 0 {
		burst = 1
	}

	return &clientLimiter{
		limit:   rate.Limit(ratePerSecond),
		burst:   burst,
		idleTTL: clientIdleTTL,
		now:     time.Now,
		clients: make(map[string]*clientBucket),
	}
}

func (l *clientLimiter) Allow(client string) bool {
	if l == nil {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) > l.idleTTL {
		for key, bucket := range l.clients {
			if now.Sub(bucket.lastSeen) > l.idleTTL {
				delete(l.clients, key)
			}
		}
		l.lastSweep = now
	}

	bucket, ok := l.clients[client]
	if !ok {
		bucket = &clientBucket{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[client] = bucket
	}
	bucket.lastSeen = now

	return bucket.limiter.AllowN(now, 1)
}

func (l *clientLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

func rateLimitMiddleware(limiter rateLimiter, trustForwarded bool, next http.Handler) http.Handler {
	if limiter == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if limiter.Allow(clientKey(r, trustForwarded)) {
			next.ServeHTTP(w, r)
			return
		}
		writeError(w, http.StatusTooManyRequests, "Too many requests", "rate limit exceeded, please retry shortly")
	})
}

// clientKey identifies the caller by the connection's remote host. The first
// X-Forwarded-For hop is used instead only when trustForwarded is set, which
// is safe only behind a proxy that overwrites the header.
func clientKey(r *http.Request, trustForwarded bool) string {
	if trustForwarded {
		if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
			first, _, _ := strings.Cut(forwarded, ",")
			if first = strings.TrimSpace(first); first != "" {
				return first
			}
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
