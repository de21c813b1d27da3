package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type staticLimiter struct {
	allow bool
}

func (s *staticLimiter) Allow(string) bool {
	return s.allow
}

func TestRateLimitMiddlewareBlocksWhenLimiterDenies(t *testing.T) {
	middleware := rateLimitMiddleware(&staticLimiter{allow: false}, false, http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		t.Fatalf("handler should not execute when rate limited")
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	middleware.ServeHTTP(rec, req)

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
}

func TestRateLimitMiddlewarePassesWhenLimiterAllows(t *testing.T) {
	var called bool
	middleware := rateLimitMiddleware(&staticLimiter{allow: true}, false, http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	middleware.ServeHTTP(rec, req)

	if !called {
		t.Fatalf("expected handler to execute when limiter allows")
	}
}

func TestNewTokenBucketLimiterUsesDefaults(t *testing.T) {
	limiter := newTokenBucketLimiter(0, 0)
	if limiter == nil {
		t.Fatalf("expected limiter instance")
	}
	if !limiter.Allow("client") {
		t.Fatalf("expected first request to be allowed")
	}
	if limiter.Allow("client") {
		t.Fatalf("expected burst of one to block the second request")
	}
}

func TestClientLimiterIsolatesClients(t *testing.T) {
	limiter := newTokenBucketLimiter(1, 1)

	if !limiter.Allow("a") {
		t.Fatalf("expected first request from a to pass")
	}
	if limiter.Allow("a") {
		t.Fatalf("expected second request from a to be limited")
	}
	if !limiter.Allow("b") {
		t.Fatalf("expected b to have its own bucket")
	}
}

func TestClientLimiterEvictsIdleClients(t *testing.T) {
	now := time.Date(2024, 11, 1, 12, 0, 0, 0, time.UTC)
	limiter := newTokenBucketLimiter(1, 1)
	limiter.now = func() time.Time { return now }

	limiter.Allow("a")
	limiter.Allow("b")
	if got := limiter.size(); got != 2 {
		t.Fatalf("expected 2 tracked clients, got %d", got)
	}

	now = now.Add(clientIdleTTL + time.Second)
	limiter.Allow("c")
	if got := limiter.size(); got != 1 {
		t.Fatalf("expected idle clients to be evicted, got %d tracked", got)
	}
}

func TestClientKey(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.10:5555"
	req.Header.Set("X-Forwarded-For", " 203.0.113.7 , 10.0.0.1")

	if got := clientKey(req, false); got != "192.0.2.10" {
		t.Fatalf("expected remote host when proxy headers are untrusted, got %s", got)
	}
	if got := clientKey(req, true); got != "203.0.113.7" {
		t.Fatalf("expected first forwarded hop, got %s", got)
	}

	req.Header.Set("X-Forwarded-For", " , ")
	if got := clientKey(req, true); got != "192.0.2.10" {
		t.Fatalf("expected remote host for empty forwarded hop, got %s", got)
	}
}

func TestRateLimitIgnoresSpoofedForwardedFor(t *testing.T) {
	limiter := newTokenBucketLimiter(1, 1)
	handler := rateLimitMiddleware(limiter, false, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	codes := make([]int, 0, 3)
	for _, hop := range []string{"198.51.100.1", "198.51.100.2", "198.51.100.3"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.0.2.10:5555"
		req.Header.Set("X-Forwarded-For", hop)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	if codes[0] != http.StatusNoContent || codes[1] != http.StatusTooManyRequests || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("expected rotating X-Forwarded-For to share one bucket, got %v", codes)
	}
	if got := limiter.size(); got != 1 {
		t.Fatalf("expected a single tracked client, got %d", got)
	}
}

func TestRateLimitHonoursForwardedForBehindTrustedProxy(t *testing.T) {
	limiter := newTokenBucketLimiter(1, 1)
	handler := rateLimitMiddleware(limiter, true, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	for _, hop := range []string{"198.51.100.1", "198.51.100.2"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:443"
		req.Header.Set("X-Forwarded-For", hop)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected %s to have its own bucket, got %d", hop, rec.Code)
		}
	}
	if got := limiter.size(); got != 2 {
		t.Fatalf("expected two tracked clients, got %d", got)
	}
}
