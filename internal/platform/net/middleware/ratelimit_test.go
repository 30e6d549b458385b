package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	pnet "mingle/internal/platform/net"
)

type fakeAdmit struct {
	allowed    bool
	retryAfter int
	err        error

	profiles []string
	keys     []string
}

func (f *fakeAdmit) Admit(_ context.Context, profile, key string) (bool, int, error) {
	f.profiles = append(f.profiles, profile)
	f.keys = append(f.keys, key)
	return f.allowed, f.retryAfter, f.err
}

func okHandler(hit *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		*hit = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimitNilPortPassesThrough(t *testing.T) {
	var hit bool
	h := RateLimit(nil, "strict")(okHandler(&hit))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if !hit || rec.Code != http.StatusOK {
		t.Fatalf("nil port must admit: hit=%v code=%d", hit, rec.Code)
	}
}

func TestRateLimitDenialSetsRetryAfter(t *testing.T) {
	var hit bool
	p := &fakeAdmit{allowed: false, retryAfter: 42}
	h := RateLimit(p, "strict")(okHandler(&hit))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))

	if hit {
		t.Fatal("denied request must not reach the handler")
	}
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("want 429, got %d", rec.Code)
	}
	if got := rec.Header().Get("Retry-After"); got != "42" {
		t.Fatalf("want Retry-After 42, got %q", got)
	}
	if len(p.profiles) != 1 || p.profiles[0] != "strict" {
		t.Fatalf("unexpected profile charge: %v", p.profiles)
	}
}

func TestRateLimitFailsOpenOnLimiterError(t *testing.T) {
	var hit bool
	p := &fakeAdmit{err: errors.New("counter backend down")}
	h := RateLimit(p, "lookup")(okHandler(&hit))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if !hit || rec.Code != http.StatusOK {
		t.Fatalf("limiter errors must admit: hit=%v code=%d", hit, rec.Code)
	}
}

func TestCallerKeyPrefersUser(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "203.0.113.9:5123"

	if got := CallerKey(r); got != "ip:203.0.113.9" {
		t.Fatalf("anonymous caller keys on ip, got %q", got)
	}

	r = r.WithContext(pnet.WithUser(r.Context(), "usr1"))
	if got := CallerKey(r); got != "user:usr1" {
		t.Fatalf("authenticated caller keys on user, got %q", got)
	}
}

func TestCallerKeyHandlesBareHost(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "203.0.113.9"
	if got := CallerKey(r); got != "ip:203.0.113.9" {
		t.Fatalf("bare host should be used as is, got %q", got)
	}
}
