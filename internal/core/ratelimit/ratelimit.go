// Package ratelimit provides named fixed-window rate limiting over the kv seam
//
// Counters live in an injected kv.Store keyed by (profile, caller), so the
// limiter itself holds no state and a shared backend can serve several
// processes. Windows are fixed: the first hit opens a window and the counter
// resets when it lapses
package ratelimit

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"mingle/internal/platform/config"
	"mingle/internal/platform/kv"
)

// Profile names one admission policy
type Profile struct {
	Name   string
	Limit  int64
	Window time.Duration
}

// Built-in profile names
const (
	ProfileStrict    = "strict"
	ProfileLookup    = "lookup"
	ProfileAdmin     = "admin"
	ProfileExpensive = "expensive"
)

// DefaultProfiles returns the stock policy set
// strict guards writes, lookup guards cheap reads, admin guards meta,
// expensive guards generation-backed endpoints
func DefaultProfiles() map[string]Profile {
	return map[string]Profile{
		ProfileStrict:    {Name: ProfileStrict, Limit: 10, Window: time.Minute},
		ProfileLookup:    {Name: ProfileLookup, Limit: 20, Window: time.Minute},
		ProfileAdmin:     {Name: ProfileAdmin, Limit: 60, Window: time.Minute},
		ProfileExpensive: {Name: ProfileExpensive, Limit: 5, Window: time.Minute},
	}
}

// ProfilesFromConf returns DefaultProfiles with env overrides applied
// reads {PROFILE}_LIMIT and {PROFILE}_WINDOW under the given view,
// e.g. RATELIMIT_STRICT_LIMIT=30 RATELIMIT_STRICT_WINDOW=2m
func ProfilesFromConf(cfg config.Conf) map[string]Profile {
	out := DefaultProfiles()
	for name, p := range out {
		upper := strings.ToUpper(name)
		p.Limit = int64(cfg.MayInt(upper+"_LIMIT", int(p.Limit)))
		p.Window = cfg.MayDuration(upper+"_WINDOW", p.Window)
		out[name] = p
	}
	return out
}

// Decision is the admission verdict for one request
type Decision struct {
	Allowed   bool
	Remaining int64
	// RetryAfter is how long until the window resets, zero when allowed
	RetryAfter time.Duration
	ResetAt    time.Time
}

// Limiter admits requests against named profiles
type Limiter struct {
	store    kv.Store
	profiles map[string]Profile
	now      func() time.Time
}

// Option mutates a Limiter during New
type Option func(*Limiter)

// WithProfiles replaces the profile set
func WithProfiles(profiles map[string]Profile) Option {
	return func(l *Limiter) { l.profiles = profiles }
}

// WithClock injects a clock for deterministic tests
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) { l.now = now }
}

// New constructs a Limiter over the given counter store
// panics on nil store so miswiring fails at startup, not first request
func New(store kv.Store, opts ...Option) *Limiter {
	if store == nil {
		panic("ratelimit: nil kv store")
	}
	l := &Limiter{
		store:    store,
		profiles: DefaultProfiles(),
		now:      time.Now,
	}
	for _, o := range opts {
		o(l)
	}
	return l
}

// Admit charges one unit against (profile, key) and returns the verdict
// A denied caller is told how long to wait; the denied request itself still
// consumed nothing because the counter only gates, it never rolls back
func (l *Limiter) Admit(ctx context.Context, profile, key string) (Decision, error) {
	p, ok := l.profiles[profile]
	if !ok {
		return Decision{}, fmt.Errorf("ratelimit: unknown profile %q", profile)
	}

	count, resetAt, err := l.store.Incr(ctx, counterKey(profile, key), p.Window)
	if err != nil {
		return Decision{}, fmt.Errorf("ratelimit: counter incr: %w", err)
	}

	if count > p.Limit {
		return Decision{
			Allowed:    false,
			Remaining:  0,
			RetryAfter: resetAt.Sub(l.now()),
			ResetAt:    resetAt,
		}, nil
	}
	return Decision{
		Allowed:   true,
		Remaining: p.Limit - count,
		ResetAt:   resetAt,
	}, nil
}

func counterKey(profile, key string) string {
	return "rl:" + profile + ":" + key
}

// Port adapts a Limiter to the HTTP middleware admission seam
type Port struct{ Limiter *Limiter }

// Admit implements the middleware port contract
// retryAfter is whole seconds rounded up, floored at 1 on denial
func (p Port) Admit(ctx context.Context, profile, key string) (bool, int, error) {
	d, err := p.Limiter.Admit(ctx, profile, key)
	if err != nil {
		return false, 0, err
	}
	if d.Allowed {
		return true, 0, nil
	}
	secs := int(math.Ceil(d.RetryAfter.Seconds()))
	if secs < 1 {
		secs = 1
	}
	return false, secs, nil
}
