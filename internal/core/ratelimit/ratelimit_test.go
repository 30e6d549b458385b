package ratelimit

import (
	"context"
	"testing"
	"time"

	"mingle/internal/platform/kv"
	"mingle/internal/platform/testkit"
)

func testLimiter(t *testing.T, start time.Time) (*Limiter, *time.Time) {
	t.Helper()
	now := start
	clock := func() time.Time { return now }
	l := New(kv.NewMemoryAt(clock), WithClock(clock))
	return l, &now
}

func TestAdmitUpToLimitThenDeny(t *testing.T) {
	l, _ := testLimiter(t, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		d, err := l.Admit(ctx, ProfileExpensive, "ip:1.2.3.4")
		if err != nil {
			t.Fatalf("admit %d: %v", i, err)
		}
		if !d.Allowed {
			t.Fatalf("admit %d: want allowed", i)
		}
		if want := int64(5 - i - 1); d.Remaining != want {
			t.Fatalf("admit %d: want remaining %d, got %d", i, want, d.Remaining)
		}
	}

	d, err := l.Admit(ctx, ProfileExpensive, "ip:1.2.3.4")
	if err != nil {
		t.Fatalf("admit over limit: %v", err)
	}
	if d.Allowed {
		t.Fatal("want denial past the limit")
	}
	if d.RetryAfter <= 0 {
		t.Fatalf("want positive retry-after, got %v", d.RetryAfter)
	}
}

func TestWindowResets(t *testing.T) {
	l, now := testLimiter(t, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()

	for i := 0; i < 6; i++ {
		l.Admit(ctx, ProfileExpensive, "ip:1.2.3.4")
	}
	*now = now.Add(time.Minute)

	d, err := l.Admit(ctx, ProfileExpensive, "ip:1.2.3.4")
	if err != nil {
		t.Fatalf("admit after reset: %v", err)
	}
	if !d.Allowed {
		t.Fatal("want admission in a fresh window")
	}
	if d.Remaining != 4 {
		t.Fatalf("want remaining 4, got %d", d.Remaining)
	}
}

func TestCallersDoNotShareCounters(t *testing.T) {
	l, _ := testLimiter(t, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		l.Admit(ctx, ProfileExpensive, "ip:1.2.3.4")
	}
	d, _ := l.Admit(ctx, ProfileExpensive, "ip:5.6.7.8")
	if !d.Allowed {
		t.Fatal("second caller should have its own counter")
	}
}

func TestProfilesDoNotShareCounters(t *testing.T) {
	l, _ := testLimiter(t, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		l.Admit(ctx, ProfileExpensive, "ip:1.2.3.4")
	}
	d, _ := l.Admit(ctx, ProfileLookup, "ip:1.2.3.4")
	if !d.Allowed {
		t.Fatal("lookup profile should not inherit expensive counters")
	}
}

func TestUnknownProfileErrors(t *testing.T) {
	l, _ := testLimiter(t, time.Now())
	if _, err := l.Admit(context.Background(), "nope", "ip:1.2.3.4"); err == nil {
		t.Fatal("want error for unknown profile")
	}
}

func TestNilStorePanics(t *testing.T) {
	testkit.MustPanic(t, func() { New(nil) })
}

func TestPortRoundsRetryAfterUp(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	l, now := testLimiter(t, start)
	ctx := context.Background()

	for i := 0; i < 6; i++ {
		l.Admit(ctx, ProfileExpensive, "ip:1.2.3.4")
	}
	// partway into the window the remainder is fractional; port reports whole seconds
	*now = start.Add(30*time.Second + 500*time.Millisecond)

	allowed, retryAfter, err := Port{Limiter: l}.Admit(ctx, ProfileExpensive, "ip:1.2.3.4")
	if err != nil {
		t.Fatalf("port admit: %v", err)
	}
	if allowed {
		t.Fatal("want denial")
	}
	if retryAfter != 30 {
		t.Fatalf("want retry-after 30, got %d", retryAfter)
	}
}

func TestProfilesFromConfDefaults(t *testing.T) {
	got := DefaultProfiles()
	if got[ProfileStrict].Limit != 10 || got[ProfileLookup].Limit != 20 ||
		got[ProfileAdmin].Limit != 60 || got[ProfileExpensive].Limit != 5 {
		t.Fatal("stock limits drifted")
	}
	for _, p := range got {
		if p.Window != time.Minute {
			t.Fatalf("profile %s: want 1m window, got %v", p.Name, p.Window)
		}
	}
}
