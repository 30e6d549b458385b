// Package kv provides a small key-value seam for counters and cached values
//
// The Store interface is the injection point for shared state that must not
// live inside callers: rate-limit counters and the resolved-model cache both
// go through it. Memory is the single-process implementation; a shared
// backend can be swapped in behind the same interface without touching
// call sites
package kv

import (
	"context"
	"sync"
	"time"
)

// Store is the counter and cache seam
//
// Incr bumps the counter at key, starting a fresh window of ttl when the key
// is absent or its window has lapsed. It returns the post-increment count and
// the instant the current window resets.
// Get and Set carry opaque string values with a TTL; Get reports presence
// via ok and never errors on a missing key
type Store interface {
	Incr(ctx context.Context, key string, ttl time.Duration) (count int64, resetAt time.Time, err error)
	Get(ctx context.Context, key string) (val string, ok bool, err error)
	Set(ctx context.Context, key string, val string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type entry struct {
	val      string
	count    int64
	expireAt time.Time
}

// Memory is a mutex-guarded in-process Store
// Expiry is lazy on access; long-lived processes run Janitor to reap
// entries nothing reads again
type Memory struct {
	mu  sync.Mutex
	m   map[string]*entry
	now func() time.Time // test seam
}

// NewMemory returns an empty in-process store
func NewMemory() *Memory {
	return &Memory{m: make(map[string]*entry), now: time.Now}
}

// NewMemoryAt returns a store with an injected clock for deterministic tests
func NewMemoryAt(now func() time.Time) *Memory {
	if now == nil {
		now = time.Now
	}
	return &Memory{m: make(map[string]*entry), now: now}
}

// Incr implements Store
func (s *Memory) Incr(_ context.Context, key string, ttl time.Duration) (int64, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	e, ok := s.m[key]
	if !ok || !now.Before(e.expireAt) {
		e = &entry{expireAt: now.Add(ttl)}
		s.m[key] = e
	}
	e.count++
	return e.count, e.expireAt, nil
}

// Get implements Store
func (s *Memory) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.m[key]
	if !ok {
		return "", false, nil
	}
	if !s.now().Before(e.expireAt) {
		delete(s.m, key)
		return "", false, nil
	}
	return e.val, true, nil
}

// Set implements Store
func (s *Memory) Set(_ context.Context, key, val string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.m[key] = &entry{val: val, expireAt: s.now().Add(ttl)}
	return nil
}

// Delete implements Store
func (s *Memory) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.m, key)
	return nil
}

// Janitor reaps expired entries every interval until ctx is done
// Run it in its own goroutine; lazy expiry alone never frees one-off
// caller keys that are not read again
func (s *Memory) Janitor(ctx context.Context, every time.Duration) {
	if every <= 0 {
		every = time.Minute
	}
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.Reap()
		}
	}
}

// Reap drops expired entries and returns how many were removed
func (s *Memory) Reap() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	n := 0
	for k, e := range s.m {
		if !now.Before(e.expireAt) {
			delete(s.m, k)
			n++
		}
	}
	return n
}

// Len returns the number of live entries (expired included until reaped)
func (s *Memory) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.m)
}
