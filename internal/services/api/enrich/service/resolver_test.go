package service

import (
	"context"
	"errors"
	"testing"

	"mingle/internal/adapters/llm"
	"mingle/internal/platform/kv"
)

type fakeLister struct {
	models []llm.Model
	err    error
	calls  int
}

func (f *fakeLister) ListModels(context.Context) ([]llm.Model, error) {
	f.calls++
	return f.models, f.err
}

func TestResolvePreferredSkipsListing(t *testing.T) {
	fl := &fakeLister{}
	r := newResolver(fl, kv.NewMemory(), "gpt-4o-mini", nil)

	m, err := r.resolve(context.Background())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if m != "gpt-4o-mini" {
		t.Fatalf("want preferred model, got %q", m)
	}
	if fl.calls != 0 {
		t.Fatalf("preferred model should not hit the listing, got %d calls", fl.calls)
	}
}

func TestResolveCacheHitAvoidsSecondListing(t *testing.T) {
	fl := &fakeLister{models: []llm.Model{{ID: "gpt-4o"}}}
	r := newResolver(fl, kv.NewMemory(), "", []string{"gpt-4o"})

	ctx := context.Background()
	m1, err := r.resolve(ctx)
	if err != nil {
		t.Fatalf("first resolve: %v", err)
	}
	m2, err := r.resolve(ctx)
	if err != nil {
		t.Fatalf("second resolve: %v", err)
	}
	if m1 != "gpt-4o" || m2 != "gpt-4o" {
		t.Fatalf("unexpected models %q %q", m1, m2)
	}
	if fl.calls != 1 {
		t.Fatalf("second resolve should be served from cache, got %d listing calls", fl.calls)
	}
}

func TestResolveFallbackHonorsPreferenceOrder(t *testing.T) {
	fl := &fakeLister{models: []llm.Model{
		{ID: "gpt-3.5-turbo"},
		{ID: "gpt-4o"},
	}}
	r := newResolver(fl, kv.NewMemory(), "", []string{"gpt-4o", "gpt-3.5-turbo"})

	m, err := r.resolveFallback(context.Background())
	if err != nil {
		t.Fatalf("resolveFallback: %v", err)
	}
	if m != "gpt-4o" {
		t.Fatalf("want first preference present in listing, got %q", m)
	}
}

func TestResolveFallbackFirstCapableWhenNoPreferenceMatches(t *testing.T) {
	fl := &fakeLister{models: []llm.Model{
		{ID: "text-embedding-3-small"},
		{ID: "mistral-large"},
	}}
	r := newResolver(fl, kv.NewMemory(), "", []string{"gpt-4o"})

	m, err := r.resolveFallback(context.Background())
	if err != nil {
		t.Fatalf("resolveFallback: %v", err)
	}
	if m != "mistral-large" {
		t.Fatalf("want first capable model, got %q", m)
	}
}

func TestResolveFallbackNoCapableModel(t *testing.T) {
	fl := &fakeLister{models: []llm.Model{
		{ID: "text-embedding-3-small"},
		{ID: "whisper-1"},
		{ID: "dall-e-3"},
	}}
	r := newResolver(fl, kv.NewMemory(), "", nil)

	_, err := r.resolveFallback(context.Background())
	if !errors.Is(err, ErrNoCapableModel) {
		t.Fatalf("want ErrNoCapableModel, got %v", err)
	}
}

func TestResolveFallbackPropagatesListingError(t *testing.T) {
	fl := &fakeLister{err: errors.New("boom")}
	r := newResolver(fl, kv.NewMemory(), "", nil)

	if _, err := r.resolveFallback(context.Background()); err == nil {
		t.Fatal("want listing error surfaced")
	}
}
