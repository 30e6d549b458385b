package service

import (
	"context"
	"testing"

	"github.com/sashabaranov/go-openai"

	"mingle/internal/adapters/llm"
	"mingle/internal/adapters/search"
	perrs "mingle/internal/platform/errors"
	"mingle/internal/platform/kv"
	"mingle/internal/services/api/enrich/domain"
)

type fakeSearch struct {
	enabled bool
	resp    search.Response
	err     error
	queries []search.Query
}

func (f *fakeSearch) Enabled() bool { return f.enabled }

func (f *fakeSearch) Search(_ context.Context, q search.Query) (search.Response, error) {
	f.queries = append(f.queries, q)
	return f.resp, f.err
}

type fakeLLM struct {
	enabled  bool
	models   []llm.Model
	generate func(model, prompt string) (string, error)
	calls    int
}

func (f *fakeLLM) Enabled() bool { return f.enabled }

func (f *fakeLLM) ListModels(context.Context) ([]llm.Model, error) { return f.models, nil }

func (f *fakeLLM) Generate(_ context.Context, model, prompt string) (string, error) {
	f.calls++
	return f.generate(model, prompt)
}

const goodJSON = `{"summary":["a","b","c"],"industry_tags":["Technology & Software"]}`

func newTestSvc(s *fakeSearch, l *fakeLLM, preferred string) *Svc {
	return New(Options{
		Search:         s,
		LLM:            l,
		KV:             kv.NewMemory(),
		PreferredModel: preferred,
		ModelPrefs:     []string{"gpt-4o-mini", "gpt-4o"},
	})
}

func TestEnrichMissingName(t *testing.T) {
	svc := newTestSvc(&fakeSearch{}, &fakeLLM{enabled: true}, "m")
	_, err := svc.Enrich(context.Background(), domain.EnrichInput{Name: "   "})
	if !perrs.IsCode(err, perrs.ErrorCodeValidation) {
		t.Fatalf("want validation error, got %v", err)
	}
}

func TestEnrichMissingCredentialBeforeNetwork(t *testing.T) {
	fs := &fakeSearch{enabled: true}
	svc := newTestSvc(fs, &fakeLLM{enabled: false}, "m")
	_, err := svc.Enrich(context.Background(), domain.EnrichInput{Name: "Jane Doe"})
	if !perrs.IsCode(err, perrs.ErrorCodeConfig) {
		t.Fatalf("want config error, got %v", err)
	}
	if len(fs.queries) != 0 {
		t.Fatal("credential check must run before any network call")
	}
}

func TestEnrichHappyPath(t *testing.T) {
	fs := &fakeSearch{enabled: true, resp: search.Response{
		Answer:  "Jane Doe is a staff engineer at Acme with a long history in data platforms.",
		Results: []search.Result{{Content: "bio"}, {Content: "talk"}},
	}}
	fl := &fakeLLM{enabled: true, generate: func(model, prompt string) (string, error) {
		return goodJSON, nil
	}}
	svc := newTestSvc(fs, fl, "gpt-4o-mini")

	out, err := svc.Enrich(context.Background(), domain.EnrichInput{
		Name: "Jane Doe", JobTitle: "Staff Engineer", Company: "Acme",
	})
	if err != nil {
		t.Fatalf("enrich: %v", err)
	}
	if len(out.Summary) != 3 || out.Summary[0] != "a" {
		t.Fatalf("unexpected summary: %v", out.Summary)
	}
	if len(out.IndustryTags) != 1 {
		t.Fatalf("unexpected tags: %v", out.IndustryTags)
	}
	if out.SourcesFound != 2 {
		t.Fatalf("want sources 2, got %d", out.SourcesFound)
	}
	if out.LimitedContext {
		t.Fatal("rich context should not be limited")
	}
	if fl.calls != 1 {
		t.Fatalf("want 1 generation call, got %d", fl.calls)
	}
}

func TestEnrichSearchFailureDegrades(t *testing.T) {
	fs := &fakeSearch{enabled: true, err: perrs.Unavailablef("search down")}
	fl := &fakeLLM{enabled: true, generate: func(model, prompt string) (string, error) {
		return goodJSON, nil
	}}
	svc := newTestSvc(fs, fl, "gpt-4o-mini")

	out, err := svc.Enrich(context.Background(), domain.EnrichInput{Name: "Jane Doe"})
	if err != nil {
		t.Fatalf("search failure must not fail enrichment: %v", err)
	}
	if !out.LimitedContext {
		t.Fatal("empty context after search failure should be marked limited")
	}
	if out.SourcesFound != 0 {
		t.Fatalf("want 0 sources, got %d", out.SourcesFound)
	}
}

func TestEnrichFallbackModelOnNotFound(t *testing.T) {
	fl := &fakeLLM{
		enabled: true,
		models:  []llm.Model{{ID: "gpt-4o"}},
		generate: func(model, prompt string) (string, error) {
			if model == "gpt-4-old" {
				return "", &openai.APIError{HTTPStatusCode: 404, Message: "model not found"}
			}
			return goodJSON, nil
		},
	}
	svc := newTestSvc(&fakeSearch{}, fl, "gpt-4-old")

	out, err := svc.Enrich(context.Background(), domain.EnrichInput{Name: "Jane Doe"})
	if err != nil {
		t.Fatalf("fallback retry should succeed: %v", err)
	}
	if len(out.Summary) != 3 {
		t.Fatalf("unexpected summary: %v", out.Summary)
	}
	if fl.calls != 2 {
		t.Fatalf("want 2 generation calls (original + fallback), got %d", fl.calls)
	}
}

func TestEnrichGenericErrorDoesNotTriggerFallback(t *testing.T) {
	fl := &fakeLLM{
		enabled: true,
		models:  []llm.Model{{ID: "gpt-4o"}},
		generate: func(model, prompt string) (string, error) {
			return "", perrs.Unavailablef("upstream down")
		},
	}
	svc := newTestSvc(&fakeSearch{}, fl, "gpt-4o-mini")

	_, err := svc.Enrich(context.Background(), domain.EnrichInput{Name: "Jane Doe"})
	if !perrs.IsCode(err, perrs.ErrorCodeUnavailable) {
		t.Fatalf("want unavailable, got %v", err)
	}
	if fl.calls != 1 {
		t.Fatalf("generic failure must not retry models, got %d calls", fl.calls)
	}
}

func TestEnrichStrictRetryOnParseFailure(t *testing.T) {
	fl := &fakeLLM{enabled: true}
	fl.generate = func(model, prompt string) (string, error) {
		if fl.calls == 1 {
			return "total garbage, no json here", nil
		}
		return goodJSON, nil
	}
	svc := newTestSvc(&fakeSearch{}, fl, "gpt-4o-mini")

	out, err := svc.Enrich(context.Background(), domain.EnrichInput{Name: "Jane Doe"})
	if err != nil {
		t.Fatalf("strict retry should succeed: %v", err)
	}
	if out.Summary[0] != "a" {
		t.Fatalf("want result from strict retry, got %v", out.Summary)
	}
	if fl.calls != 2 {
		t.Fatalf("want 2 generation calls, got %d", fl.calls)
	}
}

func TestEnrichDoubleParseFailureReturnsDefault(t *testing.T) {
	fl := &fakeLLM{enabled: true, generate: func(model, prompt string) (string, error) {
		return "still not json", nil
	}}
	svc := newTestSvc(&fakeSearch{}, fl, "gpt-4o-mini")

	out, err := svc.Enrich(context.Background(), domain.EnrichInput{Name: "Jane Doe"})
	if err != nil {
		t.Fatalf("unparseable output must never be a hard failure: %v", err)
	}
	if len(out.Summary) != 3 {
		t.Fatalf("default must keep the 3-entry shape, got %v", out.Summary)
	}
	if n := len(out.IndustryTags); n < 1 || n > 3 {
		t.Fatalf("default must keep 1..3 tags, got %d", n)
	}
}

func TestFindProfileDisabledSearch(t *testing.T) {
	svc := newTestSvc(&fakeSearch{enabled: false}, &fakeLLM{enabled: true}, "m")
	_, err := svc.FindProfile(context.Background(), domain.ProfileInput{Name: "Jane Doe"})
	if !perrs.IsCode(err, perrs.ErrorCodeConfig) {
		t.Fatalf("want config error, got %v", err)
	}
}

func TestFindProfilePicksBestPersonalProfile(t *testing.T) {
	fs := &fakeSearch{enabled: true, resp: search.Response{Results: []search.Result{
		{Title: "Acme Corp | LinkedIn", URL: "https://linkedin.com/company/acme", Content: "company page"},
		{Title: "Jane Doe - Staff Engineer - Acme Corp", URL: "https://linkedin.com/in/janedoe", Content: "jane doe acme"},
		{Title: "John Roe", URL: "https://linkedin.com/in/johnroe", Content: "unrelated"},
	}}}
	svc := newTestSvc(fs, &fakeLLM{enabled: true}, "m")

	out, err := svc.FindProfile(context.Background(), domain.ProfileInput{
		Name: "Jane Doe", JobTitle: "Staff Engineer", Company: "Acme Corp",
	})
	if err != nil {
		t.Fatalf("find profile: %v", err)
	}
	if !out.Found || out.URL != "https://linkedin.com/in/janedoe" {
		t.Fatalf("unexpected pick: %+v", out)
	}
	if out.Score <= 0 {
		t.Fatalf("want positive score, got %d", out.Score)
	}
	if out.SourcesFound != 3 {
		t.Fatalf("want 3 sources, got %d", out.SourcesFound)
	}
	if len(fs.queries) != 1 || len(fs.queries[0].Domains) == 0 {
		t.Fatalf("profile search should be domain restricted: %+v", fs.queries)
	}
}

func TestFindProfileNoPersonalProfiles(t *testing.T) {
	fs := &fakeSearch{enabled: true, resp: search.Response{Results: []search.Result{
		{Title: "Acme Corp", URL: "https://linkedin.com/company/acme", Content: "company"},
	}}}
	svc := newTestSvc(fs, &fakeLLM{enabled: true}, "m")

	out, err := svc.FindProfile(context.Background(), domain.ProfileInput{Name: "Jane Doe"})
	if err != nil {
		t.Fatalf("find profile: %v", err)
	}
	if out.Found || out.URL != "" {
		t.Fatalf("want empty result, got %+v", out)
	}
}
