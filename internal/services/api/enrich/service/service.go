// Package service contains the enrichment workflows
package service

import (
	"context"
	"strings"

	"mingle/internal/adapters/llm"
	"mingle/internal/adapters/search"
	"mingle/internal/core/relevance"
	perrs "mingle/internal/platform/errors"
	"mingle/internal/platform/kv"
	"mingle/internal/platform/logger"
	"mingle/internal/services/api/enrich/domain"
)

// Service is the public service port
type Service interface{ domain.ServicePort }

// searchClient is the slice of the search adapter the service needs
type searchClient interface {
	Enabled() bool
	Search(ctx context.Context, q search.Query) (search.Response, error)
}

// generationClient is the slice of the llm adapter the service needs
type generationClient interface {
	Enabled() bool
	Generate(ctx context.Context, model, prompt string) (string, error)
	ListModels(ctx context.Context) ([]llm.Model, error)
}

// Options control service behavior
type Options struct {
	Search searchClient
	LLM    generationClient
	KV     kv.Store

	// PreferredModel short-circuits model resolution when set
	PreferredModel string

	// ModelPrefs is the ordered fallback preference list
	ModelPrefs []string
}

// Svc implements the Service interface
type Svc struct {
	search   searchClient
	llm      generationClient
	resolver *resolver
	log      logger.Logger
}

// New constructs the service
func New(opt Options) *Svc {
	if opt.LLM == nil {
		panic("enrich.Service requires a non nil generation client")
	}
	if opt.KV == nil {
		panic("enrich.Service requires a non nil kv store")
	}
	return &Svc{
		search:   opt.Search,
		llm:      opt.LLM,
		resolver: newResolver(opt.LLM, opt.KV, opt.PreferredModel, opt.ModelPrefs),
		log:      *logger.Named("enrich"),
	}
}

const searchResultCap = 5

// Enrich produces a bounded profile summary for one attendee
// Search is best effort and generation is retried once across models; only
// a generation failure on both attempts surfaces as an error
func (s *Svc) Enrich(ctx context.Context, in domain.EnrichInput) (domain.EnrichOutput, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return domain.EnrichOutput{}, perrs.Validationf("name is required")
	}
	if !s.llm.Enabled() {
		return domain.EnrichOutput{}, perrs.Configf("llm credentials not configured")
	}

	resp := s.searchPerson(ctx, in)
	sc := buildContext(resp, in.About)

	model, err := s.resolver.resolve(ctx)
	if err != nil {
		return domain.EnrichOutput{}, err
	}

	prompt := buildPrompt(in, sc)
	raw, err := s.llm.Generate(ctx, model, prompt)
	if err != nil && llm.IsModelNotFound(err) {
		fb, ferr := s.resolver.resolveFallback(ctx)
		if ferr == nil && fb != model {
			s.log.Warn().Str("model", model).Str("fallback", fb).Msg("model unavailable, retrying with fallback")
			model = fb
			raw, err = s.llm.Generate(ctx, model, prompt)
		}
	}
	if err != nil {
		return domain.EnrichOutput{}, perrs.WithOp(err, "enrich.generate")
	}

	res, ok := recoverResult(raw)
	if !ok {
		// one strict-format reissue; a second failure of any kind falls to
		// the guaranteed default rather than erroring
		s.log.Warn().Str("model", model).Msg("unparseable generation output, reissuing strict")
		raw2, err2 := s.llm.Generate(ctx, model, strictPrompt(in, sc))
		if err2 == nil {
			if res2, ok2 := recoverResult(raw2); ok2 {
				return normalize(res2, sc), nil
			}
		}
		return defaultResult(sc), nil
	}
	return normalize(res, sc), nil
}

// FindProfile returns the best public profile URL for the person, if any
func (s *Svc) FindProfile(ctx context.Context, in domain.ProfileInput) (domain.ProfileOutput, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return domain.ProfileOutput{}, perrs.Validationf("name is required")
	}
	if s.search == nil || !s.search.Enabled() {
		return domain.ProfileOutput{}, perrs.Configf("search credentials not configured")
	}

	terms := []string{in.Name}
	if in.JobTitle != "" {
		terms = append(terms, in.JobTitle)
	}
	if in.Company != "" {
		terms = append(terms, in.Company)
	}
	resp, err := s.search.Search(ctx, search.Query{
		Text:       strings.Join(terms, " "),
		MaxResults: 10,
		Domains:    []string{"linkedin.com"},
	})
	if err != nil {
		return domain.ProfileOutput{}, perrs.WithOp(err, "enrich.profile_search")
	}

	candidates := make([]relevance.Candidate, 0, len(resp.Results))
	for _, r := range resp.Results {
		candidates = append(candidates, relevance.Candidate{Title: r.Title, URL: r.URL, Snippet: r.Content})
	}
	best, score, ok := relevance.Best(relevance.Query{
		Name:     in.Name,
		JobTitle: in.JobTitle,
		Company:  in.Company,
	}, relevance.FilterProfiles(candidates))
	if !ok {
		return domain.ProfileOutput{SourcesFound: len(resp.Results)}, nil
	}
	return domain.ProfileOutput{Found: true, URL: best.URL, Score: score, SourcesFound: len(resp.Results)}, nil
}

// searchPerson runs the best-effort identity search
// Failures and a disabled adapter both degrade to an empty response
func (s *Svc) searchPerson(ctx context.Context, in domain.EnrichInput) search.Response {
	if s.search == nil || !s.search.Enabled() {
		return search.Response{}
	}

	terms := []string{in.Name}
	if in.JobTitle != "" {
		terms = append(terms, in.JobTitle)
	}
	if in.Company != "" {
		terms = append(terms, in.Company)
	}
	terms = append(terms, `"professional profile"`, `"career background"`, "biography")

	resp, err := s.search.Search(ctx, search.Query{
		Text:          strings.Join(terms, " "),
		MaxResults:    searchResultCap,
		IncludeAnswer: true,
	})
	if err != nil {
		s.log.Warn().Err(err).Msg("search failed, continuing with empty context")
		return search.Response{}
	}
	return resp
}
