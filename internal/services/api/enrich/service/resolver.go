package service

import (
	"context"
	"strings"
	"time"

	"mingle/internal/adapters/llm"
	perrs "mingle/internal/platform/errors"
	"mingle/internal/platform/kv"
	"mingle/internal/platform/logger"
)

const (
	modelCacheKey = "llm:model"
	modelCacheTTL = 10 * time.Minute
)

// ErrNoCapableModel means the provider listing contained nothing we can
// generate text with
var ErrNoCapableModel = perrs.New(perrs.ErrorCodeUnavailable, "no generation-capable model available")

// modelLister is the slice of the llm client the resolver needs
type modelLister interface {
	ListModels(ctx context.Context) ([]llm.Model, error)
}

// resolver picks the model name to generate with and caches the choice
// The cache is process wide; racing writers are fine, last write wins
type resolver struct {
	llm       modelLister
	kv        kv.Store
	preferred string
	prefs     []string
	log       logger.Logger
}

func newResolver(l modelLister, store kv.Store, preferred string, prefs []string) *resolver {
	if store == nil {
		panic("enrich resolver requires a non nil kv store")
	}
	return &resolver{
		llm:       l,
		kv:        store,
		preferred: preferred,
		prefs:     prefs,
		log:       *logger.Named("enrich"),
	}
}

// resolve returns the cached model, the configured preference, or falls
// back to listing the provider
func (r *resolver) resolve(ctx context.Context) (string, error) {
	if v, ok, err := r.kv.Get(ctx, modelCacheKey); err == nil && ok && v != "" {
		return v, nil
	}
	if r.preferred != "" {
		r.cache(ctx, r.preferred)
		return r.preferred, nil
	}
	return r.resolveFallback(ctx)
}

// resolveFallback ignores the cache and the configured preference, lists the
// provider models, and picks the best generation-capable one
func (r *resolver) resolveFallback(ctx context.Context) (string, error) {
	models, err := r.llm.ListModels(ctx)
	if err != nil {
		return "", err
	}

	capable := make([]string, 0, len(models))
	for _, m := range models {
		if isGenerationModel(m.ID) {
			capable = append(capable, m.ID)
		}
	}
	if len(capable) == 0 {
		return "", ErrNoCapableModel
	}

	for _, want := range r.prefs {
		for _, id := range capable {
			if id == want {
				r.cache(ctx, id)
				return id, nil
			}
		}
	}

	r.log.Warn().Str("model", capable[0]).Msg("no preferred model available, using first capable")
	r.cache(ctx, capable[0])
	return capable[0], nil
}

func (r *resolver) cache(ctx context.Context, model string) {
	if err := r.kv.Set(ctx, modelCacheKey, model, modelCacheTTL); err != nil {
		r.log.Warn().Err(err).Msg("model cache write failed")
	}
}

// isGenerationModel filters out models that cannot produce chat text
// The provider listing mixes in embedding, audio, and image models
func isGenerationModel(id string) bool {
	l := strings.ToLower(id)
	for _, bad := range []string{"embed", "whisper", "tts", "audio", "dall-e", "image", "moderation", "rerank"} {
		if strings.Contains(l, bad) {
			return false
		}
	}
	return true
}
