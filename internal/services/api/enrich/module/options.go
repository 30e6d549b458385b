package module

import (
	"time"

	"mingle/internal/platform/config"
)

// Options controls the enrich upstream clients
type Options struct {
	// Search client
	SearchAPIKey  string
	SearchBaseURL string
	SearchTimeout time.Duration
	SearchRetries int

	// LLM client
	LLMAPIKey  string
	LLMBaseURL string
	LLMTimeout time.Duration

	// Model resolution
	PreferredModel string
	ModelPrefs     []string
}

// FromConfig reads SEARCH_* and LLM_* values from process config/env
func FromConfig(cfg config.Conf) Options {
	sc := cfg.Prefix("SEARCH_")
	lc := cfg.Prefix("LLM_")
	return Options{
		SearchAPIKey:  sc.MayString("API_KEY", ""),
		SearchBaseURL: sc.MayString("BASE_URL", ""),
		SearchTimeout: sc.MayDuration("TIMEOUT", 15*time.Second),
		SearchRetries: sc.MayInt("MAX_RETRIES", 2),

		LLMAPIKey:  lc.MayString("API_KEY", ""),
		LLMBaseURL: lc.MayString("BASE_URL", ""),
		LLMTimeout: lc.MayDuration("TIMEOUT", 60*time.Second),

		PreferredModel: lc.MayString("MODEL", ""),
		ModelPrefs: lc.MayCSV("MODEL_PREFS", []string{
			"gpt-4o-mini",
			"gpt-4o",
			"gpt-4-turbo",
			"gpt-3.5-turbo",
		}),
	}
}
