// Package module wires enrich into the API using modkit
package module

import (
	"net/http"

	"mingle/internal/adapters/llm"
	"mingle/internal/adapters/search"
	modkit "mingle/internal/modkit"
	"mingle/internal/modkit/httpkit"
	"mingle/internal/platform/net/middleware"

	ehttp "mingle/internal/services/api/enrich/http"
	esvc "mingle/internal/services/api/enrich/service"
)

// Module implements the enrich API module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc esvc.Service
}

// Ports declares the injected transport ports for this module
type Ports struct {
	Admit middleware.AdmitPort
}

// New constructs the enrich module (config-driven, parity with other API modules)
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("enrich"),
		modkit.WithPrefix("/enrich"),
	}, opts...)...)

	cfg := FromConfig(deps.Cfg)

	var injected Ports
	if p, ok := b.Ports.(Ports); ok {
		injected = p
	}

	searchc := search.NewClient(search.Options{
		BaseURL:    cfg.SearchBaseURL,
		APIKey:     cfg.SearchAPIKey,
		Timeout:    cfg.SearchTimeout,
		MaxRetries: cfg.SearchRetries,
	})
	llmc := llm.NewClient(llm.Options{
		BaseURL: cfg.LLMBaseURL,
		APIKey:  cfg.LLMAPIKey,
		Timeout: cfg.LLMTimeout,
	})

	svc := esvc.New(esvc.Options{
		Search:         searchc,
		LLM:            llmc,
		KV:             deps.KV,
		PreferredModel: cfg.PreferredModel,
		ModelPrefs:     cfg.ModelPrefs,
	})

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = esvc.Service(svc)

	external := b.Register
	m.register = func(r httpkit.Router) {
		ehttp.Register(r, m.svc, injected.Admit)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return m.name }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return m.prefix }

// Ports returns the service port for cross-module use
func (m *Module) Ports() any { return m.ports }
