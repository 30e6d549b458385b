// Package module wires attendees into the API using modkit
package module

import (
	"net/http"

	modkit "mingle/internal/modkit"
	"mingle/internal/modkit/httpkit"
	"mingle/internal/platform/net/middleware"

	ahttp "mingle/internal/services/api/attendees/http"
	arepo "mingle/internal/services/api/attendees/repo"
	asvc "mingle/internal/services/api/attendees/service"
)

// Module implements the attendees API module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc asvc.Service
}

// Ports declares the injected transport ports for this module
type Ports struct {
	Auth  middleware.AuthPort
	Admit middleware.AdmitPort
}

// New constructs the attendees module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("attendees"),
		modkit.WithPrefix("/attendees"),
	}, opts...)...)

	var injected Ports
	if p, ok := b.Ports.(Ports); ok {
		injected = p
	}

	svc := asvc.New(deps.PG, arepo.NewPG())

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = asvc.Service(svc)

	external := b.Register
	m.register = func(r httpkit.Router) {
		ahttp.Register(r, m.svc, injected.Auth, injected.Admit)
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
