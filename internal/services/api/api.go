// Package api provides the HTTP API for the application
package api

import (
	"mingle/internal/platform/config"
	"mingle/internal/platform/kv"
	"mingle/internal/platform/logger"
	phttp "mingle/internal/platform/net/http"
	"mingle/internal/platform/net/middleware"
	"mingle/internal/platform/store"

	"mingle/internal/modkit"
	"mingle/internal/modkit/httpkit"
	"mingle/internal/modkit/module"
	"mingle/internal/modkit/swaggerkit"

	"mingle/internal/core/ratelimit"

	attendeesmod "mingle/internal/services/api/attendees/module"
	enrichmod "mingle/internal/services/api/enrich/module"
	metamod "mingle/internal/services/api/meta/module"
)

// Options are the API options
type Options struct {
	Config config.Conf
	Store  *store.Store
	KV     kv.Store
	Logger *logger.Logger

	// Auth guards the claim flow; nil disables bearer auth
	Auth middleware.AuthPort

	// Admit is the rate-limit port; nil disables admission control
	Admit middleware.AdmitPort

	EnableSwagger bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
		KV:  opt.KV,
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}

	mods := []module.Module{
		metamod.New(deps,
			modkit.WithMiddlewares(httpkit.RateLimited(opt.Admit, ratelimit.ProfileAdmin)),
		),
		attendeesmod.New(deps,
			modkit.WithPorts(attendeesmod.Ports{Auth: opt.Auth, Admit: opt.Admit}),
		),
		enrichmod.New(deps,
			modkit.WithPorts(enrichmod.Ports{Admit: opt.Admit}),
		),
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		swaggerkit.Mount(r, opt.EnableSwagger)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})
}
