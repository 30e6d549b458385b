// Package http provides http transport for attendees
package http

import (
	stdhttp "net/http"

	"mingle/internal/core/ratelimit"
	"mingle/internal/modkit/httpkit"
	"mingle/internal/platform/net/middleware"
	"mingle/internal/services/api/attendees/domain"
	svc "mingle/internal/services/api/attendees/service"
)

// Register mounts the router
// Lookup rides the lookup budget; claim and seed ride the strict one,
// and claim additionally requires a bearer identity
func Register(r httpkit.Router, s svc.Service, auth middleware.AuthPort, admit middleware.AdmitPort) {
	h := &handlers{svc: s}

	r.Group(func(gr httpkit.Router) {
		gr.Use(httpkit.RateLimited(admit, ratelimit.ProfileLookup))
		httpkit.PostJSON[domain.LookupInput](gr, "/lookup", h.lookup)
	})

	r.Group(func(gr httpkit.Router) {
		gr.Use(httpkit.RateLimited(admit, ratelimit.ProfileStrict))
		httpkit.PostJSON[domain.CreateInput](gr, "/", h.create)

		httpkit.Protected(gr, auth, func(pr httpkit.Router) {
			httpkit.PostJSON[domain.ClaimInput](pr, "/claim", h.claim)
		})
	})
}

type handlers struct{ svc svc.Service }

// swagger:route POST /attendees/lookup Attendees lookup
// @Summary Resolve a self-reported name against unclaimed records
// @Tags Attendees
// @Accept json
// @Produce json
// @Param payload body domain.LookupInput true "Lookup"
// @Success 200 {object} domain.LookupOutput "ok"
// @Router /attendees/lookup [post]
func (h *handlers) lookup(r *stdhttp.Request, in domain.LookupInput) (any, error) {
	return h.svc.Lookup(r.Context(), in)
}

// swagger:route POST /attendees/claim Attendees claim
// @Summary Claim an unclaimed record for the authenticated user
// @Tags Attendees
// @Accept json
// @Produce json
// @Param payload body domain.ClaimInput true "Claim"
// @Success 200 {object} domain.Attendee "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Failure 409 {object} httpkit.Envelope "already registered"
// @Router /attendees/claim [post]
func (h *handlers) claim(r *stdhttp.Request, in domain.ClaimInput) (any, error) {
	uid, err := httpkit.User(r)
	if err != nil {
		return nil, err
	}
	return h.svc.Claim(r.Context(), uid, in)
}

// swagger:route POST /attendees Attendees create
// @Summary Seed an unclaimed directory record
// @Tags Attendees
// @Accept json
// @Produce json
// @Param payload body domain.CreateInput true "Create"
// @Success 201 {object} domain.Attendee "created"
// @Router /attendees [post]
func (h *handlers) create(r *stdhttp.Request, in domain.CreateInput) (any, error) {
	a, err := h.svc.Create(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(a), nil
}
