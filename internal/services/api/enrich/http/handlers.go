// Package http provides http transport for enrich
package http

import (
	stdhttp "net/http"

	"mingle/internal/core/ratelimit"
	"mingle/internal/modkit/httpkit"
	"mingle/internal/platform/net/middleware"
	"mingle/internal/services/api/enrich/domain"
	svc "mingle/internal/services/api/enrich/service"
)

// Register mounts the router
// Both endpoints hit paid upstreams so they share the expensive budget
func Register(r httpkit.Router, s svc.Service, admit middleware.AdmitPort) {
	h := &handlers{svc: s}

	r.Group(func(gr httpkit.Router) {
		gr.Use(httpkit.RateLimited(admit, ratelimit.ProfileExpensive))
		httpkit.PostJSON[domain.EnrichInput](gr, "/", h.enrich)
		httpkit.PostJSON[domain.ProfileInput](gr, "/profile-search", h.profileSearch)
	})
}

type handlers struct{ svc svc.Service }

// swagger:route POST /enrich Enrich enrich
// @Summary Generate a bounded profile summary and tags for an attendee
// @Tags Enrich
// @Accept json
// @Produce json
// @Param payload body domain.EnrichInput true "Enrich"
// @Success 200 {object} domain.EnrichOutput "ok"
// @Failure 503 {object} httpkit.Envelope "generation unavailable"
// @Router /enrich [post]
func (h *handlers) enrich(r *stdhttp.Request, in domain.EnrichInput) (any, error) {
	return h.svc.Enrich(r.Context(), in)
}

// swagger:route POST /enrich/profile-search Enrich profileSearch
// @Summary Find the best public profile URL for a person
// @Tags Enrich
// @Accept json
// @Produce json
// @Param payload body domain.ProfileInput true "Profile search"
// @Success 200 {object} domain.ProfileOutput "ok"
// @Router /enrich/profile-search [post]
func (h *handlers) profileSearch(r *stdhttp.Request, in domain.ProfileInput) (any, error) {
	return h.svc.FindProfile(r.Context(), in)
}
