// Package http provides http transport for profiles
package http

import (
	stdhttp "net/http"

	"chirp/internal/modkit/httpkit"
	"chirp/internal/platform/net/http/bind"
	"chirp/internal/services/profiles/domain"
)

// Register mounts profile endpoints
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}
	httpkit.Get(r, "/{username}", h.byUsername)
}

type handlers struct{ svc domain.ServicePort }

// swagger:route GET /profiles/{username} Profiles profileByUsername
// @Summary Resolve a username to an author
// @Tags Profiles
// @Produce json
// @Param username path string true "username"
// @Success 200 {object} author.View "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /profiles/{username} [get]
func (h *handlers) byUsername(r *stdhttp.Request) (any, error) {
	in := domain.UsernameInput{Username: httpkit.Param(r, "username")}
	if err := bind.Validate(in); err != nil {
		return nil, err
	}
	return h.svc.ByUsername(r.Context(), in)
}
