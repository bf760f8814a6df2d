// Package http provides http transport for posts
package http

import (
	stdhttp "net/http"

	"chirp/internal/modkit/httpkit"
	"chirp/internal/platform/net/http/bind"
	"chirp/internal/platform/net/middleware"
	"chirp/internal/services/posts/domain"
)

// Register mounts posts endpoints. Writes sit behind auth
func Register(r httpkit.Router, s domain.ServicePort, auth middleware.AuthPort) {
	h := &handlers{svc: s}
	httpkit.Get(r, "/", h.listAll)
	httpkit.Get(r, "/by-user/{userId}", h.byUser)
	httpkit.Get(r, "/{id}", h.byID)

	httpkit.Protected(r, auth, func(pr httpkit.Router) {
		httpkit.CreateJSON[domain.CreateInput](pr, "/", h.create)
	})
}

type handlers struct{ svc domain.ServicePort }

// swagger:route GET /posts Posts postsGetAll
// @Summary Latest posts, newest first
// @Tags Posts
// @Produce json
// @Success 200 {array} domain.EnrichedPost "ok"
// @Router /posts [get]
func (h *handlers) listAll(r *stdhttp.Request) (any, error) {
	return h.svc.ListAll(r.Context())
}

// swagger:route GET /posts/by-user/{userId} Posts postsByUser
// @Summary Posts by one author
// @Tags Posts
// @Produce json
// @Param userId path string true "author id"
// @Success 200 {array} domain.EnrichedPost "ok"
// @Router /posts/by-user/{userId} [get]
func (h *handlers) byUser(r *stdhttp.Request) (any, error) {
	in := domain.ByUserInput{UserID: httpkit.Param(r, "userId")}
	if err := bind.Validate(in); err != nil {
		return nil, err
	}
	return h.svc.ListByAuthor(r.Context(), in)
}

// swagger:route GET /posts/{id} Posts postsGetById
// @Summary One post
// @Tags Posts
// @Produce json
// @Param id path string true "post id"
// @Success 200 {object} domain.EnrichedPost "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /posts/{id} [get]
func (h *handlers) byID(r *stdhttp.Request) (any, error) {
	in := domain.ByIDInput{ID: httpkit.Param(r, "id")}
	if err := bind.Validate(in); err != nil {
		return nil, err
	}
	return h.svc.GetByID(r.Context(), in)
}

// swagger:route POST /posts Posts postsCreate
// @Summary Create a post as the signed in caller
// @Tags Posts
// @Accept json
// @Produce json
// @Param payload body domain.CreateInput true "content"
// @Success 201 {object} domain.EnrichedPost "created"
// @Failure 401 {object} httpkit.Envelope "sign in required"
// @Failure 429 {object} httpkit.Envelope "rate limited"
// @Router /posts [post]
func (h *handlers) create(r *stdhttp.Request, in domain.CreateInput) (any, error) {
	return h.svc.Create(r.Context(), in)
}
