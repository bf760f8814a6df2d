package module

import (
	"context"

	"chirp/internal/services/posts/domain"
	postssvc "chirp/internal/services/posts/service"
)

// adaptPostsPort exposes service methods as the module's ServicePort
type adaptPostsPort struct{ svc postssvc.Service }

var _ domain.ServicePort = adaptPostsPort{}

func (a adaptPostsPort) ListAll(ctx context.Context) ([]domain.EnrichedPost, error) {
	return a.svc.ListAll(ctx)
}

func (a adaptPostsPort) ListByAuthor(ctx context.Context, in domain.ByUserInput) ([]domain.EnrichedPost, error) {
	return a.svc.ListByAuthor(ctx, in)
}

func (a adaptPostsPort) GetByID(ctx context.Context, in domain.ByIDInput) (domain.EnrichedPost, error) {
	return a.svc.GetByID(ctx, in)
}

func (a adaptPostsPort) Create(ctx context.Context, in domain.CreateInput) (domain.EnrichedPost, error) {
	return a.svc.Create(ctx, in)
}
