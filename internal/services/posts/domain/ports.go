package domain

import (
	"context"

	"chirp/internal/adapters/identity"
)

// ServicePort is what the posts module exposes to transports and other modules
type ServicePort interface {
	ListAll(ctx context.Context) ([]EnrichedPost, error)
	ListByAuthor(ctx context.Context, in ByUserInput) ([]EnrichedPost, error)
	GetByID(ctx context.Context, in ByIDInput) (EnrichedPost, error)
	Create(ctx context.Context, in CreateInput) (EnrichedPost, error)
}

// Identity resolves author ids in one batch; ids it does not know are absent
type Identity interface {
	ResolveMany(ctx context.Context, ids []string) (map[string]identity.User, error)
}

// Limiter admits writes per author. An error means the check failed
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// Deps are the outbound ports injected into the posts module.
// A nil Limiter disables rate limiting
type Deps struct {
	Identity Identity
	Limiter  Limiter
}
