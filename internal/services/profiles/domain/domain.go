// Package domain holds profile lookup contracts
package domain

import (
	"context"

	"chirp/internal/adapters/identity"
	"chirp/internal/core/author"
)

// UsernameInput selects a profile by handle
type UsernameInput struct {
	Username string `json:"username" validate:"required,max=64" example:"robin"`
}

// ServicePort is what the profiles module exposes
type ServicePort interface {
	ByUsername(ctx context.Context, in UsernameInput) (author.View, error)
}

// Directory finds a user by username
type Directory interface {
	ResolveByUsername(ctx context.Context, username string) (identity.User, bool, error)
}

// Deps are the outbound ports injected into the profiles module
type Deps struct {
	Directory Directory
}
