// Package service resolves public profiles
package service

import (
	"context"

	"chirp/internal/core/author"
	perr "chirp/internal/platform/errors"
	"chirp/internal/services/profiles/domain"
)

// Svc implements domain.ServicePort
type Svc struct {
	dir domain.Directory
}

// New creates a profiles service
func New(dir domain.Directory) *Svc {
	if dir == nil {
		panic("profiles.Service requires a Directory port")
	}
	return &Svc{dir: dir}
}

// ByUsername returns the author view for username or NOT_FOUND
func (s *Svc) ByUsername(ctx context.Context, in domain.UsernameInput) (author.View, error) {
	u, ok, err := s.dir.ResolveByUsername(ctx, in.Username)
	if err != nil {
		if perr.KindFor(err) != perr.KindInternal {
			err = perr.Wrap(err, perr.ErrorCodeUpstream, "resolve username")
		}
		return author.View{}, err
	}
	if !ok {
		return author.View{}, perr.NotFoundf("user %s not found", in.Username)
	}
	return author.From(u.ID, u.Name(), u.Avatar()), nil
}
