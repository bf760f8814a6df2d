// Package service contains posts workflows
package service

import (
	"context"

	"chirp/internal/core/emoji"
	"chirp/internal/modkit/repokit"
	perr "chirp/internal/platform/errors"
	"chirp/internal/platform/logger"
	pnet "chirp/internal/platform/net"
	"chirp/internal/services/posts/domain"
	"chirp/internal/services/posts/repo"

	"github.com/google/uuid"
)

// Service defines the service contract for posts
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	Repo repo.Repo

	ids   domain.Identity
	lim   domain.Limiter
	limit int
	newID func() string
}

// New creates a posts service. The limiter in deps may be nil
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], deps domain.Deps, feedLimit int) *Svc {
	if db == nil {
		panic("posts.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("posts.Service requires a non nil Repo binder")
	}
	if deps.Identity == nil {
		panic("posts.Service requires an Identity port")
	}
	return &Svc{
		Repo:  binder.Bind(db),
		ids:   deps.Identity,
		lim:   deps.Limiter,
		limit: feedLimit,
		newID: uuid.NewString,
	}
}

// ListAll returns the newest posts with their authors
func (s *Svc) ListAll(ctx context.Context) ([]domain.EnrichedPost, error) {
	posts, err := s.Repo.ListAll(ctx, s.limit)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, posts)
}

// ListByAuthor returns one author's newest posts
func (s *Svc) ListByAuthor(ctx context.Context, in domain.ByUserInput) ([]domain.EnrichedPost, error) {
	posts, err := s.Repo.ListByAuthor(ctx, in.UserID, s.limit)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, posts)
}

// GetByID returns one post, NOT_FOUND when absent
func (s *Svc) GetByID(ctx context.Context, in domain.ByIDInput) (domain.EnrichedPost, error) {
	p, err := s.Repo.GetByID(ctx, in.ID)
	if err != nil {
		return domain.EnrichedPost{}, err
	}
	return s.enrichOne(ctx, p)
}

// Create stores a post for the signed in caller.
// Order: caller, content, quota, write, enrich
func (s *Svc) Create(ctx context.Context, in domain.CreateInput) (domain.EnrichedPost, error) {
	authorID := pnet.UserID(ctx)
	if authorID == "" {
		return domain.EnrichedPost{}, perr.Unauthorizedf("sign in required")
	}

	content, err := emoji.Check(in.Content)
	if err != nil {
		return domain.EnrichedPost{}, perr.WithField(
			perr.Wrap(err, perr.ErrorCodeValidation, "content must be 1 to 280 emoji"), "content")
	}

	if s.lim != nil {
		ok, lerr := s.lim.Allow(ctx, authorID)
		switch {
		case lerr != nil:
			logger.C(ctx).Warn().Err(lerr).Msg("rate limit check failed, allowing post")
		case !ok:
			return domain.EnrichedPost{}, perr.TooManyRequestsf("slow down, too many posts")
		}
	}

	p, err := s.Repo.Insert(ctx, s.newID(), authorID, content)
	if err != nil {
		return domain.EnrichedPost{}, err
	}
	logger.C(ctx).Info().Str("post_id", p.ID).Msg("post created")
	return s.enrichOne(ctx, p)
}
