package service

import (
	"context"

	"chirp/internal/core/author"
	perr "chirp/internal/platform/errors"
	"chirp/internal/services/posts/domain"
)

// enrich attaches authors in one identity call. Output has the same order and
// length as posts; unknown authors get a placeholder
func (s *Svc) enrich(ctx context.Context, posts []domain.Post) ([]domain.EnrichedPost, error) {
	out := make([]domain.EnrichedPost, 0, len(posts))
	if len(posts) == 0 {
		return out, nil
	}

	ids := make([]string, 0, len(posts))
	seen := make(map[string]struct{}, len(posts))
	for _, p := range posts {
		if _, ok := seen[p.AuthorID]; ok {
			continue
		}
		seen[p.AuthorID] = struct{}{}
		ids = append(ids, p.AuthorID)
	}

	users, err := s.ids.ResolveMany(ctx, ids)
	if err != nil {
		if perr.KindFor(err) != perr.KindInternal {
			err = perr.Wrap(err, perr.ErrorCodeUpstream, "resolve authors")
		}
		return nil, err
	}

	for _, p := range posts {
		view := author.Placeholder(p.AuthorID)
		if u, ok := users[p.AuthorID]; ok {
			view = author.From(p.AuthorID, u.Name(), u.Avatar())
		}
		out = append(out, domain.EnrichedPost{Post: p, Author: view})
	}
	return out, nil
}

func (s *Svc) enrichOne(ctx context.Context, p domain.Post) (domain.EnrichedPost, error) {
	out, err := s.enrich(ctx, []domain.Post{p})
	if err != nil {
		return domain.EnrichedPost{}, err
	}
	return out[0], nil
}
