// Package repo provides postgres access for posts
package repo

import (
	"context"
	_ "embed"
	"errors"

	"chirp/internal/modkit/repokit"
	perr "chirp/internal/platform/errors"
	"chirp/internal/platform/store"
	"chirp/internal/services/posts/domain"
)

// Schema creates the posts table and its indexes
//
//go:embed schema.sql
var Schema string

// MaxList caps every list query
const MaxList = 100

// Repo defines the repository contract for posts
type Repo interface {
	ListAll(ctx context.Context, limit int) ([]domain.Post, error)
	ListByAuthor(ctx context.Context, authorID string, limit int) ([]domain.Post, error)
	GetByID(ctx context.Context, id string) (domain.Post, error)
	Insert(ctx context.Context, id, authorID, content string) (domain.Post, error)
}

type (
	// PG implements the Repo interface using Postgres
	PG struct{}

	// queries holds the database query methods
	queries struct{ q repokit.Queryer }
)

// NewPG creates a new Postgres repository binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind binds a Postgres queryer to the Repo implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

// schema applies DDL on whatever queryer it is bound to
type schema struct{ q repokit.Queryer }

var schemaBinder = repokit.BindFunc[schema](func(q repokit.Queryer) schema { return schema{q: q} })

// Migrate applies Schema in one transaction
func Migrate(ctx context.Context, db repokit.TxRunner) error {
	return repokit.WithTx(ctx, db, schemaBinder, func(s schema) error {
		_, err := s.q.Exec(ctx, Schema)
		return perr.FromPostgres(err, "apply posts schema")
	})
}

const cols = `id, created_at, content, author_id`

func scanPost(r repokit.Row) (domain.Post, error) {
	var p domain.Post
	err := r.Scan(&p.ID, &p.CreatedAt, &p.Content, &p.AuthorID)
	return p, err
}

func clamp(limit int) int {
	if limit <= 0 || limit > MaxList {
		return MaxList
	}
	return limit
}

func (r *queries) ListAll(ctx context.Context, limit int) ([]domain.Post, error) {
	const sql = `select ` + cols + ` from posts order by created_at desc, id desc limit $1`
	out, err := store.Many(ctx, r.q, scanPost, sql, clamp(limit))
	if err != nil {
		return nil, perr.FromPostgres(err, "list posts")
	}
	return out, nil
}

func (r *queries) ListByAuthor(ctx context.Context, authorID string, limit int) ([]domain.Post, error) {
	const sql = `select ` + cols + ` from posts where author_id = $1 order by created_at desc, id desc limit $2`
	out, err := store.Many(ctx, r.q, scanPost, sql, authorID, clamp(limit))
	if err != nil {
		return nil, perr.FromPostgres(err, "list posts by author")
	}
	return out, nil
}

func (r *queries) GetByID(ctx context.Context, id string) (domain.Post, error) {
	const sql = `select ` + cols + ` from posts where id = $1`
	p, err := store.One(ctx, r.q, scanPost, sql, id)
	if errors.Is(err, perr.ErrNotFound) {
		return domain.Post{}, perr.NotFoundf("post %s not found", id)
	}
	if err != nil {
		return domain.Post{}, perr.FromPostgres(err, "get post")
	}
	return p, nil
}

func (r *queries) Insert(ctx context.Context, id, authorID, content string) (domain.Post, error) {
	const sql = `insert into posts (id, author_id, content) values ($1, $2, $3) returning ` + cols
	p, err := store.One(ctx, r.q, scanPost, sql, id, authorID, content)
	if err != nil {
		return domain.Post{}, perr.FromPostgresWithField(err, "create post")
	}
	return p, nil
}
