// Package rpc dispatches named procedures to module ports
package rpc

import (
	"context"
	"sort"

	perr "chirp/internal/platform/errors"
	pnet "chirp/internal/platform/net"
	"chirp/internal/platform/net/http/bind"
	postsdomain "chirp/internal/services/posts/domain"
	profilesdomain "chirp/internal/services/profiles/domain"
)

// Procedure is one callable entry of the table
type Procedure struct {
	Name string
	// Auth rejects anonymous callers before input is decoded
	Auth bool
	call func(ctx context.Context, raw []byte) (any, error)
}

// Typed builds a Procedure whose raw input is decoded and validated into T
func Typed[T any](name string, auth bool, fn func(context.Context, T) (any, error)) Procedure {
	return Procedure{
		Name: name,
		Auth: auth,
		call: func(ctx context.Context, raw []byte) (any, error) {
			in, err := bind.Decode[T](raw)
			if err != nil {
				return nil, err
			}
			return fn(ctx, in)
		},
	}
}

// As returns p registered under another name
func (p Procedure) As(name string) Procedure {
	p.Name = name
	return p
}

// NoInput is the input of procedures that take none
type NoInput struct{}

// Table maps procedure names to procedures
type Table map[string]Procedure

// NewTable indexes ps by name; a duplicate name panics
func NewTable(ps ...Procedure) Table {
	t := make(Table, len(ps))
	for _, p := range ps {
		if _, dup := t[p.Name]; dup {
			panic("rpc: duplicate procedure " + p.Name)
		}
		t[p.Name] = p
	}
	return t
}

// Names lists procedure names in order
func (t Table) Names() []string {
	out := make([]string, 0, len(t))
	for n := range t {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Dispatch runs the named procedure. Unknown names are NOT_FOUND and
// auth is checked before anything else touches the input
func (t Table) Dispatch(ctx context.Context, name string, raw []byte) (any, error) {
	p, ok := t[name]
	if !ok {
		return nil, perr.NotFoundf("unknown procedure %q", name)
	}
	if p.Auth && !pnet.Authenticated(ctx) {
		return nil, perr.Unauthorizedf("sign in required")
	}
	return p.call(ctx, raw)
}

// Procedures is the public procedure set over the posts and profiles ports
// The page clients call posts.getPosts and profile.getUserbyUsername, which stay
// as aliases of the canonical names
func Procedures(posts postsdomain.ServicePort, profiles profilesdomain.ServicePort) Table {
	byUser := Typed("posts.getPostsByUserId", false, func(ctx context.Context, in postsdomain.ByUserInput) (any, error) {
		return posts.ListByAuthor(ctx, in)
	})
	byUsername := Typed("profile.getUserByUsername", false, func(ctx context.Context, in profilesdomain.UsernameInput) (any, error) {
		return profiles.ByUsername(ctx, in)
	})
	return NewTable(
		Typed("posts.getAll", false, func(ctx context.Context, _ NoInput) (any, error) {
			return posts.ListAll(ctx)
		}),
		byUser,
		byUser.As("posts.getPosts"),
		Typed("posts.getById", false, func(ctx context.Context, in postsdomain.ByIDInput) (any, error) {
			return posts.GetByID(ctx, in)
		}),
		byUsername,
		byUsername.As("profile.getUserbyUsername"),
		Typed("posts.create", true, func(ctx context.Context, in postsdomain.CreateInput) (any, error) {
			return posts.Create(ctx, in)
		}),
	)
}
