// Package module wires posts into the API using modkit
package module

import (
	modkit "chirp/internal/modkit"
	"chirp/internal/modkit/httpkit"
	postsdomain "chirp/internal/services/posts/domain"
	postshttp "chirp/internal/services/posts/http"
	postsrepo "chirp/internal/services/posts/repo"
	postssvc "chirp/internal/services/posts/service"
)

// Ports are the outbound dependencies posts needs, injected with modkit.WithPorts
type Ports = postsdomain.Deps

// Module implements the modkit.Module interface
type Module struct {
	modkit.Base
	svc postssvc.Service
}

// New constructs a posts module. Identity must be provided through WithPorts
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("posts"), modkit.WithPrefix("/posts")}, opts...)...)

	in, _ := b.Ports.(Ports)
	o := FromConfig(deps.Cfg)
	svc := postssvc.New(deps.PG, postsrepo.NewPG(), in, o.FeedLimit)

	m := &Module{svc: svc}
	m.Base = modkit.NewBase(b, func(r httpkit.Router) {
		postshttp.Register(r, svc, deps.Auth)
	}, adaptPostsPort{svc: svc})
	return m
}
