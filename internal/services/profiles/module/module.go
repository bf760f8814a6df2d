// Package module wires profiles into the API using modkit
package module

import (
	"context"

	"chirp/internal/core/author"
	modkit "chirp/internal/modkit"
	"chirp/internal/modkit/httpkit"
	"chirp/internal/services/profiles/domain"
	profileshttp "chirp/internal/services/profiles/http"
	profilessvc "chirp/internal/services/profiles/service"
)

// Ports are the outbound dependencies profiles needs
type Ports = domain.Deps

// Module implements the modkit.Module interface
type Module struct{ modkit.Base }

// New constructs a profiles module. Directory must be provided through WithPorts
func New(_ modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("profiles"), modkit.WithPrefix("/profiles")}, opts...)...)

	in, _ := b.Ports.(Ports)
	svc := profilessvc.New(in.Directory)

	return &Module{modkit.NewBase(b, func(r httpkit.Router) {
		profileshttp.Register(r, svc)
	}, adaptProfilesPort{svc: svc})}
}

type adaptProfilesPort struct{ svc *profilessvc.Svc }

func (a adaptProfilesPort) ByUsername(ctx context.Context, in domain.UsernameInput) (author.View, error) {
	return a.svc.ByUsername(ctx, in)
}
