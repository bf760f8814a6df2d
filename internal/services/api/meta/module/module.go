// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"time"

	modkit "chirp/internal/modkit"
	"chirp/internal/modkit/httpkit"
	"chirp/internal/modkit/module"

	metahttp "chirp/internal/services/api/meta/http"
)

// Module implements the modkit.Module interface
type Module struct {
	modkit.Base
	startedAt time.Time
}

// New constructs a meta module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	m := &Module{startedAt: time.Now()}

	probes := map[string]metahttp.Pinger{}
	for name, p := range deps.Probes() {
		probes[name] = p
	}
	m.Base = modkit.NewBase(b, func(r httpkit.Router) {
		metahttp.Register(r, metahttp.Deps{
			ServiceName: "chirp-api",
			StartedAt:   m.startedAt,
			Probes:      probes,
			Required:    []string{"pg"},
			Optional:    []string{"redis", "clickhouse"},
			Modules:     module.Names,
		})
	}, nil)
	return m
}
