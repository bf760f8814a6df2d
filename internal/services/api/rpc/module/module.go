// Package module mounts the procedure dispatcher
package module

import (
	modkit "chirp/internal/modkit"
	"chirp/internal/modkit/httpkit"
	"chirp/internal/modkit/swaggerkit"
	"chirp/internal/services/api/rpc"
	rpchttp "chirp/internal/services/api/rpc/http"
	postsdomain "chirp/internal/services/posts/domain"
	profilesdomain "chirp/internal/services/profiles/domain"
)

// Ports are the module ports the dispatcher calls into
type Ports struct {
	Posts    postsdomain.ServicePort
	Profiles profilesdomain.ServicePort
}

// Module implements the modkit.Module interface
type Module struct{ modkit.Base }

// New constructs the rpc module. Both ports are required
func New(_ modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("rpc"), modkit.WithPrefix("/rpc")}, opts...)...)

	in, _ := b.Ports.(Ports)
	if in.Posts == nil || in.Profiles == nil {
		panic("rpc module requires Posts and Profiles ports")
	}
	table := rpc.Procedures(in.Posts, in.Profiles)
	swaggerkit.Register("rpc", procedureEnum(table.Names()))

	return &Module{modkit.NewBase(b, func(r httpkit.Router) {
		rpchttp.Register(r, table)
	}, table)}
}

// procedureEnum lists the live procedure names on the dispatcher's path parameter
func procedureEnum(names []string) swaggerkit.SpecMutator {
	enum := make([]any, len(names))
	for i, n := range names {
		enum[i] = n
	}
	return func(spec map[string]any) {
		paths, _ := spec["paths"].(map[string]any)
		path, _ := paths["/rpc/{procedure}"].(map[string]any)
		op, _ := path["post"].(map[string]any)
		params, _ := op["parameters"].([]any)
		for _, p := range params {
			param, _ := p.(map[string]any)
			if param["name"] != "procedure" {
				continue
			}
			if schema, ok := param["schema"].(map[string]any); ok {
				schema["enum"] = enum
			}
		}
	}
}
