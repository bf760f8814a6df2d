package modkit

import (
	"net/http"

	"chirp/internal/modkit/httpkit"
	str "chirp/internal/platform/strings"
)

// Built is a plain struct with the fields modules care about
type Built struct {
	Name   string
	Prefix string
	Mw     []func(http.Handler) http.Handler
	Ports  any

	// router hooks set via options and exposed to modules
	Subrouter func(httpkit.Router) httpkit.Router
	Register  func(httpkit.Router)
}

// Build applies Option funcs over the defaults and returns a plain struct.
// Later options win, so modules pass their defaults first
func Build(opts ...Option) Built {
	var c buildCfg
	for _, o := range opts {
		o(&c)
	}
	if c.subrouter == nil {
		c.subrouter = func(r httpkit.Router) httpkit.Router { return r }
	}
	if c.register == nil {
		c.register = func(httpkit.Router) {}
	}
	return Built{
		Name:      c.name,
		Prefix:    c.prefix,
		Mw:        append([]func(http.Handler) http.Handler(nil), c.mw...),
		Ports:     c.ports,
		Subrouter: c.subrouter,
		Register:  c.register,
	}
}

// Base implements the routing half of Module. Modules embed it and add Ports
type Base struct {
	b     Built
	own   func(httpkit.Router)
	ports any
}

// NewBase pairs a Built with the module's own route registration and outbound ports
func NewBase(b Built, register func(httpkit.Router), ports any) Base {
	return Base{b: b, own: register, ports: ports}
}

// MountRoutes mounts the module under its prefix, applying its middleware and hooks
func (m Base) MountRoutes(r httpkit.Router) {
	r.Route(str.MustPrefix(m.b.Prefix), func(rr httpkit.Router) {
		if len(m.b.Mw) > 0 {
			rr.Use(m.b.Mw...)
		}
		rr = m.b.Subrouter(rr)
		if m.own != nil {
			m.own(rr)
		}
		m.b.Register(rr)
	})
}

// Name returns the module name
func (m Base) Name() string { return str.MustString(m.b.Name, "module name") }

// Prefix returns the module route prefix
func (m Base) Prefix() string { return m.b.Prefix }

// Ports returns what the module exposes to other modules
func (m Base) Ports() any { return m.ports }
