// Package modkit provides module wiring and core deps
package modkit

import "chirp/internal/modkit/module"

// Module is the common surface for API modules that can mount routes and expose ports.
// It is the same contract as module.Module so either import works
type Module = module.Module

// Builder constructs a Module from shared deps and options
// modules expose New(deps Deps, opts ...Option) Module
type Builder func(Deps, ...Option) Module
