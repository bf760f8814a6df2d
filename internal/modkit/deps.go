package modkit

import (
	"chirp/internal/modkit/repokit"
	"chirp/internal/platform/config"
	"chirp/internal/platform/logger"
	"chirp/internal/platform/net/middleware"
	"chirp/internal/platform/store"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log logger.Logger
	Cfg config.Conf

	// PG is required by every module that reads or writes posts
	PG repokit.TxRunner
	// CH and RDS are optional; nil when not configured
	CH  store.Clickhouse
	RDS store.Redis

	// Auth resolves the caller for Protected routes; nil rejects every protected call
	Auth middleware.AuthPort
}

// Probes lists the configured backends for readiness checks
func (d Deps) Probes() map[string]store.Pinger {
	return (&store.Store{PG: d.PG, CH: d.CH, RDS: d.RDS}).Probes()
}
