// Package ratelimit provides sliding window limiters keyed by arbitrary strings
package ratelimit

import (
	"context"
	"time"

	"chirp/internal/platform/config"
	"chirp/internal/platform/store"
)

// Limiter admits or rejects one acquisition for key. A non-nil error means the
// check itself failed and says nothing about the quota
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// Config fixes the window parameters at construction
type Config struct {
	Limit  int
	Window time.Duration
	Prefix string

	// Backend is "redis" (default) or "memory". Memory is per process and
	// only fits single node dev runs
	Backend string
}

// Defaults are 3 acquisitions per rolling minute
const (
	DefaultLimit  = 3
	DefaultWindow = time.Minute
	DefaultPrefix = "ratelimit:posts"

	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// ConfigFrom reads RATELIMIT_* keys
func ConfigFrom(cfg config.Conf) Config {
	c := cfg.Prefix("RATELIMIT_")
	return Config{
		Limit:   c.MayInt("LIMIT", DefaultLimit),
		Window:  c.MayDuration("WINDOW", DefaultWindow),
		Prefix:  c.MayString("PREFIX", DefaultPrefix),
		Backend: c.MayString("BACKEND", BackendRedis),
	}.normalized()
}

func (c Config) normalized() Config {
	if c.Limit <= 0 {
		c.Limit = DefaultLimit
	}
	if c.Window <= 0 {
		c.Window = DefaultWindow
	}
	if c.Prefix == "" {
		c.Prefix = DefaultPrefix
	}
	return c
}

// New wires the configured backend, wrapped with decision recording when
// clickhouse is present. The redis backend without a client returns nil, meaning disabled
func New(cfg Config, rdb store.Redis, chc store.Clickhouse) Limiter {
	var l Limiter
	switch {
	case cfg.Backend == BackendMemory:
		l = NewMemory(cfg)
	case rdb != nil:
		l = NewRedis(rdb, cfg)
	default:
		return nil
	}
	if chc != nil {
		l = WithEvents(l, chc, cfg)
	}
	return l
}
