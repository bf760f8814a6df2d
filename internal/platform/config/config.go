// Package config handles application configuration.
// Values come from the process environment, optionally layered over a flat YAML file
// named by CONFIG_FILE. The environment always wins over the file.
package config

import (
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"chirp/internal/platform/logger"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// FileEnv names the env var that points at an optional YAML config file
const FileEnv = "CONFIG_FILE"

// Conf is a namespaced view over configuration keys (e.g., "CORE_API_", "SERVICE_PGSQL_")
// Use New() for global access, or Prefix("CORE_API_") for module scopes.
type Conf struct {
	prefix string
	k      *koanf.Koanf
}

// New creates a root Conf (no prefix) from CONFIG_FILE (if set) and the environment.
// A CONFIG_FILE that cannot be read or parsed panics.
func New() Conf {
	c, err := Load(strings.TrimSpace(os.Getenv(FileEnv)))
	if err != nil {
		logger.Get().Panic().Err(err).Str("file", os.Getenv(FileEnv)).Msg("config file load failed")
	}
	return c
}

// Load builds a root Conf from the given YAML file (skipped when path is empty)
// and then the environment
func Load(path string) (Conf, error) {
	k := koanf.New(".")
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Conf{}, err
		}
	}
	// keys stay verbatim; env vars never contain the "." delimiter we split on
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return Conf{}, err
	}
	return Conf{k: k}, nil
}

// Prefix creates a child Conf with an additional prefix, e.g. cfg.Prefix("API_")
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p, k: c.k} }

// key composes the fully-qualified key name
func (c Conf) key(k string) string { return c.prefix + k }

// lookup returns the trimmed value for a fully-qualified key, "" when absent
func (c Conf) lookup(k string) string {
	if c.k == nil {
		return strings.TrimSpace(os.Getenv(k))
	}
	return strings.TrimSpace(c.k.String(k))
}

// MustString panics if the given key is missing or empty
func (c Conf) MustString(key string) string {
	k := c.key(key)
	v := c.lookup(k)
	if v == "" {
		logger.Get().Panic().Str("key", k).Msg("missing required config")
	}
	return v
}

// MustInt panics if the given key is missing, empty, or not an int
func (c Conf) MustInt(key string) int {
	s := c.MustString(key)
	v, err := strconv.Atoi(s)
	if err != nil {
		logger.Get().Panic().Str("key", c.key(key)).Str("value", s).Msg("invalid int value")
	}
	return v
}

// MustDuration panics if the given key is missing, empty, or not a valid duration
func (c Conf) MustDuration(key string) time.Duration {
	s := c.MustString(key)
	d, err := time.ParseDuration(s)
	if err != nil {
		logger.Get().Panic().Str("key", c.key(key)).Str("value", s).Msg("invalid duration (e.g., 250ms, 2s, 1h)")
	}
	return d
}

// MustURL panics if the given key is missing, empty, or not a valid absolute URL
func (c Conf) MustURL(key string) *url.URL {
	s := c.MustString(key)
	u, err := url.Parse(s)
	if err != nil || !u.IsAbs() {
		logger.Get().Panic().Str("key", c.key(key)).Str("value", s).Msg("invalid absolute URL")
	}
	return u
}

// MayString returns the value or def if missing/empty
func (c Conf) MayString(key, def string) string {
	if v := c.lookup(c.key(key)); v != "" {
		return v
	}
	return def
}

// MayInt returns the value or def if missing/empty; logs and returns def if invalid
func (c Conf) MayInt(key string, def int) int {
	s := c.lookup(c.key(key))
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	logger.Get().Warn().Str("key", c.key(key)).Str("value", s).Int("default", def).Msg("invalid int; using default")
	return def
}

// MayBool returns the value or def if missing/empty; logs and returns def if invalid
func (c Conf) MayBool(key string, def bool) bool {
	s := c.lookup(c.key(key))
	if s == "" {
		return def
	}
	if v, err := strconv.ParseBool(s); err == nil {
		return v
	}
	logger.Get().Warn().Str("key", c.key(key)).Str("value", s).Bool("default", def).Msg("invalid bool; using default")
	return def
}

// MayDuration returns the value or def if missing/empty; logs and returns def if invalid
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	s := c.lookup(c.key(key))
	if s == "" {
		return def
	}
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	logger.Get().Warn().Str("key", c.key(key)).Str("value", s).Dur("default", def).Msg("invalid duration; using default")
	return def
}

// MayCSV returns a slice of strings from a comma-separated value; def if missing/empty
func (c Conf) MayCSV(key string, def []string) []string {
	s := c.lookup(c.key(key))
	if s == "" {
		return def
	}
	out := make([]string, 0, 4)
	for p := range strings.SplitSeq(s, ",") {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// MayPort returns a net/http addr like ":4000". Bare ports are prefixed with ":".
// Invalid ports panic since the server cannot start with them anyway
func (c Conf) MayPort(key, def string) string {
	s := c.MayString(key, def)
	if strings.Contains(s, ":") {
		return s
	}
	p, err := strconv.Atoi(s)
	if err != nil || p < 1 || p > 65535 {
		logger.Get().Panic().Str("key", c.key(key)).Str("value", s).Msg("invalid TCP port; expected 1..65535")
	}
	return ":" + s
}
