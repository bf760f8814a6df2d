package store

import (
	"time"

	"chirp/internal/platform/config"
)

// Config aggregates per backend configuration
type Config struct {
	AppName string
	Version string

	PG  PGConfig
	CH  CHConfig
	RDS RedisConfig
}

// PGConfig configures postgres connectivity and tracing
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int
	// ConnectAttempts bounds the startup ping loop, default 20
	ConnectAttempts int
}

// CHConfig configures clickhouse connectivity
type CHConfig struct {
	Enabled  bool
	URL      string
	// Optional keeps Open going without clickhouse when it cannot be reached
	Optional bool
}

// RedisConfig configures redis connectivity
type RedisConfig struct {
	Enabled  bool
	Addr     string
	DB       int
	Password string
	// Optional keeps Open going without redis when it cannot be reached
	Optional bool
}

// ConfigFrom reads SERVICE_PGSQL_*, SERVICE_REDIS_* and SERVICE_CLICKHOUSE_* from cfg.
// Postgres is required; redis and clickhouse are enabled when their address is set
// and optional, so an unreachable one is dropped rather than failing startup
func ConfigFrom(cfg config.Conf, appName, version string) Config {
	pgc := cfg.Prefix("SERVICE_PGSQL_")
	rc := cfg.Prefix("SERVICE_REDIS_")
	chc := cfg.Prefix("SERVICE_CLICKHOUSE_")

	out := Config{
		AppName: appName,
		Version: version,
		PG: PGConfig{
			Enabled:     true,
			URL:         pgc.MustString("DBURL"),
			MaxConns:    int32(pgc.MayInt("MAX_CONNS", 16)),
			LogSQL:      pgc.MayBool("LOG_SQL", false),
			SlowQueryMs: pgc.MayInt("SLOW_MS", int((250 * time.Millisecond).Milliseconds())),
		},
		RDS: RedisConfig{
			Addr:     rc.MayString("ADDR", ""),
			DB:       rc.MayInt("DB", 0),
			Password: rc.MayString("PASSWORD", ""),
			Optional: true,
		},
		CH: CHConfig{URL: chc.MayString("DBURL", ""), Optional: true},
	}
	out.RDS.Enabled = out.RDS.Addr != ""
	out.CH.Enabled = out.CH.URL != ""
	return out
}
