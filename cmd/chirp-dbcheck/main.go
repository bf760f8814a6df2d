// Command chirp-dbcheck connects to the configured backends and reports what it finds
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"chirp/internal/adapters/ratelimit"
	"chirp/internal/core/version"
	"chirp/internal/platform/config"
	"chirp/internal/platform/logger"
	"chirp/internal/platform/store"
	postsrepo "chirp/internal/services/posts/repo"
)

func main() {
	migrate := flag.Bool("migrate", false, "apply the posts schema (and the clickhouse events table when configured)")
	timeout := flag.Duration("timeout", 30*time.Second, "overall deadline")
	flag.Parse()

	l := logger.Get()
	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	cfg := store.ConfigFrom(config.New(), "chirp-dbcheck", version.Version())
	// a configured backend that is down is a failed check here
	cfg.RDS.Optional, cfg.CH.Optional = false, false
	st, err := store.Open(ctx, cfg, store.WithLogger(*l))
	if err != nil {
		l.Error().Err(err).Msg("store.Open failed")
		os.Exit(1)
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	if err := run(ctx, st, *migrate); err != nil {
		l.Error().Err(err).Msg("dbcheck failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, st *store.Store, migrate bool) error {
	v, err := store.Scalar[string](ctx, st.PG, "select version()")
	if err != nil {
		return fmt.Errorf("postgres: %w", err)
	}
	fmt.Println("postgres:", v)

	if st.RDS != nil {
		if err := st.RDS.Ping(ctx); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		fmt.Println("redis: ok")
	}
	if st.CH != nil {
		if err := st.CH.Ping(ctx); err != nil {
			return fmt.Errorf("clickhouse: %w", err)
		}
		fmt.Println("clickhouse: ok")
	}

	if !migrate {
		return nil
	}
	if err := postsrepo.Migrate(ctx, st.PG); err != nil {
		return err
	}
	fmt.Println("posts schema applied")
	if st.CH != nil {
		if err := ratelimit.EnsureEventsTable(ctx, st.CH); err != nil {
			return fmt.Errorf("clickhouse: %w", err)
		}
		fmt.Println("ratelimit_events table ready")
	}
	return nil
}
