// @title         Chirp API
// @version       0.1.0
// @description   Emoji-only micro posts

package main

import (
	"context"

	"chirp/internal/core/version"
	"chirp/internal/modkit/repokit"
	"chirp/internal/platform/config"
	"chirp/internal/platform/logger"
	phttp "chirp/internal/platform/net/http"
	"chirp/internal/platform/store"

	"chirp/internal/services/api"
)

func main() {
	root := config.New()
	// service-scoped config for HTTP etc (CORE_API_*)
	apiCfg := root.Prefix("CORE_API_")

	l := logger.Get()

	// postgres is required; redis and clickhouse come up when configured
	st, err := store.Open(
		context.Background(),
		store.ConfigFrom(root, "chirp-api", version.Version()),
		store.WithLogger(*l),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()
	repokit.MustGuard(context.Background(), st)

	// http server (reads CORE_API_PORT / CORE_API_ADDR)
	srv := phttp.NewServer(apiCfg)

	api.Mount(
		srv.Router(),
		api.Options{
			Config:         root,
			Store:          st,
			Logger:         l,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
		},
	)

	if err := srv.Run(context.Background()); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
