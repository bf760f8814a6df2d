// Package api provides the HTTP API for the application
package api

import (
	"errors"
	"time"

	"chirp/internal/adapters/auth"
	"chirp/internal/adapters/identity"
	"chirp/internal/adapters/ratelimit"
	"chirp/internal/platform/config"
	"chirp/internal/platform/logger"
	phttp "chirp/internal/platform/net/http"
	"chirp/internal/platform/net/middleware"
	"chirp/internal/platform/store"

	"chirp/internal/modkit"
	"chirp/internal/modkit/httpkit"
	"chirp/internal/modkit/module"
	"chirp/internal/modkit/swaggerkit"

	metamod "chirp/internal/services/api/meta/module"
	rpcmod "chirp/internal/services/api/rpc/module"
	postsdomain "chirp/internal/services/posts/domain"
	postsmod "chirp/internal/services/posts/module"
	profilesdomain "chirp/internal/services/profiles/domain"
	profilesmod "chirp/internal/services/profiles/module"
)

// Directory is the user directory both posts and profiles read from
type Directory interface {
	postsdomain.Identity
	profilesdomain.Directory
}

// Options are the API options
type Options struct {
	// Config is the root config; the api reads CORE_API_* below it
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool

	// Directory, Auth and Limiter replace the config built adapters when set
	Directory Directory
	Auth      middleware.AuthPort
	Limiter   ratelimit.Limiter
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	log := opt.Logger
	if log == nil {
		log = logger.Named("api")
	}
	apiCfg := opt.Config.Prefix("CORE_API_")

	st := opt.Store
	if st == nil {
		st = &store.Store{}
	}
	deps := modkit.Deps{
		Log:  *log,
		Cfg:  apiCfg,
		PG:   st.PG,
		CH:   st.CH,
		RDS:  st.RDS,
		Auth: opt.Auth,
	}
	if deps.Auth == nil {
		deps.Auth = sessionAuth(opt.Config, log)
	}

	dir := opt.Directory
	if dir == nil {
		dir = identity.NewClient(identity.OptionsFrom(opt.Config))
	}

	lim := opt.Limiter
	if lim == nil {
		lim = ratelimit.New(ratelimit.ConfigFrom(opt.Config), st.RDS, st.CH)
	}
	if lim == nil {
		log.Warn().Msg("rate limiting disabled, no redis configured")
	}

	posts := postsmod.New(deps, modkit.WithPorts(postsmod.Ports{Identity: dir, Limiter: lim}))
	profiles := profilesmod.New(deps, modkit.WithPorts(profilesmod.Ports{Directory: dir}))
	rpc := rpcmod.New(deps, modkit.WithPorts(rpcmod.Ports{
		Posts:    module.MustPortsOf[postsdomain.ServicePort](posts),
		Profiles: module.MustPortsOf[profilesdomain.ServicePort](profiles),
	}))

	mods := []module.Module{
		metamod.New(deps),
		posts,
		profiles,
		rpc,
	}

	stack := httpkit.CommonStack(httpkit.StackOptions{
		CORSOrigins: apiCfg.MayCSV("CORS_ORIGINS", nil),
		SlowRequest: apiCfg.MayDuration("SLOW_REQUEST", 750*time.Millisecond),
	})
	stack = append(stack, httpkit.OptionalAuth(deps.Auth))

	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		swaggerkit.Mount(r, opt.EnableSwagger, "")
		phttp.MountProfiler(r, phttp.ProfilerOptions{
			Prefix:  "/debug",
			Enabled: opt.EnableProfiler,
			Token:   apiCfg.MayString("PROFILER_TOKEN", ""),
		})

		for _, m := range mods {
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(api)
		}
	})
}

// sessionAuth builds the bearer verifier from AUTH_JWT_*. Without a key every
// protected call is rejected
func sessionAuth(cfg config.Conf, log *logger.Logger) middleware.AuthPort {
	v, err := auth.New(auth.OptionsFrom(cfg))
	switch {
	case errors.Is(err, auth.ErrNoKey):
		log.Warn().Msg("AUTH_JWT_PUBLIC_KEY not set, writes are disabled")
		return nil
	case err != nil:
		log.Panic().Err(err).Msg("invalid AUTH_JWT_PUBLIC_KEY")
	}
	return httpkit.NewPortFunc(v.Verify)
}
