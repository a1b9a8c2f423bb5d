// Package api provides the HTTP API for the application
package api

import (
	"servicegeek/internal/adapters/auth"
	"servicegeek/internal/platform/config"
	"servicegeek/internal/platform/logger"
	"servicegeek/internal/platform/metrics"
	phttp "servicegeek/internal/platform/net/http"
	"servicegeek/internal/platform/net/middleware"
	"servicegeek/internal/platform/store"

	"servicegeek/internal/modkit"
	"servicegeek/internal/modkit/httpkit"
	"servicegeek/internal/modkit/module"
	"servicegeek/internal/modkit/swaggerkit"

	accessmod "servicegeek/internal/services/access/module"
	metamod "servicegeek/internal/services/api/meta/module"
	dispatchdomain "servicegeek/internal/services/dispatch/domain"
	dispatchmod "servicegeek/internal/services/dispatch/module"
	inferencemod "servicegeek/internal/services/inference/module"
	mediamod "servicegeek/internal/services/media/module"
	templatesmod "servicegeek/internal/services/templates/module"
)

// Options are the API options
type Options struct {
	// Config is the process root; modules read their own prefixes from it
	Config  config.Conf
	Store   *store.Store
	Logger  *logger.Logger
	Metrics *metrics.Metrics

	// Publisher overrides the configured dispatch transport; optional
	Publisher dispatchdomain.Publisher

	EnableSwagger  bool
	EnableProfiler bool
	EnableMetrics  bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// load balancer probe, answered before routing
	r.Use(middleware.Heartbeat("/health"))

	// shared deps for modules
	deps := modkit.Deps{
		Cfg:     opt.Config,
		PG:      opt.Store.PG,
		CH:      opt.Store.CH,
		RDS:     opt.Store.RDS,
		Metrics: opt.Metrics,
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}

	userAuth, workerAuth := AuthPorts(opt.Config)

	// port only modules first; their ports feed the route owning modules
	access := accessmod.New(deps)
	resolver := module.MustPortsOf[accessmod.Ports](access).Resolver

	dispatch := dispatchmod.New(deps, dispatchmod.FromConfig(opt.Config), opt.Publisher)
	dispatcher := module.MustPortsOf[dispatchmod.Ports](dispatch).Dispatcher

	media := mediamod.New(deps, modkit.WithPorts(mediamod.Ports{Auth: userAuth}))
	signed := module.MustPortsOf[mediamod.Ports](media).Resolver

	mods := []module.Module{
		metamod.New(deps, modkit.WithPorts(metamod.Ports{Store: opt.Store})),
		access,
		dispatch,
		media,
		inferencemod.New(deps, modkit.WithPorts(inferencemod.Ports{
			Auth:       userAuth,
			WorkerAuth: workerAuth,
			Access:     resolver,
			Dispatch:   dispatcher,
			Media:      signed,
		})),
		templatesmod.New(deps, modkit.WithPorts(templatesmod.Ports{
			Auth:   userAuth,
			Access: resolver,
		})),
	}

	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		for _, m := range mods {
			m.MountRoutes(api)
		}
	})

	if opt.EnableMetrics && opt.Metrics != nil {
		r.Handle("/metrics", opt.Metrics.Handler())
	}
}

// AuthPorts builds the user jwt port and the worker shared token port from AUTH_*
func AuthPorts(cfg config.Conf) (user, worker middleware.AuthPort) {
	ac := cfg.Prefix("AUTH_")
	secret := ac.MayString("JWT_SECRET", "")
	token := ac.MayString("WORKER_TOKEN", "")
	if secret == "" {
		logger.Get().Warn().Msg("AUTH_JWT_SECRET is empty; user routes will reject every token")
	}
	if token == "" {
		logger.Get().Warn().Msg("AUTH_WORKER_TOKEN is empty; classifier callbacks will be rejected")
	}
	return httpkit.NewPortFunc(auth.NewVerifier(secret).Parse), httpkit.NewPortFunc(auth.WorkerToken(token))
}
