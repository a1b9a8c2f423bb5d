// Package module wires the dispatch service and exposes its ports
package module

import (
	"servicegeek/internal/adapters/queue/asynqpub"
	"servicegeek/internal/adapters/queue/httppub"
	"servicegeek/internal/modkit"
	"servicegeek/internal/modkit/httpkit"
	"servicegeek/internal/platform/logger"
	"servicegeek/internal/services/dispatch/domain"
	"servicegeek/internal/services/dispatch/service"
)

// Ports holds the ports exposed by the dispatch module
type Ports struct {
	Dispatcher domain.DispatchPort
}

// Module defines the dispatch module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs the dispatch module; pub overrides the configured transport when non nil
func New(deps modkit.Deps, opts Options, pub domain.Publisher) *Module {
	if pub == nil {
		pub = NewPublisher(opts)
	}
	svc := service.New(pub, service.Options{
		Windows:      opts.Windows,
		Location:     opts.Location(),
		Immediate:    opts.Immediate,
		RequeueDelay: opts.RequeueDelay,
		Timeout:      opts.Timeout,
		Audit:        deps.CH,
		Metrics:      deps.Metrics.DispatchOf(),
	})
	return &Module{deps: deps, ports: Ports{Dispatcher: svc}}
}

// NewPublisher picks the broker transport; asynq falls back to http when redis is not configured
func NewPublisher(o Options) domain.Publisher {
	if o.Transport == "asynq" {
		p, err := asynqpub.New(asynqpub.Options{
			Addr:     o.RedisAddr,
			Password: o.RedisPassword,
			DB:       o.RedisDB,
			Queue:    o.Queue,
		})
		if err == nil {
			return p
		}
		logger.Get().Warn().Err(err).Msg("asynq transport unavailable; using http")
	}
	return httppub.New(httppub.Options{
		BaseURL: o.BaseURL,
		Path:    o.Path,
		Token:   o.Token,
		Timeout: o.Timeout,
	})
}

// Ports returns the module ports (Dispatcher)
func (m *Module) Ports() any { return m.ports }

// Name returns the module name
func (m *Module) Name() string { return "dispatch" }

// Prefix returns the module config prefix (none for a port-only module)
func (m *Module) Prefix() string { return "" }

// MountRoutes returns no HTTP routes
func (m *Module) MountRoutes(_ httpkit.Router) {}
