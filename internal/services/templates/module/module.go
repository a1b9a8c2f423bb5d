// Package module wires template application into the API using modkit
package module

import (
	"servicegeek/internal/core/templatepack"
	modkit "servicegeek/internal/modkit"
	"servicegeek/internal/modkit/httpkit"
	"servicegeek/internal/platform/net/middleware"
	access "servicegeek/internal/services/access/domain"
	"servicegeek/internal/services/templates/domain"
	tplhttp "servicegeek/internal/services/templates/http"
	"servicegeek/internal/services/templates/repo"
	tplsvc "servicegeek/internal/services/templates/service"
)

// Module implements the templates module
type Module struct {
	modkit.Base

	deps  modkit.Deps
	ports Ports
	svc   tplsvc.Service
}

// Ports holds what templates needs injected and what it exposes
type Ports struct {
	Auth   middleware.AuthPort
	Access access.ResolverPort

	// Registry defaults to the embedded catalog
	Registry domain.Registry
	// Service overrides the postgres backed engine; optional
	Service tplsvc.Service
}

// New constructs the templates module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("templates"),
		modkit.WithPrefix(""),
	}, opts...)...)

	var injected Ports
	if p, ok := b.Ports.(Ports); ok {
		injected = p
	}
	if injected.Registry == nil {
		injected.Registry = templatepack.MustLoad()
	}
	if injected.Service == nil {
		injected.Service = tplsvc.New(deps.PG, repo.NewPG(), tplsvc.Options{
			Access:   injected.Access,
			Registry: injected.Registry,
			Metrics:  deps.Metrics.TemplatesOf(),
		})
	}

	m := &Module{
		deps:  deps,
		svc:   injected.Service,
		ports: injected,
	}

	m.Base = b.Base(func(r httpkit.Router) {
		httpkit.Protected(r, m.ports.Auth, func(pr httpkit.Router) {
			tplhttp.Register(pr, m.svc)
		})
	})
	return m
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
