// Package module wires inference records into the API using modkit
package module

import (
	modkit "servicegeek/internal/modkit"
	"servicegeek/internal/modkit/httpkit"
	"servicegeek/internal/platform/net/middleware"
	access "servicegeek/internal/services/access/domain"
	dispatch "servicegeek/internal/services/dispatch/domain"
	infhttp "servicegeek/internal/services/inference/http"
	"servicegeek/internal/services/inference/repo"
	infsvc "servicegeek/internal/services/inference/service"
	media "servicegeek/internal/services/media/domain"
)

// Module implements the inference module
type Module struct {
	modkit.Base

	deps  modkit.Deps
	ports Ports
	svc   infsvc.Service
}

// Ports holds what inference needs injected and what it exposes
type Ports struct {
	// Auth guards the project routes; WorkerAuth guards the classifier callbacks
	Auth       middleware.AuthPort
	WorkerAuth middleware.AuthPort

	Access   access.ResolverPort
	Dispatch dispatch.DispatchPort
	Media    media.ResolverPort

	// Service overrides the postgres backed store; optional
	Service infsvc.Service
}

// New constructs the inference module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("inference"),
		modkit.WithPrefix(""),
	}, opts...)...)

	var injected Ports
	if p, ok := b.Ports.(Ports); ok {
		injected = p
	}
	svc := injected.Service
	if svc == nil {
		svc = infsvc.New(deps.PG, repo.NewPG(), infsvc.Options{
			Access:   injected.Access,
			Dispatch: injected.Dispatch,
			Media:    injected.Media,
		})
	}
	injected.Service = svc

	m := &Module{
		deps:  deps,
		svc:   svc,
		ports: injected,
	}

	m.Base = b.Base(func(r httpkit.Router) {
		httpkit.Protected(r, m.ports.Auth, func(pr httpkit.Router) {
			infhttp.Register(pr, m.svc)
		})
		httpkit.Protected(r, m.ports.WorkerAuth, func(pr httpkit.Router) {
			infhttp.RegisterWorker(pr, m.svc)
		})
	})
	return m
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
