// Package module wires the access resolver and exposes it as a port
package module

import (
	"servicegeek/internal/modkit"
	"servicegeek/internal/modkit/httpkit"
	"servicegeek/internal/services/access/domain"
	"servicegeek/internal/services/access/repo"
	"servicegeek/internal/services/access/service"
)

// Ports holds the ports exposed by the access module
type Ports struct {
	Resolver domain.ResolverPort
}

// Module defines the access module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs the access module over the shared postgres pool
func New(deps modkit.Deps) *Module {
	svc := service.New(deps.PG, repo.NewPG())
	return &Module{deps: deps, ports: Ports{Resolver: svc}}
}

// Ports returns the module ports (Resolver)
func (m *Module) Ports() any { return m.ports }

// Name returns the module name
func (m *Module) Name() string { return "access" }

// Prefix returns the module route prefix (none, port only)
func (m *Module) Prefix() string { return "" }

// MountRoutes returns no HTTP routes
func (m *Module) MountRoutes(_ httpkit.Router) {}
