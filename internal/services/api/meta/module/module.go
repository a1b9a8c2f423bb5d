// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"time"

	modkit "servicegeek/internal/modkit"
	"servicegeek/internal/modkit/httpkit"
	"servicegeek/internal/platform/store"

	metahttp "servicegeek/internal/services/api/meta/http"
)

// Module serves the health, readiness and version endpoints
type Module struct {
	modkit.Base

	deps      modkit.Deps
	ports     Ports
	startedAt time.Time
}

// Ports holds what meta needs injected
type Ports struct {
	// Store is pinged by the readiness probe; nil reports every seam skipped
	Store *store.Store
}

// ServiceName is reported by the health, version and service endpoints
const ServiceName = "servicegeek-api"

// New constructs a meta module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	var ports Ports
	if p, ok := b.Ports.(Ports); ok {
		ports = p
	}

	m := &Module{deps: deps, ports: ports, startedAt: time.Now()}
	m.Base = b.Base(func(r httpkit.Router) {
		metahttp.Register(r, metahttp.Deps{
			ServiceName: ServiceName,
			StartedAt:   m.startedAt,
			Checks:      checks(m.ports.Store),
		})
	})
	return m
}

// checks lists the store seams; postgres is the only required one
func checks(st *store.Store) []metahttp.Check {
	if st == nil {
		st = &store.Store{}
	}
	var pg, ch, rds any
	if st.PG != nil {
		pg = st.PG
	}
	if st.CH != nil {
		ch = st.CH
	}
	if st.RDS != nil {
		rds = st.RDS
	}
	return []metahttp.Check{
		{Name: "pg", Target: pg, Required: true},
		{Name: "ch", Target: ch},
		{Name: "rds", Target: rds},
	}
}

// Ports returns the injected store seam
func (m *Module) Ports() any { return m.ports }
