package modkit

import (
	"net/http"

	"servicegeek/internal/modkit/httpkit"
	str "servicegeek/internal/platform/strings"
)

// Built is the resolved option set a module constructor reads
type Built struct {
	Name   string
	Prefix string
	Mw     []func(http.Handler) http.Handler
	Ports  any

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)
}

// Build applies opts in order; later options win
func Build(opts ...Option) Built {
	var c buildCfg
	for _, o := range opts {
		o(&c)
	}
	return Built{
		Name:      c.name,
		Prefix:    c.prefix,
		Mw:        append([]func(http.Handler) http.Handler(nil), c.mw...),
		Ports:     c.ports,
		subrouter: c.subrouter,
		register:  c.register,
	}
}

// Base is the routing half of a module; modules embed it and add Ports
type Base struct {
	name   string
	prefix string
	mw     []func(http.Handler) http.Handler
	wrap   func(httpkit.Router) httpkit.Router
	routes func(httpkit.Router)
}

// Base binds routes to the built name, prefix and middleware
// a WithRegister hook runs after routes on the same router
func (b Built) Base(routes func(httpkit.Router)) Base {
	extra := b.register
	return Base{
		name:   b.Name,
		prefix: b.Prefix,
		mw:     b.Mw,
		wrap:   b.subrouter,
		routes: func(r httpkit.Router) {
			if routes != nil {
				routes(r)
			}
			if extra != nil {
				extra(r)
			}
		},
	}
}

// MountRoutes mounts under the prefix, or into a group when there is none
func (m Base) MountRoutes(r httpkit.Router) {
	mount := func(rr httpkit.Router) {
		if len(m.mw) > 0 {
			rr.Use(m.mw...)
		}
		if m.wrap != nil {
			rr = m.wrap(rr)
		}
		if m.routes != nil {
			m.routes(rr)
		}
	}
	if m.prefix == "" {
		r.Group(mount)
		return
	}
	r.Route(str.MustPrefix(m.prefix), mount)
}

// Name returns the module name; an unnamed module is a wiring bug
func (m Base) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the configured route prefix
func (m Base) Prefix() string { return m.prefix }
