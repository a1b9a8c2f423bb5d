// Package metrics holds the prometheus collectors for servicegeek components
// every recorder method is safe on a nil receiver so components run without metrics
package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups every component collector on one registry
type Metrics struct {
	registry  *prometheus.Registry
	Dispatch  *Dispatch
	Storage   *Storage
	Templates *Templates
}

// New builds a fresh registry with process and go collectors plus ours
func New() (*Metrics, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	d, err := newDispatch(reg)
	if err != nil {
		return nil, fmt.Errorf("metrics: dispatch: %w", err)
	}
	s, err := newStorage(reg)
	if err != nil {
		return nil, fmt.Errorf("metrics: storage: %w", err)
	}
	t, err := newTemplates(reg)
	if err != nil {
		return nil, fmt.Errorf("metrics: templates: %w", err)
	}
	return &Metrics{registry: reg, Dispatch: d, Storage: s, Templates: t}, nil
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// DispatchOf returns the dispatch collector or nil
func (m *Metrics) DispatchOf() *Dispatch {
	if m == nil {
		return nil
	}
	return m.Dispatch
}

// StorageOf returns the storage collector or nil
func (m *Metrics) StorageOf() *Storage {
	if m == nil {
		return nil
	}
	return m.Storage
}

// TemplatesOf returns the templates collector or nil
func (m *Metrics) TemplatesOf() *Templates {
	if m == nil {
		return nil
	}
	return m.Templates
}
