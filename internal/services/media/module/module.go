// Package module wires media into the API using modkit
package module

import (
	"time"

	"servicegeek/internal/adapters/storage"
	modkit "servicegeek/internal/modkit"
	"servicegeek/internal/modkit/httpkit"
	"servicegeek/internal/platform/net/middleware"
	"servicegeek/internal/services/media/cache"
	"servicegeek/internal/services/media/domain"
	mediahttp "servicegeek/internal/services/media/http"
	mediasvc "servicegeek/internal/services/media/service"
)

// Module implements the media module
type Module struct {
	modkit.Base

	deps  modkit.Deps
	ports Ports
	svc   mediasvc.Service
}

// Ports holds what media needs injected and what it exposes
type Ports struct {
	// Auth guards the routes; injected
	Auth middleware.AuthPort
	// Signer overrides the storage client; injected, optional
	Signer domain.Signer

	// Resolver is exposed to other modules
	Resolver domain.ResolverPort
}

// New constructs the media module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("media"),
		modkit.WithPrefix("/media"),
	}, opts...)...)

	cfg := FromConfig(deps.Cfg)

	var injected Ports
	if p, ok := b.Ports.(Ports); ok {
		injected = p
	}
	signer := injected.Signer
	if signer == nil {
		signer = storage.New(storage.Options{
			BaseURL:    cfg.BaseURL,
			ServiceKey: cfg.ServiceKey,
			Timeout:    cfg.Timeout,
			MaxRetries: cfg.MaxRetries,
		})
	}

	svc := mediasvc.New(signer, mediasvc.Options{
		LegacyBucket:  cfg.LegacyBucket,
		CurrentBucket: cfg.CurrentBucket,
		AvatarBucket:  cfg.AvatarBucket,
		Expiry:        cfg.Expiry,
		AvatarExpiry:  cfg.AvatarExpiry,
		Cache:         newCache(deps),
		CacheTTL:      cfg.CacheTTL,
		Metrics:       deps.Metrics.StorageOf(),
	})

	m := &Module{
		deps:  deps,
		svc:   svc,
		ports: Ports{Auth: injected.Auth, Resolver: svc},
	}

	m.Base = b.Base(func(r httpkit.Router) {
		httpkit.Protected(r, m.ports.Auth, func(pr httpkit.Router) {
			mediahttp.Register(pr, m.svc)
		})
	})
	return m
}

// newCache prefers redis and falls back to process memory
func newCache(deps modkit.Deps) domain.URLCache {
	if deps.RDS != nil {
		return cache.NewKV(deps.RDS)
	}
	return cache.NewMemory(25*time.Minute, 10*time.Minute)
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
