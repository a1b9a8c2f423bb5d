// Package module defines the module contract and the bootstrap port registry
package module

import (
	phttp "servicegeek/internal/platform/net/http"
)

// Module is what the composition root mounts and cross wires
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}
