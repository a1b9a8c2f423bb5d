package modkit

import "servicegeek/internal/modkit/module"

// Module is the surface every API module exposes to the composition root
type Module = module.Module
