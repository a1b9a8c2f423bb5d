// Package modkit provides module wiring and core deps
package modkit

import (
	"servicegeek/internal/modkit/repokit"
	"servicegeek/internal/platform/config"
	"servicegeek/internal/platform/logger"
	"servicegeek/internal/platform/metrics"
	"servicegeek/internal/platform/store"
)

// Deps holds core dependencies passed to modules
// any store may be nil in tests; modules fall back or skip
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner
	CH  store.Clickhouse
	RDS store.KV
	// Metrics may be nil; recorders are nil safe
	Metrics *metrics.Metrics
}
