// Package repokit holds the seams repositories are written against
package repokit

import "servicegeek/internal/platform/store"

// Queryer is the read and write surface a bound repo runs its SQL on
// both the pool and an open transaction satisfy it
type Queryer = store.RowQuerier

// TxRunner runs queries directly or inside a transaction
type TxRunner = store.TxRunner
