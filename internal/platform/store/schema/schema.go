// Package schema embeds the database DDL and applies it
package schema

import (
	"context"
	_ "embed"
	"fmt"

	"servicegeek/internal/platform/store"
)

//go:embed postgres.sql
var postgres string

//go:embed clickhouse.sql
var clickhouse string

// Postgres returns the relational DDL
func Postgres() string { return postgres }

// ClickHouse returns the audit DDL
func ClickHouse() string { return clickhouse }

// ApplyPostgres runs the relational DDL as one simple-protocol batch
func ApplyPostgres(ctx context.Context, q store.RowQuerier) error {
	if q == nil {
		return fmt.Errorf("schema: nil querier")
	}
	if _, err := q.Exec(ctx, postgres); err != nil {
		return fmt.Errorf("schema: apply postgres: %w", err)
	}
	return nil
}

// ApplyClickHouse creates the dispatch audit table
func ApplyClickHouse(ctx context.Context, c store.Clickhouse) error {
	if c == nil {
		return fmt.Errorf("schema: nil clickhouse")
	}
	if err := c.Exec(ctx, clickhouse); err != nil {
		return fmt.Errorf("schema: apply clickhouse: %w", err)
	}
	return nil
}
