package pg

import (
	"context"
	"errors"
	"testing"

	"servicegeek/internal/platform/testkit"

	"github.com/jackc/pgx/v5/pgxpool"
)

const dsn = "postgres://u:p@db:5432/servicegeek?sslmode=disable"

func TestOpen_ParseError(t *testing.T) {
	t.Parallel()

	if _, err := Open(context.Background(), Config{URL: "://bad"}, nil); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestOpen_PoolSeam(t *testing.T) {
	testkit.Serial(t)

	boom := errors.New("boom")
	testkit.Swap(t, &newPool, func(context.Context, *pgxpool.Config) (*pgxpool.Pool, error) { return nil, boom })
	if _, err := Open(context.Background(), Config{URL: dsn}, nil); !errors.Is(err, boom) {
		t.Fatalf("Open = %v", err)
	}

	var seen *pgxpool.Config
	fake := &pgxpool.Pool{}
	testkit.Swap(t, &newPool, func(_ context.Context, pc *pgxpool.Config) (*pgxpool.Pool, error) {
		seen = pc
		return fake, nil
	})
	p, err := Open(context.Background(), Config{URL: dsn, MaxConns: 7, MinConns: 2, AppName: "servicegeek-test", SlowMs: 250}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if p.Pool != fake || p.SlowMs != 250 {
		t.Fatalf("PG = %+v", p)
	}
	if seen.MaxConns != 7 || seen.MinConns != 2 || seen.ConnConfig.RuntimeParams["application_name"] != "servicegeek-test" {
		t.Fatalf("pool config not applied: max=%d min=%d params=%v", seen.MaxConns, seen.MinConns, seen.ConnConfig.RuntimeParams)
	}

	if _, err := Open(context.Background(), Config{URL: dsn, MaxConns: 2, MinConns: 5}, nil); err != nil {
		t.Fatal(err)
	}
	if seen.MinConns > seen.MaxConns {
		t.Fatalf("min %d above max %d", seen.MinConns, seen.MaxConns)
	}
}

func TestClose_NilSafe(t *testing.T) {
	t.Parallel()

	var p *PG
	p.Close()
	(&PG{}).Close()
}
