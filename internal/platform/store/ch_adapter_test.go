package store

import (
	"context"
	"errors"
	"testing"

	"servicegeek/internal/platform/store/ch"
)

type fakeCH struct {
	inserted map[string][][]any
	rows     ch.Rows
	pingErr  error
	closed   bool
}

func (f *fakeCH) Insert(_ context.Context, table string, rows [][]any) error {
	if f.inserted == nil {
		f.inserted = map[string][][]any{}
	}
	f.inserted[table] = append(f.inserted[table], rows...)
	return nil
}
func (f *fakeCH) Exec(context.Context, string, ...any) error             { return nil }
func (f *fakeCH) Query(context.Context, string, ...any) (ch.Rows, error) { return f.rows, nil }
func (f *fakeCH) Ping(context.Context) error                             { return f.pingErr }
func (f *fakeCH) Close() error                                           { f.closed = true; return nil }

type fakeChRows struct {
	left   int
	closed bool
}

func (f *fakeChRows) Next() bool        { f.left--; return f.left >= 0 }
func (f *fakeChRows) Scan(...any) error { return nil }
func (f *fakeChRows) Err() error        { return nil }
func (f *fakeChRows) Close() error      { f.closed = true; return nil }
func (f *fakeChRows) Columns() []string { return []string{"alpha", "beta"} }

func TestCHAdapter_InsertShape(t *testing.T) {
	t.Parallel()

	f := &fakeCH{}
	a := newCHAdapter(f)

	if err := a.Insert(context.Background(), "t", struct{}{}); err == nil {
		t.Fatal("expected shape error")
	}
	if err := a.Insert(context.Background(), "t", [][]any{{1, "x"}}); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if len(f.inserted["t"]) != 1 {
		t.Fatalf("expected one row delegated, got %v", f.inserted)
	}
}

func TestCHAdapter_QueryWrapsRows(t *testing.T) {
	t.Parallel()

	fr := &fakeChRows{left: 2}
	a := newCHAdapter(&fakeCH{rows: fr})

	rows, err := a.Query(context.Background(), "SELECT 1")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	n := 0
	for rows.Next() {
		n++
	}
	rows.Close()
	if n != 2 || !fr.closed {
		t.Fatalf("expected 2 rows and close, got n=%d closed=%v", n, fr.closed)
	}
	if cols := rows.Columns(); len(cols) != 2 || cols[0] != "alpha" {
		t.Fatalf("columns passthrough: %v", cols)
	}
}

func TestCHAdapter_PingAndClose(t *testing.T) {
	t.Parallel()

	f := &fakeCH{pingErr: errors.New("down")}
	a := newCHAdapter(f).(*clickhouseAdapter)
	if err := a.Ping(context.Background()); err == nil {
		t.Fatal("expected ping error")
	}
	if err := a.Close(); err != nil || !f.closed {
		t.Fatalf("close: err=%v closed=%v", err, f.closed)
	}

	var nilA *clickhouseAdapter
	if err := nilA.Ping(context.Background()); err == nil {
		t.Fatal("expected error from nil adapter")
	}
}
