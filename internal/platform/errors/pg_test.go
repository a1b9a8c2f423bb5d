package errors

import (
	stderrs "errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestDBErrorCode(t *testing.T) {
	t.Parallel()

	cases := map[string]ErrorCode{
		"23505": ErrorCodeDuplicateKey,
		"23503": ErrorCodeInvalidArgument,
		"23502": ErrorCodeValidation,
		"23514": ErrorCodeValidation,
		"22001": ErrorCodeInvalidArgument,
		"22P02": ErrorCodeInvalidArgument,
		"40001": ErrorCodeDB,
		"40P01": ErrorCodeDB,
		"25006": ErrorCodeUnavailable,
		"57P03": ErrorCodeUnavailable,
		"XXXXX": ErrorCodeDB,
	}
	for state, want := range cases {
		got, ok := DBErrorCode(fmt.Errorf("exec: %w", &pgconn.PgError{Code: state}))
		if !ok || got != want {
			t.Errorf("DBErrorCode(%s) = %d %v, want %d", state, got, ok, want)
		}
	}
	if _, ok := DBErrorCode(stderrs.New("plain")); ok {
		t.Fatal("plain error should not map")
	}
}

func TestFromPostgres(t *testing.T) {
	t.Parallel()

	if FromPostgres(nil, "x") != nil {
		t.Fatal("nil should stay nil")
	}

	dup := FromPostgres(&pgconn.PgError{Code: "23505"}, "insert detections")
	if !IsCode(dup, ErrorCodeDuplicateKey) || dup.Error() == "" {
		t.Fatalf("dup = %v", dup)
	}

	nf := FromPostgres(ErrNotFound, "inference by id")
	if !IsCode(nf, ErrorCodeNotFound) || !stderrs.Is(nf, ErrNotFound) {
		t.Fatalf("not found should keep its code: %v", nf)
	}

	other := FromPostgres(stderrs.New("conn reset"), "move detections")
	if !IsCode(other, ErrorCodeDB) {
		t.Fatalf("foreign error code = %d", CodeOf(other))
	}
}
