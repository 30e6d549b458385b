package errors

import (
	stderrs "errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func pgErr(code string) error {
	return &pgconn.PgError{Code: code, Message: "boom"}
}

func TestFromPostgresSQLSTATEMapping(t *testing.T) {
	cases := []struct {
		sqlstate string
		want     ErrorCode
	}{
		{"23505", ErrorCodeDuplicateKey},
		{"23503", ErrorCodeInvalidArgument},
		{"23502", ErrorCodeInvalidArgument},
		{"23514", ErrorCodeValidation},
		{"40001", ErrorCodeUnavailable},
		{"40P01", ErrorCodeUnavailable},
		{"57014", ErrorCodeUnavailable},
		{"42P01", ErrorCodeDB}, // undefined_table falls through
	}
	for _, tc := range cases {
		got := CodeOf(FromPostgres(pgErr(tc.sqlstate)))
		if got != tc.want {
			t.Fatalf("SQLSTATE %s: got code %d, want %d", tc.sqlstate, got, tc.want)
		}
	}
}

func TestFromPostgresNilAndNonPG(t *testing.T) {
	if FromPostgres(nil) != nil {
		t.Fatal("nil must stay nil")
	}
	err := FromPostgres(stderrs.New("dial timeout"))
	if !IsCode(err, ErrorCodeDB) {
		t.Fatalf("non-pg errors map to DB, got %v", err)
	}
}

func TestIsDuplicateKey(t *testing.T) {
	if !IsDuplicateKey(FromPostgres(pgErr("23505"))) {
		t.Fatal("mapped unique violation should read as duplicate key")
	}
	if !IsDuplicateKey(pgErr("23505")) {
		t.Fatal("raw pg error should read as duplicate key")
	}
	if IsDuplicateKey(pgErr("23503")) {
		t.Fatal("fk violation is not a duplicate key")
	}
}

func TestIsRetryable(t *testing.T) {
	if !IsRetryable(FromPostgres(pgErr("40P01"))) {
		t.Fatal("deadlock should be retryable")
	}
	if IsRetryable(pgErr("23505")) {
		t.Fatal("unique violation is not retryable")
	}
}
