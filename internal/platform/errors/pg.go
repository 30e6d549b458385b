package errors

import (
	stderrs "errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// FromPostgres maps a pgx error to one of ours
// Nil stays nil, unknown SQLSTATEs become ErrorCodeDB
func FromPostgres(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if !stderrs.As(err, &pgErr) {
		return Wrap(err, ErrorCodeDB, "database error")
	}
	switch pgErr.Code {
	case "23505": // unique_violation
		return Wrap(err, ErrorCodeDuplicateKey, "duplicate key")
	case "23503": // foreign_key_violation
		return Wrap(err, ErrorCodeInvalidArgument, "foreign key violation")
	case "23502": // not_null_violation
		return Wrap(err, ErrorCodeInvalidArgument, "not null violation")
	case "23514": // check_violation
		return Wrap(err, ErrorCodeValidation, "check constraint violation")
	case "40001", "40P01": // serialization_failure, deadlock_detected
		return Wrap(err, ErrorCodeUnavailable, "transient database conflict")
	case "57014": // query_canceled
		return Wrap(err, ErrorCodeUnavailable, "query canceled")
	default:
		return Wrap(err, ErrorCodeDB, "database error")
	}
}

// IsDuplicateKey reports whether err is a unique violation
func IsDuplicateKey(err error) bool {
	if IsCode(err, ErrorCodeDuplicateKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return stderrs.As(err, &pgErr) && pgErr.Code == "23505"
}

// IsRetryable reports whether a retry may succeed
// True for serialization failures, deadlocks and cancellations
func IsRetryable(err error) bool {
	if IsCode(err, ErrorCodeUnavailable) {
		return true
	}
	var pgErr *pgconn.PgError
	if !stderrs.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case "40001", "40P01", "57014":
		return true
	}
	return false
}
