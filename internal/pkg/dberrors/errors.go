package dberrors

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// pgUniqueViolation is the PostgreSQL error code for unique_violation.
const pgUniqueViolation = "23505"

// IsUniqueViolation reports whether err is a PostgreSQL unique violation,
// regardless of which constraint was hit.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// IsUniqueViolationOn reports whether err is a unique violation on the
// named constraint. Repositories use this to map storage-level uniqueness
// back to the conflict taxonomy without string-matching error text.
func IsUniqueViolationOn(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) &&
		pgErr.Code == pgUniqueViolation &&
		pgErr.ConstraintName == constraint
}
