package dbx

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes the clients store can raise on writes.
const (
	CodeUniqueViolation     = "23505"
	CodeForeignKeyViolation = "23503"
	CodeStringTooLong       = "22001"
)

// PgError returns the PostgreSQL error wrapped in err, if any.
func PgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// IsUniqueViolation reports whether err was caused by a UNIQUE constraint,
// e.g. updating a client to an email owned by another client.
func IsUniqueViolation(err error) (*pgconn.PgError, bool) {
	pgErr, ok := PgError(err)
	if !ok || pgErr.Code != CodeUniqueViolation {
		return nil, false
	}
	return pgErr, true
}
