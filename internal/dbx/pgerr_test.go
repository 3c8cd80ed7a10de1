package dbx

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsUniqueViolation_Wrapped(t *testing.T) {
	src := &pgconn.PgError{Code: CodeUniqueViolation, TableName: "clients", ConstraintName: "clients_email_key"}
	err := fmt.Errorf("db error: %w", src)

	pgErr, ok := IsUniqueViolation(err)
	require.True(t, ok)
	assert.Equal(t, "clients_email_key", pgErr.ConstraintName)
}

func TestIsUniqueViolation_OtherCode(t *testing.T) {
	err := fmt.Errorf("db error: %w", &pgconn.PgError{Code: CodeStringTooLong})

	_, ok := IsUniqueViolation(err)
	assert.False(t, ok)

	pgErr, ok := PgError(err)
	require.True(t, ok)
	assert.Equal(t, CodeStringTooLong, pgErr.Code)
}

func TestIsUniqueViolation_NotPostgres(t *testing.T) {
	_, ok := IsUniqueViolation(errors.New("conn refused"))
	assert.False(t, ok)

	_, ok = IsUniqueViolation(nil)
	assert.False(t, ok)
}
