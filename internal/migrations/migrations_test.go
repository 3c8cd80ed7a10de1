package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations_EmbedsSchema(t *testing.T) {
	files, err := fs.Glob(Migrations, "*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	b, err := fs.ReadFile(Migrations, "00001_create_clients.sql")
	require.NoError(t, err)

	sql := string(b)
	for _, want := range []string{
		"-- +goose Up",
		"-- +goose Down",
		"CREATE TABLE IF NOT EXISTS clients",
		"CREATE TABLE IF NOT EXISTS phones",
		"CREATE TABLE IF NOT EXISTS client_phones",
		"ON DELETE CASCADE",
		"UNIQUE (client_id, phone_id)",
	} {
		assert.True(t, strings.Contains(sql, want), "missing %q", want)
	}
}
