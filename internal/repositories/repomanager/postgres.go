// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// wiring together repository constructors and the schema bootstrap (via goose).
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/clientdb/internal/dbx"
	"github.com/dmitrijs2005/clientdb/internal/migrations"
	"github.com/dmitrijs2005/clientdb/internal/repositories/clients"
	"github.com/dmitrijs2005/clientdb/internal/repositories/phones"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// gooseVersionTable is goose's default bookkeeping table. It is dropped with
// the schema so that the migrations run again from scratch.
const gooseVersionTable = "goose_db_version"

var dropStatements = []string{
	`DROP TABLE IF EXISTS client_phones CASCADE`,
	`DROP TABLE IF EXISTS phones CASCADE`,
	`DROP TABLE IF EXISTS clients CASCADE`,
	`DROP TABLE IF EXISTS ` + gooseVersionTable,
}

// PostgresRepositoryManager vends PostgreSQL-backed repository implementations
// and resets the schema.
type PostgresRepositoryManager struct{}

// Clients returns a clients.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Clients(db dbx.DBTX) clients.Repository {
	return clients.NewPostgresRepository(db)
}

// Phones returns a phones.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Phones(db dbx.DBTX) phones.Repository {
	return phones.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// InitSchema drops the clients tables, with all their data, and recreates
// them from the embedded migrations. Running it twice leaves the same empty
// schema.
func (m *PostgresRepositoryManager) InitSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range dropStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("drop schema: %w", err)
		}
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed RepositoryManager.
func NewPostgresRepositoryManager() RepositoryManager {
	return &PostgresRepositoryManager{}
}
