// Package database opens the PostgreSQL handle handed to the client service.
// The handle uses the pgx driver through database/sql.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
)

// PingTimeout bounds the initial connectivity check.
const PingTimeout = 10 * time.Second

// ConnConfig parses dsn and, when password is not empty, replaces the
// password it carries. Parsing does not connect.
func ConnConfig(dsn, password string) (*pgx.ConnConfig, error) {
	cfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database dsn: %w", err)
	}
	if password != "" {
		cfg.Password = password
	}
	return cfg, nil
}

// Open returns a *sql.DB for dsn and checks that the server answers.
// The caller owns the handle and must Close it.
func Open(ctx context.Context, dsn, password string) (*sql.DB, error) {
	cfg, err := ConnConfig(dsn, password)
	if err != nil {
		return nil, err
	}

	db := stdlib.OpenDB(*cfg)

	pingCtx, cancel := context.WithTimeout(ctx, PingTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}
	return db, nil
}
