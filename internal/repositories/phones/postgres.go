// Package phones provides the PostgreSQL repository for the phones table.
package phones

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/clientdb/internal/common"
	"github.com/dmitrijs2005/clientdb/internal/dbx"
	"github.com/dmitrijs2005/clientdb/internal/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Upsert returns the phone row for number, inserting it first if no row
// holds that number yet.
func (r *PostgresRepository) Upsert(ctx context.Context, number string) (*models.Phone, error) {
	query :=
		`WITH inserted AS (
			INSERT INTO phones (phone)
			VALUES ($1)
			ON CONFLICT (phone) DO NOTHING
			RETURNING id
		)
		SELECT id FROM inserted
		UNION ALL
		SELECT id FROM phones WHERE phone = $1
		LIMIT 1
		`

	phone := &models.Phone{Number: number}
	if err := r.db.QueryRowContext(ctx, query, number).Scan(&phone.ID); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return phone, nil
}

// FindByNumber returns common.ErrorNotFound when no row holds number.
func (r *PostgresRepository) FindByNumber(ctx context.Context, number string) (*models.Phone, error) {
	query := `SELECT id, phone FROM phones WHERE phone = $1`

	phone := &models.Phone{}
	err := r.db.QueryRowContext(ctx, query, number).Scan(&phone.ID, &phone.Number)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return phone, nil
}

// Delete removes the phone row. Every association to it, whatever the
// client, is dropped by ON DELETE CASCADE.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM phones WHERE id = $1`, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
