// Package clients provides the PostgreSQL repository for the clients table
// and the client_phones association.
package clients

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/clientdb/internal/dbx"
	"github.com/dmitrijs2005/clientdb/internal/models"
	"github.com/dmitrijs2005/clientdb/internal/opt"
)

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts the client unless its email is already taken, and sets
// client.ID to the new id or to the id of the client owning the email.
// The existing row is left as is. A client without email always gets a new row.
func (r *PostgresRepository) Create(ctx context.Context, client *models.Client) (*models.Client, error) {
	query :=
		`WITH inserted AS (
			INSERT INTO clients (first_name, last_name, email)
			VALUES ($1, $2, $3)
			ON CONFLICT (email) DO NOTHING
			RETURNING id
		)
		SELECT id FROM inserted
		UNION ALL
		SELECT id FROM clients WHERE email = $3
		LIMIT 1
		`

	err := r.db.QueryRowContext(ctx, query,
		client.FirstName, client.LastName, nullString(client.Email)).Scan(&client.ID)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return client, nil
}

func (r *PostgresRepository) Exists(ctx context.Context, id int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM clients WHERE id = $1)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return exists, nil
}

// Update writes the set fields of update in a single statement. An update
// without column changes issues no query. Setting Email to "" clears it.
func (r *PostgresRepository) Update(ctx context.Context, id int64, update models.ClientUpdate) error {
	sets := make([]string, 0, 3)
	args := make([]any, 0, 4)

	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if v, ok := update.FirstName.Get(); ok {
		add("first_name", v)
	}
	if v, ok := update.LastName.Get(); ok {
		add("last_name", v)
	}
	if v, ok := update.Email.Get(); ok {
		add("email", nullString(v))
	}

	if len(sets) == 0 {
		return nil
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE clients SET %s WHERE id = $%d`, strings.Join(sets, ", "), len(args))

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

// Delete removes the client. Its client_phones rows go with it through
// ON DELETE CASCADE; phone rows are kept.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// AttachPhone links the phone to the client. Linking an already linked pair
// is a no-op.
func (r *PostgresRepository) AttachPhone(ctx context.Context, clientID, phoneID int64) error {
	query :=
		`INSERT INTO client_phones (client_id, phone_id)
		 VALUES ($1, $2)
		 ON CONFLICT (client_id, phone_id) DO NOTHING
		 `

	if _, err := r.db.ExecContext(ctx, query, clientID, phoneID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) DetachPhone(ctx context.Context, clientID, phoneID int64) error {
	query := `DELETE FROM client_phones WHERE client_id = $1 AND phone_id = $2`

	if _, err := r.db.ExecContext(ctx, query, clientID, phoneID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) DetachAllPhones(ctx context.Context, clientID int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM client_phones WHERE client_id = $1`, clientID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Find returns the clients matching every set field of filter, ordered by id.
// Each record carries all phones of the client in attachment order, also when
// the filter selects by one of them. Clients without phones have empty Phones.
func (r *PostgresRepository) Find(ctx context.Context, filter models.ClientFilter) ([]models.ClientRecord, error) {
	query :=
		`SELECT c.id, c.first_name, c.last_name, c.email,
		        COALESCE(STRING_AGG(p.phone, ', ' ORDER BY cp.id), '') AS phones
		 FROM clients c
		 LEFT JOIN client_phones cp ON c.id = cp.client_id
		 LEFT JOIN phones p ON cp.phone_id = p.id
		 WHERE ($1::text IS NULL OR c.first_name = $1)
		   AND ($2::text IS NULL OR c.last_name = $2)
		   AND ($3::text IS NULL OR c.email = $3)
		   AND ($4::text IS NULL OR EXISTS (
		        SELECT 1 FROM client_phones fcp
		        JOIN phones fp ON fp.id = fcp.phone_id
		        WHERE fcp.client_id = c.id AND fp.phone = $4))
		 GROUP BY c.id, c.first_name, c.last_name, c.email
		 ORDER BY c.id
		 `

	rows, err := r.db.QueryContext(ctx, query,
		nullable(filter.FirstName), nullable(filter.LastName), nullable(filter.Email), nullable(filter.Phone))
	if err != nil {
		return nil, fmt.Errorf("failed to select clients: %w", err)
	}
	defer rows.Close()

	var result []models.ClientRecord
	for rows.Next() {
		var (
			item  models.ClientRecord
			email sql.NullString
		)
		if err := rows.Scan(&item.ID, &item.FirstName, &item.LastName, &email, &item.Phones); err != nil {
			return nil, fmt.Errorf("failed to scan client row: %w", err)
		}
		item.Email = email.String
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate client rows: %w", err)
	}
	return result, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// nullable maps an unset filter field to SQL NULL.
func nullable(f opt.Field[string]) any {
	if v, ok := f.Get(); ok {
		return v
	}
	return nil
}
