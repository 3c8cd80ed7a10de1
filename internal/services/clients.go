// Package services contains the client operations. ClientService runs each
// write operation in its own transaction over the caller's *sql.DB, so every
// call has committed (or rolled back) by the time it returns.
package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/clientdb/internal/common"
	"github.com/dmitrijs2005/clientdb/internal/dbx"
	"github.com/dmitrijs2005/clientdb/internal/logging"
	"github.com/dmitrijs2005/clientdb/internal/models"
	"github.com/dmitrijs2005/clientdb/internal/repositories/repomanager"
)

// ClientService owns the clients, phones and client_phones tables.
// The *sql.DB is borrowed: the service never opens or closes it.
type ClientService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

// NewClientService constructs a ClientService over db.
func NewClientService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *ClientService {
	return &ClientService{
		db:          db,
		repomanager: m,
		logger:      logger,
	}
}

// InitSchema drops and recreates the three tables. All data is lost.
func (s *ClientService) InitSchema(ctx context.Context) error {
	if err := s.repomanager.InitSchema(ctx, s.db); err != nil {
		s.logger.Error(ctx, "schema init failed", "error", err)
		return err
	}
	s.logger.Info(ctx, "schema initialized")
	return nil
}

// AddClient creates a client and attaches its phones. If the email already
// belongs to a client, that client keeps its fields, receives the phones and
// its id is returned; this is not an error.
func (s *ClientService) AddClient(ctx context.Context, c models.NewClient) (int64, error) {
	var id int64
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		client, err := s.repomanager.Clients(tx).Create(ctx, &models.Client{
			FirstName: c.FirstName,
			LastName:  c.LastName,
			Email:     c.Email,
		})
		if err != nil {
			return err
		}
		id = client.ID
		return s.attachPhones(ctx, tx, id, c.Phones)
	})
	if err != nil {
		s.reportError(ctx, "add client failed", err)
		return 0, err
	}

	s.logger.Debug(ctx, "client added", "client_id", id, "phones", len(c.Phones))
	return id, nil
}

// AddPhone attaches phone to the client, creating the phone row on first use.
// Repeating the call changes nothing.
func (s *ClientService) AddPhone(ctx context.Context, clientID int64, phone string) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.attachPhones(ctx, tx, clientID, []string{phone})
	})
	if err != nil {
		s.reportError(ctx, "add phone failed", err)
		return err
	}

	s.logger.Debug(ctx, "phone added", "client_id", clientID, "phone", phone)
	return nil
}

// ChangeClient applies update to the client. For an unknown clientID it logs
// a warning and returns false without changing anything. A set Phones
// replaces all phones of the client.
func (s *ClientService) ChangeClient(ctx context.Context, clientID int64, update models.ClientUpdate) (bool, error) {
	found := false
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Clients(tx)

		exists, err := repo.Exists(ctx, clientID)
		if err != nil || !exists {
			return err
		}
		found = true

		if err := repo.Update(ctx, clientID, update); err != nil {
			return err
		}

		phones, ok := update.Phones.Get()
		if !ok {
			return nil
		}
		if err := repo.DetachAllPhones(ctx, clientID); err != nil {
			return err
		}
		return s.attachPhones(ctx, tx, clientID, phones)
	})
	if err != nil {
		s.reportError(ctx, "change client failed", err)
		return false, err
	}

	if !found {
		s.logger.Warn(ctx, "client does not exist", "client_id", clientID)
		return false, nil
	}

	s.logger.Debug(ctx, "client changed", "client_id", clientID)
	return true, nil
}

// DeletePhone detaches phone from the client and deletes the phone row,
// which detaches it from every other client too. An unknown number is
// ignored.
func (s *ClientService) DeletePhone(ctx context.Context, clientID int64, phone string) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		phones := s.repomanager.Phones(tx)

		p, err := phones.FindByNumber(ctx, phone)
		if errors.Is(err, common.ErrorNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		if err := s.repomanager.Clients(tx).DetachPhone(ctx, clientID, p.ID); err != nil {
			return err
		}
		return phones.Delete(ctx, p.ID)
	})
	if err != nil {
		s.reportError(ctx, "delete phone failed", err)
		return err
	}

	return nil
}

// DeleteClient deletes the client and its phone links. Phone rows stay.
func (s *ClientService) DeleteClient(ctx context.Context, clientID int64) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repomanager.Clients(tx).Delete(ctx, clientID)
	})
	if err != nil {
		s.reportError(ctx, "delete client failed", err)
		return err
	}

	s.logger.Debug(ctx, "client deleted", "client_id", clientID)
	return nil
}

// FindClients returns the clients matching filter with their phones
// aggregated per client.
func (s *ClientService) FindClients(ctx context.Context, filter models.ClientFilter) ([]models.ClientRecord, error) {
	records, err := s.repomanager.Clients(s.db).Find(ctx, filter)
	if err != nil {
		s.reportError(ctx, "find clients failed", err)
		return nil, err
	}
	return records, nil
}

func (s *ClientService) attachPhones(ctx context.Context, tx dbx.DBTX, clientID int64, numbers []string) error {
	phones := s.repomanager.Phones(tx)
	clients := s.repomanager.Clients(tx)

	for _, number := range numbers {
		p, err := phones.Upsert(ctx, number)
		if err != nil {
			return err
		}
		if err := clients.AttachPhone(ctx, clientID, p.ID); err != nil {
			return err
		}
	}
	return nil
}

// reportError logs a failed operation. Constraint violations are logged with
// the constraint name; the error itself is returned to the caller unchanged.
func (s *ClientService) reportError(ctx context.Context, msg string, err error) {
	if pgErr, ok := dbx.IsUniqueViolation(err); ok {
		s.logger.Error(ctx, msg, "error", err, "table", pgErr.TableName, "constraint", pgErr.ConstraintName)
		return
	}
	s.logger.Error(ctx, msg, "error", err)
}
