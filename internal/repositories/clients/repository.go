package clients

import (
	"context"

	"github.com/dmitrijs2005/clientdb/internal/models"
)

type Repository interface {
	Create(ctx context.Context, client *models.Client) (*models.Client, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Update(ctx context.Context, id int64, update models.ClientUpdate) error
	Delete(ctx context.Context, id int64) error
	AttachPhone(ctx context.Context, clientID, phoneID int64) error
	DetachPhone(ctx context.Context, clientID, phoneID int64) error
	DetachAllPhones(ctx context.Context, clientID int64) error
	Find(ctx context.Context, filter models.ClientFilter) ([]models.ClientRecord, error)
}
