package phones

import (
	"context"

	"github.com/dmitrijs2005/clientdb/internal/models"
)

type Repository interface {
	Upsert(ctx context.Context, number string) (*models.Phone, error)
	FindByNumber(ctx context.Context, number string) (*models.Phone, error)
	Delete(ctx context.Context, id int64) error
}
