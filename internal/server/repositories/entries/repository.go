package entries

import (
	"context"

	"github.com/dmitrijs2005/expensekeeper/internal/server/models"
)

// Repository is the persistence gateway for receipt entries.
type Repository interface {
	FindByID(ctx context.Context, id int64) (*models.Entry, error)
	FindAll(ctx context.Context, filter models.EntryFilter) ([]*models.Entry, error)
	Insert(ctx context.Context, fields *models.EntryFields) (*models.Entry, error)
	Update(ctx context.Context, id int64, fields *models.EntryFields) (*models.Entry, error)
}
