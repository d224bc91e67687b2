package items

import (
	"context"
	"time"

	"github.com/dmitrijs2005/ufind/internal/server/models"
)

// Repository is the item store.
type Repository interface {
	Create(ctx context.Context, item *models.Item) error
	// GetByID yields common.ErrorNotFound for unknown ids.
	GetByID(ctx context.Context, id string) (*models.Item, error)
	List(ctx context.Context, page models.PageRequest) (*models.Page, error)
	// Search matches query case-insensitively as a substring of the title,
	// description or location. A nil status matches every status.
	Search(ctx context.Context, query string, status *models.ItemStatus, page models.PageRequest) (*models.Page, error)
	UpdateStatus(ctx context.Context, id string, status models.ItemStatus, updatedAt time.Time) error
	SetImage(ctx context.Context, id string, imageURL string, updatedAt time.Time) error
}
