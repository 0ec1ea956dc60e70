package documents

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/heavyrent/backend/pkg/db/models"
)

// Repository defines persistence operations for rental documents.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, doc *models.Document) (*models.Document, error)
	Find(ctx context.Context, id uuid.UUID) (*models.Document, error)
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]models.Document, error)
}

// OrderFinder loads the rental order a document is being attached to. The
// rentals repository satisfies it.
type OrderFinder interface {
	Find(ctx context.Context, id uuid.UUID) (*models.RentalOrder, error)
}
