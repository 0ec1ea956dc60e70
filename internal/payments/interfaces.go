package payments

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/heavyrent/backend/pkg/db/models"
	"github.com/heavyrent/backend/pkg/enums"
)

// Repository defines persistence operations for the payment ledger.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, payment *models.Payment) (*models.Payment, error)
	Find(ctx context.Context, id uuid.UUID) (*models.Payment, error)
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]models.Payment, error)
	UpdateStatusWhere(ctx context.Context, id uuid.UUID, from enums.PaymentStatus, updates map[string]any) (int64, error)
	SumSettledByOrder(ctx context.Context, orderID uuid.UUID) (decimal.Decimal, error)
}

// OrderFinder loads the rental order a payment is recorded against. The
// rentals repository satisfies it.
type OrderFinder interface {
	Find(ctx context.Context, id uuid.UUID) (*models.RentalOrder, error)
}
