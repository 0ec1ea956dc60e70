package rentals

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/heavyrent/backend/pkg/db/models"
	"github.com/heavyrent/backend/pkg/enums"
	"github.com/heavyrent/backend/pkg/pagination"
)

// Repository defines persistence operations for rental order tables.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, order *models.RentalOrder) (*models.RentalOrder, error)
	Find(ctx context.Context, id uuid.UUID) (*models.RentalOrder, error)
	FindDetail(ctx context.Context, id uuid.UUID) (*models.RentalOrder, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID, params pagination.Params) (*OrderList, error)
	ListPendingApprovals(ctx context.Context, params pagination.Params) (*OrderList, error)
	UpdateWhereLifecycle(ctx context.Context, id uuid.UUID, current enums.RentalStatus, updates map[string]any) (int64, error)
}

// EquipmentGate flips equipment availability inside a rental transaction.
// Reserve and Release report whether a row actually changed so callers can
// detect a lost race.
type EquipmentGate interface {
	Exists(ctx context.Context, db *gorm.DB, equipmentID uuid.UUID) (bool, error)
	Reserve(ctx context.Context, tx *gorm.DB, equipmentID uuid.UUID) (bool, error)
	Release(ctx context.Context, tx *gorm.DB, equipmentID uuid.UUID) (bool, error)
}

// Notifier fans out customer-facing events after a lifecycle transition
// commits. Implementations are best-effort and must not fail the request.
type Notifier interface {
	RentalApproved(ctx context.Context, order *models.RentalOrder)
	RentalRejected(ctx context.Context, order *models.RentalOrder, reason string)
	RentalCompleted(ctx context.Context, order *models.RentalOrder)
}
