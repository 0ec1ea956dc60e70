package schedules

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/heavyrent/backend/pkg/db/models"
	"github.com/heavyrent/backend/pkg/enums"
)

// Repository defines persistence operations for delivery schedules.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, schedule *models.DeliverySchedule) (*models.DeliverySchedule, error)
	Find(ctx context.Context, id uuid.UUID) (*models.DeliverySchedule, error)
	ListByRentalOrder(ctx context.Context, orderID uuid.UUID) ([]models.DeliverySchedule, error)
	UpdateWhere(ctx context.Context, id uuid.UUID, from enums.ScheduleStatus, updates map[string]any) (int64, error)
	DeleteWhere(ctx context.Context, id uuid.UUID, from enums.ScheduleStatus) (int64, error)
}

// OrderFinder is the slice of the rentals repository schedules depend on.
type OrderFinder interface {
	Find(ctx context.Context, id uuid.UUID) (*models.RentalOrder, error)
}

// StaffFinder resolves the staff member assigned to a delivery run.
type StaffFinder interface {
	Find(ctx context.Context, id uuid.UUID) (*models.Staff, error)
}
