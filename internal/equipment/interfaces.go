package equipment

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/heavyrent/backend/pkg/db/models"
	"github.com/heavyrent/backend/pkg/enums"
	"github.com/heavyrent/backend/pkg/pagination"
)

// Repository defines persistence operations for the equipment fleet.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, unit *models.Equipment) (*models.Equipment, error)
	Find(ctx context.Context, id uuid.UUID) (*models.Equipment, error)
	List(ctx context.Context, filters ListFilters, params pagination.Params) (*EquipmentList, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	UpdateStatusWhere(ctx context.Context, id uuid.UUID, from, to enums.EquipmentStatus) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountActiveRentals(ctx context.Context, id uuid.UUID) (int64, error)
}
