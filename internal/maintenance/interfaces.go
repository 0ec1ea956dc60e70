package maintenance

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/heavyrent/backend/pkg/db/models"
	"github.com/heavyrent/backend/pkg/enums"
)

// Repository defines persistence operations for maintenance records.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, record *models.MaintenanceRecord) (*models.MaintenanceRecord, error)
	Find(ctx context.Context, id uuid.UUID) (*models.MaintenanceRecord, error)
	ListByEquipment(ctx context.Context, equipmentID uuid.UUID) ([]models.MaintenanceRecord, error)
	UpdateStatusWhere(ctx context.Context, id uuid.UUID, from enums.MaintenanceStatus, updates map[string]any) (int64, error)
}
