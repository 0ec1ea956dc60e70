package maintenance

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/heavyrent/backend/pkg/db/models"
	"github.com/heavyrent/backend/pkg/enums"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a maintenance repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, record *models.MaintenanceRecord) (*models.MaintenanceRecord, error) {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

func (r *repository) Find(ctx context.Context, id uuid.UUID) (*models.MaintenanceRecord, error) {
	var record models.MaintenanceRecord
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *repository) ListByEquipment(ctx context.Context, equipmentID uuid.UUID) ([]models.MaintenanceRecord, error) {
	var records []models.MaintenanceRecord
	err := r.db.WithContext(ctx).
		Where("equipment_id = ?", equipmentID).
		Order("scheduled_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *repository) UpdateStatusWhere(ctx context.Context, id uuid.UUID, from enums.MaintenanceStatus, updates map[string]any) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.MaintenanceRecord{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
