package schedules

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

// NewRepository builds a schedules repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, schedule *models.DeliverySchedule) (*models.DeliverySchedule, error) {
	if schedule.ID == uuid.Nil {
		schedule.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(schedule).Error; err != nil {
		return nil, err
	}
	return schedule, nil
}

func (r *repository) Find(ctx context.Context, id uuid.UUID) (*models.DeliverySchedule, error) {
	var schedule models.DeliverySchedule
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&schedule).Error
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *repository) ListByRentalOrder(ctx context.Context, orderID uuid.UUID) ([]models.DeliverySchedule, error) {
	var rows []models.DeliverySchedule
	err := r.db.WithContext(ctx).
		Where("rental_order_id = ?", orderID).
		Order("start_date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) UpdateWhere(ctx context.Context, id uuid.UUID, from enums.ScheduleStatus, updates map[string]any) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.DeliverySchedule{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *repository) DeleteWhere(ctx context.Context, id uuid.UUID, from enums.ScheduleStatus) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND status = ?", id, from).
		Delete(&models.DeliverySchedule{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
