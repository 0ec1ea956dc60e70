package equipment

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/heavyrent/backend/pkg/db/models"
	"github.com/heavyrent/backend/pkg/enums"
	"github.com/heavyrent/backend/pkg/pagination"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds an equipment repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, unit *models.Equipment) (*models.Equipment, error) {
	if unit.ID == uuid.Nil {
		unit.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(unit).Error; err != nil {
		return nil, err
	}
	return unit, nil
}

func (r *repository) Find(ctx context.Context, id uuid.UUID) (*models.Equipment, error) {
	var unit models.Equipment
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&unit).Error
	if err != nil {
		return nil, err
	}
	return &unit, nil
}

func (r *repository) List(ctx context.Context, filters ListFilters, params pagination.Params) (*EquipmentList, error) {
	query := r.db.WithContext(ctx).Model(&models.Equipment{})
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}
	if cursor != nil {
		query = query.Where(
			"(created_at < ?) OR (created_at = ? AND id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}

	limit := pagination.NormalizeLimit(params.Limit)

	var units []models.Equipment
	err = query.
		Order("created_at DESC, id DESC").
		Limit(pagination.LimitWithBuffer(params.Limit)).
		Find(&units).Error
	if err != nil {
		return nil, err
	}

	list := &EquipmentList{Equipment: units}
	if len(units) > limit {
		list.Equipment = units[:limit]
		last := list.Equipment[limit-1]
		list.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}
	return list, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Equipment{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) UpdateStatusWhere(ctx context.Context, id uuid.UUID, from, to enums.EquipmentStatus) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Equipment{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Equipment{}).Error
}

func (r *repository) CountActiveRentals(ctx context.Context, id uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.RentalOrder{}).
		Where("equipment_id = ? AND lifecycle_status IN ?", id, []enums.RentalStatus{
			enums.RentalStatusAwaitingApproval,
			enums.RentalStatusInDelivery,
		}).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
