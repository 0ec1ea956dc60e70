package rentals

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/heavyrent/backend/pkg/db/models"
	"github.com/heavyrent/backend/pkg/enums"
	pkgerrors "github.com/heavyrent/backend/pkg/errors"
)

type equipmentGateImpl struct{}

// NewEquipmentGate exposes the default equipment availability gate.
func NewEquipmentGate() EquipmentGate {
	return equipmentGateImpl{}
}

func (equipmentGateImpl) Exists(ctx context.Context, db *gorm.DB, equipmentID uuid.UUID) (bool, error) {
	if db == nil {
		return false, pkgerrors.New(pkgerrors.CodeDependency, "db handle required for equipment lookup")
	}
	var count int64
	err := db.WithContext(ctx).
		Model(&models.Equipment{}).
		Where("id = ?", equipmentID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (equipmentGateImpl) Reserve(ctx context.Context, tx *gorm.DB, equipmentID uuid.UUID) (bool, error) {
	return flipStatus(ctx, tx, equipmentID, enums.EquipmentStatusAvailable, enums.EquipmentStatusRented)
}

func (equipmentGateImpl) Release(ctx context.Context, tx *gorm.DB, equipmentID uuid.UUID) (bool, error) {
	return flipStatus(ctx, tx, equipmentID, enums.EquipmentStatusRented, enums.EquipmentStatusAvailable)
}

// flipStatus performs a guarded status transition. Zero affected rows means
// the unit was not in the expected state when the update ran.
func flipStatus(ctx context.Context, tx *gorm.DB, equipmentID uuid.UUID, from, to enums.EquipmentStatus) (bool, error) {
	if tx == nil {
		return false, pkgerrors.New(pkgerrors.CodeDependency, "transaction required for equipment status flip")
	}

	res := tx.WithContext(ctx).Exec(`
		UPDATE equipment
		SET status = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND status = ?
	`, to, equipmentID, from)
	if res.Error != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, res.Error, "flip equipment status")
	}
	return res.RowsAffected > 0, nil
}
