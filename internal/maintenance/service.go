package maintenance

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/heavyrent/backend/internal/equipment"
	"github.com/heavyrent/backend/pkg/db/models"
	"github.com/heavyrent/backend/pkg/enums"
	pkgerrors "github.com/heavyrent/backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// ScheduleInput captures a service window for an equipment unit.
type ScheduleInput struct {
	EquipmentID uuid.UUID
	ScheduledAt time.Time
	Description string
}

// Service schedules maintenance work. Scheduling takes a unit out of the
// rentable pool; finishing returns it.
type Service interface {
	Schedule(ctx context.Context, input ScheduleInput) (*models.MaintenanceRecord, error)
	Finish(ctx context.Context, recordID uuid.UUID) (*models.MaintenanceRecord, error)
	ListByEquipment(ctx context.Context, equipmentID uuid.UUID) ([]models.MaintenanceRecord, error)
}

type service struct {
	repo  Repository
	fleet equipment.Repository
	tx    txRunner
}

// NewService builds a maintenance service.
func NewService(repo Repository, fleet equipment.Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("maintenance repository required")
	}
	if fleet == nil {
		return nil, fmt.Errorf("equipment repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, fleet: fleet, tx: tx}, nil
}

func (s *service) Schedule(ctx context.Context, input ScheduleInput) (*models.MaintenanceRecord, error) {
	if input.EquipmentID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "equipment id required")
	}
	if input.ScheduledAt.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "scheduled date required")
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "description required")
	}

	var created *models.MaintenanceRecord
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		fleet := s.fleet.WithTx(tx)

		if _, err := fleet.Find(ctx, input.EquipmentID); err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "equipment not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load equipment")
		}

		affected, err := fleet.UpdateStatusWhere(ctx, input.EquipmentID, enums.EquipmentStatusAvailable, enums.EquipmentStatusMaintenance)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "flip equipment status")
		}
		if affected == 0 {
			return pkgerrors.New(pkgerrors.CodeConflict, "equipment is not available")
		}

		created, err = s.repo.WithTx(tx).Create(ctx, &models.MaintenanceRecord{
			EquipmentID: input.EquipmentID,
			ScheduledAt: input.ScheduledAt,
			Description: input.Description,
			Status:      enums.MaintenanceStatusScheduled,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create maintenance record")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *service) Finish(ctx context.Context, recordID uuid.UUID) (*models.MaintenanceRecord, error) {
	if recordID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "record id required")
	}

	var finished *models.MaintenanceRecord
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		record, err := repo.Find(ctx, recordID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "maintenance record not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load maintenance record")
		}
		if record.Status != enums.MaintenanceStatusScheduled {
			return pkgerrors.New(pkgerrors.CodeInvalidState, "maintenance record is already closed")
		}

		now := time.Now().UTC()
		affected, err := repo.UpdateStatusWhere(ctx, record.ID, enums.MaintenanceStatusScheduled, map[string]any{
			"status":      enums.MaintenanceStatusFinished,
			"finished_at": now,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "close maintenance record")
		}
		if affected == 0 {
			return pkgerrors.New(pkgerrors.CodeInvalidState, "maintenance record is already closed")
		}

		flipped, err := s.fleet.WithTx(tx).UpdateStatusWhere(ctx, record.EquipmentID, enums.EquipmentStatusMaintenance, enums.EquipmentStatusAvailable)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "flip equipment status")
		}
		if flipped == 0 {
			return pkgerrors.New(pkgerrors.CodeConflict, "equipment is not under maintenance")
		}

		record.Status = enums.MaintenanceStatusFinished
		record.FinishedAt = &now
		finished = record
		return nil
	})
	if err != nil {
		return nil, err
	}
	return finished, nil
}

func (s *service) ListByEquipment(ctx context.Context, equipmentID uuid.UUID) ([]models.MaintenanceRecord, error) {
	if equipmentID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "equipment id required")
	}
	records, err := s.repo.ListByEquipment(ctx, equipmentID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list maintenance records")
	}
	return records, nil
}
