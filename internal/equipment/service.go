package equipment

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/heavyrent/backend/pkg/db/models"
	"github.com/heavyrent/backend/pkg/enums"
	pkgerrors "github.com/heavyrent/backend/pkg/errors"
	"github.com/heavyrent/backend/pkg/pagination"
)

// Service manages the equipment fleet registry. Status flips never happen
// here; the rental and maintenance services own those.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.Equipment, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Equipment, error)
	List(ctx context.Context, filters ListFilters, params pagination.Params) (*EquipmentList, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.Equipment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
}

// NewService builds an equipment service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("equipment repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Equipment, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name required")
	}
	if strings.TrimSpace(input.Category) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category required")
	}
	if input.DailyRate.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "daily rate must not be negative")
	}

	unit := &models.Equipment{
		Name:        input.Name,
		Category:    input.Category,
		Capacity:    input.Capacity,
		DailyRate:   input.DailyRate,
		Status:      enums.EquipmentStatusAvailable,
		Description: input.Description,
		Location:    input.Location,
	}

	created, err := s.repo.Create(ctx, unit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create equipment")
	}
	return created, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Equipment, error) {
	return s.load(ctx, id)
}

func (s *service) List(ctx context.Context, filters ListFilters, params pagination.Params) (*EquipmentList, error) {
	if filters.Status != nil && !filters.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status filter")
	}
	list, err := s.repo.List(ctx, filters, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list equipment")
	}
	return list, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.Equipment, error) {
	unit, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name must not be empty")
		}
		updates["name"] = *input.Name
	}
	if input.Category != nil {
		if strings.TrimSpace(*input.Category) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "category must not be empty")
		}
		updates["category"] = *input.Category
	}
	if input.Capacity != nil {
		updates["capacity"] = *input.Capacity
	}
	if input.DailyRate != nil {
		if input.DailyRate.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "daily rate must not be negative")
		}
		updates["daily_rate"] = *input.DailyRate
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Location != nil {
		updates["location"] = *input.Location
	}
	if len(updates) == 0 {
		return unit, nil
	}

	if err := s.repo.Update(ctx, id, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update equipment")
	}
	return s.load(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	unit, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if unit.Status == enums.EquipmentStatusRented {
		return pkgerrors.New(pkgerrors.CodeConflict, "equipment is currently rented")
	}

	active, err := s.repo.CountActiveRentals(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count active rentals")
	}
	if active > 0 {
		return pkgerrors.New(pkgerrors.CodeConflict, "equipment has open rental orders")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete equipment")
	}
	return nil
}

func (s *service) load(ctx context.Context, id uuid.UUID) (*models.Equipment, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "equipment id required")
	}
	unit, err := s.repo.Find(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "equipment not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load equipment")
	}
	return unit, nil
}
