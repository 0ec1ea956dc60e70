package schedules

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/heavyrent/backend/pkg/db/models"
	"github.com/heavyrent/backend/pkg/enums"
	pkgerrors "github.com/heavyrent/backend/pkg/errors"
)

// CreateInput books a delivery/pickup window for a rental order.
type CreateInput struct {
	RentalOrderID    uuid.UUID
	StartDate        time.Time
	EndDate          time.Time
	DeliveryLocation *string
	PickupLocation   *string
	AssignedStaffID  *uuid.UUID
}

// UpdateInput carries the mutable schedule fields. Nil fields are left
// untouched; Status moves the schedule along its lifecycle.
type UpdateInput struct {
	StartDate        *time.Time
	EndDate          *time.Time
	DeliveryLocation *string
	PickupLocation   *string
	AssignedStaffID  *uuid.UUID
	Status           *enums.ScheduleStatus
}

// Service manages delivery schedules. Every status move runs through a
// guarded update so concurrent edits cannot revive a closed schedule.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.DeliverySchedule, error)
	Get(ctx context.Context, id uuid.UUID) (*models.DeliverySchedule, error)
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]models.DeliverySchedule, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.DeliverySchedule, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

var scheduleTransitions = map[enums.ScheduleStatus][]enums.ScheduleStatus{
	enums.ScheduleStatusScheduled:  {enums.ScheduleStatusInProgress, enums.ScheduleStatusCancelled},
	enums.ScheduleStatusInProgress: {enums.ScheduleStatusCompleted, enums.ScheduleStatusCancelled},
}

type service struct {
	repo   Repository
	orders OrderFinder
	staff  StaffFinder
}

// NewService builds a schedules service.
func NewService(repo Repository, orders OrderFinder, staff StaffFinder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("schedules repository required")
	}
	if orders == nil {
		return nil, fmt.Errorf("order finder required")
	}
	if staff == nil {
		return nil, fmt.Errorf("staff finder required")
	}
	return &service{repo: repo, orders: orders, staff: staff}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.DeliverySchedule, error) {
	if input.RentalOrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rental order id required")
	}
	if input.StartDate.IsZero() || input.EndDate.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "start and end dates required")
	}
	if input.EndDate.Before(input.StartDate) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "end date must not precede start date")
	}

	order, err := s.orders.Find(ctx, input.RentalOrderID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "rental order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load rental order")
	}
	if order.LifecycleStatus == enums.RentalStatusCancelled {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidState, "rental order is cancelled")
	}

	if err := s.checkAssignee(ctx, input.AssignedStaffID); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &models.DeliverySchedule{
		RentalOrderID:    input.RentalOrderID,
		StartDate:        input.StartDate,
		EndDate:          input.EndDate,
		DeliveryLocation: input.DeliveryLocation,
		PickupLocation:   input.PickupLocation,
		Status:           enums.ScheduleStatusScheduled,
		AssignedStaffID:  input.AssignedStaffID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create delivery schedule")
	}
	return created, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.DeliverySchedule, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "schedule id required")
	}
	schedule, err := s.repo.Find(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "delivery schedule not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load delivery schedule")
	}
	return schedule, nil
}

func (s *service) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]models.DeliverySchedule, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rental order id required")
	}
	rows, err := s.repo.ListByRentalOrder(ctx, orderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list delivery schedules")
	}
	return rows, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*models.DeliverySchedule, error) {
	schedule, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if schedule.Status.IsTerminal() {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidState, "delivery schedule is closed")
	}

	start := schedule.StartDate
	if input.StartDate != nil {
		start = *input.StartDate
	}
	end := schedule.EndDate
	if input.EndDate != nil {
		end = *input.EndDate
	}
	if end.Before(start) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "end date must not precede start date")
	}

	if err := s.checkAssignee(ctx, input.AssignedStaffID); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.StartDate != nil {
		updates["start_date"] = start
	}
	if input.EndDate != nil {
		updates["end_date"] = end
	}
	if input.DeliveryLocation != nil {
		updates["delivery_location"] = *input.DeliveryLocation
	}
	if input.PickupLocation != nil {
		updates["pickup_location"] = *input.PickupLocation
	}
	if input.AssignedStaffID != nil {
		updates["assigned_staff_id"] = *input.AssignedStaffID
	}
	if input.Status != nil {
		if !canTransitionSchedule(schedule.Status, *input.Status) {
			return nil, pkgerrors.New(pkgerrors.CodeInvalidState,
				fmt.Sprintf("cannot move schedule from %s to %s", schedule.Status, *input.Status))
		}
		updates["status"] = *input.Status
	}
	if len(updates) == 0 {
		return schedule, nil
	}

	affected, err := s.repo.UpdateWhere(ctx, schedule.ID, schedule.Status, updates)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update delivery schedule")
	}
	if affected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidState, "delivery schedule changed concurrently")
	}

	schedule.StartDate = start
	schedule.EndDate = end
	if input.DeliveryLocation != nil {
		schedule.DeliveryLocation = input.DeliveryLocation
	}
	if input.PickupLocation != nil {
		schedule.PickupLocation = input.PickupLocation
	}
	if input.AssignedStaffID != nil {
		schedule.AssignedStaffID = input.AssignedStaffID
	}
	if input.Status != nil {
		schedule.Status = *input.Status
	}
	return schedule, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "schedule id required")
	}

	schedule, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if schedule.Status != enums.ScheduleStatusScheduled {
		return pkgerrors.New(pkgerrors.CodeInvalidState, "only a scheduled delivery can be removed")
	}

	affected, err := s.repo.DeleteWhere(ctx, schedule.ID, enums.ScheduleStatusScheduled)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete delivery schedule")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeInvalidState, "delivery schedule changed concurrently")
	}
	return nil
}

func (s *service) checkAssignee(ctx context.Context, staffID *uuid.UUID) error {
	if staffID == nil {
		return nil
	}
	if *staffID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "assigned staff id must not be empty")
	}
	if _, err := s.staff.Find(ctx, *staffID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return pkgerrors.New(pkgerrors.CodeNotFound, "assigned staff member not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load staff member")
	}
	return nil
}

func canTransitionSchedule(from, to enums.ScheduleStatus) bool {
	for _, next := range scheduleTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
