package rentals

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/heavyrent/backend/pkg/db/models"
	"github.com/heavyrent/backend/pkg/enums"
	pkgerrors "github.com/heavyrent/backend/pkg/errors"
	"github.com/heavyrent/backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service manages the rental order lifecycle. It is the only writer of
// approval_status, lifecycle_status and the equipment status flips tied to
// them.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*models.RentalOrder, error)
	Approve(ctx context.Context, orderID, approverID uuid.UUID) (*models.RentalOrder, error)
	Reject(ctx context.Context, input RejectInput) (*models.RentalOrder, error)
	Complete(ctx context.Context, orderID uuid.UUID) (*models.RentalOrder, error)
	Get(ctx context.Context, id uuid.UUID) (*OrderDetail, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID, params pagination.Params) (*OrderList, error)
	ListPendingApprovals(ctx context.Context, params pagination.Params) (*OrderList, error)
	Rate(ctx context.Context, input RateInput) error
}

type service struct {
	repo     Repository
	tx       txRunner
	gate     EquipmentGate
	notifier Notifier
}

// NewService builds a rentals service with the required dependencies. The
// notifier is optional; pass nil to disable fanout.
func NewService(repo Repository, tx txRunner, gate EquipmentGate, notifier Notifier) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("rentals repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if gate == nil {
		return nil, fmt.Errorf("equipment gate required")
	}
	return &service{
		repo:     repo,
		tx:       tx,
		gate:     gate,
		notifier: notifier,
	}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.RentalOrder, error) {
	if input.CustomerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}
	if input.EquipmentID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "equipment id required")
	}
	if input.RentalDate.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rental date required")
	}
	if input.ReturnDate != nil && input.ReturnDate.Before(input.RentalDate) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "return date must not precede rental date")
	}
	if input.TotalPrice.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "total price must not be negative")
	}

	var created *models.RentalOrder
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		exists, err := s.gate.Exists(ctx, tx, input.EquipmentID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check equipment")
		}
		if !exists {
			return pkgerrors.New(pkgerrors.CodeNotFound, "equipment not found")
		}

		order := &models.RentalOrder{
			CustomerID:      input.CustomerID,
			EquipmentID:     input.EquipmentID,
			RentalDate:      input.RentalDate,
			ReturnDate:      input.ReturnDate,
			TotalPrice:      input.TotalPrice,
			ApprovalStatus:  enums.ApprovalStatusPending,
			LifecycleStatus: enums.RentalStatusAwaitingApproval,
			ProjectName:     input.ProjectName,
			ProjectLocation: input.ProjectLocation,
		}

		created, err = s.repo.WithTx(tx).Create(ctx, order)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create rental order")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *service) Approve(ctx context.Context, orderID, approverID uuid.UUID) (*models.RentalOrder, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if approverID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "approver identity missing")
	}

	var approved *models.RentalOrder
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order, err := loadOrder(ctx, repo, orderID)
		if err != nil {
			return err
		}
		if order.LifecycleStatus != enums.RentalStatusAwaitingApproval {
			return pkgerrors.New(pkgerrors.CodeInvalidState, "rental is not awaiting approval")
		}

		now := time.Now().UTC()
		affected, err := repo.UpdateWhereLifecycle(ctx, order.ID, enums.RentalStatusAwaitingApproval, map[string]any{
			"approval_status":  enums.ApprovalStatusApproved,
			"lifecycle_status": enums.RentalStatusInDelivery,
			"approved_by":      approverID,
			"approved_at":      now,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update rental order")
		}
		if affected == 0 {
			// lost the race to a concurrent decision
			return pkgerrors.New(pkgerrors.CodeInvalidState, "rental is not awaiting approval")
		}

		ok, err := s.gate.Reserve(ctx, tx, order.EquipmentID)
		if err != nil {
			return err
		}
		if !ok {
			return pkgerrors.New(pkgerrors.CodeConflict, "equipment is not available")
		}

		order.ApprovalStatus = enums.ApprovalStatusApproved
		order.LifecycleStatus = enums.RentalStatusInDelivery
		order.ApprovedBy = &approverID
		order.ApprovedAt = &now
		approved = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.RentalApproved(ctx, approved)
	}
	return approved, nil
}

func (s *service) Reject(ctx context.Context, input RejectInput) (*models.RentalOrder, error) {
	if input.OrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if input.ApproverID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "approver identity missing")
	}
	if input.Reason == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rejection reason required")
	}

	var rejected *models.RentalOrder
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order, err := loadOrder(ctx, repo, input.OrderID)
		if err != nil {
			return err
		}
		if order.LifecycleStatus != enums.RentalStatusAwaitingApproval {
			return pkgerrors.New(pkgerrors.CodeInvalidState, "rental is not awaiting approval")
		}

		affected, err := repo.UpdateWhereLifecycle(ctx, order.ID, enums.RentalStatusAwaitingApproval, map[string]any{
			"approval_status":  enums.ApprovalStatusRejected,
			"lifecycle_status": enums.RentalStatusCancelled,
			"rejection_reason": input.Reason,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update rental order")
		}
		if affected == 0 {
			return pkgerrors.New(pkgerrors.CodeInvalidState, "rental is not awaiting approval")
		}

		order.ApprovalStatus = enums.ApprovalStatusRejected
		order.LifecycleStatus = enums.RentalStatusCancelled
		order.RejectionReason = &input.Reason
		rejected = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.RentalRejected(ctx, rejected, input.Reason)
	}
	return rejected, nil
}

func (s *service) Complete(ctx context.Context, orderID uuid.UUID) (*models.RentalOrder, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}

	var completed *models.RentalOrder
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order, err := loadOrder(ctx, repo, orderID)
		if err != nil {
			return err
		}
		if order.LifecycleStatus != enums.RentalStatusInDelivery {
			return pkgerrors.New(pkgerrors.CodeInvalidState, "rental is not in delivery")
		}

		affected, err := repo.UpdateWhereLifecycle(ctx, order.ID, enums.RentalStatusInDelivery, map[string]any{
			"lifecycle_status": enums.RentalStatusCompleted,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update rental order")
		}
		if affected == 0 {
			return pkgerrors.New(pkgerrors.CodeInvalidState, "rental is not in delivery")
		}

		ok, err := s.gate.Release(ctx, tx, order.EquipmentID)
		if err != nil {
			return err
		}
		if !ok {
			return pkgerrors.New(pkgerrors.CodeConflict, "equipment is not rented")
		}

		order.LifecycleStatus = enums.RentalStatusCompleted
		completed = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.RentalCompleted(ctx, completed)
	}
	return completed, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*OrderDetail, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}

	order, err := s.repo.FindDetail(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "rental order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load rental order")
	}

	settled := decimal.Zero
	for _, payment := range order.Payments {
		if payment.Status == enums.PaymentStatusSettled {
			settled = settled.Add(payment.Amount)
		}
	}

	return &OrderDetail{
		Order:        order,
		SettledTotal: settled,
	}, nil
}

func (s *service) ListByCustomer(ctx context.Context, customerID uuid.UUID, params pagination.Params) (*OrderList, error) {
	if customerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}
	list, err := s.repo.ListByCustomer(ctx, customerID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list customer rentals")
	}
	return list, nil
}

func (s *service) ListPendingApprovals(ctx context.Context, params pagination.Params) (*OrderList, error) {
	list, err := s.repo.ListPendingApprovals(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list pending approvals")
	}
	return list, nil
}

func (s *service) Rate(ctx context.Context, input RateInput) error {
	if input.OrderID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if input.Rating < 1 || input.Rating > 5 {
		return pkgerrors.New(pkgerrors.CodeValidation, "rating must be between 1 and 5")
	}

	affected, err := s.repo.UpdateWhereLifecycle(ctx, input.OrderID, enums.RentalStatusCompleted, map[string]any{
		"rating": input.Rating,
		"review": input.Review,
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update rating")
	}
	if affected > 0 {
		return nil
	}

	if _, err := loadOrder(ctx, s.repo, input.OrderID); err != nil {
		return err
	}
	return pkgerrors.New(pkgerrors.CodeInvalidState, "only completed rentals can be rated")
}

func loadOrder(ctx context.Context, repo Repository, id uuid.UUID) (*models.RentalOrder, error) {
	order, err := repo.Find(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "rental order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load rental order")
	}
	return order, nil
}
