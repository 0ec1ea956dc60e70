package payments

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
)

// RecordInput captures money received against a rental order.
type RecordInput struct {
	OrderID uuid.UUID
	Amount  decimal.Decimal
	Method  string
	PaidAt  time.Time
}

// Service maintains the payment ledger. Settlement is independent of the
// rental lifecycle; an in-delivery order may still be awaiting verification.
type Service interface {
	Record(ctx context.Context, input RecordInput) (*models.Payment, error)
	Verify(ctx context.Context, paymentID, verifierID uuid.UUID) (*models.Payment, error)
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]models.Payment, error)
	SumSettledByOrder(ctx context.Context, orderID uuid.UUID) (decimal.Decimal, error)
}

type service struct {
	repo   Repository
	orders OrderFinder
}

// NewService builds a payments service.
func NewService(repo Repository, orders OrderFinder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("payments repository required")
	}
	if orders == nil {
		return nil, fmt.Errorf("order finder required")
	}
	return &service{repo: repo, orders: orders}, nil
}

func (s *service) Record(ctx context.Context, input RecordInput) (*models.Payment, error) {
	if input.OrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if !input.Amount.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must be positive")
	}
	method, err := enums.ParsePaymentMethod(input.Method)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown payment method")
	}
	paidAt := input.PaidAt
	if paidAt.IsZero() {
		paidAt = time.Now().UTC()
	}

	if _, err := s.orders.Find(ctx, input.OrderID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "rental order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load rental order")
	}

	payment := &models.Payment{
		RentalOrderID: input.OrderID,
		PaidAt:        paidAt,
		Amount:        input.Amount,
		Method:        method,
		Status:        enums.PaymentStatusAwaitingVerification,
	}
	created, err := s.repo.Create(ctx, payment)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record payment")
	}
	return created, nil
}

func (s *service) Verify(ctx context.Context, paymentID, verifierID uuid.UUID) (*models.Payment, error) {
	if paymentID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment id required")
	}
	if verifierID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "verifier identity missing")
	}

	payment, err := s.repo.Find(ctx, paymentID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "payment not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load payment")
	}
	if payment.Status != enums.PaymentStatusAwaitingVerification {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidState, "payment is not awaiting verification")
	}

	now := time.Now().UTC()
	affected, err := s.repo.UpdateStatusWhere(ctx, payment.ID, enums.PaymentStatusAwaitingVerification, map[string]any{
		"status":      enums.PaymentStatusSettled,
		"verified_by": verifierID,
		"verified_at": now,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "settle payment")
	}
	if affected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidState, "payment is not awaiting verification")
	}

	payment.Status = enums.PaymentStatusSettled
	payment.VerifiedBy = &verifierID
	payment.VerifiedAt = &now
	return payment, nil
}

func (s *service) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]models.Payment, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	list, err := s.repo.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list payments")
	}
	return list, nil
}

func (s *service) SumSettledByOrder(ctx context.Context, orderID uuid.UUID) (decimal.Decimal, error) {
	if orderID == uuid.Nil {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	total, err := s.repo.SumSettledByOrder(ctx, orderID)
	if err != nil {
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum settled payments")
	}
	return total, nil
}
