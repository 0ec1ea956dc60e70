package notifications

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heavyrent/backend/pkg/db/models"
	"github.com/heavyrent/backend/pkg/enums"
	pkgerrors "github.com/heavyrent/backend/pkg/errors"
	"github.com/heavyrent/backend/pkg/logger"
	"github.com/heavyrent/backend/pkg/mailer"
	"github.com/heavyrent/backend/pkg/pagination"
)

// Service writes customer notification rows and fans out best-effort emails.
// The fanout methods satisfy the rentals service's Notifier dependency and
// never propagate failures back to the caller.
type Service interface {
	RentalApproved(ctx context.Context, order *models.RentalOrder)
	RentalRejected(ctx context.Context, order *models.RentalOrder, reason string)
	RentalCompleted(ctx context.Context, order *models.RentalOrder)
	ListByCustomer(ctx context.Context, customerID uuid.UUID, params pagination.Params) (*NotificationList, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
	mail mailer.Sender
	logg *logger.Logger
}

// NewService builds a notifications service. mail may be nil when email
// delivery is not configured.
func NewService(repo Repository, mail mailer.Sender, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("notifications repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, mail: mail, logg: logg}, nil
}

func (s *service) RentalApproved(ctx context.Context, order *models.RentalOrder) {
	message := "Your rental request has been approved and is now in delivery."
	s.emit(ctx, order, enums.NotificationTypeRentalApproved, message, "Rental approved")
}

func (s *service) RentalRejected(ctx context.Context, order *models.RentalOrder, reason string) {
	message := fmt.Sprintf("Your rental request was rejected: %s", reason)
	s.emit(ctx, order, enums.NotificationTypeRentalRejected, message, "Rental rejected")
}

func (s *service) RentalCompleted(ctx context.Context, order *models.RentalOrder) {
	message := "Your rental has been completed. Thank you for renting with us."
	s.emit(ctx, order, enums.NotificationTypeRentalComplete, message, "Rental completed")
}

func (s *service) emit(ctx context.Context, order *models.RentalOrder, kind enums.NotificationType, message, subject string) {
	if order == nil {
		return
	}
	ctx = s.logg.WithRentalID(ctx, order.ID.String())

	_, err := s.repo.Create(ctx, &models.Notification{
		CustomerID:    order.CustomerID,
		RentalOrderID: order.ID,
		Type:          kind,
		Message:       message,
	})
	if err != nil {
		s.logg.Error(ctx, "persist notification", err)
		return
	}

	if s.mail == nil {
		return
	}
	customer, err := s.repo.FindCustomer(ctx, order.CustomerID)
	if err != nil {
		s.logg.Error(ctx, "load customer for notification email", err)
		return
	}
	if err := s.mail.Send(ctx, customer.Email, subject, message); err != nil {
		s.logg.Error(ctx, "send notification email", err)
	}
}

func (s *service) ListByCustomer(ctx context.Context, customerID uuid.UUID, params pagination.Params) (*NotificationList, error) {
	if customerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}
	list, err := s.repo.ListByCustomer(ctx, customerID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list notifications")
	}
	return list, nil
}

func (s *service) MarkRead(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "notification id required")
	}
	affected, err := s.repo.MarkRead(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark notification read")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "unread notification not found")
	}
	return nil
}
