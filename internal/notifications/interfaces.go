package notifications

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/heavyrent/backend/pkg/db/models"
	"github.com/heavyrent/backend/pkg/pagination"
)

// Repository defines persistence operations for notification rows.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, notification *models.Notification) (*models.Notification, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID, params pagination.Params) (*NotificationList, error)
	MarkRead(ctx context.Context, id uuid.UUID) (int64, error)
	FindCustomer(ctx context.Context, id uuid.UUID) (*models.Customer, error)
}

// NotificationList wraps a page of notifications plus the next page cursor.
type NotificationList struct {
	Notifications []models.Notification `json:"notifications"`
	NextCursor    string                `json:"next_cursor,omitempty"`
}
