package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/heavyrent/backend/pkg/enums"
)

// Notification is a customer-facing event row written after a lifecycle
// transition commits.
type Notification struct {
	ID            uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CustomerID    uuid.UUID              `gorm:"column:customer_id;type:uuid;not null" json:"customer_id"`
	RentalOrderID uuid.UUID              `gorm:"column:rental_order_id;type:uuid;not null" json:"rental_order_id"`
	Type          enums.NotificationType `gorm:"column:type;type:text;not null" json:"type"`
	Message       string                 `gorm:"column:message;not null" json:"message"`
	ReadAt        *time.Time             `gorm:"column:read_at" json:"read_at,omitempty"`
	CreatedAt     time.Time              `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time              `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
