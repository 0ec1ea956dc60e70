package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/heavyrent/backend/pkg/enums"
)

// Payment records money received against a rental order. Settlement is
// independent of the rental lifecycle: an order may be in delivery while its
// payment is still awaiting verification.
type Payment struct {
	ID            uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	RentalOrderID uuid.UUID           `gorm:"column:rental_order_id;type:uuid;not null" json:"rental_order_id"`
	PaidAt        time.Time           `gorm:"column:paid_at;not null" json:"paid_at"`
	Amount        decimal.Decimal     `gorm:"column:amount;type:numeric(14,2);not null" json:"amount"`
	Method        enums.PaymentMethod `gorm:"column:method;type:text;not null" json:"method"`
	Status        enums.PaymentStatus `gorm:"column:status;type:text;not null;default:'awaiting_verification'" json:"status"`
	VerifiedBy    *uuid.UUID          `gorm:"column:verified_by;type:uuid" json:"verified_by,omitempty"`
	VerifiedAt    *time.Time          `gorm:"column:verified_at" json:"verified_at,omitempty"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time           `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
