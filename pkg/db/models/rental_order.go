package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/heavyrent/backend/pkg/enums"
)

// RentalOrder is a customer's request to rent one equipment unit for a date
// range. ApprovalStatus and LifecycleStatus are redundant in places but the
// legacy API exposes both, so both are persisted; the rentals service is the
// only writer and keeps them consistent:
//
//	pending  <=> awaiting_approval
//	rejected  => cancelled
//	approved  => in_delivery or completed
type RentalOrder struct {
	ID              uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CustomerID      uuid.UUID            `gorm:"column:customer_id;type:uuid;not null" json:"customer_id"`
	EquipmentID     uuid.UUID            `gorm:"column:equipment_id;type:uuid;not null" json:"equipment_id"`
	RentalDate      time.Time            `gorm:"column:rental_date;not null" json:"rental_date"`
	ReturnDate      *time.Time           `gorm:"column:return_date" json:"return_date,omitempty"`
	TotalPrice      decimal.Decimal      `gorm:"column:total_price;type:numeric(14,2);not null" json:"total_price"`
	ApprovalStatus  enums.ApprovalStatus `gorm:"column:approval_status;type:text;not null;default:'pending'" json:"approval_status"`
	LifecycleStatus enums.RentalStatus   `gorm:"column:lifecycle_status;type:text;not null;default:'awaiting_approval'" json:"lifecycle_status"`
	RejectionReason *string              `gorm:"column:rejection_reason" json:"rejection_reason,omitempty"`
	ApprovedBy      *uuid.UUID           `gorm:"column:approved_by;type:uuid" json:"approved_by,omitempty"`
	ApprovedAt      *time.Time           `gorm:"column:approved_at" json:"approved_at,omitempty"`
	ProjectName     *string              `gorm:"column:project_name" json:"project_name,omitempty"`
	ProjectLocation *string              `gorm:"column:project_location" json:"project_location,omitempty"`
	Rating          *int                 `gorm:"column:rating" json:"rating,omitempty"`
	Review          *string              `gorm:"column:review" json:"review,omitempty"`
	Equipment       *Equipment           `gorm:"foreignKey:EquipmentID" json:"equipment,omitempty"`
	Documents       []Document           `gorm:"foreignKey:RentalOrderID" json:"documents,omitempty"`
	Payments        []Payment            `gorm:"foreignKey:RentalOrderID" json:"payments,omitempty"`
	CreatedAt       time.Time            `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time            `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName overrides the default pluralization.
func (RentalOrder) TableName() string {
	return "rental_orders"
}
