package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/heavyrent/backend/pkg/enums"
)

// DeliverySchedule books the delivery/pickup window for a rental order and
// optionally assigns the staff member handling the run.
type DeliverySchedule struct {
	ID               uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	RentalOrderID    uuid.UUID            `gorm:"column:rental_order_id;type:uuid;not null" json:"rental_order_id"`
	StartDate        time.Time            `gorm:"column:start_date;not null" json:"start_date"`
	EndDate          time.Time            `gorm:"column:end_date;not null" json:"end_date"`
	DeliveryLocation *string              `gorm:"column:delivery_location" json:"delivery_location,omitempty"`
	PickupLocation   *string              `gorm:"column:pickup_location" json:"pickup_location,omitempty"`
	Status           enums.ScheduleStatus `gorm:"column:status;type:text;not null;default:'scheduled'" json:"status"`
	AssignedStaffID  *uuid.UUID           `gorm:"column:assigned_staff_id;type:uuid" json:"assigned_staff_id,omitempty"`
	CreatedAt        time.Time            `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time            `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
