package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/heavyrent/backend/pkg/enums"
)

// MaintenanceRecord tracks scheduled service work on an equipment unit.
// Scheduling flips the unit to maintenance; finishing releases it.
type MaintenanceRecord struct {
	ID          uuid.UUID               `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	EquipmentID uuid.UUID               `gorm:"column:equipment_id;type:uuid;not null" json:"equipment_id"`
	ScheduledAt time.Time               `gorm:"column:scheduled_at;not null" json:"scheduled_at"`
	Description string                  `gorm:"column:description;not null" json:"description"`
	Status      enums.MaintenanceStatus `gorm:"column:status;type:text;not null;default:'scheduled'" json:"status"`
	FinishedAt  *time.Time              `gorm:"column:finished_at" json:"finished_at,omitempty"`
	CreatedAt   time.Time               `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time               `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
