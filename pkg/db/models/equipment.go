package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/heavyrent/backend/pkg/enums"
)

// Equipment is a single heavy-equipment unit in the fleet. Its status is
// flipped only by the rental and maintenance services, never directly by
// API consumers.
type Equipment struct {
	ID          uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string                `gorm:"column:name;not null" json:"name"`
	Category    string                `gorm:"column:category;not null" json:"category"`
	Capacity    *string               `gorm:"column:capacity" json:"capacity,omitempty"`
	DailyRate   decimal.Decimal       `gorm:"column:daily_rate;type:numeric(14,2);not null" json:"daily_rate"`
	Status      enums.EquipmentStatus `gorm:"column:status;type:text;not null;default:'available'" json:"status"`
	Description *string               `gorm:"column:description" json:"description,omitempty"`
	Location    *string               `gorm:"column:location" json:"location,omitempty"`
	CreatedAt   time.Time             `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time             `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName overrides the default pluralization.
func (Equipment) TableName() string {
	return "equipment"
}
