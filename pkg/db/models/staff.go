package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/heavyrent/backend/pkg/enums"
)

// Staff is an internal user who reviews rental orders and verifies payments.
type Staff struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name         string          `gorm:"column:name;not null" json:"name"`
	Email        string          `gorm:"column:email;uniqueIndex;not null" json:"email"`
	PasswordHash string          `gorm:"column:password_hash;not null" json:"-"`
	Role         enums.ActorRole `gorm:"column:role;type:text;not null;default:'staff'" json:"role"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName overrides the default pluralization.
func (Staff) TableName() string {
	return "staff"
}
