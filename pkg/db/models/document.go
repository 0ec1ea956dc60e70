package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/heavyrent/backend/pkg/enums"
)

// Document is an uploaded supporting document tied to a rental order. Rows
// are retained after completion for audit.
type Document struct {
	ID            uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	RentalOrderID uuid.UUID          `gorm:"column:rental_order_id;type:uuid;not null" json:"rental_order_id"`
	Name          string             `gorm:"column:name;not null" json:"name"`
	Type          enums.DocumentType `gorm:"column:type;type:text;not null" json:"type"`
	StoragePath   string             `gorm:"column:storage_path;not null" json:"storage_path"`
	SizeBytes     int64              `gorm:"column:size_bytes;not null" json:"size_bytes"`
	UploadedBy    uuid.UUID          `gorm:"column:uploaded_by;type:uuid;not null" json:"uploaded_by"`
	CreatedAt     time.Time          `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time          `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
