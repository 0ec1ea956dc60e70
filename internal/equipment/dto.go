package equipment

import (
	"github.com/shopspring/decimal"

	"github.com/heavyrent/backend/pkg/db/models"
	"github.com/heavyrent/backend/pkg/enums"
)

// ListFilters describe the inputs supported by the fleet list.
type ListFilters struct {
	Status   *enums.EquipmentStatus
	Category string
}

// CreateInput captures a new fleet unit.
type CreateInput struct {
	Name        string
	Category    string
	Capacity    *string
	DailyRate   decimal.Decimal
	Description *string
	Location    *string
}

// UpdateInput carries the editable fields of a unit. Status is deliberately
// absent; only the rental and maintenance flows may flip it.
type UpdateInput struct {
	Name        *string
	Category    *string
	Capacity    *string
	DailyRate   *decimal.Decimal
	Description *string
	Location    *string
}

// EquipmentList wraps a page of units plus the next page cursor.
type EquipmentList struct {
	Equipment  []models.Equipment `json:"equipment"`
	NextCursor string             `json:"next_cursor,omitempty"`
}
