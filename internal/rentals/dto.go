package rentals

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/heavyrent/backend/pkg/db/models"
)

// CreateInput captures a customer's rental request.
type CreateInput struct {
	CustomerID      uuid.UUID
	EquipmentID     uuid.UUID
	RentalDate      time.Time
	ReturnDate      *time.Time
	TotalPrice      decimal.Decimal
	ProjectName     *string
	ProjectLocation *string
}

// RejectInput carries the staff decision metadata for a rejection.
type RejectInput struct {
	OrderID    uuid.UUID
	ApproverID uuid.UUID
	Reason     string
}

// RateInput carries the customer's post-completion rating.
type RateInput struct {
	OrderID uuid.UUID
	Rating  int
	Review  *string
}

// OrderDetail bundles an order with its attachments and the verified money
// received so far.
type OrderDetail struct {
	Order        *models.RentalOrder `json:"order"`
	SettledTotal decimal.Decimal     `json:"settled_total"`
}

// OrderList wraps a page of orders plus the next page cursor.
type OrderList struct {
	Orders     []models.RentalOrder `json:"orders"`
	NextCursor string               `json:"next_cursor,omitempty"`
}
