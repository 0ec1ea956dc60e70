package enums

import "fmt"

// RentalStatus tracks the operational stage of a rental order from request
// through delivery to completion.
//
// Legal transitions:
//
//	awaiting_approval -> in_delivery (approve)
//	awaiting_approval -> cancelled   (reject)
//	in_delivery       -> completed   (complete)
//
// cancelled and completed are terminal.
type RentalStatus string

const (
	RentalStatusAwaitingApproval RentalStatus = "awaiting_approval"
	RentalStatusInDelivery       RentalStatus = "in_delivery"
	RentalStatusCompleted        RentalStatus = "completed"
	RentalStatusCancelled        RentalStatus = "cancelled"
)

var validRentalStatuses = []RentalStatus{
	RentalStatusAwaitingApproval,
	RentalStatusInDelivery,
	RentalStatusCompleted,
	RentalStatusCancelled,
}

// String implements fmt.Stringer.
func (r RentalStatus) String() string {
	return string(r)
}

// IsValid reports whether the value is a known RentalStatus.
func (r RentalStatus) IsValid() bool {
	for _, candidate := range validRentalStatuses {
		if candidate == r {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are allowed.
func (r RentalStatus) IsTerminal() bool {
	return r == RentalStatusCompleted || r == RentalStatusCancelled
}

// ParseRentalStatus converts raw input into a RentalStatus.
func ParseRentalStatus(value string) (RentalStatus, error) {
	for _, candidate := range validRentalStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid rental status %q", value)
}
