package enums

import "fmt"

// NotificationType enumerates customer-facing notification events.
type NotificationType string

const (
	NotificationTypeRentalApproved NotificationType = "rental_approved"
	NotificationTypeRentalRejected NotificationType = "rental_rejected"
	NotificationTypeRentalComplete NotificationType = "rental_complete"
)

var validNotificationTypes = []NotificationType{
	NotificationTypeRentalApproved,
	NotificationTypeRentalRejected,
	NotificationTypeRentalComplete,
}

// String implements fmt.Stringer.
func (n NotificationType) String() string {
	return string(n)
}

// IsValid reports whether the value is a known NotificationType.
func (n NotificationType) IsValid() bool {
	for _, candidate := range validNotificationTypes {
		if candidate == n {
			return true
		}
	}
	return false
}

// ParseNotificationType converts raw input into a NotificationType.
func ParseNotificationType(value string) (NotificationType, error) {
	for _, candidate := range validNotificationTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid notification type %q", value)
}
