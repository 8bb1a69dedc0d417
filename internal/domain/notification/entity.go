package notification

import "time"

// NotificationType represents the type of in-app notification
type NotificationType string

const (
	TypeLeaveApproved   NotificationType = "leave_approved"
	TypeLeaveRejected   NotificationType = "leave_rejected"
	TypeBookingConflict NotificationType = "booking_conflict"
)

// Notification represents an in-app notification entity
type Notification struct {
	ID          string
	RecipientID string
	Type        NotificationType
	Title       string
	Message     string
	Data        map[string]interface{}
	IsRead      bool
	ReadAt      *time.Time
	CreatedAt   time.Time
}
