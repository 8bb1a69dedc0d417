package booking

import "time"

// BookingStatus mirrors the booking subsystem's lifecycle. Only
// confirmed and completed bookings are eligible to be flagged as
// conflicts.
type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusNoShow    BookingStatus = "no_show"
)

// Conflict is derived per approval run: one row per active booking that
// falls inside a staff member's newly approved leave range. It is never
// persisted; it only drives notification and reporting.
type Conflict struct {
	BookingID     string
	BookingDate   time.Time
	StartTime     string // "HH:MM"
	CustomerName  string
	CustomerEmail string
	CustomerPhone *string
	Services      string // service names joined in assignment sequence order
}
