package booking

import (
	"context"
	"time"
)

// BookingRepository reads bookings owned by the booking subsystem. The
// only write this engine ever performs there is the conflict remark
// append, inside the approval transaction.
type BookingRepository interface {
	// FindConflicts returns one Conflict per confirmed/completed booking
	// assigned to the staff member with booking_date inside
	// [start, end]. Order is deterministic: date, start time, id.
	FindConflicts(ctx context.Context, staffID string, start, end time.Time) ([]Conflict, error)

	// AppendConflictRemark appends marker to the booking's remarks,
	// preserving whatever was there.
	AppendConflictRemark(ctx context.Context, bookingID, marker string) error
}
