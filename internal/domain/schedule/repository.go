package schedule

import (
	"context"
	"time"
)

// StaffScheduleRepository - interface for the staff_schedules table
type StaffScheduleRepository interface {
	// UpsertLeaveDay writes the full-day leave entry for one date as a
	// single atomic insert-or-update statement.
	UpsertLeaveDay(ctx context.Context, staffID string, day time.Time) error

	ListByStaffAndRange(ctx context.Context, staffID string, start, end time.Time) ([]StaffScheduleEntry, error)
}
