package schedule

import "time"

type EntryStatus string

const (
	EntryStatusWorking EntryStatus = "working"
	EntryStatusLeave   EntryStatus = "leave"
	EntryStatusOff     EntryStatus = "off"
)

// Full-day bounds written for every leave day, whatever the entry held before.
const (
	LeaveDayStart = "00:00"
	LeaveDayEnd   = "23:59"
)

// StaffScheduleEntry is the authoritative availability record for one
// staff member on one calendar date. At most one entry exists per
// (staff, date).
type StaffScheduleEntry struct {
	StaffID   string
	WorkDate  time.Time
	StartTime string // "HH:MM"
	EndTime   string // "HH:MM"
	Status    EntryStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}
