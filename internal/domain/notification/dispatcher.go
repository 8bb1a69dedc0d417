package notification

import (
	"context"
	"time"

	"github.com/jiayiepang-code/lumiere-salon-backend/internal/domain/booking"
)

// LeaveContext carries the approved leave details into customer-facing
// conflict notices.
type LeaveContext struct {
	RequestID string
	StaffID   string
	StaffName string
	LeaveType string
	StartDate time.Time
	EndDate   time.Time
}

// DispatchResult records one notification attempt.
type DispatchResult struct {
	BookingID string
	Err       error
}

// DispatchReport aggregates a post-commit fan-out. Failed sends are
// data for manual follow-up, never an error for the approval itself.
type DispatchReport struct {
	Sent    int
	Failed  int
	Results []DispatchResult
}

// Dispatcher fans out one customer notice per conflicting booking after
// the approval transaction has committed. Implementations must not
// panic past their boundary and must keep going after individual
// failures. No retry is attempted.
type Dispatcher interface {
	Dispatch(ctx context.Context, leaveCtx LeaveContext, conflicts []booking.Conflict) DispatchReport
}
