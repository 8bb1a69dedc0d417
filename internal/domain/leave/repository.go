package leave

import "context"

// LeaveRequestRepository - interface for the leave_requests table
type LeaveRequestRepository interface {
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	List(ctx context.Context, filter LeaveRequestFilter) ([]LeaveRequest, int64, error)

	// UpdateStatusIfPending performs the conditional transition
	// (WHERE status = 'pending') and reports whether a row was
	// affected. Exactly one of two concurrent callers observes true.
	UpdateStatusIfPending(ctx context.Context, id string, status LeaveRequestStatus, decidedBy string, rejectionReason *string) (bool, error)
}
