package leave

import (
	"context"

	"github.com/jiayiepang-code/lumiere-salon-backend/internal/domain/auth"
)

// ApprovalService decides pending leave requests and carries out every
// consequence of the decision.
type ApprovalService interface {
	// Process transitions the request out of pending. For an approval it
	// also rewrites the staff member's availability for every leave day,
	// flags colliding bookings in the same transaction, and notifies the
	// affected customers after commit.
	Process(ctx context.Context, approver auth.Approver, requestID string, action DecisionAction, rejectionReason string) (DecisionResult, error)

	// PreviewConflicts reports the bookings an approval would collide
	// with. Read only, no side effects.
	PreviewConflicts(ctx context.Context, requestID string) (ConflictPreview, error)

	List(ctx context.Context, filter LeaveRequestFilter) ([]LeaveRequestResponse, int64, error)
	Get(ctx context.Context, requestID string) (LeaveRequestResponse, error)
}
