package leave

import "time"

type LeaveRequestStatus string

const (
	LeaveRequestStatusPending  LeaveRequestStatus = "pending"
	LeaveRequestStatusApproved LeaveRequestStatus = "approved"
	LeaveRequestStatusRejected LeaveRequestStatus = "rejected"
)

// DecisionAction is the action an approver takes on a pending request.
type DecisionAction string

const (
	DecisionApprove DecisionAction = "approve"
	DecisionReject  DecisionAction = "reject"
)

var DecisionActionValues = []string{
	string(DecisionApprove),
	string(DecisionReject),
}

// LeaveRequest entity. Status starts at pending and transitions exactly
// once, to approved or rejected; the transition is never reversed.
type LeaveRequest struct {
	ID      string
	StaffID string

	LeaveType string
	StartDate time.Time
	EndDate   time.Time
	HalfDay   bool
	Reason    string

	Status          LeaveRequestStatus
	DecidedBy       *string
	DecidedAt       *time.Time
	RejectionReason *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined column (for responses)
	StaffName *string
}
