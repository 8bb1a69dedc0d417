package leave

import (
	"time"

	"github.com/jiayiepang-code/lumiere-salon-backend/internal/domain/booking"
	"github.com/jiayiepang-code/lumiere-salon-backend/internal/pkg/validator"
)

// LeaveRequestFilter narrows the approver work queue listing.
type LeaveRequestFilter struct {
	Status  *string
	StaffID *string
	Page    int
	Limit   int
}

func (f *LeaveRequestFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Status != nil && !validator.IsInSlice(*f.Status, []string{
		string(LeaveRequestStatusPending),
		string(LeaveRequestStatusApproved),
		string(LeaveRequestStatusRejected),
	}) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of pending, approved, rejected",
		})
	}
	if f.StaffID != nil && !validator.IsValidUUID(*f.StaffID) {
		errs = append(errs, validator.ValidationError{
			Field:   "staff_id",
			Message: "staff_id must be a valid UUID",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RejectRequestBody struct {
	Reason string `json:"reason"`
}

func (r *RejectRequestBody) Validate() error {
	var errs validator.ValidationErrors

	if len(r.Reason) > 500 {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must not exceed 500 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// LeaveRequestResponse is the work-queue / detail payload.
type LeaveRequestResponse struct {
	ID              string     `json:"id"`
	StaffID         string     `json:"staff_id"`
	StaffName       *string    `json:"staff_name,omitempty"`
	LeaveType       string     `json:"leave_type"`
	StartDate       string     `json:"start_date"`
	EndDate         string     `json:"end_date"`
	HalfDay         bool       `json:"half_day"`
	Reason          string     `json:"reason"`
	Status          string     `json:"status"`
	DecidedBy       *string    `json:"decided_by,omitempty"`
	DecidedAt       *time.Time `json:"decided_at,omitempty"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

func ToLeaveRequestResponse(r LeaveRequest) LeaveRequestResponse {
	return LeaveRequestResponse{
		ID:              r.ID,
		StaffID:         r.StaffID,
		StaffName:       r.StaffName,
		LeaveType:       r.LeaveType,
		StartDate:       r.StartDate.Format("2006-01-02"),
		EndDate:         r.EndDate.Format("2006-01-02"),
		HalfDay:         r.HalfDay,
		Reason:          r.Reason,
		Status:          string(r.Status),
		DecidedBy:       r.DecidedBy,
		DecidedAt:       r.DecidedAt,
		RejectionReason: r.RejectionReason,
		CreatedAt:       r.CreatedAt,
	}
}

// ConflictPreview is the read-only payload behind the approver's
// confirmation step. It has no side effects.
type ConflictPreview struct {
	RequestID string             `json:"request_id"`
	StaffID   string             `json:"staff_id"`
	StaffName string             `json:"staff_name"`
	StartDate string             `json:"start_date"`
	EndDate   string             `json:"end_date"`
	Conflicts []ConflictResponse `json:"conflicts"`
}

type ConflictResponse struct {
	BookingID     string  `json:"booking_id"`
	BookingDate   string  `json:"booking_date"`
	StartTime     string  `json:"start_time"`
	CustomerName  string  `json:"customer_name"`
	CustomerEmail string  `json:"customer_email"`
	CustomerPhone *string `json:"customer_phone,omitempty"`
	Services      string  `json:"services"`
}

func ToConflictResponse(c booking.Conflict) ConflictResponse {
	return ConflictResponse{
		BookingID:     c.BookingID,
		BookingDate:   c.BookingDate.Format("2006-01-02"),
		StartTime:     c.StartTime,
		CustomerName:  c.CustomerName,
		CustomerEmail: c.CustomerEmail,
		CustomerPhone: c.CustomerPhone,
		Services:      c.Services,
	}
}

// DecisionResult is returned by the approval orchestrator after a
// decision has been processed.
type DecisionResult struct {
	RequestID           string `json:"request_id"`
	Status              string `json:"status"`
	StaffID             string `json:"staff_id"`
	StartDate           string `json:"start_date"`
	EndDate             string `json:"end_date"`
	ConflictCount       int    `json:"conflict_count"`
	NotificationsSent   int    `json:"notifications_sent"`
	NotificationsFailed int    `json:"notifications_failed"`
}
