package leave

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jiayiepang-code/lumiere-salon-backend/internal/domain/auth"
	"github.com/jiayiepang-code/lumiere-salon-backend/internal/domain/booking"
	"github.com/jiayiepang-code/lumiere-salon-backend/internal/domain/leave"
	"github.com/jiayiepang-code/lumiere-salon-backend/internal/domain/notification"
	"github.com/jiayiepang-code/lumiere-salon-backend/internal/domain/schedule"
	"github.com/jiayiepang-code/lumiere-salon-backend/internal/domain/staff"
	"github.com/jiayiepang-code/lumiere-salon-backend/internal/pkg/dates"
	"github.com/jiayiepang-code/lumiere-salon-backend/internal/pkg/validator"
)

// TxRunner runs fn inside one database transaction. Repository calls
// made with the context it passes to fn share that transaction.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(txCtx context.Context) error) error
}

type ApprovalServiceImpl struct {
	tx            TxRunner
	leaveRepo     leave.LeaveRequestRepository
	scheduleRepo  schedule.StaffScheduleRepository
	bookingRepo   booking.BookingRepository
	staffRepo     staff.StaffRepository
	dispatcher    notification.Dispatcher
	inAppNotifier notification.Service
}

func NewApprovalService(
	tx TxRunner,
	leaveRepo leave.LeaveRequestRepository,
	scheduleRepo schedule.StaffScheduleRepository,
	bookingRepo booking.BookingRepository,
	staffRepo staff.StaffRepository,
	dispatcher notification.Dispatcher,
	inAppNotifier notification.Service,
) leave.ApprovalService {
	return &ApprovalServiceImpl{
		tx:            tx,
		leaveRepo:     leaveRepo,
		scheduleRepo:  scheduleRepo,
		bookingRepo:   bookingRepo,
		staffRepo:     staffRepo,
		dispatcher:    dispatcher,
		inAppNotifier: inAppNotifier,
	}
}

// Process implements leave.ApprovalService.
func (s *ApprovalServiceImpl) Process(ctx context.Context, approver auth.Approver, requestID string, action leave.DecisionAction, rejectionReason string) (leave.DecisionResult, error) {
	if !validator.IsValidUUID(requestID) {
		return leave.DecisionResult{}, leave.ErrInvalidRequestID
	}
	if action != leave.DecisionApprove && action != leave.DecisionReject {
		return leave.DecisionResult{}, leave.ErrInvalidAction
	}
	if approver.StaffID == "" {
		return leave.DecisionResult{}, auth.ErrApproverClaimsMissing
	}
	if !approver.Role.CanApproveLeave() {
		return leave.DecisionResult{}, auth.ErrApproverRoleRequired
	}

	// Token claims can outlive a deactivation. Re-check the approver
	// against the staff table before letting the decision through.
	approverData, err := s.staffRepo.GetByID(ctx, approver.StaffID)
	if err != nil {
		return leave.DecisionResult{}, err
	}
	if !approverData.IsActive {
		return leave.DecisionResult{}, staff.ErrStaffInactive
	}

	request, err := s.leaveRepo.GetByID(ctx, requestID)
	if err != nil {
		return leave.DecisionResult{}, err
	}
	if request.Status != leave.LeaveRequestStatusPending {
		return leave.DecisionResult{}, leave.ErrLeaveAlreadyProcessed
	}

	if action == leave.DecisionReject {
		return s.reject(ctx, approver, request, rejectionReason)
	}
	return s.approve(ctx, approver, request)
}

// reject is a single conditional update. No schedule entry changes, no
// booking is touched, no customer hears about it.
func (s *ApprovalServiceImpl) reject(ctx context.Context, approver auth.Approver, request leave.LeaveRequest, reason string) (leave.DecisionResult, error) {
	var rejectionReason *string
	if reason != "" {
		rejectionReason = &reason
	}

	transitioned, err := s.leaveRepo.UpdateStatusIfPending(ctx, request.ID, leave.LeaveRequestStatusRejected, approver.StaffID, rejectionReason)
	if err != nil {
		return leave.DecisionResult{}, fmt.Errorf("failed to reject leave request: %w", err)
	}
	if !transitioned {
		return leave.DecisionResult{}, leave.ErrLeaveAlreadyProcessed
	}

	s.queueDecisionNotification(ctx, request, notification.TypeLeaveRejected, reason)

	return leave.DecisionResult{
		RequestID: request.ID,
		Status:    string(leave.LeaveRequestStatusRejected),
		StaffID:   request.StaffID,
		StartDate: request.StartDate.Format("2006-01-02"),
		EndDate:   request.EndDate.Format("2006-01-02"),
	}, nil
}

// approve runs the whole transactional phase, then fans out customer
// notifications only after the commit has succeeded.
func (s *ApprovalServiceImpl) approve(ctx context.Context, approver auth.Approver, request leave.LeaveRequest) (leave.DecisionResult, error) {
	staffName := request.StaffID
	if request.StaffName != nil {
		staffName = *request.StaffName
	}

	var conflicts []booking.Conflict
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		transitioned, err := s.leaveRepo.UpdateStatusIfPending(txCtx, request.ID, leave.LeaveRequestStatusApproved, approver.StaffID, nil)
		if err != nil {
			return fmt.Errorf("failed to approve leave request: %w", err)
		}
		if !transitioned {
			return leave.ErrLeaveAlreadyProcessed
		}

		for _, day := range dates.Range(request.StartDate, request.EndDate) {
			if err := s.scheduleRepo.UpsertLeaveDay(txCtx, request.StaffID, day); err != nil {
				return fmt.Errorf("failed to write leave schedule for %s: %w", day.Format("2006-01-02"), err)
			}
		}

		conflicts, err = s.bookingRepo.FindConflicts(txCtx, request.StaffID, request.StartDate, request.EndDate)
		if err != nil {
			return fmt.Errorf("failed to find conflicting bookings: %w", err)
		}

		marker := conflictMarker(staffName, request)
		for _, c := range conflicts {
			if err := s.bookingRepo.AppendConflictRemark(txCtx, c.BookingID, marker); err != nil {
				return fmt.Errorf("failed to flag booking %s: %w", c.BookingID, err)
			}
		}
		return nil
	})
	if err != nil {
		return leave.DecisionResult{}, err
	}

	// Post-commit phase. The decision is durable at this point; nothing
	// below may fail it.
	report := s.dispatcher.Dispatch(ctx, notification.LeaveContext{
		RequestID: request.ID,
		StaffID:   request.StaffID,
		StaffName: staffName,
		LeaveType: request.LeaveType,
		StartDate: request.StartDate,
		EndDate:   request.EndDate,
	}, conflicts)

	s.queueDecisionNotification(ctx, request, notification.TypeLeaveApproved, "")

	return leave.DecisionResult{
		RequestID:           request.ID,
		Status:              string(leave.LeaveRequestStatusApproved),
		StaffID:             request.StaffID,
		StartDate:           request.StartDate.Format("2006-01-02"),
		EndDate:             request.EndDate.Format("2006-01-02"),
		ConflictCount:       len(conflicts),
		NotificationsSent:   report.Sent,
		NotificationsFailed: report.Failed,
	}, nil
}

// conflictMarker is the remark appended to every flagged booking. It
// names the staff member and the leave range so the front desk can
// reassign without opening the leave request.
func conflictMarker(staffName string, request leave.LeaveRequest) string {
	return fmt.Sprintf("Needs reassignment: %s on approved leave %s to %s (leave request %s)",
		staffName,
		request.StartDate.Format("2006-01-02"),
		request.EndDate.Format("2006-01-02"),
		request.ID,
	)
}

// queueDecisionNotification tells the requesting staff member about the
// outcome. Best effort, a failure is logged and swallowed.
func (s *ApprovalServiceImpl) queueDecisionNotification(ctx context.Context, request leave.LeaveRequest, notifType notification.NotificationType, reason string) {
	if s.inAppNotifier == nil {
		return
	}

	title := "Leave request approved"
	message := fmt.Sprintf("Your leave from %s to %s has been approved.",
		request.StartDate.Format("2006-01-02"), request.EndDate.Format("2006-01-02"))
	if notifType == notification.TypeLeaveRejected {
		title = "Leave request rejected"
		message = fmt.Sprintf("Your leave from %s to %s has been rejected.",
			request.StartDate.Format("2006-01-02"), request.EndDate.Format("2006-01-02"))
		if reason != "" {
			message += " Reason: " + reason
		}
	}

	err := s.inAppNotifier.QueueNotification(ctx, notification.CreateNotificationRequest{
		RecipientID: request.StaffID,
		Type:        notifType,
		Title:       title,
		Message:     message,
		Data: map[string]interface{}{
			"leave_request_id": request.ID,
		},
	})
	if err != nil {
		slog.Error("Failed to queue leave decision notification",
			"leave_request_id", request.ID,
			"staff_id", request.StaffID,
			"error", err,
		)
	}
}

// PreviewConflicts implements leave.ApprovalService.
func (s *ApprovalServiceImpl) PreviewConflicts(ctx context.Context, requestID string) (leave.ConflictPreview, error) {
	if !validator.IsValidUUID(requestID) {
		return leave.ConflictPreview{}, leave.ErrInvalidRequestID
	}

	request, err := s.leaveRepo.GetByID(ctx, requestID)
	if err != nil {
		return leave.ConflictPreview{}, err
	}

	conflicts, err := s.bookingRepo.FindConflicts(ctx, request.StaffID, request.StartDate, request.EndDate)
	if err != nil {
		return leave.ConflictPreview{}, fmt.Errorf("failed to find conflicting bookings: %w", err)
	}

	staffName := ""
	if request.StaffName != nil {
		staffName = *request.StaffName
	}

	preview := leave.ConflictPreview{
		RequestID: request.ID,
		StaffID:   request.StaffID,
		StaffName: staffName,
		StartDate: request.StartDate.Format("2006-01-02"),
		EndDate:   request.EndDate.Format("2006-01-02"),
		Conflicts: []leave.ConflictResponse{},
	}
	for _, c := range conflicts {
		preview.Conflicts = append(preview.Conflicts, leave.ToConflictResponse(c))
	}
	return preview, nil
}

// List implements leave.ApprovalService.
func (s *ApprovalServiceImpl) List(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequestResponse, int64, error) {
	if err := filter.Validate(); err != nil {
		return nil, 0, err
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	requests, total, err := s.leaveRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list leave requests: %w", err)
	}

	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, leave.ToLeaveRequestResponse(r))
	}
	return responses, total, nil
}

// Get implements leave.ApprovalService.
func (s *ApprovalServiceImpl) Get(ctx context.Context, requestID string) (leave.LeaveRequestResponse, error) {
	if !validator.IsValidUUID(requestID) {
		return leave.LeaveRequestResponse{}, leave.ErrInvalidRequestID
	}

	request, err := s.leaveRepo.GetByID(ctx, requestID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	return leave.ToLeaveRequestResponse(request), nil
}
