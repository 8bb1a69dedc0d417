package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jiayiepang-code/lumiere-salon-backend/internal/domain/booking"
	"github.com/jiayiepang-code/lumiere-salon-backend/internal/domain/notification"
	"github.com/jiayiepang-code/lumiere-salon-backend/internal/pkg/email"
)

type emailDispatcher struct {
	emailService email.EmailService
}

// NewEmailDispatcher builds the post-commit fan-out over the email
// service. One message per conflicting booking, one attempt per
// message.
func NewEmailDispatcher(emailService email.EmailService) notification.Dispatcher {
	return &emailDispatcher{emailService: emailService}
}

// Dispatch implements notification.Dispatcher. It runs strictly after
// the approval transaction has committed; outcomes are observed,
// counted and returned, never allowed to fail the approval.
func (d *emailDispatcher) Dispatch(ctx context.Context, leaveCtx notification.LeaveContext, conflicts []booking.Conflict) notification.DispatchReport {
	report := notification.DispatchReport{
		Results: make([]notification.DispatchResult, 0, len(conflicts)),
	}

	for _, c := range conflicts {
		if ctx.Err() != nil {
			// Remaining conflicts are counted as failed so the caller
			// still sees the full picture.
			report.Failed++
			report.Results = append(report.Results, notification.DispatchResult{
				BookingID: c.BookingID,
				Err:       ctx.Err(),
			})
			continue
		}

		err := d.send(leaveCtx, c)
		if err != nil {
			report.Failed++
			slog.Error("Failed to notify customer of booking conflict",
				"booking_id", c.BookingID,
				"leave_request_id", leaveCtx.RequestID,
				"error", err,
			)
		} else {
			report.Sent++
		}
		report.Results = append(report.Results, notification.DispatchResult{
			BookingID: c.BookingID,
			Err:       err,
		})
	}

	return report
}

// send wraps one attempt for one booking. A panic anywhere below turns
// into a failed result for that booking only.
func (d *emailDispatcher) send(leaveCtx notification.LeaveContext, c booking.Conflict) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic during notification send: %v", p)
		}
	}()

	return d.emailService.SendBookingConflict(
		c.CustomerEmail,
		c.CustomerName,
		c.BookingDate.Format("2006-01-02"),
		c.StartTime,
		c.Services,
		leaveCtx.StaffName,
	)
}
