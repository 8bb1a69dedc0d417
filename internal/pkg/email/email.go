package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"

	"github.com/jiayiepang-code/lumiere-salon-backend/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

// EmailService defines the interface for sending emails
type EmailService interface {
	SendBookingConflict(to, customerName, bookingDate, startTime, services, staffName string) error
	SendLeaveDecision(to, staffName, action, startDate, endDate, reason string) error
}

type emailServiceImpl struct {
	cfg       config.SMTPConfig
	templates *template.Template
}

// NewEmailService creates a new email service instance
func NewEmailService(cfg config.SMTPConfig) (EmailService, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	return &emailServiceImpl{
		cfg:       cfg,
		templates: tmpl,
	}, nil
}

type bookingConflictEmailData struct {
	CustomerName string
	BookingDate  string
	StartTime    string
	Services     string
	StaffName    string
}

// SendBookingConflict notifies a customer that their booking needs rescheduling
// because the assigned staff member is no longer available.
func (s *emailServiceImpl) SendBookingConflict(to, customerName, bookingDate, startTime, services, staffName string) error {
	data := bookingConflictEmailData{
		CustomerName: customerName,
		BookingDate:  bookingDate,
		StartTime:    startTime,
		Services:     services,
		StaffName:    staffName,
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "booking_conflict.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.sendHTML(to, fmt.Sprintf("Action needed: your booking on %s", bookingDate), body.String())
}

type leaveDecisionEmailData struct {
	StaffName string
	Action    string
	StartDate string
	EndDate   string
	Reason    string
}

// SendLeaveDecision informs a staff member that their leave request was decided.
func (s *emailServiceImpl) SendLeaveDecision(to, staffName, action, startDate, endDate, reason string) error {
	data := leaveDecisionEmailData{
		StaffName: staffName,
		Action:    action,
		StartDate: startDate,
		EndDate:   endDate,
		Reason:    reason,
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "leave_decision.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	return s.sendHTML(to, fmt.Sprintf("Your leave request was %s", action), body.String())
}

func (s *emailServiceImpl) sendHTML(to, subject, htmlBody string) error {
	// Skip sending if SMTP is not configured
	if s.cfg.Host == "" {
		slog.Warn("SMTP not configured, skipping email send", "to", to, "subject", subject)
		return nil
	}

	from := s.cfg.From

	headers := fmt.Sprintf("From: %s <%s>\r\n", s.cfg.FromName, from)
	headers += fmt.Sprintf("To: %s\r\n", to)
	headers += fmt.Sprintf("Subject: %s\r\n", subject)
	headers += "MIME-Version: 1.0\r\n"
	headers += "Content-Type: text/html; charset=\"UTF-8\"\r\n"
	headers += "\r\n"

	message := []byte(headers + htmlBody)

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	// Single attempt. Callers on the conflict path count failures and
	// move on rather than blocking the approval response on retries.
	if err := smtp.SendMail(addr, auth, from, []string{to}, message); err != nil {
		slog.Error("Failed to send email", "to", to, "subject", subject, "error", err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	slog.Info("Email sent successfully", "to", to, "subject", subject)
	return nil
}
