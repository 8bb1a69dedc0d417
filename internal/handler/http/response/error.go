package response

import (
	"errors"
	"net/http"

	"github.com/jiayiepang-code/lumiere-salon-backend/internal/domain/auth"
	"github.com/jiayiepang-code/lumiere-salon-backend/internal/domain/leave"
	"github.com/jiayiepang-code/lumiere-salon-backend/internal/domain/staff"
	"github.com/jiayiepang-code/lumiere-salon-backend/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		BadRequest(w, "Validation failed", validationErrs.ToMap())
		return
	}

	// Auth domain errors
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrApproverClaimsMissing):
		Unauthorized(w, "Approver identity missing from token")
	case errors.Is(err, auth.ErrApproverRoleRequired):
		Forbidden(w, "Approver role required")

	// Staff domain errors
	case errors.Is(err, staff.ErrStaffNotFound):
		NotFound(w, "Staff member not found")
	case errors.Is(err, staff.ErrStaffInactive):
		Forbidden(w, "Staff member is inactive")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrInvalidRequestID):
		BadRequest(w, "Invalid leave request id", nil)
	case errors.Is(err, leave.ErrInvalidAction):
		BadRequest(w, "Invalid decision action", nil)
	case errors.Is(err, leave.ErrLeaveAlreadyProcessed):
		Conflict(w, "Leave request already processed")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
