package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jiayiepang-code/lumiere-salon-backend/internal/domain/auth"
	"github.com/jiayiepang-code/lumiere-salon-backend/internal/domain/staff"
	"github.com/jiayiepang-code/lumiere-salon-backend/internal/handler/http/response"
)

// RequireApprover lets only managers and admins through.
func RequireApprover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, auth.ErrApproverRoleRequired)
			return
		}

		roleStr, ok := claims["role"].(string)
		if !ok {
			response.HandleError(w, auth.ErrApproverRoleRequired)
			return
		}

		if !staff.Role(roleStr).CanApproveLeave() {
			response.HandleError(w, auth.ErrApproverRoleRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// ApproverFromClaims rebuilds the authenticated approver from verified
// token claims. Handlers pass it to the orchestrator explicitly.
func ApproverFromClaims(r *http.Request) (auth.Approver, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return auth.Approver{}, auth.ErrApproverClaimsMissing
	}

	staffID, ok := claims["staff_id"].(string)
	if !ok || staffID == "" {
		return auth.Approver{}, auth.ErrApproverClaimsMissing
	}
	name, _ := claims["name"].(string)
	roleStr, ok := claims["role"].(string)
	if !ok {
		return auth.Approver{}, auth.ErrApproverClaimsMissing
	}

	return auth.Approver{
		StaffID: staffID,
		Name:    name,
		Role:    staff.Role(roleStr),
	}, nil
}

// StaffIDFromClaims returns the authenticated staff member's id.
func StaffIDFromClaims(r *http.Request) (string, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", auth.ErrInvalidToken
	}
	staffID, ok := claims["staff_id"].(string)
	if !ok || staffID == "" {
		return "", auth.ErrInvalidToken
	}
	return staffID, nil
}
