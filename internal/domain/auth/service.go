package auth

import (
	"context"

	"github.com/jiayiepang-code/lumiere-salon-backend/internal/domain/staff"
)

// Approver is the authenticated caller deciding a leave request. It is
// built from verified token claims and handed to the orchestrator
// explicitly; nothing in the engine reads ambient session state.
type Approver struct {
	StaffID string
	Name    string
	Role    staff.Role
}

type AuthService interface {
	Login(ctx context.Context, loginReq LoginRequest, sessionTrackReq SessionTrackingRequest) (TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
}
