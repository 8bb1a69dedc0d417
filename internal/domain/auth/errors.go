package auth

import "errors"

var (
	ErrInvalidCredentials    = errors.New("Invalid email or password")
	ErrInvalidToken          = errors.New("Invalid or expired token")
	ErrRefreshTokenRevoked   = errors.New("Refresh token revoked")
	ErrApproverRoleRequired  = errors.New("Approver role required")
	ErrApproverClaimsMissing = errors.New("Approver identity missing from token")
)
