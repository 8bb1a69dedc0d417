package staff

import "context"

// StaffRepository - interface for the staff table
type StaffRepository interface {
	GetByID(ctx context.Context, id string) (Staff, error)
	GetByEmail(ctx context.Context, email string) (Staff, error)
}
