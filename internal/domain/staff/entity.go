package staff

import "time"

type Role string

const (
	RoleStaff   Role = "staff"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

var RoleValues = []string{
	string(RoleStaff),
	string(RoleManager),
	string(RoleAdmin),
}

// CanApproveLeave reports whether the role is allowed to decide leave requests.
func (r Role) CanApproveLeave() bool {
	return r == RoleManager || r == RoleAdmin
}

// Staff entity
type Staff struct {
	ID           string
	FullName     string
	Email        string
	Phone        *string
	Role         Role
	PasswordHash *string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
