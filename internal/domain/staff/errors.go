package staff

import "errors"

var (
	ErrStaffNotFound = errors.New("Staff member not found")
	ErrStaffInactive = errors.New("Staff member is inactive")
)
