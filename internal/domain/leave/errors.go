package leave

import "errors"

var (
	ErrLeaveRequestNotFound  = errors.New("Leave request not found")
	ErrLeaveAlreadyProcessed = errors.New("Leave request already processed")
	ErrInvalidRequestID      = errors.New("Invalid leave request id")
	ErrInvalidAction         = errors.New("Invalid decision action")
)
