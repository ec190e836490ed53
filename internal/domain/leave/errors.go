package leave

import "errors"

var (
	ErrLeaveTypeNotFound    = errors.New("leave type not found")
	ErrBalanceNotFound      = errors.New("leave balance not found")
	ErrLeaveRequestNotFound = errors.New("leave request not found")
	ErrBalanceExists        = errors.New("leave balance already provisioned for this employee, type and year")

	// ErrInsufficientBalance covers both a plain overdraft and a
	// policy-specific cap; the strategy wraps it with the concrete reason.
	ErrInsufficientBalance = errors.New("insufficient leave balance")

	ErrLeaveAlreadyProcessed = errors.New("leave request already processed")
	ErrNotRequestOwner       = errors.New("employees can only cancel their own leave requests")
)
