package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in / check-out errors
	ErrAlreadyCheckedIn = errors.New("you have already checked in today")
	ErrNotCheckedIn     = errors.New("you have not checked in today")

	// ErrPolicyNotFound means neither a department policy nor the global
	// default exists. That is a configuration problem, not user error.
	ErrPolicyNotFound = errors.New("no attendance policy configured for department or default")

	ErrAttendanceNotFound = errors.New("attendance record not found")
)
