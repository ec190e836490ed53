package response

import (
	"errors"
	"net/http"

	"github.com/hrcore/hr-backend-go/internal/domain/attendance"
	"github.com/hrcore/hr-backend-go/internal/domain/auth"
	"github.com/hrcore/hr-backend-go/internal/domain/employee"
	"github.com/hrcore/hr-backend-go/internal/domain/leave"
	"github.com/hrcore/hr-backend-go/internal/domain/user"
	"github.com/hrcore/hr-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrManagerAccessRequired),
		errors.Is(err, user.ErrHRAccessRequired):
		Forbidden(w, err.Error())
	case errors.Is(err, user.ErrResetTokenNotFound):
		NotFound(w, "Reset token not found")
	case errors.Is(err, user.ErrResetTokenExpired):
		BadRequest(w, "Reset token expired or already used", nil)

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrProfileAlreadyExists):
		Conflict(w, "Employee profile already exists")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in today")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		BadRequest(w, "No open attendance record for today", nil)
	case errors.Is(err, attendance.ErrPolicyNotFound):
		NotFound(w, "No attendance policy configured")
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveTypeNotFound):
		NotFound(w, "Leave type not found")
	case errors.Is(err, leave.ErrBalanceNotFound):
		NotFound(w, "Leave balance not found")
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrBalanceExists):
		Conflict(w, "Leave balance already provisioned for this year")
	case errors.Is(err, leave.ErrInsufficientBalance):
		BadRequest(w, "Insufficient leave balance", nil)
	case errors.Is(err, leave.ErrLeaveAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrNotRequestOwner):
		Forbidden(w, "Leave request belongs to another employee")

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
