package attendance

import (
	"time"

	"github.com/hrcore/hr-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type CreatePolicyRequest struct {
	DepartmentID *string `json:"department_id"`
	PolicyType   string  `json:"policy_type"`
	ShiftStart   string  `json:"shift_start"` // "HH:MM"
	ShiftEnd     string  `json:"shift_end"`   // "HH:MM"
	GraceMinutes int     `json:"grace_minutes"`
	AllowRemote  bool    `json:"allow_remote"`
}

func (r *CreatePolicyRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.PolicyType) {
		errs = append(errs, validator.ValidationError{
			Field:   "policy_type",
			Message: "policy_type is required",
		})
	}

	if _, ok := validator.ParseTimeOfDay(r.ShiftStart); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_start",
			Message: "shift_start must be in HH:MM format",
		})
	}

	if _, ok := validator.ParseTimeOfDay(r.ShiftEnd); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_end",
			Message: "shift_end must be in HH:MM format",
		})
	}

	if r.GraceMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "grace_minutes",
			Message: "grace_minutes must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CheckInResponse struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employee_id"`
	Date       string    `json:"date"`
	CheckIn    time.Time `json:"check_in"`
	Status     Status    `json:"status"`
}

type CheckOutResponse struct {
	ID          string    `json:"id"`
	EmployeeID  string    `json:"employee_id"`
	Date        string    `json:"date"`
	CheckIn     time.Time `json:"check_in"`
	CheckOut    time.Time `json:"check_out"`
	WorkMinutes int       `json:"work_minutes"`
	Status      Status    `json:"status"`
}

func NewCheckInResponse(att Attendance) CheckInResponse {
	return CheckInResponse{
		ID:         att.ID,
		EmployeeID: att.EmployeeID,
		Date:       att.Date.Format("2006-01-02"),
		CheckIn:    att.CheckIn,
		Status:     att.Status,
	}
}

func NewCheckOutResponse(att Attendance) CheckOutResponse {
	resp := CheckOutResponse{
		ID:         att.ID,
		EmployeeID: att.EmployeeID,
		Date:       att.Date.Format("2006-01-02"),
		CheckIn:    att.CheckIn,
		Status:     att.Status,
	}
	if att.CheckOut != nil {
		resp.CheckOut = *att.CheckOut
	}
	if att.WorkMinutes != nil {
		resp.WorkMinutes = *att.WorkMinutes
	}
	return resp
}
