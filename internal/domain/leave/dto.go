package leave

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/hrcore/hr-backend-go/internal/pkg/validator"
)

// ========================================
// LEAVE DTOs
// ========================================

type ApplyRequest struct {
	EmployeeID    string          `json:"-"`
	LeaveTypeID   string          `json:"leave_type_id"`
	StartDate     string          `json:"start_date"`
	EndDate       string          `json:"end_date"`
	RequestedDays decimal.Decimal `json:"requested_days"`
	Reason        string          `json:"reason"`
}

func (r *ApplyRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.LeaveTypeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type_id",
			Message: "leave_type_id is required",
		})
	}

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if !r.RequestedDays.IsPositive() {
		errs = append(errs, validator.ValidationError{
			Field:   "requested_days",
			Message: "requested_days must be positive",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ReviewRequest struct {
	Approved bool    `json:"approved"`
	Comment  *string `json:"comment"`
}

type CreateTypeRequest struct {
	Name               string `json:"name"`
	IsPaid             bool   `json:"is_paid"`
	RequiresDocs       bool   `json:"requires_docs"`
	DefaultDaysPerYear int    `json:"default_days_per_year"`
	PolicyType         string `json:"policy_type"`
}

func (r *CreateTypeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if validator.IsEmpty(r.PolicyType) {
		errs = append(errs, validator.ValidationError{
			Field:   "policy_type",
			Message: "policy_type is required",
		})
	}

	if r.DefaultDaysPerYear < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "default_days_per_year",
			Message: "default_days_per_year must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ProvisionBalanceRequest struct {
	EmployeeID  string          `json:"employee_id"`
	LeaveTypeID string          `json:"leave_type_id"`
	Year        int             `json:"year"`
	TotalDays   decimal.Decimal `json:"total_days"`
}

func (r *ProvisionBalanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.LeaveTypeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type_id",
			Message: "leave_type_id is required",
		})
	}

	if r.Year < 2000 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year is required",
		})
	}

	if !r.TotalDays.IsPositive() {
		errs = append(errs, validator.ValidationError{
			Field:   "total_days",
			Message: "total_days must be positive",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RequestResponse struct {
	ID            string          `json:"id"`
	EmployeeID    string          `json:"employee_id"`
	LeaveTypeID   string          `json:"leave_type_id"`
	StartDate     string          `json:"start_date"`
	EndDate       string          `json:"end_date"`
	RequestedDays decimal.Decimal `json:"requested_days"`
	Reason        string          `json:"reason,omitempty"`
	Status        RequestStatus   `json:"status"`
	ReviewedBy    *string         `json:"reviewed_by,omitempty"`
	ReviewedAt    *time.Time      `json:"reviewed_at,omitempty"`
}

func NewRequestResponse(req Request) RequestResponse {
	return RequestResponse{
		ID:            req.ID,
		EmployeeID:    req.EmployeeID,
		LeaveTypeID:   req.LeaveTypeID,
		StartDate:     req.StartDate.Format("2006-01-02"),
		EndDate:       req.EndDate.Format("2006-01-02"),
		RequestedDays: req.RequestedDays,
		Reason:        req.Reason,
		Status:        req.Status,
		ReviewedBy:    req.ReviewedBy,
		ReviewedAt:    req.ReviewedAt,
	}
}

type BalanceResponse struct {
	ID            string          `json:"id"`
	EmployeeID    string          `json:"employee_id"`
	LeaveTypeID   string          `json:"leave_type_id"`
	Year          int             `json:"year"`
	TotalDays     decimal.Decimal `json:"total_days"`
	UsedDays      decimal.Decimal `json:"used_days"`
	RemainingDays decimal.Decimal `json:"remaining_days"`
}

func NewBalanceResponse(b Balance) BalanceResponse {
	return BalanceResponse{
		ID:            b.ID,
		EmployeeID:    b.EmployeeID,
		LeaveTypeID:   b.LeaveTypeID,
		Year:          b.Year,
		TotalDays:     b.TotalDays,
		UsedDays:      b.UsedDays,
		RemainingDays: b.RemainingDays(),
	}
}
