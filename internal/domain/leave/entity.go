package leave

import (
	"time"

	"github.com/shopspring/decimal"
)

// LeaveType is a catalogue entry (Annual, Sick, Unpaid, ...). Employees
// reference this when submitting requests; PolicyType selects the rule
// strategy that governs requests of this type.
type LeaveType struct {
	ID                 string
	Name               string
	IsPaid             bool
	RequiresDocs       bool
	DefaultDaysPerYear int
	PolicyType         string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Balance tracks an employee's entitlement for one leave type in one year.
// One row per (employee, leave_type, year), enforced by the store.
type Balance struct {
	ID          string
	EmployeeID  string
	LeaveTypeID string
	Year        int
	TotalDays   decimal.Decimal
	UsedDays    decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RemainingDays is the balance still available for approval. It must never
// go negative as a result of an approval.
func (b Balance) RemainingDays() decimal.Decimal {
	return b.TotalDays.Sub(b.UsedDays)
}

type RequestStatus string

const (
	StatusPending   RequestStatus = "PENDING"
	StatusApproved  RequestStatus = "APPROVED"
	StatusRejected  RequestStatus = "REJECTED"
	StatusCancelled RequestStatus = "CANCELLED"
)

// Request is a single leave application. Created PENDING; moves to APPROVED
// or REJECTED through review, or to CANCELLED by the owning employee. All
// three are terminal.
type Request struct {
	ID            string
	EmployeeID    string
	LeaveTypeID   string
	StartDate     time.Time
	EndDate       time.Time
	RequestedDays decimal.Decimal
	Reason        string
	Status        RequestStatus
	ReviewedBy    *string
	ReviewedAt    *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
