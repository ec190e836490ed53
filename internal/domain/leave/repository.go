package leave

import (
	"context"

	"github.com/shopspring/decimal"
)

// TypeRepository - interface for leave_types table
type TypeRepository interface {
	Create(ctx context.Context, leaveType LeaveType) (LeaveType, error)
	GetByID(ctx context.Context, id string) (LeaveType, error)
	List(ctx context.Context) ([]LeaveType, error)
}

// BalanceRepository - interface for leave_balances table
type BalanceRepository interface {
	Create(ctx context.Context, balance Balance) (Balance, error)

	// GetByEmployeeTypeYear returns the one balance row for (employee,
	// leave_type, year). ErrBalanceNotFound when absent.
	GetByEmployeeTypeYear(ctx context.Context, employeeID, leaveTypeID string, year int) (Balance, error)

	// AddUsedDays applies the approval-time deduction as a single guarded
	// read-modify-write: used_days grows by days only while remaining days
	// cover it. ErrInsufficientBalance when the guard refuses, so two
	// concurrent approvals can never overdraw one balance row.
	AddUsedDays(ctx context.Context, balanceID string, days decimal.Decimal) error
}

// RequestRepository - interface for leave_requests table
type RequestRepository interface {
	Create(ctx context.Context, request Request) (Request, error)
	GetByID(ctx context.Context, id string) (Request, error)
	Update(ctx context.Context, request Request) error
	ListByEmployee(ctx context.Context, employeeID string) ([]Request, error)
	ListByStatus(ctx context.Context, status RequestStatus) ([]Request, error)
}
