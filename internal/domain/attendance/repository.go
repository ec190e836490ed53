package attendance

import (
	"context"
	"time"
)

// Repository defines data access for attendance records.
type Repository interface {
	// Create inserts a new attendance record. The attendances table carries a
	// unique constraint on (employee_id, date); implementations must map that
	// violation to ErrAlreadyCheckedIn so the caller sees the same condition
	// as lock contention.
	Create(ctx context.Context, att Attendance) (Attendance, error)

	// FindOpenByEmployeeAndDate returns the record for the given working day
	// whose clock-out is still unset. ErrNotCheckedIn when absent.
	FindOpenByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (Attendance, error)

	// Update persists clock-out mutations on an existing record.
	Update(ctx context.Context, att Attendance) error

	// ListByEmployee returns the employee's records between from and to,
	// newest first.
	ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]Attendance, error)
}

// PolicyRepository defines data access for attendance policies.
type PolicyRepository interface {
	// FindByDepartmentOrDefault returns the department's policy when one
	// exists, otherwise the global default (department_id IS NULL) row.
	// ErrPolicyNotFound when neither exists.
	FindByDepartmentOrDefault(ctx context.Context, departmentID string) (Policy, error)

	Create(ctx context.Context, policy Policy) (Policy, error)
	List(ctx context.Context) ([]Policy, error)
}
