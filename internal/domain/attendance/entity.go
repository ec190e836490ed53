package attendance

import (
	"time"
)

type Status string

const (
	StatusPresent Status = "PRESENT"
	StatusLate    Status = "LATE"
	StatusHalfDay Status = "HALF_DAY"
)

// Attendance is one record per (employee, calendar date). The date is the
// working day in the application timezone, not a timestamp. Created on
// clock-in with a nil CheckOut; mutated exactly once on clock-out.
type Attendance struct {
	ID          string
	EmployeeID  string
	Date        time.Time
	CheckIn     time.Time
	CheckOut    *time.Time
	WorkMinutes *int
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Policy configures the attendance rule for a department. A nil DepartmentID
// marks the global default row, used when a department has no policy of its
// own.
type Policy struct {
	ID           string
	DepartmentID *string
	PolicyType   string
	ShiftStart   time.Time // time-of-day, date part ignored
	ShiftEnd     time.Time // time-of-day, date part ignored
	GraceMinutes int
	AllowRemote  bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
