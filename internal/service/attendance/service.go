package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hrcore/hr-backend-go/internal/domain/attendance"
	"github.com/hrcore/hr-backend-go/internal/pkg/lock"
	"github.com/hrcore/hr-backend-go/internal/pkg/validator"
)

// halfDayThreshold is the minimum number of worked minutes for a day to
// keep its check-in status. Anything shorter is downgraded to HALF_DAY.
const halfDayThreshold = 240

// AttendanceService drives the daily clock-in/clock-out cycle. Clock-in is
// exactly-once per employee per day: a distributed lock absorbs concurrent
// attempts and the unique constraint on (employee_id, date) backs it up.
type AttendanceService struct {
	repo       attendance.Repository
	policyRepo attendance.PolicyRepository
	locker     lock.Locker
	strategies map[string]RuleStrategy
	lockTTL    time.Duration
	loc        *time.Location
	now        func() time.Time
	logger     *slog.Logger
}

func NewAttendanceService(
	repo attendance.Repository,
	policyRepo attendance.PolicyRepository,
	locker lock.Locker,
	strategies []RuleStrategy,
	lockTTL time.Duration,
	loc *time.Location,
	logger *slog.Logger,
) (*AttendanceService, error) {
	byType := make(map[string]RuleStrategy, len(strategies))
	for _, s := range strategies {
		if _, ok := byType[s.SupportedPolicyType()]; ok {
			return nil, fmt.Errorf("duplicate attendance rule for policy type %q", s.SupportedPolicyType())
		}
		byType[s.SupportedPolicyType()] = s
	}
	if _, ok := byType[PolicyTypeStandard]; !ok {
		return nil, fmt.Errorf("attendance rule for policy type %q is required", PolicyTypeStandard)
	}
	return &AttendanceService{
		repo:       repo,
		policyRepo: policyRepo,
		locker:     locker,
		strategies: byType,
		lockTTL:    lockTTL,
		loc:        loc,
		now:        time.Now,
		logger:     logger,
	}, nil
}

// ClockIn records today's check-in for the employee. Concurrent calls for
// the same employee and day resolve to exactly one created record; losers
// get ErrAlreadyCheckedIn.
func (s *AttendanceService) ClockIn(ctx context.Context, employeeID string, departmentID string) (attendance.Attendance, error) {
	now := s.now().In(s.loc)
	date := now.Format("2006-01-02")

	key := fmt.Sprintf("attendance:lock:%s:%s", employeeID, date)
	acquired, err := s.locker.TryAcquire(ctx, key, s.lockTTL)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("acquire clock-in lock: %w", err)
	}
	if !acquired {
		return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
	}

	policy, err := s.policyRepo.FindByDepartmentOrDefault(ctx, departmentID)
	if err != nil {
		return attendance.Attendance{}, err
	}

	strategy, ok := s.strategies[policy.PolicyType]
	if !ok {
		s.logger.Warn("no attendance rule for policy type, using standard",
			slog.String("policy_type", policy.PolicyType),
			slog.String("policy_id", policy.ID))
		strategy = s.strategies[PolicyTypeStandard]
	}
	status := strategy.Evaluate(policy, now, s.loc)

	record, err := s.repo.Create(ctx, attendance.Attendance{
		EmployeeID: employeeID,
		Date:       time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc),
		CheckIn:    now,
		Status:     status,
	})
	if err != nil {
		return attendance.Attendance{}, err
	}

	s.logger.Info("employee clocked in",
		slog.String("employee_id", employeeID),
		slog.String("date", date),
		slog.String("status", string(status)),
		slog.String("policy_type", policy.PolicyType))
	return record, nil
}

// ClockOut closes today's open attendance record and computes worked
// minutes. Fewer than four hours downgrades the day to HALF_DAY.
func (s *AttendanceService) ClockOut(ctx context.Context, employeeID string) (attendance.Attendance, error) {
	now := s.now().In(s.loc)
	date := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)

	record, err := s.repo.FindOpenByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		return attendance.Attendance{}, err
	}
	if record.CheckIn.IsZero() {
		return attendance.Attendance{}, fmt.Errorf("attendance %s has no check-in time", record.ID)
	}

	worked := int(now.Sub(record.CheckIn).Minutes())
	if worked < 0 {
		return attendance.Attendance{}, fmt.Errorf("attendance %s: check-out before check-in", record.ID)
	}

	record.CheckOut = &now
	record.WorkMinutes = &worked
	if worked < halfDayThreshold {
		record.Status = attendance.StatusHalfDay
	}
	if err := s.repo.Update(ctx, record); err != nil {
		return attendance.Attendance{}, err
	}

	s.logger.Info("employee clocked out",
		slog.String("employee_id", employeeID),
		slog.Int("work_minutes", worked),
		slog.String("status", string(record.Status)))
	return record, nil
}

// History lists the employee's attendance records between from and to,
// inclusive.
func (s *AttendanceService) History(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Attendance, error) {
	return s.repo.ListByEmployee(ctx, employeeID, from, to)
}

// CreatePolicy registers a new attendance policy. A nil department makes it
// the global default.
func (s *AttendanceService) CreatePolicy(ctx context.Context, req *attendance.CreatePolicyRequest) (attendance.Policy, error) {
	if err := req.Validate(); err != nil {
		return attendance.Policy{}, err
	}
	if _, ok := s.strategies[req.PolicyType]; !ok {
		s.logger.Warn("policy created with unregistered policy type",
			slog.String("policy_type", req.PolicyType))
	}

	shiftStart, _ := validator.ParseTimeOfDay(req.ShiftStart)
	shiftEnd, _ := validator.ParseTimeOfDay(req.ShiftEnd)

	return s.policyRepo.Create(ctx, attendance.Policy{
		DepartmentID: req.DepartmentID,
		PolicyType:   req.PolicyType,
		ShiftStart:   shiftStart,
		ShiftEnd:     shiftEnd,
		GraceMinutes: req.GraceMinutes,
		AllowRemote:  req.AllowRemote,
	})
}

// ListPolicies returns all attendance policies.
func (s *AttendanceService) ListPolicies(ctx context.Context) ([]attendance.Policy, error) {
	return s.policyRepo.List(ctx)
}
