package attendance

import (
	"time"

	"github.com/hrcore/hr-backend-go/internal/domain/attendance"
)

// PolicyTypeStandard is the designated default: unrecognized policy types
// dispatch to the strategy registered under this key.
const (
	PolicyTypeStandard   = "STANDARD"
	PolicyTypeRemoteWork = "REMOTE_WORK"
)

// RuleStrategy evaluates the attendance status of a check-in against a
// policy. Implementations are pure functions of their inputs: no side
// effects, no shared mutable state, safe to call concurrently.
type RuleStrategy interface {
	Evaluate(policy attendance.Policy, checkIn time.Time, loc *time.Location) attendance.Status

	// SupportedPolicyType returns the Policy.PolicyType value this strategy
	// handles.
	SupportedPolicyType() string
}

// StandardRule marks a check-in LATE once it passes shift start plus the
// grace period. A check-in exactly at the deadline is still PRESENT.
type StandardRule struct{}

func (StandardRule) Evaluate(policy attendance.Policy, checkIn time.Time, loc *time.Location) attendance.Status {
	local := checkIn.In(loc)
	deadline := atTimeOfDay(local, policy.ShiftStart, loc).
		Add(time.Duration(policy.GraceMinutes) * time.Minute)
	if local.After(deadline) {
		return attendance.StatusLate
	}
	return attendance.StatusPresent
}

func (StandardRule) SupportedPolicyType() string { return PolicyTypeStandard }

// RemoteWorkRule has no grace concept: remote employees are PRESENT any time
// up to shift end, and LATE only strictly after it.
type RemoteWorkRule struct{}

func (RemoteWorkRule) Evaluate(policy attendance.Policy, checkIn time.Time, loc *time.Location) attendance.Status {
	local := checkIn.In(loc)
	cutoff := atTimeOfDay(local, policy.ShiftEnd, loc)
	if local.After(cutoff) {
		return attendance.StatusLate
	}
	return attendance.StatusPresent
}

func (RemoteWorkRule) SupportedPolicyType() string { return PolicyTypeRemoteWork }

// DefaultRules returns the full strategy set registered at startup.
func DefaultRules() []RuleStrategy {
	return []RuleStrategy{StandardRule{}, RemoteWorkRule{}}
}

// atTimeOfDay pins a time-of-day value onto day's calendar date in loc.
func atTimeOfDay(day time.Time, timeOfDay time.Time, loc *time.Location) time.Time {
	return time.Date(
		day.Year(), day.Month(), day.Day(),
		timeOfDay.Hour(), timeOfDay.Minute(), 0, 0,
		loc,
	)
}
