package leave

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/hrcore/hr-backend-go/internal/domain/leave"
)

const (
	LeaveTypeAnnual       = "ANNUAL"
	LeaveTypeProbationary = "PROBATIONARY"
)

// PolicyStrategy decides how many days a leave request is worth under a
// given leave type. It never mutates the balance; the service applies the
// deduction when the request is approved.
type PolicyStrategy interface {
	// CalculateApprovedDays returns the days to charge against the balance,
	// or an error when the request cannot be granted under this policy.
	CalculateApprovedDays(request leave.Request, balance leave.Balance) (decimal.Decimal, error)

	// SupportedLeaveType returns the LeaveType.PolicyType value this
	// strategy handles.
	SupportedLeaveType() string
}

// StandardPolicy grants exactly the requested days as long as the balance
// covers them.
type StandardPolicy struct{}

func (StandardPolicy) CalculateApprovedDays(request leave.Request, balance leave.Balance) (decimal.Decimal, error) {
	if request.RequestedDays.GreaterThan(balance.RemainingDays()) {
		return decimal.Zero, fmt.Errorf("%w: requested %s days, %s remaining",
			leave.ErrInsufficientBalance, request.RequestedDays, balance.RemainingDays())
	}
	return request.RequestedDays, nil
}

func (StandardPolicy) SupportedLeaveType() string { return LeaveTypeAnnual }

// ProbationaryPolicy caps a single request at maxDays regardless of the
// remaining balance, then applies the standard balance check.
type ProbationaryPolicy struct {
	maxDays decimal.Decimal
}

func NewProbationaryPolicy() ProbationaryPolicy {
	return ProbationaryPolicy{maxDays: decimal.NewFromInt(3)}
}

func (p ProbationaryPolicy) CalculateApprovedDays(request leave.Request, balance leave.Balance) (decimal.Decimal, error) {
	if request.RequestedDays.GreaterThan(p.maxDays) {
		return decimal.Zero, fmt.Errorf("%w: probationary leave is limited to %s days per request, got %s",
			leave.ErrInsufficientBalance, p.maxDays, request.RequestedDays)
	}
	if request.RequestedDays.GreaterThan(balance.RemainingDays()) {
		return decimal.Zero, fmt.Errorf("%w: requested %s days, %s remaining",
			leave.ErrInsufficientBalance, request.RequestedDays, balance.RemainingDays())
	}
	return request.RequestedDays, nil
}

func (p ProbationaryPolicy) SupportedLeaveType() string { return LeaveTypeProbationary }

// DefaultPolicies returns the full strategy set registered at startup.
func DefaultPolicies() []PolicyStrategy {
	return []PolicyStrategy{StandardPolicy{}, NewProbationaryPolicy()}
}
