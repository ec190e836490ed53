package leave

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hrcore/hr-backend-go/internal/domain/leave"
	"github.com/hrcore/hr-backend-go/internal/domain/user"
	"github.com/hrcore/hr-backend-go/internal/pkg/validator"
)

// TxRunner runs fn inside a database transaction. Repository calls made
// with the context fn receives join that transaction.
type TxRunner interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// LeaveService owns the leave request lifecycle. Balances are only touched
// at approval time: applying for leave reserves nothing, and the deduction
// plus the status flip happen in one transaction.
type LeaveService struct {
	typeRepo    leave.TypeRepository
	balanceRepo leave.BalanceRepository
	requestRepo leave.RequestRepository
	tx          TxRunner
	strategies  map[string]PolicyStrategy
	now         func() time.Time
	logger      *slog.Logger
}

func NewLeaveService(
	typeRepo leave.TypeRepository,
	balanceRepo leave.BalanceRepository,
	requestRepo leave.RequestRepository,
	tx TxRunner,
	strategies []PolicyStrategy,
	logger *slog.Logger,
) (*LeaveService, error) {
	byType := make(map[string]PolicyStrategy, len(strategies))
	for _, s := range strategies {
		if _, ok := byType[s.SupportedLeaveType()]; ok {
			return nil, fmt.Errorf("duplicate leave policy for leave type %q", s.SupportedLeaveType())
		}
		byType[s.SupportedLeaveType()] = s
	}
	if _, ok := byType[LeaveTypeAnnual]; !ok {
		return nil, fmt.Errorf("leave policy for leave type %q is required", LeaveTypeAnnual)
	}
	return &LeaveService{
		typeRepo:    typeRepo,
		balanceRepo: balanceRepo,
		requestRepo: requestRepo,
		tx:          tx,
		strategies:  byType,
		now:         time.Now,
		logger:      logger,
	}, nil
}

// Apply files a leave request. The policy strategy vets the request against
// the current balance, but the balance itself is not modified until a
// reviewer approves.
func (s *LeaveService) Apply(ctx context.Context, req *leave.ApplyRequest) (leave.Request, error) {
	if err := req.Validate(); err != nil {
		return leave.Request{}, err
	}

	leaveType, err := s.typeRepo.GetByID(ctx, req.LeaveTypeID)
	if err != nil {
		return leave.Request{}, err
	}

	start, _ := validator.IsValidDate(req.StartDate)
	end, _ := validator.IsValidDate(req.EndDate)

	balance, err := s.balanceRepo.GetByEmployeeTypeYear(ctx, req.EmployeeID, leaveType.ID, start.Year())
	if err != nil {
		return leave.Request{}, err
	}

	request := leave.Request{
		EmployeeID:    req.EmployeeID,
		LeaveTypeID:   leaveType.ID,
		StartDate:     start,
		EndDate:       end,
		RequestedDays: req.RequestedDays,
		Reason:        req.Reason,
		Status:        leave.StatusPending,
	}

	strategy := s.strategyFor(leaveType.PolicyType)
	days, err := strategy.CalculateApprovedDays(request, balance)
	if err != nil {
		return leave.Request{}, err
	}
	// A strategy may grant fewer days than asked for; the request carries
	// the strategy's figure from here on.
	request.RequestedDays = days

	request, err = s.requestRepo.Create(ctx, request)
	if err != nil {
		return leave.Request{}, err
	}

	s.logger.Info("leave request filed",
		slog.String("request_id", request.ID),
		slog.String("employee_id", request.EmployeeID),
		slog.String("leave_type", leaveType.Name),
		slog.String("requested_days", request.RequestedDays.String()))
	return request, nil
}

// Review approves or rejects a pending request. Approval re-runs the policy
// strategy and deducts the balance atomically with the status change; a
// failed deduction rolls the whole review back.
func (s *LeaveService) Review(ctx context.Context, requestID, reviewerID string, reviewerRole user.Role, approve bool) (leave.Request, error) {
	if !reviewerRole.CanReviewLeave() {
		return leave.Request{}, user.ErrManagerAccessRequired
	}

	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return leave.Request{}, err
	}
	if request.Status != leave.StatusPending {
		return leave.Request{}, leave.ErrLeaveAlreadyProcessed
	}

	now := s.now()
	request.ReviewedBy = &reviewerID
	request.ReviewedAt = &now

	if !approve {
		request.Status = leave.StatusRejected
		if err := s.requestRepo.Update(ctx, request); err != nil {
			return leave.Request{}, err
		}
		s.logger.Info("leave request rejected",
			slog.String("request_id", request.ID),
			slog.String("reviewer_id", reviewerID))
		return request, nil
	}

	leaveType, err := s.typeRepo.GetByID(ctx, request.LeaveTypeID)
	if err != nil {
		return leave.Request{}, err
	}
	strategy := s.strategyFor(leaveType.PolicyType)

	err = s.tx.InTx(ctx, func(ctx context.Context) error {
		balance, err := s.balanceRepo.GetByEmployeeTypeYear(ctx, request.EmployeeID, request.LeaveTypeID, request.StartDate.Year())
		if err != nil {
			return err
		}
		days, err := strategy.CalculateApprovedDays(request, balance)
		if err != nil {
			return err
		}
		if err := s.balanceRepo.AddUsedDays(ctx, balance.ID, days); err != nil {
			return err
		}
		request.Status = leave.StatusApproved
		return s.requestRepo.Update(ctx, request)
	})
	if err != nil {
		return leave.Request{}, err
	}

	s.logger.Info("leave request approved",
		slog.String("request_id", request.ID),
		slog.String("reviewer_id", reviewerID),
		slog.String("requested_days", request.RequestedDays.String()))
	return request, nil
}

// Cancel withdraws the employee's own pending request. Approved or rejected
// requests cannot be cancelled.
func (s *LeaveService) Cancel(ctx context.Context, requestID, employeeID string) (leave.Request, error) {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return leave.Request{}, err
	}
	if request.EmployeeID != employeeID {
		return leave.Request{}, leave.ErrNotRequestOwner
	}
	if request.Status != leave.StatusPending {
		return leave.Request{}, leave.ErrLeaveAlreadyProcessed
	}

	request.Status = leave.StatusCancelled
	if err := s.requestRepo.Update(ctx, request); err != nil {
		return leave.Request{}, err
	}

	s.logger.Info("leave request cancelled",
		slog.String("request_id", request.ID),
		slog.String("employee_id", employeeID))
	return request, nil
}

// HistoryByEmployee lists the employee's leave requests, newest first.
func (s *LeaveService) HistoryByEmployee(ctx context.Context, employeeID string) ([]leave.Request, error) {
	return s.requestRepo.ListByEmployee(ctx, employeeID)
}

// PendingRequests lists all requests awaiting review.
func (s *LeaveService) PendingRequests(ctx context.Context) ([]leave.Request, error) {
	return s.requestRepo.ListByStatus(ctx, leave.StatusPending)
}

// CreateType registers a new leave type.
func (s *LeaveService) CreateType(ctx context.Context, req *leave.CreateTypeRequest) (leave.LeaveType, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveType{}, err
	}
	if _, ok := s.strategies[req.PolicyType]; !ok {
		s.logger.Warn("leave type created with unregistered policy type",
			slog.String("policy_type", req.PolicyType))
	}

	return s.typeRepo.Create(ctx, leave.LeaveType{
		Name:               req.Name,
		IsPaid:             req.IsPaid,
		RequiresDocs:       req.RequiresDocs,
		DefaultDaysPerYear: req.DefaultDaysPerYear,
		PolicyType:         req.PolicyType,
	})
}

// ListTypes returns all leave types.
func (s *LeaveService) ListTypes(ctx context.Context) ([]leave.LeaveType, error) {
	return s.typeRepo.List(ctx)
}

// ProvisionBalance creates an employee's yearly balance for a leave type.
func (s *LeaveService) ProvisionBalance(ctx context.Context, req *leave.ProvisionBalanceRequest) (leave.Balance, error) {
	if err := req.Validate(); err != nil {
		return leave.Balance{}, err
	}
	if _, err := s.typeRepo.GetByID(ctx, req.LeaveTypeID); err != nil {
		return leave.Balance{}, err
	}

	return s.balanceRepo.Create(ctx, leave.Balance{
		EmployeeID:  req.EmployeeID,
		LeaveTypeID: req.LeaveTypeID,
		Year:        req.Year,
		TotalDays:   req.TotalDays,
	})
}

// BalanceFor returns the employee's balance for a leave type and year.
func (s *LeaveService) BalanceFor(ctx context.Context, employeeID, leaveTypeID string, year int) (leave.Balance, error) {
	return s.balanceRepo.GetByEmployeeTypeYear(ctx, employeeID, leaveTypeID, year)
}

func (s *LeaveService) strategyFor(policyType string) PolicyStrategy {
	if strategy, ok := s.strategies[policyType]; ok {
		return strategy
	}
	s.logger.Warn("no leave policy for leave type, using annual",
		slog.String("policy_type", policyType))
	return s.strategies[LeaveTypeAnnual]
}
