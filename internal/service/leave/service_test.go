package leave

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrcore/hr-backend-go/internal/domain/leave"
	"github.com/hrcore/hr-backend-go/internal/domain/user"
)

type fakeTypeRepo struct {
	mu    sync.Mutex
	types map[string]leave.LeaveType
}

func newFakeTypeRepo() *fakeTypeRepo {
	return &fakeTypeRepo{types: make(map[string]leave.LeaveType)}
}

func (r *fakeTypeRepo) Create(_ context.Context, leaveType leave.LeaveType) (leave.LeaveType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	leaveType.ID = uuid.NewString()
	r.types[leaveType.ID] = leaveType
	return leaveType, nil
}

func (r *fakeTypeRepo) GetByID(_ context.Context, id string) (leave.LeaveType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	leaveType, ok := r.types[id]
	if !ok {
		return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
	}
	return leaveType, nil
}

func (r *fakeTypeRepo) List(_ context.Context) ([]leave.LeaveType, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]leave.LeaveType, 0, len(r.types))
	for _, leaveType := range r.types {
		result = append(result, leaveType)
	}
	return result, nil
}

type fakeBalanceRepo struct {
	mu       sync.Mutex
	balances map[string]*leave.Balance
}

func newFakeBalanceRepo() *fakeBalanceRepo {
	return &fakeBalanceRepo{balances: make(map[string]*leave.Balance)}
}

func (r *fakeBalanceRepo) Create(_ context.Context, balance leave.Balance) (leave.Balance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.balances {
		if existing.EmployeeID == balance.EmployeeID &&
			existing.LeaveTypeID == balance.LeaveTypeID &&
			existing.Year == balance.Year {
			return leave.Balance{}, leave.ErrBalanceExists
		}
	}
	balance.ID = uuid.NewString()
	stored := balance
	r.balances[balance.ID] = &stored
	return balance, nil
}

func (r *fakeBalanceRepo) GetByEmployeeTypeYear(_ context.Context, employeeID, leaveTypeID string, year int) (leave.Balance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, balance := range r.balances {
		if balance.EmployeeID == employeeID && balance.LeaveTypeID == leaveTypeID && balance.Year == year {
			return *balance, nil
		}
	}
	return leave.Balance{}, leave.ErrBalanceNotFound
}

// AddUsedDays mirrors the guarded UPDATE: the deduction only lands when the
// remaining balance covers it.
func (r *fakeBalanceRepo) AddUsedDays(_ context.Context, balanceID string, days decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	balance, ok := r.balances[balanceID]
	if !ok {
		return leave.ErrBalanceNotFound
	}
	if balance.RemainingDays().LessThan(days) {
		return leave.ErrInsufficientBalance
	}
	balance.UsedDays = balance.UsedDays.Add(days)
	return nil
}

type fakeRequestRepo struct {
	mu       sync.Mutex
	requests map[string]*leave.Request
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: make(map[string]*leave.Request)}
}

func (r *fakeRequestRepo) Create(_ context.Context, request leave.Request) (leave.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	request.ID = uuid.NewString()
	stored := request
	r.requests[request.ID] = &stored
	return request, nil
}

func (r *fakeRequestRepo) GetByID(_ context.Context, id string) (leave.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	request, ok := r.requests[id]
	if !ok {
		return leave.Request{}, leave.ErrLeaveRequestNotFound
	}
	return *request, nil
}

func (r *fakeRequestRepo) Update(_ context.Context, request leave.Request) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.requests[request.ID]; !ok {
		return leave.ErrLeaveRequestNotFound
	}
	stored := request
	r.requests[request.ID] = &stored
	return nil
}

func (r *fakeRequestRepo) ListByEmployee(_ context.Context, employeeID string) ([]leave.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []leave.Request
	for _, request := range r.requests {
		if request.EmployeeID == employeeID {
			result = append(result, *request)
		}
	}
	return result, nil
}

func (r *fakeRequestRepo) ListByStatus(_ context.Context, status leave.RequestStatus) ([]leave.Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []leave.Request
	for _, request := range r.requests {
		if request.Status == status {
			result = append(result, *request)
		}
	}
	return result, nil
}

// truncatingPolicy grants at most cap days instead of rejecting over-cap
// requests.
type truncatingPolicy struct {
	cap decimal.Decimal
}

func (p truncatingPolicy) CalculateApprovedDays(request leave.Request, balance leave.Balance) (decimal.Decimal, error) {
	days := decimal.Min(request.RequestedDays, p.cap)
	if days.GreaterThan(balance.RemainingDays()) {
		return decimal.Zero, leave.ErrInsufficientBalance
	}
	return days, nil
}

func (p truncatingPolicy) SupportedLeaveType() string { return "COMPASSIONATE" }

// fakeTxRunner runs the function directly; the fakes are already atomic.
type fakeTxRunner struct{}

func (fakeTxRunner) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type leaveFixture struct {
	svc         *LeaveService
	typeRepo    *fakeTypeRepo
	balanceRepo *fakeBalanceRepo
	requestRepo *fakeRequestRepo
	annualType  leave.LeaveType
}

func newLeaveFixture(t *testing.T) *leaveFixture {
	t.Helper()
	typeRepo := newFakeTypeRepo()
	balanceRepo := newFakeBalanceRepo()
	requestRepo := newFakeRequestRepo()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc, err := NewLeaveService(typeRepo, balanceRepo, requestRepo, fakeTxRunner{}, DefaultPolicies(), logger)
	require.NoError(t, err)

	annual, err := typeRepo.Create(context.Background(), leave.LeaveType{
		Name: "Annual Leave", IsPaid: true, DefaultDaysPerYear: 10, PolicyType: LeaveTypeAnnual,
	})
	require.NoError(t, err)

	return &leaveFixture{
		svc:         svc,
		typeRepo:    typeRepo,
		balanceRepo: balanceRepo,
		requestRepo: requestRepo,
		annualType:  annual,
	}
}

func (f *leaveFixture) provision(t *testing.T, employeeID string, leaveTypeID string, totalDays int64) leave.Balance {
	t.Helper()
	balance, err := f.balanceRepo.Create(context.Background(), leave.Balance{
		EmployeeID:  employeeID,
		LeaveTypeID: leaveTypeID,
		Year:        2026,
		TotalDays:   decimal.NewFromInt(totalDays),
	})
	require.NoError(t, err)
	return balance
}

func applyRequest(employeeID, leaveTypeID, days string) *leave.ApplyRequest {
	d, err := decimal.NewFromString(days)
	if err != nil {
		panic(err)
	}
	return &leave.ApplyRequest{
		EmployeeID:    employeeID,
		LeaveTypeID:   leaveTypeID,
		StartDate:     "2026-04-06",
		EndDate:       "2026-04-10",
		RequestedDays: d,
		Reason:        "family trip",
	}
}

func TestNewLeaveServiceRequiresAnnualPolicy(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	_, err := NewLeaveService(newFakeTypeRepo(), newFakeBalanceRepo(), newFakeRequestRepo(), fakeTxRunner{},
		[]PolicyStrategy{NewProbationaryPolicy()}, logger)
	assert.ErrorContains(t, err, "ANNUAL")

	_, err = NewLeaveService(newFakeTypeRepo(), newFakeBalanceRepo(), newFakeRequestRepo(), fakeTxRunner{},
		[]PolicyStrategy{StandardPolicy{}, StandardPolicy{}}, logger)
	assert.ErrorContains(t, err, "duplicate")
}

func TestApply(t *testing.T) {
	t.Run("creates a pending request without touching the balance", func(t *testing.T) {
		f := newLeaveFixture(t)
		f.provision(t, "emp-1", f.annualType.ID, 10)

		request, err := f.svc.Apply(context.Background(), applyRequest("emp-1", f.annualType.ID, "3"))
		require.NoError(t, err)
		assert.Equal(t, leave.StatusPending, request.Status)
		assert.NotEmpty(t, request.ID)

		balance, err := f.svc.BalanceFor(context.Background(), "emp-1", f.annualType.ID, 2026)
		require.NoError(t, err)
		assert.True(t, balance.UsedDays.IsZero())
	})

	t.Run("rejects a request over the remaining balance", func(t *testing.T) {
		f := newLeaveFixture(t)
		f.provision(t, "emp-1", f.annualType.ID, 2)

		_, err := f.svc.Apply(context.Background(), applyRequest("emp-1", f.annualType.ID, "3"))
		assert.ErrorIs(t, err, leave.ErrInsufficientBalance)
		assert.Empty(t, f.requestRepo.requests)
	})

	t.Run("unknown leave type", func(t *testing.T) {
		f := newLeaveFixture(t)
		_, err := f.svc.Apply(context.Background(), applyRequest("emp-1", "missing", "3"))
		assert.ErrorIs(t, err, leave.ErrLeaveTypeNotFound)
	})

	t.Run("no balance provisioned", func(t *testing.T) {
		f := newLeaveFixture(t)
		_, err := f.svc.Apply(context.Background(), applyRequest("emp-1", f.annualType.ID, "3"))
		assert.ErrorIs(t, err, leave.ErrBalanceNotFound)
	})

	t.Run("probationary cap applies at submission", func(t *testing.T) {
		f := newLeaveFixture(t)
		probation, err := f.typeRepo.Create(context.Background(), leave.LeaveType{
			Name: "Probation Leave", PolicyType: LeaveTypeProbationary,
		})
		require.NoError(t, err)
		f.provision(t, "emp-1", probation.ID, 10)

		_, err = f.svc.Apply(context.Background(), applyRequest("emp-1", probation.ID, "4"))
		assert.ErrorIs(t, err, leave.ErrInsufficientBalance)
		assert.Contains(t, err.Error(), "limited to 3 days")
	})

	t.Run("persists the strategy's day count when it grants fewer days", func(t *testing.T) {
		typeRepo := newFakeTypeRepo()
		balanceRepo := newFakeBalanceRepo()
		requestRepo := newFakeRequestRepo()
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))

		svc, err := NewLeaveService(typeRepo, balanceRepo, requestRepo, fakeTxRunner{},
			[]PolicyStrategy{StandardPolicy{}, truncatingPolicy{cap: decimal.NewFromInt(2)}}, logger)
		require.NoError(t, err)

		compassionate, err := typeRepo.Create(context.Background(), leave.LeaveType{
			Name: "Compassionate Leave", PolicyType: "COMPASSIONATE",
		})
		require.NoError(t, err)
		_, err = balanceRepo.Create(context.Background(), leave.Balance{
			EmployeeID: "emp-1", LeaveTypeID: compassionate.ID, Year: 2026,
			TotalDays: decimal.NewFromInt(10),
		})
		require.NoError(t, err)

		request, err := svc.Apply(context.Background(), applyRequest("emp-1", compassionate.ID, "4"))
		require.NoError(t, err)
		assert.True(t, request.RequestedDays.Equal(decimal.NewFromInt(2)))

		stored, err := requestRepo.GetByID(context.Background(), request.ID)
		require.NoError(t, err)
		assert.True(t, stored.RequestedDays.Equal(decimal.NewFromInt(2)))
	})

	t.Run("invalid dates", func(t *testing.T) {
		f := newLeaveFixture(t)
		req := applyRequest("emp-1", f.annualType.ID, "3")
		req.EndDate = "2026-04-01"
		_, err := f.svc.Apply(context.Background(), req)
		assert.Error(t, err)
	})
}

func TestReview(t *testing.T) {
	file := func(t *testing.T, f *leaveFixture, days string) leave.Request {
		t.Helper()
		request, err := f.svc.Apply(context.Background(), applyRequest("emp-1", f.annualType.ID, days))
		require.NoError(t, err)
		return request
	}

	t.Run("approval deducts the balance", func(t *testing.T) {
		f := newLeaveFixture(t)
		f.provision(t, "emp-1", f.annualType.ID, 10)
		request := file(t, f, "3")

		reviewed, err := f.svc.Review(context.Background(), request.ID, "mgr-1", user.RoleManager, true)
		require.NoError(t, err)
		assert.Equal(t, leave.StatusApproved, reviewed.Status)
		require.NotNil(t, reviewed.ReviewedBy)
		assert.Equal(t, "mgr-1", *reviewed.ReviewedBy)
		assert.NotNil(t, reviewed.ReviewedAt)

		balance, err := f.svc.BalanceFor(context.Background(), "emp-1", f.annualType.ID, 2026)
		require.NoError(t, err)
		assert.True(t, balance.UsedDays.Equal(decimal.NewFromInt(3)))
		assert.True(t, balance.RemainingDays().Equal(decimal.NewFromInt(7)))
	})

	t.Run("rejection leaves the balance untouched", func(t *testing.T) {
		f := newLeaveFixture(t)
		f.provision(t, "emp-1", f.annualType.ID, 10)
		request := file(t, f, "3")

		reviewed, err := f.svc.Review(context.Background(), request.ID, "mgr-1", user.RoleManager, false)
		require.NoError(t, err)
		assert.Equal(t, leave.StatusRejected, reviewed.Status)

		balance, err := f.svc.BalanceFor(context.Background(), "emp-1", f.annualType.ID, 2026)
		require.NoError(t, err)
		assert.True(t, balance.UsedDays.IsZero())
	})

	t.Run("already processed", func(t *testing.T) {
		f := newLeaveFixture(t)
		f.provision(t, "emp-1", f.annualType.ID, 10)
		request := file(t, f, "3")

		_, err := f.svc.Review(context.Background(), request.ID, "mgr-1", user.RoleManager, true)
		require.NoError(t, err)

		_, err = f.svc.Review(context.Background(), request.ID, "mgr-2", user.RoleManager, false)
		assert.ErrorIs(t, err, leave.ErrLeaveAlreadyProcessed)
	})

	t.Run("employee role cannot review", func(t *testing.T) {
		f := newLeaveFixture(t)
		f.provision(t, "emp-1", f.annualType.ID, 10)
		request := file(t, f, "3")

		_, err := f.svc.Review(context.Background(), request.ID, "emp-2", user.RoleEmployee, true)
		assert.ErrorIs(t, err, user.ErrManagerAccessRequired)

		stored, err := f.svc.PendingRequests(context.Background())
		require.NoError(t, err)
		assert.Len(t, stored, 1)
	})

	t.Run("approval fails when balance drained since application", func(t *testing.T) {
		f := newLeaveFixture(t)
		f.provision(t, "emp-1", f.annualType.ID, 10)
		first := file(t, f, "6")
		second := file(t, f, "6")

		_, err := f.svc.Review(context.Background(), first.ID, "mgr-1", user.RoleManager, true)
		require.NoError(t, err)

		// Only 4 days remain; the second request no longer fits.
		_, err = f.svc.Review(context.Background(), second.ID, "mgr-1", user.RoleManager, true)
		assert.ErrorIs(t, err, leave.ErrInsufficientBalance)

		stored, err := f.requestRepo.GetByID(context.Background(), second.ID)
		require.NoError(t, err)
		assert.Equal(t, leave.StatusPending, stored.Status)

		balance, err := f.svc.BalanceFor(context.Background(), "emp-1", f.annualType.ID, 2026)
		require.NoError(t, err)
		assert.True(t, balance.UsedDays.Equal(decimal.NewFromInt(6)))
	})

	t.Run("concurrent approvals never overdraw", func(t *testing.T) {
		f := newLeaveFixture(t)
		f.provision(t, "emp-1", f.annualType.ID, 10)

		var requests []leave.Request
		for i := 0; i < 4; i++ {
			requests = append(requests, file(t, f, "6"))
		}

		var wg sync.WaitGroup
		errs := make(chan error, len(requests))
		for _, request := range requests {
			wg.Add(1)
			go func(id string) {
				defer wg.Done()
				_, err := f.svc.Review(context.Background(), id, "mgr-1", user.RoleManager, true)
				errs <- err
			}(request.ID)
		}
		wg.Wait()
		close(errs)

		var approved int
		for err := range errs {
			if err == nil {
				approved++
			} else {
				require.ErrorIs(t, err, leave.ErrInsufficientBalance)
			}
		}
		assert.Equal(t, 1, approved)

		balance, err := f.svc.BalanceFor(context.Background(), "emp-1", f.annualType.ID, 2026)
		require.NoError(t, err)
		assert.True(t, balance.UsedDays.Equal(decimal.NewFromInt(6)))
	})

	t.Run("missing request", func(t *testing.T) {
		f := newLeaveFixture(t)
		_, err := f.svc.Review(context.Background(), "missing", "mgr-1", user.RoleManager, true)
		assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
	})
}

func TestCancel(t *testing.T) {
	t.Run("owner cancels pending request", func(t *testing.T) {
		f := newLeaveFixture(t)
		f.provision(t, "emp-1", f.annualType.ID, 10)
		request, err := f.svc.Apply(context.Background(), applyRequest("emp-1", f.annualType.ID, "3"))
		require.NoError(t, err)

		cancelled, err := f.svc.Cancel(context.Background(), request.ID, "emp-1")
		require.NoError(t, err)
		assert.Equal(t, leave.StatusCancelled, cancelled.Status)
	})

	t.Run("non-owner forbidden", func(t *testing.T) {
		f := newLeaveFixture(t)
		f.provision(t, "emp-1", f.annualType.ID, 10)
		request, err := f.svc.Apply(context.Background(), applyRequest("emp-1", f.annualType.ID, "3"))
		require.NoError(t, err)

		_, err = f.svc.Cancel(context.Background(), request.ID, "emp-2")
		assert.ErrorIs(t, err, leave.ErrNotRequestOwner)
	})

	t.Run("approved request cannot be cancelled", func(t *testing.T) {
		f := newLeaveFixture(t)
		f.provision(t, "emp-1", f.annualType.ID, 10)
		request, err := f.svc.Apply(context.Background(), applyRequest("emp-1", f.annualType.ID, "3"))
		require.NoError(t, err)
		_, err = f.svc.Review(context.Background(), request.ID, "mgr-1", user.RoleManager, true)
		require.NoError(t, err)

		_, err = f.svc.Cancel(context.Background(), request.ID, "emp-1")
		assert.ErrorIs(t, err, leave.ErrLeaveAlreadyProcessed)
	})
}

func TestProvisionBalance(t *testing.T) {
	f := newLeaveFixture(t)

	req := &leave.ProvisionBalanceRequest{
		EmployeeID:  "emp-1",
		LeaveTypeID: f.annualType.ID,
		Year:        2026,
		TotalDays:   decimal.NewFromInt(10),
	}
	balance, err := f.svc.ProvisionBalance(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, balance.TotalDays.Equal(decimal.NewFromInt(10)))

	_, err = f.svc.ProvisionBalance(context.Background(), req)
	assert.ErrorIs(t, err, leave.ErrBalanceExists)

	req.LeaveTypeID = "missing"
	_, err = f.svc.ProvisionBalance(context.Background(), req)
	assert.ErrorIs(t, err, leave.ErrLeaveTypeNotFound)
}

func TestCreateType(t *testing.T) {
	f := newLeaveFixture(t)

	created, err := f.svc.CreateType(context.Background(), &leave.CreateTypeRequest{
		Name:               "Sick Leave",
		IsPaid:             true,
		RequiresDocs:       true,
		DefaultDaysPerYear: 14,
		PolicyType:         LeaveTypeAnnual,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	types, err := f.svc.ListTypes(context.Background())
	require.NoError(t, err)
	assert.Len(t, types, 2)
}

func TestHistoryByEmployee(t *testing.T) {
	f := newLeaveFixture(t)
	f.provision(t, "emp-1", f.annualType.ID, 10)
	f.provision(t, "emp-2", f.annualType.ID, 10)

	_, err := f.svc.Apply(context.Background(), applyRequest("emp-1", f.annualType.ID, "1"))
	require.NoError(t, err)
	_, err = f.svc.Apply(context.Background(), applyRequest("emp-1", f.annualType.ID, "2"))
	require.NoError(t, err)
	_, err = f.svc.Apply(context.Background(), applyRequest("emp-2", f.annualType.ID, "1"))
	require.NoError(t, err)

	history, err := f.svc.HistoryByEmployee(context.Background(), "emp-1")
	require.NoError(t, err)
	assert.Len(t, history, 2)
}
