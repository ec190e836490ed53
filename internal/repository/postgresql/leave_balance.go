package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/hrcore/hr-backend-go/internal/domain/leave"
	"github.com/hrcore/hr-backend-go/internal/pkg/database"
)

type leaveBalanceRepository struct {
	db *database.DB
}

func NewLeaveBalanceRepository(db *database.DB) leave.BalanceRepository {
	return &leaveBalanceRepository{db: db}
}

// Create implements leave.BalanceRepository.
func (r *leaveBalanceRepository) Create(ctx context.Context, balance leave.Balance) (leave.Balance, error) {
	q := GetQuerier(ctx, r.db)

	balance.ID = uuid.NewString()

	query := `
		INSERT INTO leave_balances (id, employee_id, leave_type_id, year, total_days, used_days)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		balance.ID,
		balance.EmployeeID,
		balance.LeaveTypeID,
		balance.Year,
		balance.TotalDays,
		balance.UsedDays,
	).Scan(&balance.CreatedAt, &balance.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return leave.Balance{}, leave.ErrBalanceExists
		}
		return leave.Balance{}, fmt.Errorf("failed to create leave balance: %w", err)
	}

	return balance, nil
}

// GetByEmployeeTypeYear implements leave.BalanceRepository.
func (r *leaveBalanceRepository) GetByEmployeeTypeYear(ctx context.Context, employeeID, leaveTypeID string, year int) (leave.Balance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, leave_type_id, year, total_days, used_days,
			   created_at, updated_at
		FROM leave_balances
		WHERE employee_id = $1 AND leave_type_id = $2 AND year = $3
	`

	var b leave.Balance
	err := q.QueryRow(ctx, query, employeeID, leaveTypeID, year).Scan(
		&b.ID, &b.EmployeeID, &b.LeaveTypeID, &b.Year, &b.TotalDays, &b.UsedDays,
		&b.CreatedAt, &b.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Balance{}, leave.ErrBalanceNotFound
		}
		return leave.Balance{}, fmt.Errorf("failed to get leave balance: %w", err)
	}

	return b, nil
}

// AddUsedDays implements leave.BalanceRepository. The WHERE guard makes the
// deduction a single atomic read-modify-write: concurrent approvals against
// the same row serialize on the row write, and the second one sees the
// already-raised used_days. Zero rows affected means the remaining balance
// no longer covers the deduction.
func (r *leaveBalanceRepository) AddUsedDays(ctx context.Context, balanceID string, days decimal.Decimal) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_balances
		SET used_days = used_days + $1, updated_at = NOW()
		WHERE id = $2
		  AND total_days - used_days >= $1
	`

	commandTag, err := q.Exec(ctx, query, days, balanceID)
	if err != nil {
		return fmt.Errorf("failed to deduct leave balance: %w", err)
	}
	if commandTag.RowsAffected() != 1 {
		return leave.ErrInsufficientBalance
	}

	return nil
}
