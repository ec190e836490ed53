package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/hrcore/hr-backend-go/internal/domain/attendance"
	"github.com/hrcore/hr-backend-go/internal/pkg/database"
)

type attendancePolicyRepository struct {
	db *database.DB
}

func NewAttendancePolicyRepository(db *database.DB) attendance.PolicyRepository {
	return &attendancePolicyRepository{db: db}
}

// FindByDepartmentOrDefault implements attendance.PolicyRepository.
// A department-specific row wins; the NULL-department default is the
// fallback. Sorting department_id NULLS LAST makes the preference
// deterministic when both rows exist.
func (r *attendancePolicyRepository) FindByDepartmentOrDefault(ctx context.Context, departmentID string) (attendance.Policy, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, department_id, policy_type, shift_start, shift_end,
			   grace_minutes, allow_remote, created_at, updated_at
		FROM attendance_policies
		WHERE department_id = $1 OR department_id IS NULL
		ORDER BY department_id NULLS LAST
		LIMIT 1
	`

	var p attendance.Policy
	err := q.QueryRow(ctx, query, departmentID).Scan(
		&p.ID, &p.DepartmentID, &p.PolicyType, &p.ShiftStart, &p.ShiftEnd,
		&p.GraceMinutes, &p.AllowRemote, &p.CreatedAt, &p.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Policy{}, attendance.ErrPolicyNotFound
		}
		return attendance.Policy{}, fmt.Errorf("failed to resolve attendance policy: %w", err)
	}

	return p, nil
}

// Create implements attendance.PolicyRepository.
func (r *attendancePolicyRepository) Create(ctx context.Context, policy attendance.Policy) (attendance.Policy, error) {
	q := GetQuerier(ctx, r.db)

	policy.ID = uuid.NewString()

	query := `
		INSERT INTO attendance_policies (
			id, department_id, policy_type, shift_start, shift_end,
			grace_minutes, allow_remote
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		policy.ID,
		policy.DepartmentID,
		policy.PolicyType,
		policy.ShiftStart,
		policy.ShiftEnd,
		policy.GraceMinutes,
		policy.AllowRemote,
	).Scan(&policy.CreatedAt, &policy.UpdatedAt)

	if err != nil {
		return attendance.Policy{}, fmt.Errorf("failed to create attendance policy: %w", err)
	}

	return policy, nil
}

// List implements attendance.PolicyRepository.
func (r *attendancePolicyRepository) List(ctx context.Context) ([]attendance.Policy, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, department_id, policy_type, shift_start, shift_end,
			   grace_minutes, allow_remote, created_at, updated_at
		FROM attendance_policies
		ORDER BY department_id NULLS FIRST
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance policies: %w", err)
	}
	defer rows.Close()

	var policies []attendance.Policy
	for rows.Next() {
		var p attendance.Policy
		err := rows.Scan(
			&p.ID, &p.DepartmentID, &p.PolicyType, &p.ShiftStart, &p.ShiftEnd,
			&p.GraceMinutes, &p.AllowRemote, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance policy: %w", err)
		}
		policies = append(policies, p)
	}

	return policies, rows.Err()
}
