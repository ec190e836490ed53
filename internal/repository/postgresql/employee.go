package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/hrcore/hr-backend-go/internal/domain/employee"
	"github.com/hrcore/hr-backend-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.Repository {
	return &employeeRepository{db: db}
}

const employeeColumns = `
	id, user_id, department_id, full_name, position, phone_number, address,
	dob, hire_date, employment_type,
	bank_name, bank_account_holder_name, bank_account_number,
	emergency_contact_name, emergency_contact_relation, emergency_contact_phone,
	created_at, updated_at
`

// Create implements employee.Repository.
func (r *employeeRepository) Create(ctx context.Context, profile employee.Profile) (employee.Profile, error) {
	q := GetQuerier(ctx, r.db)

	profile.ID = uuid.NewString()
	bank, contact := flattenProfile(profile)

	query := `
		INSERT INTO employees (
			id, user_id, department_id, full_name, position, phone_number, address,
			dob, hire_date, employment_type,
			bank_name, bank_account_holder_name, bank_account_number,
			emergency_contact_name, emergency_contact_relation, emergency_contact_phone
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		profile.ID, profile.UserID, profile.DepartmentID, profile.FullName,
		profile.Position, profile.PhoneNumber, profile.Address,
		profile.DOB, profile.HireDate, profile.EmploymentType,
		bank[0], bank[1], bank[2],
		contact[0], contact[1], contact[2],
	).Scan(&profile.CreatedAt, &profile.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return employee.Profile{}, employee.ErrProfileAlreadyExists
		}
		return employee.Profile{}, fmt.Errorf("failed to create employee profile: %w", err)
	}

	return profile, nil
}

// GetByID implements employee.Repository.
func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Profile, error) {
	return r.getBy(ctx, "id", id)
}

// GetByUserID implements employee.Repository.
func (r *employeeRepository) GetByUserID(ctx context.Context, userID string) (employee.Profile, error) {
	return r.getBy(ctx, "user_id", userID)
}

func (r *employeeRepository) getBy(ctx context.Context, column, value string) (employee.Profile, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM employees WHERE %s = $1`, employeeColumns, column)

	profile, err := scanEmployee(q.QueryRow(ctx, query, value))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Profile{}, employee.ErrEmployeeNotFound
		}
		return employee.Profile{}, fmt.Errorf("failed to get employee by %s: %w", column, err)
	}

	return profile, nil
}

// Update implements employee.Repository.
func (r *employeeRepository) Update(ctx context.Context, profile employee.Profile) error {
	q := GetQuerier(ctx, r.db)

	bank, contact := flattenProfile(profile)

	query := `
		UPDATE employees
		SET department_id = $1, full_name = $2, position = $3, phone_number = $4,
			address = $5, dob = $6, hire_date = $7, employment_type = $8,
			bank_name = $9, bank_account_holder_name = $10, bank_account_number = $11,
			emergency_contact_name = $12, emergency_contact_relation = $13,
			emergency_contact_phone = $14, updated_at = NOW()
		WHERE id = $15
	`

	commandTag, err := q.Exec(ctx, query,
		profile.DepartmentID, profile.FullName, profile.Position, profile.PhoneNumber,
		profile.Address, profile.DOB, profile.HireDate, profile.EmploymentType,
		bank[0], bank[1], bank[2],
		contact[0], contact[1], contact[2],
		profile.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update employee profile: %w", err)
	}
	if commandTag.RowsAffected() != 1 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

// Search implements employee.Repository.
func (r *employeeRepository) Search(ctx context.Context, filter employee.DirectoryFilter) ([]employee.Profile, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []interface{}{}

	if filter.Name != "" {
		args = append(args, "%"+filter.Name+"%")
		conditions = append(conditions, fmt.Sprintf("full_name ILIKE $%d", len(args)))
	}
	if filter.DepartmentID != "" {
		args = append(args, filter.DepartmentID)
		conditions = append(conditions, fmt.Sprintf("department_id = $%d", len(args)))
	}
	where := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM employees WHERE %s`, where)
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	args = append(args, limit, filter.Offset)
	query := fmt.Sprintf(
		`SELECT %s FROM employees WHERE %s ORDER BY full_name LIMIT $%d OFFSET $%d`,
		employeeColumns, where, len(args)-1, len(args),
	)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search employees: %w", err)
	}
	defer rows.Close()

	var profiles []employee.Profile
	for rows.Next() {
		profile, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan employee: %w", err)
		}
		profiles = append(profiles, profile)
	}

	return profiles, total, rows.Err()
}

func flattenProfile(p employee.Profile) (bank [3]*string, contact [3]*string) {
	if p.BankAccount != nil {
		bank = [3]*string{&p.BankAccount.BankName, &p.BankAccount.AccountHolderName, &p.BankAccount.AccountNumber}
	}
	if p.EmergencyContact != nil {
		contact = [3]*string{&p.EmergencyContact.Name, &p.EmergencyContact.Relation, &p.EmergencyContact.PhoneNumber}
	}
	return bank, contact
}

func scanEmployee(row pgx.Row) (employee.Profile, error) {
	var p employee.Profile
	var bankName, bankHolder, bankNumber *string
	var contactName, contactRelation, contactPhone *string

	err := row.Scan(
		&p.ID, &p.UserID, &p.DepartmentID, &p.FullName, &p.Position, &p.PhoneNumber,
		&p.Address, &p.DOB, &p.HireDate, &p.EmploymentType,
		&bankName, &bankHolder, &bankNumber,
		&contactName, &contactRelation, &contactPhone,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return employee.Profile{}, err
	}

	if bankName != nil {
		p.BankAccount = &employee.BankAccount{
			BankName:          *bankName,
			AccountHolderName: derefOrEmpty(bankHolder),
			AccountNumber:     derefOrEmpty(bankNumber),
		}
	}
	if contactName != nil {
		p.EmergencyContact = &employee.EmergencyContact{
			Name:        *contactName,
			Relation:    derefOrEmpty(contactRelation),
			PhoneNumber: derefOrEmpty(contactPhone),
		}
	}

	return p, nil
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
