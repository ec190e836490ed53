package employee

import (
	"context"
	"errors"
	"log/slog"

	"github.com/hrcore/hr-backend-go/internal/domain/employee"
	"github.com/hrcore/hr-backend-go/internal/pkg/validator"
)

// EmployeeService manages HR profiles and the employee directory.
type EmployeeService struct {
	repo   employee.Repository
	logger *slog.Logger
}

func NewEmployeeService(repo employee.Repository, logger *slog.Logger) *EmployeeService {
	return &EmployeeService{repo: repo, logger: logger}
}

// UpsertProfile creates the user's profile on first call and updates it on
// subsequent ones.
func (s *EmployeeService) UpsertProfile(ctx context.Context, req *employee.UpsertProfileRequest) (employee.Profile, error) {
	if err := req.Validate(); err != nil {
		return employee.Profile{}, err
	}

	hireDate, _ := validator.IsValidDate(req.HireDate)
	profile := employee.Profile{
		UserID:           req.UserID,
		DepartmentID:     req.DepartmentID,
		FullName:         req.FullName,
		Position:         req.Position,
		PhoneNumber:      req.PhoneNumber,
		Address:          req.Address,
		HireDate:         hireDate,
		EmploymentType:   employee.EmploymentType(req.EmploymentType),
		BankAccount:      req.BankAccount,
		EmergencyContact: req.EmergencyContact,
	}
	if req.DOB != nil {
		dob, _ := validator.IsValidDate(*req.DOB)
		profile.DOB = &dob
	}

	existing, err := s.repo.GetByUserID(ctx, req.UserID)
	if errors.Is(err, employee.ErrEmployeeNotFound) {
		created, err := s.repo.Create(ctx, profile)
		if err != nil {
			return employee.Profile{}, err
		}
		s.logger.Info("employee profile created",
			slog.String("employee_id", created.ID),
			slog.String("user_id", created.UserID))
		return created, nil
	}
	if err != nil {
		return employee.Profile{}, err
	}

	profile.ID = existing.ID
	if err := s.repo.Update(ctx, profile); err != nil {
		return employee.Profile{}, err
	}
	return profile, nil
}

// ProfileByUserID returns the profile attached to a user account.
func (s *EmployeeService) ProfileByUserID(ctx context.Context, userID string) (employee.Profile, error) {
	return s.repo.GetByUserID(ctx, userID)
}

// ProfileByID returns a profile by its employee id.
func (s *EmployeeService) ProfileByID(ctx context.Context, id string) (employee.Profile, error) {
	return s.repo.GetByID(ctx, id)
}

// Directory searches profiles by name and department with pagination.
func (s *EmployeeService) Directory(ctx context.Context, filter employee.DirectoryFilter) ([]employee.Profile, int64, error) {
	return s.repo.Search(ctx, filter)
}
