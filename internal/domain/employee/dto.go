package employee

import (
	"time"

	"github.com/hrcore/hr-backend-go/internal/pkg/validator"
)

type UpsertProfileRequest struct {
	UserID         string  `json:"-"`
	DepartmentID   *string `json:"department_id"`
	FullName       string  `json:"full_name"`
	Position       *string `json:"position"`
	PhoneNumber    *string `json:"phone_number"`
	Address        *string `json:"address"`
	DOB            *string `json:"dob"`
	HireDate       string  `json:"hire_date"`
	EmploymentType string  `json:"employment_type"`

	BankAccount      *BankAccount      `json:"bank_account"`
	EmergencyContact *EmergencyContact `json:"emergency_contact"`
}

func (r *UpsertProfileRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name is required",
		})
	}

	if _, ok := validator.IsValidDate(r.HireDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "hire_date",
			Message: "hire_date must be in YYYY-MM-DD format",
		})
	}

	if r.DOB != nil {
		if _, ok := validator.IsValidDate(*r.DOB); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "dob",
				Message: "dob must be in YYYY-MM-DD format",
			})
		}
	}

	switch EmploymentType(r.EmploymentType) {
	case EmploymentTypePermanent, EmploymentTypeProbation, EmploymentTypeContract:
	default:
		errs = append(errs, validator.ValidationError{
			Field:   "employment_type",
			Message: "employment_type must be permanent, probation or contract",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ProfileResponse struct {
	ID             string            `json:"id"`
	UserID         string            `json:"user_id"`
	DepartmentID   *string           `json:"department_id,omitempty"`
	FullName       string            `json:"full_name"`
	Position       *string           `json:"position,omitempty"`
	PhoneNumber    *string           `json:"phone_number,omitempty"`
	Address        *string           `json:"address,omitempty"`
	DOB            *time.Time        `json:"dob,omitempty"`
	HireDate       string            `json:"hire_date"`
	EmploymentType EmploymentType    `json:"employment_type"`
	BankAccount    *BankAccount      `json:"bank_account,omitempty"`
	Emergency      *EmergencyContact `json:"emergency_contact,omitempty"`
}

func NewProfileResponse(p Profile) ProfileResponse {
	return ProfileResponse{
		ID:             p.ID,
		UserID:         p.UserID,
		DepartmentID:   p.DepartmentID,
		FullName:       p.FullName,
		Position:       p.Position,
		PhoneNumber:    p.PhoneNumber,
		Address:        p.Address,
		DOB:            p.DOB,
		HireDate:       p.HireDate.Format("2006-01-02"),
		EmploymentType: p.EmploymentType,
		BankAccount:    p.BankAccount,
		Emergency:      p.EmergencyContact,
	}
}

// SummaryResponse is the directory listing shape: no bank or contact details.
type SummaryResponse struct {
	ID           string  `json:"id"`
	FullName     string  `json:"full_name"`
	DepartmentID *string `json:"department_id,omitempty"`
	Position     *string `json:"position,omitempty"`
}

func NewSummaryResponse(p Profile) SummaryResponse {
	return SummaryResponse{
		ID:           p.ID,
		FullName:     p.FullName,
		DepartmentID: p.DepartmentID,
		Position:     p.Position,
	}
}
