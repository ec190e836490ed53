package employee

import (
	"time"
)

type EmploymentType string

const (
	EmploymentTypePermanent EmploymentType = "permanent"
	EmploymentTypeProbation EmploymentType = "probation"
	EmploymentTypeContract  EmploymentType = "contract"
)

// Profile is the HR master record for an employee.
type Profile struct {
	ID             string
	UserID         string
	DepartmentID   *string
	FullName       string
	Position       *string
	PhoneNumber    *string
	Address        *string
	DOB            *time.Time
	HireDate       time.Time
	EmploymentType EmploymentType
	CreatedAt      time.Time
	UpdatedAt      time.Time

	BankAccount      *BankAccount
	EmergencyContact *EmergencyContact
}

type BankAccount struct {
	BankName          string
	AccountHolderName string
	AccountNumber     string
}

type EmergencyContact struct {
	Name        string
	Relation    string
	PhoneNumber string
}

// DirectoryFilter narrows a directory search. Zero values mean "no filter".
type DirectoryFilter struct {
	Name         string
	DepartmentID string
	Limit        int
	Offset       int
}
