package user

import "time"

type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleHR       Role = "HR"
	RoleManager  Role = "MANAGER"
	RoleEmployee Role = "EMPLOYEE"
)

type User struct {
	ID           string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CanReviewLeave checks if the role may approve or reject leave requests.
func (r Role) CanReviewLeave() bool {
	return r == RoleManager || r == RoleHR || r == RoleAdmin
}

// CanManagePolicies checks if the role may administer policies, leave types
// and balances.
func (r Role) CanManagePolicies() bool {
	return r == RoleHR || r == RoleAdmin
}

// PasswordResetToken is a single-use token for the password reset flow.
type PasswordResetToken struct {
	ID        string
	UserID    string
	Token     string
	ExpiresAt time.Time
	UsedAt    *time.Time
	CreatedAt time.Time
}
