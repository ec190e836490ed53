package user

import "errors"

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrEmailExists           = errors.New("email already registered")
	ErrManagerAccessRequired = errors.New("manager access required")
	ErrHRAccessRequired      = errors.New("HR access required")
	ErrResetTokenNotFound    = errors.New("password reset token not found")
	ErrResetTokenExpired     = errors.New("password reset token expired or already used")
)
