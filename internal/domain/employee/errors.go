package employee

import "errors"

var (
	ErrEmployeeNotFound     = errors.New("employee not found")
	ErrProfileAlreadyExists = errors.New("employee profile already exists for this user")
)
