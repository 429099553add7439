package users

import "errors"

var (
	ErrValidation     = errors.New("invalid user")
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("user with this email already exists")
)
