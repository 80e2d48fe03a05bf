package account

import "errors"

// Repository-level errors
var (
	ErrAccountNotFound = errors.New("account not found")

	ErrUsernameAlreadyExists = errors.New("username already exists")
	ErrEmailAlreadyExists    = errors.New("email already exists")
)

// Service-level (business logic) errors
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrSamePassword       = errors.New("new password cannot be same as current password")

	ErrUnauthorized = errors.New("unauthorized access")
	ErrForbidden    = errors.New("forbidden: insufficient permissions")
	ErrInvalidRole  = errors.New("invalid role")
)
