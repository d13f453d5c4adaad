package errors

import "errors"

var (
	ErrAdminNotFound = errors.New("admin user not found")

	ErrInvalidID = errors.New("invalid admin ID format")

	ErrCodeNotFound = errors.New("reset code not found")
)
