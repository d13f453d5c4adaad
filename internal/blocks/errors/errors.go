package errors

import "errors"

var (
	ErrNotFound = errors.New("availability block not found")

	ErrInvalidID = errors.New("invalid block ID format")
)
