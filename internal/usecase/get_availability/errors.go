package get_availability

import "errors"

var (
	// ErrInvalidInput is returned when the query parameters are malformed.
	ErrInvalidInput = errors.New("get_availability: invalid input")

	// ErrInternal wraps unexpected failures.
	ErrInternal = errors.New("get_availability: internal error")
)
