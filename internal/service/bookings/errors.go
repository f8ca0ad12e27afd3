package bookings

import "errors"

var (
	// ErrNotFound is returned when the booking does not exist.
	ErrNotFound = errors.New("bookings.service: booking not found")

	// ErrInvalidRange is returned when a report range is malformed.
	ErrInvalidRange = errors.New("bookings.service: invalid date range")

	// ErrInternal wraps unexpected failures.
	ErrInternal = errors.New("bookings.service: internal error")
)
