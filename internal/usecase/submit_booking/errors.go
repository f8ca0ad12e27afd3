package submit_booking

import "errors"

var (
	// ErrInvalidInput is returned when a required field is missing or malformed.
	ErrInvalidInput = errors.New("submit_booking: invalid input")

	// ErrInvalidDuration is returned when the duration is out of range or
	// not aligned to the half-hour grid.
	ErrInvalidDuration = errors.New("submit_booking: invalid duration")

	// ErrClosedDay is returned when the studio is closed on the requested date.
	ErrClosedDay = errors.New("submit_booking: studio closed on this day")

	// ErrOutsideHours is returned when the requested window falls outside
	// business hours.
	ErrOutsideHours = errors.New("submit_booking: outside business hours")

	// ErrStationNotFound is returned when the station does not exist.
	ErrStationNotFound = errors.New("submit_booking: station not found")

	// ErrStationUnavailable is returned when the station is under
	// maintenance or disabled.
	ErrStationUnavailable = errors.New("submit_booking: station unavailable")

	// ErrSlotTaken is returned when the window overlaps an existing booking.
	ErrSlotTaken = errors.New("submit_booking: time slot already taken")

	// ErrInternal wraps unexpected failures.
	ErrInternal = errors.New("submit_booking: internal error")
)
