package appconfig

import "errors"

var (
	// ErrInvalidConfig is returned when the submitted document fails
	// validation.
	ErrInvalidConfig = errors.New("appconfig.service: invalid config")

	// ErrStationInUse is returned when removing a station that still has
	// upcoming active bookings.
	ErrStationInUse = errors.New("appconfig.service: station has upcoming bookings")

	// ErrInternal wraps unexpected failures.
	ErrInternal = errors.New("appconfig.service: internal error")
)
