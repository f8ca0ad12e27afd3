package domain

import "github.com/abrans2005/cycling-booking/pkg/timeofday"

// BusinessHours is a single open/close window; invariant Open < Close.
type BusinessHours struct {
	Open  timeofday.TimeOfDay `json:"open"`
	Close timeofday.TimeOfDay `json:"close"`
}

// Valid reports whether the window is well-formed.
func (h BusinessHours) Valid() bool {
	return h.Open < h.Close
}

// Contains reports whether [start, end) lies fully inside the window.
func (h BusinessHours) Contains(start, end timeofday.TimeOfDay) bool {
	return start >= h.Open && end <= h.Close
}

// HoursException overrides the default window for one date. IsOpen=false
// closes the studio for the day regardless of hours; IsOpen=true with nil
// Open/Close inherits the default field by field.
type HoursException struct {
	IsOpen bool                 `json:"isOpen"`
	Open   *timeofday.TimeOfDay `json:"open,omitempty"`
	Close  *timeofday.TimeOfDay `json:"close,omitempty"`
}

// BusinessHoursConfig is the studio calendar: one default window plus
// dated exceptions keyed by "YYYY-MM-DD".
type BusinessHoursConfig struct {
	Default    BusinessHours             `json:"default"`
	Exceptions map[string]HoursException `json:"exceptions"`
}
