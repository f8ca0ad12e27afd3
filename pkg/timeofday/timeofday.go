// Package timeofday provides the wall-clock time primitive used by the
// booking schedule: a minute count since midnight parsed from "HH:MM".
package timeofday

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"math"
	"time"
)

// TimeOfDay is a number of minutes since midnight. Values parsed from
// strings are in [0, 1439]; arithmetic on end times may produce 1440,
// which renders as "24:00" and marks the close of the day.
type TimeOfDay int

const (
	// MinutesPerDay is the upper bound for a TimeOfDay value.
	MinutesPerDay = 24 * 60

	// Format is the canonical string layout.
	Format = "15:04"
)

var (
	// ErrInvalidFormat is returned when the input does not match "HH:MM".
	ErrInvalidFormat = errors.New("timeofday: invalid format, expected HH:MM")

	// ErrOutOfRange is returned when arithmetic leaves the [00:00, 24:00] window.
	ErrOutOfRange = errors.New("timeofday: value out of range")
)

// Parse parses a strict "HH:MM" string. Hours 00..23, minutes 00..59;
// "24:00" is rejected; only arithmetic may produce the close-of-day value.
func Parse(s string) (TimeOfDay, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}

	h, ok1 := twoDigits(s[0], s[1])
	m, ok2 := twoDigits(s[3], s[4])
	if !ok1 || !ok2 || h > 23 || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}

	return TimeOfDay(h*60 + m), nil
}

func twoDigits(a, b byte) (int, bool) {
	if a < '0' || a > '9' || b < '0' || b > '9' {
		return 0, false
	}
	return int(a-'0')*10 + int(b-'0'), true
}

// FromClock truncates a timestamp to its minute of day.
func FromClock(t time.Time) TimeOfDay {
	return TimeOfDay(t.Hour()*60 + t.Minute())
}

// Minutes returns the raw minute count.
func (t TimeOfDay) Minutes() int {
	return int(t)
}

// String renders back to "HH:MM"; 1440 renders as "24:00".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// IsBefore reports t < other.
func (t TimeOfDay) IsBefore(other TimeOfDay) bool {
	return t < other
}

// IsAfter reports t > other.
func (t TimeOfDay) IsAfter(other TimeOfDay) bool {
	return t > other
}

// AddMinutes returns t shifted by the given number of minutes. Fails with
// ErrOutOfRange when the result leaves the [00:00, 24:00] window.
func (t TimeOfDay) AddMinutes(minutes int) (TimeOfDay, error) {
	v := int(t) + minutes
	if v < 0 || v > MinutesPerDay {
		return 0, fmt.Errorf("%w: %s%+d minutes", ErrOutOfRange, t, minutes)
	}
	return TimeOfDay(v), nil
}

// AddHours shifts t by a possibly fractional number of hours, rounding
// half-up to the nearest minute. This is the one canonical rounding rule
// for duration arithmetic in the whole service.
func (t TimeOfDay) AddHours(hours float64) (TimeOfDay, error) {
	return t.AddMinutes(HoursToMinutes(hours))
}

// HoursToMinutes converts a fractional hour count to whole minutes,
// rounding half-up.
func HoursToMinutes(hours float64) int {
	return int(math.Floor(hours*60 + 0.5))
}

// DurationHours returns (end-start)/60. The result is negative when
// end < start: callers validate ordering separately, this helper never
// clamps.
func DurationHours(start, end TimeOfDay) float64 {
	return float64(end-start) / 60
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. A booking ending at 10:00 does not conflict
// with one starting at 10:00.
func Overlaps(aStart, aEnd, bStart, bEnd TimeOfDay) bool {
	return aStart < bEnd && bStart < aEnd
}

// Value implements driver.Valuer; the database stores "HH:MM" text.
func (t TimeOfDay) Value() (driver.Value, error) {
	return t.String(), nil
}

// Scan implements sql.Scanner for TEXT and TIME columns.
func (t *TimeOfDay) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		return t.scanString(v)
	case []byte:
		return t.scanString(string(v))
	case time.Time:
		*t = FromClock(v)
		return nil
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidFormat, src)
	}
}

func (t *TimeOfDay) scanString(s string) error {
	// TIME columns come back as "HH:MM:SS".
	if len(s) > 5 {
		s = s[:5]
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
