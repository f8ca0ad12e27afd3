// Package calendar resolves the studio's opening state for a given date
// from the default window plus dated exceptions.
package calendar

import (
	"time"

	"github.com/abrans2005/cycling-booking/internal/domain"
	"github.com/abrans2005/cycling-booking/pkg/timeofday"
)

// IsOpen reports whether the studio is open on the given date. A date with
// no configured exception is open: the permissive default is deliberate
// and load-bearing, the admin only records deviations.
func IsOpen(cfg domain.BusinessHoursConfig, date string) bool {
	if exc, ok := cfg.Exceptions[date]; ok {
		return exc.IsOpen
	}
	return true
}

// HoursFor returns the open/close window for the given date. An open
// exception inherits missing fields from the default window field by
// field. For a closed date the default window is returned as a harmless
// fallback; callers must check IsOpen first.
func HoursFor(cfg domain.BusinessHoursConfig, date string) domain.BusinessHours {
	exc, ok := cfg.Exceptions[date]
	if !ok || !exc.IsOpen {
		return cfg.Default
	}

	hours := cfg.Default
	if exc.Open != nil {
		hours.Open = *exc.Open
	}
	if exc.Close != nil {
		hours.Close = *exc.Close
	}
	return hours
}

// Slots enumerates the offerable start times inside a window:
// open, open+interval, ... while strictly before close.
func Slots(hours domain.BusinessHours, intervalMinutes int) []timeofday.TimeOfDay {
	if intervalMinutes <= 0 {
		intervalMinutes = domain.DefaultSlotIntervalMin
	}

	slots := make([]timeofday.TimeOfDay, 0)
	for t := hours.Open; t < hours.Close; t += timeofday.TimeOfDay(intervalMinutes) {
		slots = append(slots, t)
	}
	return slots
}

// DayStatus is one entry of the open-status preview shown to members.
type DayStatus struct {
	Date   string
	IsOpen bool
	Hours  domain.BusinessHours
}

// StatusRange returns the opening state for count days starting at from.
func StatusRange(cfg domain.BusinessHoursConfig, from time.Time, count int) []DayStatus {
	result := make([]DayStatus, 0, count)
	for i := 0; i < count; i++ {
		date := domain.DateKey(from.AddDate(0, 0, i))
		result = append(result, DayStatus{
			Date:   date,
			IsOpen: IsOpen(cfg, date),
			Hours:  HoursFor(cfg, date),
		})
	}
	return result
}
