package schedule

import (
	"strings"

	"github.com/abrans2005/cycling-booking/internal/domain"
	"github.com/abrans2005/cycling-booking/pkg/timeofday"
)

// hasOverlap reports whether any active booking in the list intersects
// [start, end), skipping the booking with excludeID when non-empty.
// Intervals are half-open: a booking ending exactly at start (or starting
// exactly at end) does not conflict.
func hasOverlap(bookings []*domain.Booking, start, end timeofday.TimeOfDay, excludeID string) bool {
	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		if excludeID != "" && b.ID == excludeID {
			continue
		}
		if timeofday.Overlaps(start, end, b.StartTime, b.EndTime) {
			return true
		}
	}
	return false
}

// matchesFilter applies the non-partition parts of a BookingFilter to a
// single booking.
func matchesFilter(b *domain.Booking, f domain.BookingFilter) bool {
	if f.Date != nil && !domain.SameDay(b.Date, *f.Date) {
		return false
	}
	if f.From != nil && domain.DateOnly(b.Date).Before(domain.DateOnly(*f.From)) {
		return false
	}
	if f.To != nil && domain.DateOnly(b.Date).After(domain.DateOnly(*f.To)) {
		return false
	}
	if f.StationID != nil && b.StationID != *f.StationID {
		return false
	}
	if f.PhoneContains != nil && !strings.Contains(b.MemberPhone, *f.PhoneContains) {
		return false
	}
	if f.Status != nil {
		return b.Status == *f.Status
	}
	if !f.IncludeCancelled && b.IsCancelled() {
		return false
	}
	return true
}
