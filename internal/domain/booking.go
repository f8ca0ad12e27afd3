package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/abrans2005/cycling-booking/pkg/timeofday"
)

// BookingStatus represents the status of a booking.
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking represents a reserved time window on a station.
type Booking struct {
	ID        string
	Date      time.Time // date only, local
	StartTime timeofday.TimeOfDay
	EndTime   timeofday.TimeOfDay
	StationID int64

	MemberName  string
	MemberPhone string
	Notes       *string

	Status BookingStatus

	// RequestID is the client-generated idempotency key, when supplied.
	// A retried submit carrying the same key returns the original booking
	// instead of creating a second one.
	RequestID *string

	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewBookingID generates an identifier for a freshly committed booking.
func NewBookingID() string {
	return uuid.NewString()
}

// IsActive reports whether the booking still occupies its time window.
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// IsCancelled reports whether the booking has been cancelled.
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// DurationHours returns the booked duration in hours; negative only for
// corrupt data, since StartTime < EndTime is enforced at creation.
func (b *Booking) DurationHours() float64 {
	return timeofday.DurationHours(b.StartTime, b.EndTime)
}

// BookingFilter describes a schedule query.
//
// Date selects a single day; From/To select an inclusive range.
// PhoneContains is a substring match on the member phone. Cancelled
// bookings are excluded unless IncludeCancelled is set or Status asks for
// them explicitly.
type BookingFilter struct {
	Date             *time.Time
	From             *time.Time
	To               *time.Time
	StationID        *int64
	PhoneContains    *string
	Status           *BookingStatus
	IncludeCancelled bool

	// NewestFirst orders by (date desc, start desc) for admin views;
	// default ordering is (date asc, start asc).
	NewestFirst bool
}
