// Package schedule owns the authoritative reservation list. It is the
// only place allowed to decide whether a candidate reservation commits:
// callers may pre-check availability for UX, but the race-free check lives
// inside Reserve.
package schedule

import (
	"context"
	"errors"
	"time"

	"github.com/abrans2005/cycling-booking/internal/domain"
	"github.com/abrans2005/cycling-booking/pkg/timeofday"
)

var (
	// ErrConflict is returned when the candidate window overlaps an
	// active booking on the same station and date. It is a normal
	// business outcome, distinguished from validation failures.
	ErrConflict = errors.New("schedule: time slot already booked")

	// ErrNotFound is returned when the referenced booking does not exist.
	ErrNotFound = errors.New("schedule: booking not found")
)

// Candidate is a reservation request already validated by the booking
// service: the window is well-formed and inside business hours, the
// station is offerable.
type Candidate struct {
	RequestID   *string // optional idempotency key
	Date        time.Time
	StationID   int64
	StartTime   timeofday.TimeOfDay
	EndTime     timeofday.TimeOfDay
	MemberName  string
	MemberPhone string
	Notes       *string
}

// Store is the reservation schedule. Implementations must guarantee that
// no two committed bookings for the same station ever have overlapping
// time windows, even under simultaneous Reserve calls; each
// (station, date) pair behaves as a serializable unit.
type Store interface {
	// IsAvailable reports whether [start, end) is free on the station
	// and date, ignoring the booking with excludeID when non-empty.
	// Read-only: the result is a hint and may be stale by commit time.
	IsAvailable(ctx context.Context, stationID int64, date time.Time, start, end timeofday.TimeOfDay, excludeID string) (bool, error)

	// Reserve atomically checks the candidate window and inserts the
	// booking, returning ErrConflict when an active overlapping booking
	// exists at commit time. A candidate carrying an already-seen
	// RequestID returns the originally committed booking.
	Reserve(ctx context.Context, c Candidate) (*domain.Booking, error)

	// Get returns the booking by id, or ErrNotFound.
	Get(ctx context.Context, id string) (*domain.Booking, error)

	// Cancel flips the booking to cancelled. Cancelling an already
	// cancelled booking is not an error: the booking is returned
	// unchanged.
	Cancel(ctx context.Context, id string) (*domain.Booking, error)

	// Delete removes the booking permanently. Administrative cleanup
	// only, decoupled from cancellation.
	Delete(ctx context.Context, id string) error

	// Query returns a snapshot of bookings matching the filter, ordered
	// by (date asc, start asc) or (date desc, start desc) when
	// filter.NewestFirst is set.
	Query(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error)
}
