// Package notify defines the booking event surface. Delivery is best
// effort: a failed push never fails the booking that triggered it.
package notify

import (
	"context"

	"github.com/abrans2005/cycling-booking/internal/domain"
)

// Event names pushed to the operator channel.
const (
	EventBookingCreated   = "booking.created"
	EventBookingCancelled = "booking.cancelled"
)

// BookingEvent carries the facts an operator wants to see on their phone.
type BookingEvent struct {
	Kind        string
	Booking     *domain.Booking
	StationName string
	ModelName   string
}

// Notifier delivers booking events. Implementations must not block the
// caller beyond their own context deadline and must swallow transport
// failures after logging them.
type Notifier interface {
	Notify(ctx context.Context, event BookingEvent)
}

// Noop is the Notifier used when no push channel is configured.
type Noop struct{}

func (Noop) Notify(ctx context.Context, event BookingEvent) {}
