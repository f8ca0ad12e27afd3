package get_bookings

import (
	"context"

	"github.com/abrans2005/cycling-booking/internal/domain"
)

type BookingService interface {
	ListByPhone(ctx context.Context, phone string) ([]*domain.Booking, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
