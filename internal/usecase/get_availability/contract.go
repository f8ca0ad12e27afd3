package get_availability

import (
	"context"

	"github.com/abrans2005/cycling-booking/internal/domain"
)

// Schedule is the read-side slice of the schedule store.
type Schedule interface {
	Query(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error)
}

// ConfigProvider hands out the current application config.
type ConfigProvider interface {
	Current(ctx context.Context) (*domain.AppConfig, error)
}

// Logger is the leveled printf logger.
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
