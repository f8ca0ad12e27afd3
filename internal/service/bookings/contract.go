package bookings

import (
	"context"

	"github.com/abrans2005/cycling-booking/internal/domain"
	"github.com/abrans2005/cycling-booking/internal/notify"
	"github.com/abrans2005/cycling-booking/internal/schedule"
)

// Schedule is the slice of the schedule store the service needs.
type Schedule interface {
	Get(ctx context.Context, id string) (*domain.Booking, error)
	Cancel(ctx context.Context, id string) (*domain.Booking, error)
	Delete(ctx context.Context, id string) error
	Query(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error)
}

// ConfigProvider hands out the current application config.
type ConfigProvider interface {
	Current(ctx context.Context) (*domain.AppConfig, error)
}

// Notifier pushes booking events; best effort.
type Notifier interface {
	Notify(ctx context.Context, event notify.BookingEvent)
}

// Logger is the leveled printf logger.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

var _ Schedule = (schedule.Store)(nil)
