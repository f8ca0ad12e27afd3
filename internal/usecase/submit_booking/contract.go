package submit_booking

import (
	"context"

	"github.com/abrans2005/cycling-booking/internal/domain"
	"github.com/abrans2005/cycling-booking/internal/notify"
	"github.com/abrans2005/cycling-booking/internal/schedule"
)

// Schedule is the slice of the schedule store the usecase needs.
type Schedule interface {
	Reserve(ctx context.Context, c schedule.Candidate) (*domain.Booking, error)
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
