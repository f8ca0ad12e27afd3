package appconfig

import (
	"context"
	"time"

	"github.com/abrans2005/cycling-booking/internal/domain"
)

// Storage persists the config document.
type Storage interface {
	Get(ctx context.Context) (*domain.AppConfig, error)
	Save(ctx context.Context, cfg *domain.AppConfig) (*domain.AppConfig, error)
}

// Schedule is the read-side slice used by the station-removal guard.
type Schedule interface {
	Query(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error)
}

// TimeProvider abstracts the clock for tests.
type TimeProvider interface {
	Now() time.Time
}

// Logger is the leveled printf logger.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider is the production clock.
type RealTimeProvider struct{}

func (RealTimeProvider) Now() time.Time {
	return time.Now()
}
