package get_revenue

import (
	"context"
	"time"

	"github.com/abrans2005/cycling-booking/internal/service/bookings/models"
)

type BookingService interface {
	Revenue(ctx context.Context, from, to time.Time) (*models.RevenueReport, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
