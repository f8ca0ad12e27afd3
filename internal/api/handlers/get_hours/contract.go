package get_hours

import (
	"context"

	"github.com/abrans2005/cycling-booking/internal/domain"
)

type ConfigProvider interface {
	Current(ctx context.Context) (*domain.AppConfig, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
