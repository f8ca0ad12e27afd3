package update_config

import (
	"context"

	"github.com/abrans2005/cycling-booking/internal/domain"
)

type ConfigService interface {
	Update(ctx context.Context, cfg *domain.AppConfig) (*domain.AppConfig, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
