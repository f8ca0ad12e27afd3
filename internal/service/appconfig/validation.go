package appconfig

import (
	"fmt"
	"time"

	"github.com/abrans2005/cycling-booking/internal/domain"
)

func validateConfig(cfg *domain.AppConfig) error {
	if cfg == nil {
		return fmt.Errorf("%w: document is nil", ErrInvalidConfig)
	}

	if cfg.PricePerHour < 0 {
		return fmt.Errorf("%w: price per hour must not be negative", ErrInvalidConfig)
	}

	if err := validateModels(cfg.BikeModels); err != nil {
		return err
	}
	if err := validateStations(cfg); err != nil {
		return err
	}
	return validateHours(cfg.BusinessHours)
}

func validateModels(models []domain.BikeModel) error {
	seen := make(map[string]struct{}, len(models))
	for _, m := range models {
		if m.ID == "" {
			return fmt.Errorf("%w: bike model id is required", ErrInvalidConfig)
		}
		if m.Name == "" {
			return fmt.Errorf("%w: bike model %q has no name", ErrInvalidConfig, m.ID)
		}
		if _, dup := seen[m.ID]; dup {
			return fmt.Errorf("%w: duplicate bike model id %q", ErrInvalidConfig, m.ID)
		}
		seen[m.ID] = struct{}{}
	}
	return nil
}

func validateStations(cfg *domain.AppConfig) error {
	seen := make(map[int64]struct{}, len(cfg.Stations))
	for _, s := range cfg.Stations {
		if s.StationID <= 0 {
			return fmt.Errorf("%w: station id must be positive", ErrInvalidConfig)
		}
		if _, dup := seen[s.StationID]; dup {
			return fmt.Errorf("%w: duplicate station id %d", ErrInvalidConfig, s.StationID)
		}
		seen[s.StationID] = struct{}{}

		if s.Name == "" {
			return fmt.Errorf("%w: station %d has no name", ErrInvalidConfig, s.StationID)
		}
		if !s.Status.Valid() {
			return fmt.Errorf("%w: station %d has unknown status %q", ErrInvalidConfig, s.StationID, s.Status)
		}
		if cfg.ModelByID(s.BikeModelID) == nil {
			return fmt.Errorf("%w: station %d references unknown bike model %q", ErrInvalidConfig, s.StationID, s.BikeModelID)
		}
	}
	return nil
}

func validateHours(hours domain.BusinessHoursConfig) error {
	if !hours.Default.Valid() {
		return fmt.Errorf("%w: default hours must open before they close", ErrInvalidConfig)
	}

	for date, exc := range hours.Exceptions {
		if _, err := time.Parse(domain.DateFormat, date); err != nil {
			return fmt.Errorf("%w: exception date %q is not YYYY-MM-DD", ErrInvalidConfig, date)
		}
		if !exc.IsOpen {
			continue
		}

		// An open exception inherits missing bounds from the default;
		// validate the effective window.
		window := hours.Default
		if exc.Open != nil {
			window.Open = *exc.Open
		}
		if exc.Close != nil {
			window.Close = *exc.Close
		}
		if !window.Valid() {
			return fmt.Errorf("%w: exception %s must open before it closes", ErrInvalidConfig, date)
		}
	}
	return nil
}
