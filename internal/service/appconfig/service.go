// Package appconfig serves the studio's configuration document: price,
// station roster, bike models, business hours and the notification key.
// The document is read and replaced as a whole.
package appconfig

import (
	"context"
	"errors"
	"fmt"

	"github.com/abrans2005/cycling-booking/internal/catalog"
	"github.com/abrans2005/cycling-booking/internal/domain"
	storage "github.com/abrans2005/cycling-booking/internal/infra/storage/appconfig"
)

type Service struct {
	storage  Storage
	schedule Schedule
	time     TimeProvider
	logger   Logger
}

func New(store Storage, sched Schedule, timeProvider TimeProvider, logger Logger) *Service {
	return &Service{
		storage:  store,
		schedule: sched,
		time:     timeProvider,
		logger:   logger,
	}
}

// Current returns the active config. A fresh installation with no stored
// document gets the built-in default roster.
func (s *Service) Current(ctx context.Context) (*domain.AppConfig, error) {
	cfg, err := s.storage.Get(ctx)
	if errors.Is(err, storage.ErrConfigNotFound) {
		return domain.DefaultAppConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Current: %v", ErrInternal, err)
	}
	return cfg, nil
}

// NotifyKey returns the current ServerChan send key, nil when pushes
// are off or the config cannot be read.
func (s *Service) NotifyKey(ctx context.Context) *string {
	cfg, err := s.Current(ctx)
	if err != nil {
		s.logger.Warn("appconfig: NotifyKey: %v", err)
		return nil
	}
	return cfg.NotifyKey
}

// Update validates and stores a full replacement document. Stations that
// disappear from the roster are checked against upcoming bookings first.
func (s *Service) Update(ctx context.Context, next *domain.AppConfig) (*domain.AppConfig, error) {
	if err := validateConfig(next); err != nil {
		return nil, err
	}

	current, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.checkRemovedStations(ctx, current, next); err != nil {
		return nil, err
	}

	saved, err := s.storage.Save(ctx, next)
	if err != nil {
		return nil, fmt.Errorf("%w: Update - save config: %v", ErrInternal, err)
	}

	s.logger.Info("appconfig: config replaced, %d stations, %d models, price %.2f/h",
		len(saved.Stations), len(saved.BikeModels), saved.PricePerHour)
	return saved, nil
}

// checkRemovedStations blocks removal of a station that still has an
// active booking dated today or later.
func (s *Service) checkRemovedStations(ctx context.Context, current, next *domain.AppConfig) error {
	removed := make([]int64, 0)
	for _, station := range current.Stations {
		if next.StationByID(station.StationID) == nil {
			removed = append(removed, station.StationID)
		}
	}
	if len(removed) == 0 {
		return nil
	}

	today := s.time.Now()
	from := domain.DateOnly(today)
	for _, stationID := range removed {
		id := stationID
		bookings, err := s.schedule.Query(ctx, domain.BookingFilter{
			From:      &from,
			StationID: &id,
		})
		if err != nil {
			return fmt.Errorf("%w: Update - check station %d: %v", ErrInternal, stationID, err)
		}
		if !catalog.CanDelete(bookings, stationID, today) {
			return fmt.Errorf("%w: station %d", ErrStationInUse, stationID)
		}
	}
	return nil
}
