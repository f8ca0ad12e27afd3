// Package bookings covers the lifecycle of existing bookings: lookup,
// member history, cancellation, administrative deletion and revenue
// reporting. Creation lives in the submit_booking usecase.
package bookings

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/abrans2005/cycling-booking/internal/catalog"
	"github.com/abrans2005/cycling-booking/internal/domain"
	"github.com/abrans2005/cycling-booking/internal/notify"
	"github.com/abrans2005/cycling-booking/internal/schedule"
	"github.com/abrans2005/cycling-booking/internal/service/bookings/models"
)

type Service struct {
	schedule Schedule
	config   ConfigProvider
	notifier Notifier
	logger   Logger
}

func New(sched Schedule, config ConfigProvider, notifier Notifier, logger Logger) *Service {
	return &Service{
		schedule: sched,
		config:   config,
		notifier: notifier,
		logger:   logger,
	}
}

// GetByID returns one booking.
func (s *Service) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	booking, err := s.schedule.Get(ctx, id)
	if err != nil {
		if errors.Is(err, schedule.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: GetByID: %v", ErrInternal, err)
	}
	return booking, nil
}

// List returns bookings matching an administrative filter.
func (s *Service) List(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error) {
	result, err := s.schedule.Query(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: List: %v", ErrInternal, err)
	}
	return result, nil
}

// ListByPhone returns a member's bookings, cancelled included, newest
// first. The phone must match exactly; substring search is admin-only.
func (s *Service) ListByPhone(ctx context.Context, phone string) ([]*domain.Booking, error) {
	result, err := s.schedule.Query(ctx, domain.BookingFilter{
		PhoneContains:    &phone,
		IncludeCancelled: true,
		NewestFirst:      true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: ListByPhone: %v", ErrInternal, err)
	}

	filtered := result[:0]
	for _, b := range result {
		if b.MemberPhone == phone {
			filtered = append(filtered, b)
		}
	}
	return filtered, nil
}

// Cancel marks the booking cancelled. Repeating the call is a no-op and
// the cancellation event is pushed only on the actual transition.
func (s *Service) Cancel(ctx context.Context, id string) (*domain.Booking, error) {
	before, err := s.schedule.Get(ctx, id)
	if err != nil {
		if errors.Is(err, schedule.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: Cancel - get booking: %v", ErrInternal, err)
	}
	wasActive := before.IsActive()

	cancelled, err := s.schedule.Cancel(ctx, id)
	if err != nil {
		if errors.Is(err, schedule.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: Cancel: %v", ErrInternal, err)
	}

	if wasActive {
		s.logger.Info("bookings: booking %s cancelled", id)
		s.notifyCancelled(ctx, cancelled)
	}
	return cancelled, nil
}

// Delete removes the booking permanently. Administrative cleanup; no
// event is pushed.
func (s *Service) Delete(ctx context.Context, id string) error {
	err := s.schedule.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, schedule.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("%w: Delete: %v", ErrInternal, err)
	}
	s.logger.Info("bookings: booking %s deleted", id)
	return nil
}

// Revenue aggregates confirmed bookings over [from, to] inclusive.
func (s *Service) Revenue(ctx context.Context, from, to time.Time) (*models.RevenueReport, error) {
	if from.IsZero() || to.IsZero() || domain.DateOnly(to).Before(domain.DateOnly(from)) {
		return nil, ErrInvalidRange
	}

	cfg, err := s.config.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: Revenue - load config: %v", ErrInternal, err)
	}

	status := domain.StatusConfirmed
	confirmed, err := s.schedule.Query(ctx, domain.BookingFilter{
		From:   &from,
		To:     &to,
		Status: &status,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: Revenue - query bookings: %v", ErrInternal, err)
	}

	perDate := make(map[string]*models.DailyRevenue)
	report := &models.RevenueReport{
		From:         domain.DateKey(from),
		To:           domain.DateKey(to),
		PricePerHour: cfg.PricePerHour,
	}

	for _, b := range confirmed {
		hours := b.DurationHours()
		key := domain.DateKey(b.Date)

		day, ok := perDate[key]
		if !ok {
			day = &models.DailyRevenue{Date: key}
			perDate[key] = day
		}
		day.Hours += hours
		day.Bookings++
		day.Revenue += hours * cfg.PricePerHour

		report.TotalHours += hours
		report.Bookings++
		report.Total += hours * cfg.PricePerHour
	}

	report.PerDate = make([]models.DailyRevenue, 0, len(perDate))
	for _, day := range perDate {
		report.PerDate = append(report.PerDate, *day)
	}
	sort.Slice(report.PerDate, func(i, j int) bool {
		return report.PerDate[i].Date < report.PerDate[j].Date
	})
	return report, nil
}

func (s *Service) notifyCancelled(ctx context.Context, booking *domain.Booking) {
	event := notify.BookingEvent{
		Kind:    notify.EventBookingCancelled,
		Booking: booking,
	}
	if cfg, err := s.config.Current(ctx); err == nil {
		if station := cfg.StationByID(booking.StationID); station != nil {
			event.StationName = station.Name
			event.ModelName = catalog.ModelName(cfg.Stations, cfg.BikeModels, station.StationID)
		}
	}
	s.notifier.Notify(ctx, event)
}
