// Package submit_booking validates a booking request against business
// hours and station status, then reserves the slot atomically.
package submit_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/abrans2005/cycling-booking/internal/calendar"
	"github.com/abrans2005/cycling-booking/internal/catalog"
	"github.com/abrans2005/cycling-booking/internal/domain"
	"github.com/abrans2005/cycling-booking/internal/notify"
	"github.com/abrans2005/cycling-booking/internal/schedule"
)

type Usecase struct {
	schedule Schedule
	config   ConfigProvider
	notifier Notifier
	logger   Logger
}

func New(sched Schedule, config ConfigProvider, notifier Notifier, logger Logger) *Usecase {
	return &Usecase{
		schedule: sched,
		config:   config,
		notifier: notifier,
		logger:   logger,
	}
}

// Execute runs the full submission pipeline. The calendar and station
// checks are advisory reads; the only authoritative conflict check is
// the Reserve call, which re-validates under its own lock.
func (u *Usecase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	endTime, err := req.StartTime.AddHours(req.DurationHours)
	if err != nil {
		return nil, fmt.Errorf("%w: booking runs past midnight", ErrOutsideHours)
	}

	cfg, err := u.config.Current(ctx)
	if err != nil {
		u.logger.Error("submit_booking: load config: %v", err)
		return nil, fmt.Errorf("%w: load config: %v", ErrInternal, err)
	}

	dateKey := domain.DateKey(req.Date)
	if !calendar.IsOpen(cfg.BusinessHours, dateKey) {
		return nil, ErrClosedDay
	}
	hours := calendar.HoursFor(cfg.BusinessHours, dateKey)
	if !hours.Contains(req.StartTime, endTime) {
		return nil, fmt.Errorf("%w: open %s - %s", ErrOutsideHours, hours.Open, hours.Close)
	}

	station := cfg.StationByID(req.StationID)
	if station == nil {
		return nil, ErrStationNotFound
	}
	if !station.IsOfferable() {
		return nil, fmt.Errorf("%w: station %q is %s", ErrStationUnavailable, station.Name, station.Status)
	}

	booking, err := u.schedule.Reserve(ctx, schedule.Candidate{
		RequestID:   req.RequestID,
		Date:        req.Date,
		StationID:   req.StationID,
		StartTime:   req.StartTime,
		EndTime:     endTime,
		MemberName:  strings.TrimSpace(req.MemberName),
		MemberPhone: req.MemberPhone,
		Notes:       req.Notes,
	})
	if err != nil {
		if errors.Is(err, schedule.ErrConflict) {
			return nil, ErrSlotTaken
		}
		u.logger.Error("submit_booking: reserve: %v", err)
		return nil, fmt.Errorf("%w: reserve slot: %v", ErrInternal, err)
	}

	u.logger.Info("submit_booking: booking %s confirmed, station %d on %s %s-%s",
		booking.ID, booking.StationID, booking.Date.Format("2006-01-02"),
		booking.StartTime, booking.EndTime)

	u.notifier.Notify(ctx, notify.BookingEvent{
		Kind:        notify.EventBookingCreated,
		Booking:     booking,
		StationName: station.Name,
		ModelName:   catalog.ModelName(cfg.Stations, cfg.BikeModels, station.StationID),
	})

	return &Response{
		Booking: booking,
		Price:   booking.DurationHours() * cfg.PricePerHour,
	}, nil
}
