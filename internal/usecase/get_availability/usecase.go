// Package get_availability answers "what can I still book" questions.
// Results are advisory: submission re-checks under the reserve lock.
package get_availability

import (
	"context"
	"fmt"

	"github.com/abrans2005/cycling-booking/internal/calendar"
	"github.com/abrans2005/cycling-booking/internal/catalog"
	"github.com/abrans2005/cycling-booking/internal/domain"
	"github.com/abrans2005/cycling-booking/pkg/timeofday"
)

type Usecase struct {
	schedule Schedule
	config   ConfigProvider
	logger   Logger
}

func New(sched Schedule, config ConfigProvider, logger Logger) *Usecase {
	return &Usecase{schedule: sched, config: config, logger: logger}
}

func (u *Usecase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req == nil || req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if (req.StartTime == nil) != (req.DurationHours == nil) {
		return nil, fmt.Errorf("%w: startTime and durationHours go together", ErrInvalidInput)
	}

	cfg, err := u.config.Current(ctx)
	if err != nil {
		u.logger.Error("get_availability: load config: %v", err)
		return nil, fmt.Errorf("%w: load config: %v", ErrInternal, err)
	}

	dateKey := domain.DateKey(req.Date)
	resp := &Response{Date: dateKey}

	if !calendar.IsOpen(cfg.BusinessHours, dateKey) {
		return resp, nil
	}

	hours := calendar.HoursFor(cfg.BusinessHours, dateKey)
	resp.IsOpen = true
	resp.Open = hours.Open.String()
	resp.Close = hours.Close.String()

	date := domain.DateOnly(req.Date)
	bookings, err := u.schedule.Query(ctx, domain.BookingFilter{Date: &date})
	if err != nil {
		u.logger.Error("get_availability: query bookings: %v", err)
		return nil, fmt.Errorf("%w: query bookings: %v", ErrInternal, err)
	}

	offerable := catalog.Offerable(cfg.Stations)

	if req.StartTime != nil {
		end, err := req.StartTime.AddHours(*req.DurationHours)
		if err != nil {
			return nil, fmt.Errorf("%w: window runs past midnight", ErrInvalidInput)
		}
		resp.Stations = stationsForWindow(cfg, offerable, bookings, *req.StartTime, end)
		return resp, nil
	}

	resp.Slots = slotGrid(offerable, bookings, hours)
	return resp, nil
}

func stationsForWindow(cfg *domain.AppConfig, stations []domain.Station, bookings []*domain.Booking, start, end timeofday.TimeOfDay) []StationAvailability {
	result := make([]StationAvailability, 0, len(stations))
	for _, s := range stations {
		result = append(result, StationAvailability{
			StationID: s.StationID,
			Name:      s.Name,
			ModelName: catalog.ModelName(cfg.Stations, cfg.BikeModels, s.StationID),
			Free:      stationFree(bookings, s.StationID, start, end),
		})
	}
	return result
}

func slotGrid(stations []domain.Station, bookings []*domain.Booking, hours domain.BusinessHours) []SlotAvailability {
	interval := timeofday.TimeOfDay(domain.DefaultSlotIntervalMin)
	slots := calendar.Slots(hours, domain.DefaultSlotIntervalMin)

	grid := make([]SlotAvailability, 0, len(slots))
	for _, slot := range slots {
		end := slot + interval
		if end > hours.Close {
			end = hours.Close
		}

		free := make([]int64, 0, len(stations))
		for _, s := range stations {
			if stationFree(bookings, s.StationID, slot, end) {
				free = append(free, s.StationID)
			}
		}
		grid = append(grid, SlotAvailability{
			Start:        slot.String(),
			End:          end.String(),
			FreeStations: free,
		})
	}
	return grid
}

func stationFree(bookings []*domain.Booking, stationID int64, start, end timeofday.TimeOfDay) bool {
	for _, b := range bookings {
		if b.StationID != stationID || !b.IsActive() {
			continue
		}
		if timeofday.Overlaps(start, end, b.StartTime, b.EndTime) {
			return false
		}
	}
	return true
}
