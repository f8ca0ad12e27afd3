// Package catalog answers read-side questions about the station roster:
// which stations are offerable, what hardware they carry and whether a
// station can be removed.
package catalog

import (
	"time"

	"github.com/abrans2005/cycling-booking/internal/domain"
)

// UnknownModelName is the placeholder shown when a station or its model
// reference is missing; the read path never fails on bad reference data.
const UnknownModelName = "unknown model"

// Offerable filters the roster down to stations accepting new bookings,
// preserving configuration order.
func Offerable(stations []domain.Station) []domain.Station {
	result := make([]domain.Station, 0, len(stations))
	for _, s := range stations {
		if s.IsOfferable() {
			result = append(result, s)
		}
	}
	return result
}

// ModelName resolves the display name of the bike model mounted on a
// station, falling back to UnknownModelName when either side of the
// reference is missing.
func ModelName(stations []domain.Station, models []domain.BikeModel, stationID int64) string {
	var modelID string
	for _, s := range stations {
		if s.StationID == stationID {
			modelID = s.BikeModelID
			break
		}
	}
	if modelID == "" {
		return UnknownModelName
	}

	for _, m := range models {
		if m.ID == modelID {
			return m.Name
		}
	}
	return UnknownModelName
}

// CanDelete reports whether a station may be removed from the roster: it
// must have no booking dated today or later that is still active.
// Historical and cancelled bookings never block deletion.
func CanDelete(bookings []*domain.Booking, stationID int64, today time.Time) bool {
	cutoff := domain.DateOnly(today)
	for _, b := range bookings {
		if b.StationID != stationID || b.IsCancelled() {
			continue
		}
		if !domain.DateOnly(b.Date).Before(cutoff) {
			return false
		}
	}
	return true
}

// ModelInUse reports whether any station references the given bike model.
// Models are deleted only when unreferenced.
func ModelInUse(stations []domain.Station, modelID string) bool {
	for _, s := range stations {
		if s.BikeModelID == modelID {
			return true
		}
	}
	return false
}
