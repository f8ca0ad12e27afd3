package domain

import (
	"fmt"
	"time"

	"github.com/abrans2005/cycling-booking/pkg/timeofday"
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Default studio configuration, applied when no AppConfig document exists
// yet.
const (
	DefaultPricePerHour    = 100.0
	DefaultSlotIntervalMin = 30
)

// Default business hours: 06:00-22:00.
var DefaultBusinessHours = BusinessHours{
	Open:  timeofday.TimeOfDay(6 * 60),
	Close: timeofday.TimeOfDay(22 * 60),
}

// Business validation constants
const (
	MinDurationHours = 0.5
	MaxDurationHours = 8.0
	MaxNotesLength   = 500
	MaxNameLength    = 50
)

// DateKey formats a timestamp as the schedule partition key "YYYY-MM-DD".
func DateKey(t time.Time) string {
	return t.Format(DateFormat)
}

// DateOnly truncates a timestamp to midnight, preserving the location.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether two timestamps fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// DefaultAppConfig returns the built-in configuration used before the
// admin has saved one: four available stations on the stages model, the
// default hours and price.
func DefaultAppConfig() *AppConfig {
	models := []BikeModel{
		{ID: "stages-bike", Name: "Stages bike"},
		{ID: "neo-bike", Name: "Neo bike"},
	}
	stations := make([]Station, 0, 4)
	for i := int64(1); i <= 4; i++ {
		stations = append(stations, Station{
			StationID:   i,
			Name:        formatStationName(i),
			BikeModelID: models[0].ID,
			Status:      StationAvailable,
		})
	}
	return &AppConfig{
		PricePerHour: DefaultPricePerHour,
		Stations:     stations,
		BikeModels:   models,
		BusinessHours: BusinessHoursConfig{
			Default:    DefaultBusinessHours,
			Exceptions: map[string]HoursException{},
		},
	}
}

func formatStationName(id int64) string {
	return fmt.Sprintf("Station %d", id)
}
