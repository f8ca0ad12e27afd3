package get_availability

import (
	"time"

	"github.com/abrans2005/cycling-booking/pkg/timeofday"
)

// Request asks for availability on one date. With StartTime and
// DurationHours set the answer is per-station for that exact window;
// without them it is the half-hour slot grid for the whole day.
type Request struct {
	Date          time.Time
	StartTime     *timeofday.TimeOfDay
	DurationHours *float64
}

// StationAvailability is one station's state for the requested window.
type StationAvailability struct {
	StationID int64  `json:"stationId"`
	Name      string `json:"name"`
	ModelName string `json:"modelName"`
	Free      bool   `json:"free"`
}

// SlotAvailability lists the stations free at one grid slot.
type SlotAvailability struct {
	Start        string  `json:"start"`
	End          string  `json:"end"`
	FreeStations []int64 `json:"freeStations"`
}

// Response carries either Stations (exact window) or Slots (grid).
// A closed day yields IsOpen=false and empty collections.
type Response struct {
	Date     string                `json:"date"`
	IsOpen   bool                  `json:"isOpen"`
	Open     string                `json:"open,omitempty"`
	Close    string                `json:"close,omitempty"`
	Stations []StationAvailability `json:"stations,omitempty"`
	Slots    []SlotAvailability    `json:"slots,omitempty"`
}
