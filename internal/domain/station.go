package domain

// StationStatus is the operational state of a bike station.
type StationStatus string

const (
	StationAvailable   StationStatus = "available"
	StationMaintenance StationStatus = "maintenance"
	StationDisabled    StationStatus = "disabled"
)

// Valid reports whether s is one of the known statuses.
func (s StationStatus) Valid() bool {
	switch s {
	case StationAvailable, StationMaintenance, StationDisabled:
		return true
	}
	return false
}

// BikeModel is immutable reference data describing the hardware a station
// is equipped with.
type BikeModel struct {
	ID          string  `json:"id"` // unique slug, e.g. "stages-bike"
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// Station is a physical bookable bike unit. Only available stations are
// offerable for new bookings; maintenance and disabled stations keep their
// historical bookings valid.
type Station struct {
	StationID   int64         `json:"stationId"`
	Name        string        `json:"name"`
	BikeModelID string        `json:"bikeModelId"`
	Status      StationStatus `json:"status"`
}

// IsOfferable reports whether new bookings may target this station.
func (s *Station) IsOfferable() bool {
	return s.Status == StationAvailable
}
