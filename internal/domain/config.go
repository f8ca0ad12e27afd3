package domain

import "time"

// AppConfig is the studio-wide configuration document. The admin surface
// replaces it wholesale; readers treat every loaded copy as an immutable
// snapshot, so no field-level locking is needed anywhere.
type AppConfig struct {
	PricePerHour  float64             `json:"pricePerHour"`
	Stations      []Station           `json:"stations"`
	BikeModels    []BikeModel         `json:"bikeModels"`
	BusinessHours BusinessHoursConfig `json:"businessHours"`

	// NotifyKey is the ServerChan send key for coach push notifications.
	NotifyKey *string `json:"notifyKey,omitempty"`

	UpdatedAt time.Time `json:"updatedAt"`
}

// StationByID returns the station with the given id, or nil.
func (c *AppConfig) StationByID(stationID int64) *Station {
	for i := range c.Stations {
		if c.Stations[i].StationID == stationID {
			return &c.Stations[i]
		}
	}
	return nil
}

// ModelByID returns the bike model with the given id, or nil.
func (c *AppConfig) ModelByID(modelID string) *BikeModel {
	for i := range c.BikeModels {
		if c.BikeModels[i].ID == modelID {
			return &c.BikeModels[i]
		}
	}
	return nil
}
