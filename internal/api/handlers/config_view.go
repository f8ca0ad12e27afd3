package handlers

import (
	"fmt"
	"time"

	"github.com/abrans2005/cycling-booking/internal/domain"
	"github.com/abrans2005/cycling-booking/pkg/timeofday"
)

// Config wire models. Times travel as "HH:MM" strings; the admin panel
// edits the document as a whole and PUTs it back.

type StationView struct {
	StationID   int64  `json:"stationId"`
	Name        string `json:"name"`
	BikeModelID string `json:"bikeModelId"`
	Status      string `json:"status"`
}

type BikeModelView struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

type HoursExceptionView struct {
	IsOpen bool    `json:"isOpen"`
	Open   *string `json:"open,omitempty"`
	Close  *string `json:"close,omitempty"`
}

type BusinessHoursView struct {
	Open       string                        `json:"open"`
	Close      string                        `json:"close"`
	Exceptions map[string]HoursExceptionView `json:"exceptions,omitempty"`
}

type ConfigView struct {
	PricePerHour  float64           `json:"pricePerHour"`
	Stations      []StationView     `json:"stations"`
	BikeModels    []BikeModelView   `json:"bikeModels"`
	BusinessHours BusinessHoursView `json:"businessHours"`
	NotifyKey     *string           `json:"notifyKey,omitempty"`
	UpdatedAt     string            `json:"updatedAt,omitempty"`
}

// NewConfigView converts a domain config to its wire shape.
func NewConfigView(cfg *domain.AppConfig) *ConfigView {
	view := &ConfigView{
		PricePerHour: cfg.PricePerHour,
		Stations:     make([]StationView, 0, len(cfg.Stations)),
		BikeModels:   make([]BikeModelView, 0, len(cfg.BikeModels)),
		BusinessHours: BusinessHoursView{
			Open:  cfg.BusinessHours.Default.Open.String(),
			Close: cfg.BusinessHours.Default.Close.String(),
		},
		NotifyKey: cfg.NotifyKey,
	}
	if !cfg.UpdatedAt.IsZero() {
		view.UpdatedAt = cfg.UpdatedAt.Format(time.RFC3339)
	}

	for _, s := range cfg.Stations {
		view.Stations = append(view.Stations, StationView{
			StationID:   s.StationID,
			Name:        s.Name,
			BikeModelID: s.BikeModelID,
			Status:      string(s.Status),
		})
	}
	for _, m := range cfg.BikeModels {
		view.BikeModels = append(view.BikeModels, BikeModelView{
			ID:          m.ID,
			Name:        m.Name,
			Description: m.Description,
		})
	}

	if len(cfg.BusinessHours.Exceptions) > 0 {
		view.BusinessHours.Exceptions = make(map[string]HoursExceptionView, len(cfg.BusinessHours.Exceptions))
		for date, exc := range cfg.BusinessHours.Exceptions {
			excView := HoursExceptionView{IsOpen: exc.IsOpen}
			if exc.Open != nil {
				open := exc.Open.String()
				excView.Open = &open
			}
			if exc.Close != nil {
				closeAt := exc.Close.String()
				excView.Close = &closeAt
			}
			view.BusinessHours.Exceptions[date] = excView
		}
	}
	return view
}

// ToDomain parses the wire document back into a domain config.
func (v *ConfigView) ToDomain() (*domain.AppConfig, error) {
	open, err := timeofday.Parse(v.BusinessHours.Open)
	if err != nil {
		return nil, fmt.Errorf("parse open time: %w", err)
	}
	closeAt, err := timeofday.Parse(v.BusinessHours.Close)
	if err != nil {
		return nil, fmt.Errorf("parse close time: %w", err)
	}

	cfg := &domain.AppConfig{
		PricePerHour: v.PricePerHour,
		Stations:     make([]domain.Station, 0, len(v.Stations)),
		BikeModels:   make([]domain.BikeModel, 0, len(v.BikeModels)),
		BusinessHours: domain.BusinessHoursConfig{
			Default: domain.BusinessHours{Open: open, Close: closeAt},
		},
		NotifyKey: v.NotifyKey,
	}

	for _, s := range v.Stations {
		cfg.Stations = append(cfg.Stations, domain.Station{
			StationID:   s.StationID,
			Name:        s.Name,
			BikeModelID: s.BikeModelID,
			Status:      domain.StationStatus(s.Status),
		})
	}
	for _, m := range v.BikeModels {
		cfg.BikeModels = append(cfg.BikeModels, domain.BikeModel{
			ID:          m.ID,
			Name:        m.Name,
			Description: m.Description,
		})
	}

	if len(v.BusinessHours.Exceptions) > 0 {
		cfg.BusinessHours.Exceptions = make(map[string]domain.HoursException, len(v.BusinessHours.Exceptions))
		for date, excView := range v.BusinessHours.Exceptions {
			exc := domain.HoursException{IsOpen: excView.IsOpen}
			if excView.Open != nil {
				parsed, err := timeofday.Parse(*excView.Open)
				if err != nil {
					return nil, fmt.Errorf("parse exception %s open time: %w", date, err)
				}
				exc.Open = &parsed
			}
			if excView.Close != nil {
				parsed, err := timeofday.Parse(*excView.Close)
				if err != nil {
					return nil, fmt.Errorf("parse exception %s close time: %w", date, err)
				}
				exc.Close = &parsed
			}
			cfg.BusinessHours.Exceptions[date] = exc
		}
	}
	return cfg, nil
}
