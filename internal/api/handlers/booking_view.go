package handlers

import (
	"time"

	"github.com/abrans2005/cycling-booking/internal/domain"
)

// BookingView is the wire shape of a booking, shared by every handler
// that returns one.
type BookingView struct {
	ID            string  `json:"id"`
	Date          string  `json:"date"`
	StartTime     string  `json:"startTime"`
	EndTime       string  `json:"endTime"`
	DurationHours float64 `json:"durationHours"`
	StationID     int64   `json:"stationId"`
	MemberName    string  `json:"memberName"`
	MemberPhone   string  `json:"memberPhone"`
	Notes         *string `json:"notes,omitempty"`
	Status        string  `json:"status"`
	CancelledAt   *string `json:"cancelledAt,omitempty"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

// NewBookingView converts a domain booking to its wire shape.
func NewBookingView(b *domain.Booking) BookingView {
	view := BookingView{
		ID:            b.ID,
		Date:          b.Date.Format(domain.DateFormat),
		StartTime:     b.StartTime.String(),
		EndTime:       b.EndTime.String(),
		DurationHours: b.DurationHours(),
		StationID:     b.StationID,
		MemberName:    b.MemberName,
		MemberPhone:   b.MemberPhone,
		Notes:         b.Notes,
		Status:        string(b.Status),
		CreatedAt:     b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     b.UpdatedAt.Format(time.RFC3339),
	}
	if b.CancelledAt != nil {
		cancelled := b.CancelledAt.Format(time.RFC3339)
		view.CancelledAt = &cancelled
	}
	return view
}

// NewBookingViews converts a booking list.
func NewBookingViews(bookings []*domain.Booking) []BookingView {
	views := make([]BookingView, 0, len(bookings))
	for _, b := range bookings {
		views = append(views, NewBookingView(b))
	}
	return views
}
