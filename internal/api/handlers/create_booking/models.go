package create_booking

import (
	"time"

	"github.com/abrans2005/cycling-booking/internal/api/handlers"
	"github.com/abrans2005/cycling-booking/internal/domain"
	submitBooking "github.com/abrans2005/cycling-booking/internal/usecase/submit_booking"
	"github.com/abrans2005/cycling-booking/pkg/timeofday"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	RequestID     *string `json:"requestId,omitempty"`
	Date          string  `json:"date"`      // "2026-03-15"
	StartTime     string  `json:"startTime"` // "09:00"
	DurationHours float64 `json:"durationHours"`
	StationID     int64   `json:"stationId"`
	MemberName    string  `json:"memberName"`
	MemberPhone   string  `json:"memberPhone"`
	Notes         *string `json:"notes,omitempty"`
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	Booking handlers.BookingView `json:"booking"`
	Price   float64              `json:"price"`
}

// ToUseCaseRequest parses the date and time fields.
func (r *CreateBookingRequest) ToUseCaseRequest() (*submitBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := timeofday.Parse(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &submitBooking.Request{
		RequestID:     r.RequestID,
		Date:          date,
		StartTime:     startTime,
		DurationHours: r.DurationHours,
		StationID:     r.StationID,
		MemberName:    r.MemberName,
		MemberPhone:   r.MemberPhone,
		Notes:         r.Notes,
	}, nil
}

// FromUseCaseResponse converts the usecase result to the HTTP response.
func FromUseCaseResponse(resp *submitBooking.Response) *CreateBookingResponse {
	return &CreateBookingResponse{
		Booking: handlers.NewBookingView(resp.Booking),
		Price:   resp.Price,
	}
}
