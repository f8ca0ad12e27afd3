package submit_booking

import (
	"time"

	"github.com/abrans2005/cycling-booking/internal/domain"
	"github.com/abrans2005/cycling-booking/pkg/timeofday"
)

// Request is the validated-at-the-edge booking submission. Date and
// StartTime are already parsed; semantic validation happens here.
type Request struct {
	RequestID     *string
	Date          time.Time
	StartTime     timeofday.TimeOfDay
	DurationHours float64
	StationID     int64
	MemberName    string
	MemberPhone   string
	Notes         *string
}

// Response is the confirmed booking plus the quoted price.
type Response struct {
	Booking *domain.Booking
	Price   float64
}
