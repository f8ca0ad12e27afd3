package create_booking

import (
	"errors"
	"net/http"

	"github.com/abrans2005/cycling-booking/internal/api/handlers"
	submitBooking "github.com/abrans2005/cycling-booking/internal/usecase/submit_booking"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidDateTime    = "invalid date or time, expected YYYY-MM-DD and HH:MM"
	msgSlotTaken          = "the selected time slot is already booked"
	msgClosedDay          = "the studio is closed on the selected day"
	msgOutsideHours       = "the selected time is outside business hours"
	msgStationNotFound    = "station not found"
	msgStationUnavailable = "the selected station is not available"
)

type Handler struct {
	useCase SubmitBookingUseCase
	logger  Logger
}

func NewHandler(useCase SubmitBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, submitBooking.ErrSlotTaken):
			h.logger.Warn("POST /bookings - Slot taken: station_id=%d, date=%s, start=%s",
				req.StationID, req.Date, req.StartTime)
			handlers.RespondConflict(w, msgSlotTaken)

		case errors.Is(err, submitBooking.ErrClosedDay):
			h.logger.Warn("POST /bookings - Closed day: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgClosedDay)

		case errors.Is(err, submitBooking.ErrOutsideHours):
			h.logger.Warn("POST /bookings - Outside hours: date=%s, start=%s", req.Date, req.StartTime)
			handlers.RespondBadRequest(w, msgOutsideHours)

		case errors.Is(err, submitBooking.ErrStationNotFound):
			h.logger.Warn("POST /bookings - Station not found: station_id=%d", req.StationID)
			handlers.RespondNotFound(w, msgStationNotFound)

		case errors.Is(err, submitBooking.ErrStationUnavailable):
			h.logger.Warn("POST /bookings - Station unavailable: station_id=%d", req.StationID)
			handlers.RespondConflict(w, msgStationUnavailable)

		case errors.Is(err, submitBooking.ErrInvalidInput),
			errors.Is(err, submitBooking.ErrInvalidDuration):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /bookings - Failed to create booking: station_id=%d, error=%v",
				req.StationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%s, station_id=%d, date=%s",
		result.Booking.ID, req.StationID, req.Date)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
