package get_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/abrans2005/cycling-booking/internal/api/handlers"
	"github.com/abrans2005/cycling-booking/internal/domain"
	getAvailability "github.com/abrans2005/cycling-booking/internal/usecase/get_availability"
	"github.com/abrans2005/cycling-booking/pkg/timeofday"
)

const (
	msgInvalidDate     = "invalid date, expected YYYY-MM-DD"
	msgInvalidTime     = "invalid start time, expected HH:MM"
	msgInvalidDuration = "invalid duration"
)

type Handler struct {
	useCase AvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase AvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability?date=2026-03-15&startTime=09:00&durationHours=2
//
// startTime and durationHours are optional; without them the response is
// the half-hour slot grid for the whole day.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	date, err := time.Parse(domain.DateFormat, query.Get("date"))
	if err != nil {
		h.logger.Warn("GET /availability - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	req := &getAvailability.Request{Date: date}

	if raw := query.Get("startTime"); raw != "" {
		start, err := timeofday.Parse(raw)
		if err != nil {
			h.logger.Warn("GET /availability - Invalid start time: %v", err)
			handlers.RespondBadRequest(w, msgInvalidTime)
			return
		}
		req.StartTime = &start
	}

	if raw := query.Get("durationHours"); raw != "" {
		hours, err := strconv.ParseFloat(raw, 64)
		if err != nil || hours <= 0 {
			h.logger.Warn("GET /availability - Invalid duration: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidDuration)
			return
		}
		req.DurationHours = &hours
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("GET /availability - Failed: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability - date=%s, open=%t", result.Date, result.IsOpen)
	handlers.RespondJSON(w, http.StatusOK, result)
}
