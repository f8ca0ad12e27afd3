package list_bookings

import (
	"net/http"
	"strconv"
	"time"

	"github.com/abrans2005/cycling-booking/internal/api/handlers"
	"github.com/abrans2005/cycling-booking/internal/domain"
)

const (
	msgInvalidDate      = "invalid date, expected YYYY-MM-DD"
	msgInvalidStationID = "invalid station id"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/bookings
//
// Optional filters: date, from, to, stationId, phone (substring),
// includeCancelled. Admin-only because the phone filter matches
// substrings.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := domain.BookingFilter{
		IncludeCancelled: query.Get("includeCancelled") == "true",
		NewestFirst:      true,
	}

	for key, target := range map[string]**time.Time{
		"date": &filter.Date,
		"from": &filter.From,
		"to":   &filter.To,
	} {
		raw := query.Get(key)
		if raw == "" {
			continue
		}
		parsed, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /admin/bookings - Invalid %s: %v", key, err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		*target = &parsed
	}

	if raw := query.Get("stationId"); raw != "" {
		stationID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || stationID <= 0 {
			h.logger.Warn("GET /admin/bookings - Invalid station id: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidStationID)
			return
		}
		filter.StationID = &stationID
	}

	if raw := query.Get("phone"); raw != "" {
		filter.PhoneContains = &raw
	}

	result, err := h.service.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("GET /admin/bookings - Failed to list: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/bookings - Listed %d bookings", len(result))
	handlers.RespondJSON(w, http.StatusOK, handlers.NewBookingViews(result))
}
