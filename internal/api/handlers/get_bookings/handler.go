package get_bookings

import (
	"net/http"
	"regexp"

	"github.com/abrans2005/cycling-booking/internal/api/handlers"
)

const msgInvalidPhone = "a valid phone number is required"

var phoneRegexp = regexp.MustCompile(`^1[3-9]\d{9}$`)

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

// Handle GET /api/v1/bookings?phone=13800138000
//
// Members identify themselves by their full phone number; a partial
// match would leak other members' bookings, so the format is enforced
// here before the lookup.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	phone := r.URL.Query().Get("phone")
	if !phoneRegexp.MatchString(phone) {
		h.logger.Warn("GET /bookings - Invalid phone query")
		handlers.RespondBadRequest(w, msgInvalidPhone)
		return
	}

	result, err := h.service.ListByPhone(r.Context(), phone)
	if err != nil {
		h.logger.Error("GET /bookings - Failed to list bookings: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /bookings - Listed %d bookings", len(result))
	handlers.RespondJSON(w, http.StatusOK, handlers.NewBookingViews(result))
}
