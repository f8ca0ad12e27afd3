package get_hours

import (
	"net/http"
	"strconv"
	"time"

	"github.com/abrans2005/cycling-booking/internal/api/handlers"
	"github.com/abrans2005/cycling-booking/internal/calendar"
	"github.com/abrans2005/cycling-booking/internal/domain"
)

const (
	msgInvalidFrom = "invalid from date, expected YYYY-MM-DD"
	msgInvalidDays = "days must be between 1 and 90"

	defaultDays = 14
	maxDays     = 90
)

type Handler struct {
	config ConfigProvider
	logger Logger
}

func NewHandler(config ConfigProvider, logger Logger) *Handler {
	return &Handler{
		config: config,
		logger: logger,
	}
}

// DayHours is one day of the opening preview.
type DayHours struct {
	Date   string `json:"date"`
	IsOpen bool   `json:"isOpen"`
	Open   string `json:"open,omitempty"`
	Close  string `json:"close,omitempty"`
}

// Handle GET /api/v1/config/hours?from=2026-03-15&days=14
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	from := time.Now()
	if raw := query.Get("from"); raw != "" {
		parsed, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /config/hours - Invalid from date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFrom)
			return
		}
		from = parsed
	}

	days := defaultDays
	if raw := query.Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxDays {
			h.logger.Warn("GET /config/hours - Invalid days: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidDays)
			return
		}
		days = parsed
	}

	cfg, err := h.config.Current(r.Context())
	if err != nil {
		h.logger.Error("GET /config/hours - Failed to load config: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	statuses := calendar.StatusRange(cfg.BusinessHours, from, days)
	result := make([]DayHours, 0, len(statuses))
	for _, day := range statuses {
		entry := DayHours{Date: day.Date, IsOpen: day.IsOpen}
		if day.IsOpen {
			entry.Open = day.Hours.Open.String()
			entry.Close = day.Hours.Close.String()
		}
		result = append(result, entry)
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
