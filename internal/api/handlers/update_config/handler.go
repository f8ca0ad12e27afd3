package update_config

import (
	"errors"
	"net/http"

	"github.com/abrans2005/cycling-booking/internal/api/handlers"
	"github.com/abrans2005/cycling-booking/internal/service/appconfig"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidTimes       = "invalid time value, expected HH:MM"
	msgStationInUse       = "a removed station still has upcoming bookings"
)

type Handler struct {
	service ConfigService
	logger  Logger
}

func NewHandler(service ConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/admin/config
//
// The body replaces the whole document; partial updates are not
// supported.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req handlers.ConfigView
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/config - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	cfg, err := req.ToDomain()
	if err != nil {
		h.logger.Warn("PUT /admin/config - Failed to parse document: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTimes)
		return
	}

	saved, err := h.service.Update(r.Context(), cfg)
	if err != nil {
		switch {
		case errors.Is(err, appconfig.ErrInvalidConfig):
			h.logger.Warn("PUT /admin/config - Invalid config: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, appconfig.ErrStationInUse):
			h.logger.Warn("PUT /admin/config - Station in use: %v", err)
			handlers.RespondConflict(w, msgStationInUse)

		default:
			h.logger.Error("PUT /admin/config - Failed to update config: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/config - Config updated: %d stations, %d models",
		len(saved.Stations), len(saved.BikeModels))
	handlers.RespondJSON(w, http.StatusOK, handlers.NewConfigView(saved))
}
