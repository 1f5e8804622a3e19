package handler

import (
	"net/http"

	"strikex/internal/service"

	"github.com/rs/zerolog"
)

// AdminHandler handles the staff dashboard HTTP requests.
type AdminHandler struct {
	service service.AdminService
	logger  zerolog.Logger
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(service service.AdminService, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		logger:  logger.With().Str("handler", "admin").Logger(),
	}
}

// Dashboard handles GET /staff/admin requests. The stored role is checked by
// the service, not the session copy.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r, h.logger)
	if !ok {
		return
	}

	dash, err := h.service.Dashboard(r.Context(), userID)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, dash)
}
