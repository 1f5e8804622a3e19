package handler

import (
	"net/http"

	"strikex/internal/model"
	"strikex/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// CatalogHandler handles product browsing HTTP requests.
type CatalogHandler struct {
	service service.CatalogService
	logger  zerolog.Logger
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(service service.CatalogService, logger zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		logger:  logger.With().Str("handler", "catalog").Logger(),
	}
}

// ByCategory handles GET /api/v1/products/{category} requests.
func (h *CatalogHandler) ByCategory(w http.ResponseWriter, r *http.Request) {
	views, err := h.service.ByCategory(r.Context(), chi.URLParam(r, "category"))
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, views)
}

// Search handles GET /api/v1/search?q= requests.
func (h *CatalogHandler) Search(w http.ResponseWriter, r *http.Request) {
	views, err := h.service.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, views)
}

// GetProduct handles GET /api/v1/product/{id} requests.
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err, h.logger)
		return
	}
	if view == nil {
		writeError(w, http.StatusNotFound, model.ErrCodeProductNotFound, "Product not found", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, view)
}
