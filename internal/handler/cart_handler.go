package handler

import (
	"net/http"

	"strikex/internal/model"
	"strikex/internal/service"
	"strikex/internal/session"

	"github.com/rs/zerolog"
)

// CartHandler handles cart-related HTTP requests.
type CartHandler struct {
	service service.CartService
	logger  zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(service service.CartService, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		logger:  logger.With().Str("handler", "cart").Logger(),
	}
}

// requireSession returns the request session, failing the request when the
// middleware did not attach one.
func requireSession(w http.ResponseWriter, r *http.Request, logger zerolog.Logger) *session.Session {
	sess := session.FromContext(r.Context())
	if sess == nil {
		writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError, "Session unavailable", logger)
		return nil
	}
	return sess
}

// Create handles POST /api/v1/cart/create requests.
func (h *CartHandler) Create(w http.ResponseWriter, r *http.Request) {
	sess := requireSession(w, r, h.logger)
	if sess == nil {
		return
	}

	cart, err := h.service.GetOrCreate(r.Context(), sess.Owner())
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, cart)
}

// Add handles POST /api/v1/cart/add requests.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	sess := requireSession(w, r, h.logger)
	if sess == nil {
		return
	}

	var req model.AddItemRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err, h.logger)
		return
	}
	if req.ProductID == "" {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidation, "productId is required", h.logger)
		return
	}

	cart, err := h.service.AddItem(r.Context(), sess.Owner(), req.ProductID, req.Quantity)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, cart)
}

// Remove handles POST /api/v1/cart/remove requests.
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	sess := requireSession(w, r, h.logger)
	if sess == nil {
		return
	}

	var req model.RemoveItemRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err, h.logger)
		return
	}
	if req.ProductID == "" {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidation, "productId is required", h.logger)
		return
	}

	cart, err := h.service.RemoveItem(r.Context(), sess.Owner(), req.ProductID)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, cart)
}

// View handles GET /api/v1/cart/view requests.
func (h *CartHandler) View(w http.ResponseWriter, r *http.Request) {
	sess := requireSession(w, r, h.logger)
	if sess == nil {
		return
	}

	cart, err := h.service.View(r.Context(), sess.Owner())
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, cart)
}

// Summary handles GET /api/v1/cart/summary requests. It always succeeds so
// the header badge can render on every page.
func (h *CartHandler) Summary(w http.ResponseWriter, r *http.Request) {
	sess := requireSession(w, r, h.logger)
	if sess == nil {
		return
	}

	writeJSON(w, http.StatusOK, h.service.Summarize(r.Context(), sess.Owner()))
}
