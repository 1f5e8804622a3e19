package handler

import (
	"net/http"
	"strconv"

	"strikex/internal/model"
	"strikex/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// AccountHandler handles the logged-in account HTTP requests.
type AccountHandler struct {
	service service.AccountService
	logger  zerolog.Logger
}

// NewAccountHandler creates a new account handler.
func NewAccountHandler(service service.AccountService, logger zerolog.Logger) *AccountHandler {
	return &AccountHandler{
		service: service,
		logger:  logger.With().Str("handler", "account").Logger(),
	}
}

// requireUser returns the logged-in user id, failing the request otherwise.
func requireUser(w http.ResponseWriter, r *http.Request, logger zerolog.Logger) (int64, bool) {
	sess := requireSession(w, r, logger)
	if sess == nil {
		return 0, false
	}
	if !sess.LoggedIn() {
		writeError(w, http.StatusUnauthorized, model.ErrCodeUnauthorised, "Authentication required", logger)
		return 0, false
	}
	return sess.User.ID, true
}

// ListOrders handles GET /account/orders requests.
func (h *AccountHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r, h.logger)
	if !ok {
		return
	}

	orders, err := h.service.ListOrders(r.Context(), userID)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

// GetOrder handles GET /account/orders/{orderId} requests.
func (h *AccountHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r, h.logger)
	if !ok {
		return
	}

	orderID, err := strconv.ParseInt(chi.URLParam(r, "orderId"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidation, "Invalid order id", h.logger)
		return
	}

	order, err := h.service.GetOrder(r.Context(), userID, orderID)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// ListAddresses handles GET /addresses/all requests.
func (h *AccountHandler) ListAddresses(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r, h.logger)
	if !ok {
		return
	}

	addresses, err := h.service.ListAddresses(r.Context(), userID)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, addresses)
}

// AddAddress handles POST /addresses/add requests.
func (h *AccountHandler) AddAddress(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r, h.logger)
	if !ok {
		return
	}

	var req model.AddAddressRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err, h.logger)
		return
	}

	addr, err := h.service.AddAddress(r.Context(), userID, &req)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, addr)
}
