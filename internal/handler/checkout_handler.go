package handler

import (
	"net/http"
	"strconv"

	"strikex/internal/model"
	"strikex/internal/service"
	"strikex/internal/session"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// CheckoutHandler handles the payment flow HTTP requests.
type CheckoutHandler struct {
	service  service.CheckoutService
	sessions *session.Manager
	logger   zerolog.Logger
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(service service.CheckoutService, sessions *session.Manager, logger zerolog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service:  service,
		sessions: sessions,
		logger:   logger.With().Str("handler", "checkout").Logger(),
	}
}

// Preview handles GET /checkout/{cartId} requests.
func (h *CheckoutHandler) Preview(w http.ResponseWriter, r *http.Request) {
	sess := requireSession(w, r, h.logger)
	if sess == nil {
		return
	}

	cartID, err := strconv.ParseInt(chi.URLParam(r, "cartId"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidation, "Invalid cart id", h.logger)
		return
	}

	preview, err := h.service.Preview(r.Context(), sess, cartID)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	// An invalid coupon may have been cleared from the session.
	if err := h.sessions.Save(r.Context(), sess); err != nil {
		h.logger.Warn().Err(err).Msg("failed to persist session")
	}

	writeJSON(w, http.StatusOK, preview)
}

// CreatePaymentIntent handles POST /checkout/create-payment-intent requests.
func (h *CheckoutHandler) CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	sess := requireSession(w, r, h.logger)
	if sess == nil {
		return
	}

	var req model.CheckoutRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err, h.logger)
		return
	}
	if req.CartID == 0 {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidation, "cartId is required", h.logger)
		return
	}

	resp, err := h.service.CreatePaymentIntent(r.Context(), sess, &req)

	// Guest provisioning and coupon clearing mutate the session even on
	// some failure paths; persist what happened either way.
	if saveErr := h.sessions.Save(r.Context(), sess); saveErr != nil {
		h.logger.Warn().Err(saveErr).Msg("failed to persist session")
	}

	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Complete handles POST /checkout/complete requests, the client-side
// confirmation callback. Every caller is logged in by this point, guests
// included, so the transition is always scoped to the session's user. The
// processor webhook drives the same transition unscoped after verifying the
// payload signature.
func (h *CheckoutHandler) Complete(w http.ResponseWriter, r *http.Request) {
	sess := requireSession(w, r, h.logger)
	if sess == nil {
		return
	}
	if !sess.LoggedIn() {
		writeError(w, http.StatusUnauthorized, model.ErrCodeUnauthorised, "Login required", h.logger)
		return
	}

	var req model.CompleteRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err, h.logger)
		return
	}
	if req.OrderID == 0 || req.PaymentIntentID == "" {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidation, "orderId and paymentIntentId are required", h.logger)
		return
	}

	userID := sess.User.ID
	if err := h.service.Complete(r.Context(), req.OrderID, &userID, req.PaymentIntentID); err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "completed"})
}
