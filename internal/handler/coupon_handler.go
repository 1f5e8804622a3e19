package handler

import (
	"fmt"
	"net/http"

	"strikex/internal/coupon"
	"strikex/internal/model"
	"strikex/internal/service"
	"strikex/internal/session"

	"github.com/rs/zerolog"
)

// CouponHandler manages the coupon code held in the session.
type CouponHandler struct {
	evaluator coupon.Evaluator
	carts     service.CartService
	sessions  *session.Manager
	logger    zerolog.Logger
}

// NewCouponHandler creates a new coupon handler.
func NewCouponHandler(
	evaluator coupon.Evaluator,
	carts service.CartService,
	sessions *session.Manager,
	logger zerolog.Logger,
) *CouponHandler {
	return &CouponHandler{
		evaluator: evaluator,
		carts:     carts,
		sessions:  sessions,
		logger:    logger.With().Str("handler", "coupon").Logger(),
	}
}

// Apply handles POST /api/v1/coupon/apply requests. A valid code is stored
// in the session and re-evaluated at checkout; an invalid one is rejected
// with its reason.
func (h *CouponHandler) Apply(w http.ResponseWriter, r *http.Request) {
	sess := requireSession(w, r, h.logger)
	if sess == nil {
		return
	}

	var req model.ApplyCouponRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err, h.logger)
		return
	}

	summary := h.carts.Summarize(r.Context(), sess.Owner())

	result, err := h.evaluator.Evaluate(r.Context(), req.Code, summary.Subtotal)
	if err != nil {
		respondError(w, err, h.logger)
		return
	}

	if !result.Valid {
		writeError(w, http.StatusBadRequest, model.ErrCodeCouponInvalid,
			fmt.Sprintf("Coupon cannot be applied (%s)", result.Reason), h.logger)
		return
	}

	sess.CouponCode = &result.Code
	sess.CouponMessage = nil
	if err := h.sessions.Save(r.Context(), sess); err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Remove handles POST /api/v1/coupon/remove requests.
func (h *CouponHandler) Remove(w http.ResponseWriter, r *http.Request) {
	sess := requireSession(w, r, h.logger)
	if sess == nil {
		return
	}

	sess.CouponCode = nil
	sess.CouponMessage = nil
	if err := h.sessions.Save(r.Context(), sess); err != nil {
		respondError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"removed": true})
}
