package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"strikex/internal/model"
	"strikex/internal/service"

	"github.com/rs/zerolog"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

const webhookBodyLimit = 1 << 16

// WebhookHandler processes payment processor callbacks.
type WebhookHandler struct {
	service service.CheckoutService
	secret  string
	logger  zerolog.Logger
}

// NewWebhookHandler creates a new webhook handler.
func NewWebhookHandler(service service.CheckoutService, secret string, logger zerolog.Logger) *WebhookHandler {
	return &WebhookHandler{
		service: service,
		secret:  secret,
		logger:  logger.With().Str("handler", "webhook").Logger(),
	}
}

// HandleStripe handles POST /webhooks/stripe requests. The signature is
// verified before anything is parsed; unverified payloads are never acted on.
func (h *WebhookHandler) HandleStripe(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, webhookBodyLimit))
	if err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidation, "Could not read payload", h.logger)
		return
	}

	event, err := webhook.ConstructEvent(payload, r.Header.Get("Stripe-Signature"), h.secret)
	if err != nil {
		h.logger.Warn().Err(err).Msg("webhook signature verification failed")
		writeError(w, http.StatusBadRequest, model.ErrCodeValidation, "Invalid signature", h.logger)
		return
	}

	switch event.Type {
	case "payment_intent.succeeded":
		h.paymentSucceeded(w, r, event)
	default:
		h.logger.Debug().Str("type", string(event.Type)).Msg("ignoring webhook event")
		writeJSON(w, http.StatusOK, map[string]string{"status": "ignored"})
	}
}

func (h *WebhookHandler) paymentSucceeded(w http.ResponseWriter, r *http.Request, event stripe.Event) {
	var intent stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidation, "Malformed event payload", h.logger)
		return
	}

	orderID, err := strconv.ParseInt(intent.Metadata["orderId"], 10, 64)
	if err != nil {
		h.logger.Warn().Str("payment_intent_id", intent.ID).Msg("payment intent carries no order id")
		writeError(w, http.StatusBadRequest, model.ErrCodeValidation, "Missing order metadata", h.logger)
		return
	}

	// Webhooks are not scoped to a user; the order id is authoritative.
	if err := h.service.Complete(r.Context(), orderID, nil, intent.ID); err != nil {
		respondError(w, err, h.logger)
		return
	}

	h.logger.Info().
		Int64("order_id", orderID).
		Str("payment_intent_id", intent.ID).
		Msg("webhook completed order")

	writeJSON(w, http.StatusOK, map[string]string{"status": "processed"})
}
