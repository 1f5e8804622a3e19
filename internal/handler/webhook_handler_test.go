package handler

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stripe/stripe-go/v82"
)

const webhookSecret = "whsec_test_secret"

// signPayload builds a Stripe-Signature header the way the processor does:
// t=<unix>,v1=hex(hmac_sha256(secret, "<unix>.<payload>")).
func signPayload(payload, secret string) string {
	ts := time.Now().Unix()
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", ts, payload)
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func succeededEventPayload() string {
	return fmt.Sprintf(`{
		"id": "evt_1",
		"api_version": %q,
		"type": "payment_intent.succeeded",
		"data": {
			"object": {
				"id": "pi_1",
				"object": "payment_intent",
				"metadata": {"orderId": "101", "cartId": "7", "userId": "42"}
			}
		}
	}`, stripe.APIVersion)
}

func TestWebhookHandler_PaymentSucceeded(t *testing.T) {
	payload := succeededEventPayload()

	svc := new(MockCheckoutService)
	svc.On("Complete", mock.Anything, int64(101), (*int64)(nil), "pi_1").Return(nil)

	h := NewWebhookHandler(svc, webhookSecret, zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/webhooks/stripe", strings.NewReader(payload))
	req.Header.Set("Stripe-Signature", signPayload(payload, webhookSecret))

	w := doRequest(h.HandleStripe, req)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestWebhookHandler_BadSignature(t *testing.T) {
	payload := succeededEventPayload()

	svc := new(MockCheckoutService)
	h := NewWebhookHandler(svc, webhookSecret, zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/webhooks/stripe", strings.NewReader(payload))
	req.Header.Set("Stripe-Signature", signPayload(payload, "whsec_wrong_secret"))

	w := doRequest(h.HandleStripe, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Complete")
}

func TestWebhookHandler_MissingSignature(t *testing.T) {
	svc := new(MockCheckoutService)
	h := NewWebhookHandler(svc, webhookSecret, zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/webhooks/stripe", strings.NewReader(succeededEventPayload()))

	w := doRequest(h.HandleStripe, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Complete")
}

func TestWebhookHandler_IgnoresOtherEvents(t *testing.T) {
	payload := fmt.Sprintf(`{
		"id": "evt_2",
		"api_version": %q,
		"type": "payment_intent.created",
		"data": {"object": {"id": "pi_2", "object": "payment_intent"}}
	}`, stripe.APIVersion)

	svc := new(MockCheckoutService)
	h := NewWebhookHandler(svc, webhookSecret, zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/webhooks/stripe", strings.NewReader(payload))
	req.Header.Set("Stripe-Signature", signPayload(payload, webhookSecret))

	w := doRequest(h.HandleStripe, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ignored")
	svc.AssertNotCalled(t, "Complete")
}

func TestWebhookHandler_MissingOrderMetadata(t *testing.T) {
	payload := fmt.Sprintf(`{
		"id": "evt_3",
		"api_version": %q,
		"type": "payment_intent.succeeded",
		"data": {"object": {"id": "pi_3", "object": "payment_intent", "metadata": {}}}
	}`, stripe.APIVersion)

	svc := new(MockCheckoutService)
	h := NewWebhookHandler(svc, webhookSecret, zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/webhooks/stripe", strings.NewReader(payload))
	req.Header.Set("Stripe-Signature", signPayload(payload, webhookSecret))

	w := doRequest(h.HandleStripe, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Complete")
}
