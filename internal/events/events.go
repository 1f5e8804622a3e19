package events

import (
	"context"
	"encoding/json"
	"time"
)

// Event types emitted on the order stream.
const (
	TypeOrderCreated = "order.created"
	TypeOrderPaid    = "order.paid"
)

// Envelope wraps every published event with routing metadata.
type Envelope struct {
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"occurredAt"`
	Payload    json.RawMessage `json:"payload"`
}

// OrderCreated is published when checkout opens a pending order.
type OrderCreated struct {
	OrderID  int64   `json:"orderId"`
	UserID   *int64  `json:"userId,omitempty"`
	Total    float64 `json:"total"`
	Currency string  `json:"currency"`
}

// OrderPaid is published once, when an order transitions to paid.
type OrderPaid struct {
	OrderID   int64  `json:"orderId"`
	PaymentID string `json:"paymentId"`
}

// Publisher emits order lifecycle events. Publishing is best effort and
// must never block or fail a checkout.
type Publisher interface {
	Publish(ctx context.Context, eventType string, payload any)
	Close()
}

// NopPublisher discards all events. Used when the event stream is disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, eventType string, payload any) {}
func (NopPublisher) Close()                                                     {}
