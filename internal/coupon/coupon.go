package coupon

import (
	"context"
)

// Rejection reasons surfaced to the checkout page when a code does not apply.
const (
	ReasonNotFound      = "not_found"
	ReasonInactive      = "inactive"
	ReasonNotStarted    = "not_started"
	ReasonExpired       = "expired"
	ReasonUsageLimit    = "usage_limit_reached"
	ReasonBelowMinimum  = "subtotal_below_minimum"
)

// Result is the outcome of evaluating a code against a subtotal.
type Result struct {
	Valid    bool    `json:"valid"`
	Code     string  `json:"code,omitempty"`
	Discount float64 `json:"discount"`
	Reason   string  `json:"reason,omitempty"`
}

// Evaluator validates a coupon code against its activity window, usage limit
// and minimum-subtotal rules, producing a discount amount.
//
// Evaluation is deterministic and idempotent: it never mutates coupon state.
// The usage counter moves exactly once, on order completion.
type Evaluator interface {
	Evaluate(ctx context.Context, code string, subtotal float64) (Result, error)
}
