package model

import "time"

// Coupon is a named percentage discount with activity constraints. Codes are
// unique case-insensitively; times_used only moves on order completion.
type Coupon struct {
	ID          int64      `json:"id" db:"id"`
	Code        string     `json:"code" db:"code"`
	PercentOff  float64    `json:"percentOff" db:"percent_off"`
	MinSubtotal float64    `json:"minSubtotal" db:"min_subtotal"`
	Active      bool       `json:"active" db:"active"`
	StartsAt    *time.Time `json:"startsAt,omitempty" db:"starts_at"`
	EndsAt      *time.Time `json:"endsAt,omitempty" db:"ends_at"`
	UsageLimit  *int       `json:"usageLimit,omitempty" db:"usage_limit"`
	TimesUsed   int        `json:"timesUsed" db:"times_used"`
}

// ApplyCouponRequest is the payload for POST /api/v1/coupon/apply.
type ApplyCouponRequest struct {
	Code string `json:"code"`
}
