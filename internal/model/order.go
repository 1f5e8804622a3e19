package model

import "time"

// Order lifecycle. An order is created pending/unpaid at payment-intent time
// and moves to processing/paid when the processor confirms the charge.
// Abandoned orders stay pending/unpaid indefinitely.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"

	PaymentStatusUnpaid = "unpaid"
	PaymentStatusPaid   = "paid"

	PaymentMethodStripe = "stripe"
)

// Order is an immutable snapshot taken at checkout: items, amounts and the
// shipping address are frozen even if the catalogue changes afterwards.
type Order struct {
	ID              int64           `json:"id" db:"id"`
	UserID          int64           `json:"userId" db:"user_id"`
	CartID          int64           `json:"cartId" db:"cart_id"`
	Items           []CartItem      `json:"items"`
	Subtotal        float64         `json:"subtotal" db:"subtotal_amount"`
	Discount        float64         `json:"discount" db:"discount_amount"`
	Shipping        float64         `json:"shipping" db:"shipping_amount"`
	Total           float64         `json:"total" db:"total_amount"`
	Currency        string          `json:"currency" db:"currency"`
	CouponCode      *string         `json:"couponCode,omitempty" db:"coupon_code"`
	Status          string          `json:"status" db:"status"`
	PaymentStatus   string          `json:"paymentStatus" db:"payment_status"`
	PaymentMethod   string          `json:"paymentMethod" db:"payment_method"`
	PaymentID       *string         `json:"paymentId,omitempty" db:"payment_id"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	CustomerNotes   string          `json:"customerNotes" db:"customer_notes"`
	CreatedAt       time.Time       `json:"createdAt" db:"created_at"`
}

// OrderListEntry is the compact projection for the account order history.
type OrderListEntry struct {
	ID            int64     `json:"id"`
	Total         float64   `json:"total"`
	Currency      string    `json:"currency"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"paymentStatus"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ShippingAddress is the address snapshot stored on an order. Field names
// match the client form.
type ShippingAddress struct {
	FullName     string `json:"full_name"`
	PhoneNumber  string `json:"phone_number,omitempty"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2,omitempty"`
	City         string `json:"city"`
	Region       string `json:"region,omitempty"`
	PostalCode   string `json:"postal_code"`
	Country      string `json:"country,omitempty"`
}

// Complete reports whether the required shipping fields are present.
func (a ShippingAddress) Complete() bool {
	return a.FullName != "" && a.AddressLine1 != "" && a.City != "" && a.PostalCode != ""
}

// GuestDetails is supplied on guest checkout so an account can be
// auto-provisioned during the flow.
type GuestDetails struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// CheckoutRequest is the payload for POST /checkout/create-payment-intent.
type CheckoutRequest struct {
	CartID  int64           `json:"cartId"`
	Address ShippingAddress `json:"address"`
	Notes   string          `json:"notes"`
	Guest   *GuestDetails   `json:"guest,omitempty"`
}

// CheckoutResponse carries what the client needs to confirm the payment.
type CheckoutResponse struct {
	ClientSecret string  `json:"clientSecret"`
	OrderID      int64   `json:"orderId"`
	Amount       float64 `json:"amount"`
	Currency     string  `json:"currency"`
}

// CompleteRequest is the payload for POST /checkout/complete. The cart to
// consume is taken from the order, never from the client.
type CompleteRequest struct {
	OrderID         int64  `json:"orderId"`
	PaymentIntentID string `json:"paymentIntentId"`
}

// CheckoutPreview is the data the checkout page renders: re-priced lines,
// coupon state and totals.
type CheckoutPreview struct {
	CartID        int64      `json:"cartId"`
	Items         []CartItem `json:"items"`
	Subtotal      float64    `json:"subtotal"`
	Discount      float64    `json:"discount"`
	Shipping      float64    `json:"shipping"`
	Total         float64    `json:"total"`
	Currency      string     `json:"currency"`
	CouponApplied *string    `json:"couponApplied,omitempty"`
	CouponMessage *string    `json:"couponMessage,omitempty"`
	Addresses     []Address  `json:"addresses"`
	IsLoggedIn    bool       `json:"isLoggedIn"`
}
