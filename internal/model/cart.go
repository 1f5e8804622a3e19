package model

import "time"

// CartOwner identifies who a cart belongs to: an authenticated user, an
// anonymous session token, or both once a guest logs in. Cart lookups match
// either side.
type CartOwner struct {
	UserID       *int64
	SessionToken string
}

// Cart holds an ordered list of prospective purchase lines, stored as one
// JSON-encoded cart_items column per row.
type Cart struct {
	ID          int64      `json:"id" db:"id"`
	UserID      *int64     `json:"userId,omitempty" db:"user_id"`
	SessionID   *string    `json:"-" db:"session_id"`
	Items       []CartItem `json:"items"`
	LastUpdated time.Time  `json:"lastUpdated" db:"last_updated"`
}

// CartItem is one line of a cart. Price fields are the snapshot taken when
// the line was added; checkout always re-prices from the catalogue.
type CartItem struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Title     string  `json:"title"`
	UnitPrice float64 `json:"unitPrice"`
	Currency  string  `json:"currency"`
	ImageURL  string  `json:"imageUrl"`
}

// CartSummary is the live re-priced view of a cart used by the header badge
// and the cart page. It is always well-formed; a missing or broken cart
// summarises as empty.
type CartSummary struct {
	CartID    int64   `json:"cartId,omitempty"`
	ItemCount int     `json:"itemCount"`
	Subtotal  float64 `json:"subtotal"`
	Currency  string  `json:"currency,omitempty"`
}

// AddItemRequest is the payload for POST /api/v1/cart/add.
type AddItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// RemoveItemRequest is the payload for POST /api/v1/cart/remove.
type RemoveItemRequest struct {
	ProductID string `json:"productId"`
}
