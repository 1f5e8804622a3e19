package service

import (
	"context"

	"strikex/internal/model"
	"strikex/internal/session"
)

// CartService defines operations on the visitor's cart.
type CartService interface {
	// GetOrCreate returns the owner's cart, creating an empty one when absent.
	GetOrCreate(ctx context.Context, owner model.CartOwner) (*model.Cart, error)

	// AddItem puts a product in the cart, merging quantity into an existing
	// line. The cart is created when the owner has none.
	AddItem(ctx context.Context, owner model.CartOwner, productID string, quantity int) (*model.Cart, error)

	// RemoveItem deletes a line from the cart.
	RemoveItem(ctx context.Context, owner model.CartOwner, productID string) (*model.Cart, error)

	// View returns the stored cart lines as-is.
	View(ctx context.Context, owner model.CartOwner) (*model.Cart, error)

	// Summarize re-prices the cart from the live catalogue. It never fails:
	// a missing, broken or partially priceable cart summarises as empty or
	// partial.
	Summarize(ctx context.Context, owner model.CartOwner) model.CartSummary

	// AttachToUser reassigns a session-owned cart to an account on login.
	AttachToUser(ctx context.Context, sessionToken string, userID int64) error
}

// CheckoutService defines the payment flow from preview to completion.
type CheckoutService interface {
	// Preview builds the checkout page data for a cart the session owns.
	Preview(ctx context.Context, sess *session.Session, cartID int64) (*model.CheckoutPreview, error)

	// CreatePaymentIntent re-prices the cart, applies the session coupon,
	// persists a pending order and opens a payment intent. Guests are
	// auto-provisioned an account first. Session mutations (user, coupon)
	// are made in place; the caller persists the session.
	CreatePaymentIntent(ctx context.Context, sess *session.Session, req *model.CheckoutRequest) (*model.CheckoutResponse, error)

	// Complete transitions a confirmed order to processing/paid, burns the
	// coupon usage and deletes the order's cart. Safe to call more than
	// once. A non-nil userID scopes the transition to that owner; only the
	// signature-verified processor webhook may pass nil.
	Complete(ctx context.Context, orderID int64, userID *int64, paymentIntentID string) error
}

// AccountService defines the logged-in account surface.
type AccountService interface {
	// ListOrders returns the user's order history, newest first.
	ListOrders(ctx context.Context, userID int64) ([]model.OrderListEntry, error)

	// GetOrder returns one order scoped to its owner.
	GetOrder(ctx context.Context, userID, orderID int64) (*model.Order, error)

	// ListAddresses returns saved addresses, default first.
	ListAddresses(ctx context.Context, userID int64) ([]model.Address, error)

	// AddAddress saves a delivery address. Submitting an identical address
	// again is a no-op returning the existing row.
	AddAddress(ctx context.Context, userID int64, req *model.AddAddressRequest) (*model.Address, error)
}

// AuthService defines registration and login.
type AuthService interface {
	// Register creates an account after field and captcha validation.
	Register(ctx context.Context, req *model.RegisterRequest, clientIP string) (*model.User, error)

	// Login authenticates a user and adopts any guest cart held by the
	// session token.
	Login(ctx context.Context, req *model.LoginRequest, sessionToken string) (*model.User, error)
}

// AdminService defines the staff dashboard.
type AdminService interface {
	// Dashboard returns the aggregates for a staff user. The role is
	// re-checked against storage, not the session copy.
	Dashboard(ctx context.Context, userID int64) (*model.AdminDashboard, error)
}

// CatalogService defines the read-only product surface.
type CatalogService interface {
	// ByCategory lists decoded products in a category.
	ByCategory(ctx context.Context, category string) ([]model.ProductView, error)

	// Search matches a keyword across name, category, sku and description.
	Search(ctx context.Context, keyword string) ([]model.ProductView, error)

	// GetProduct returns one decoded product, or nil when absent.
	GetProduct(ctx context.Context, id string) (*model.ProductView, error)
}

// ContactService forwards contact form submissions.
type ContactService interface {
	Submit(ctx context.Context, req *model.ContactRequest) error
}
