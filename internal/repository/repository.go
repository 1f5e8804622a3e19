package repository

import (
	"context"

	"strikex/internal/model"
)

// ProductRepository defines the interface for catalogue data access.
type ProductRepository interface {
	// GetByID retrieves a single product. Returns nil when absent.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// GetByIDs retrieves multiple products keyed by id. Missing ids are
	// simply absent from the map.
	GetByIDs(ctx context.Context, ids []string) (map[string]model.Product, error)

	// ByCategory lists products in a category, capped.
	ByCategory(ctx context.Context, category string, limit int) ([]model.Product, error)

	// Search matches the keyword against name, category, sku and description.
	Search(ctx context.Context, keyword string) ([]model.Product, error)
}

// CartRepository defines the interface for cart data access. A cart row is
// matched by user id or session token; its line items are one JSON column
// rewritten whole on every mutation.
type CartRepository interface {
	// FindByOwner returns the owner's cart, or nil when none exists.
	FindByOwner(ctx context.Context, owner model.CartOwner) (*model.Cart, error)

	// GetByID returns a cart by id, or nil when absent.
	GetByID(ctx context.Context, id int64) (*model.Cart, error)

	// Create inserts an empty cart for the owner and returns it.
	Create(ctx context.Context, owner model.CartOwner) (*model.Cart, error)

	// SaveItems rewrites the full item list and bumps last_updated.
	SaveItems(ctx context.Context, cartID int64, items []model.CartItem) error

	// AssignUser reassigns a session-owned cart to a user (login or guest
	// checkout promotion).
	AssignUser(ctx context.Context, cartID, userID int64) error

	// Delete removes a consumed cart. Deleting an already-deleted cart is
	// not an error.
	Delete(ctx context.Context, cartID int64) error
}

// CouponRepository defines the interface for coupon data access.
type CouponRepository interface {
	// GetByCode looks up a coupon by its normalized (uppercase) code.
	// Returns nil when absent.
	GetByCode(ctx context.Context, code string) (*model.Coupon, error)

	// IncrementUsage bumps times_used. Called exactly once per completed
	// order that recorded the code.
	IncrementUsage(ctx context.Context, code string) error
}

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	// Create inserts the order snapshot and returns its id.
	Create(ctx context.Context, order *model.Order) (int64, error)

	// GetByID returns an order, or nil when absent.
	GetByID(ctx context.Context, id int64) (*model.Order, error)

	// GetForUser returns an order scoped to its owning user, or nil when
	// absent or owned by someone else.
	GetForUser(ctx context.Context, id, userID int64) (*model.Order, error)

	// ListForUser returns the user's order history, newest first.
	ListForUser(ctx context.Context, userID int64, limit int) ([]model.OrderListEntry, error)

	// MarkPaid transitions an order to processing/paid and records the
	// payment intent. Returns false when the order was already paid (or
	// does not match), making completion idempotent. A non-nil userID
	// additionally scopes the update to that owner.
	MarkPaid(ctx context.Context, orderID int64, userID *int64, paymentIntentID string) (bool, error)
}

// UserRepository defines the interface for account data access.
type UserRepository interface {
	// GetByEmail returns the account for an email, or nil when absent.
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// GetByID returns an account, or nil when absent.
	GetByID(ctx context.Context, id int64) (*model.User, error)

	// Create inserts a new account and returns its id.
	Create(ctx context.Context, user *model.User) (int64, error)

	// SetStripeCustomerID persists the lazily created processor customer.
	SetStripeCustomerID(ctx context.Context, userID int64, customerID string) error
}

// AddressRepository defines the interface for saved-address data access.
type AddressRepository interface {
	// ListForUser returns addresses default-first, then newest.
	ListForUser(ctx context.Context, userID int64) ([]model.Address, error)

	// ClearDefault unsets any existing default for the user.
	ClearDefault(ctx context.Context, userID int64) error

	// Create inserts a new address and returns its id.
	Create(ctx context.Context, addr *model.Address) (int64, error)
}

// AdminRepository defines the read-only aggregates behind the staff dashboard.
type AdminRepository interface {
	// PaidRevenue sums total_amount over paid orders in the given currency.
	PaidRevenue(ctx context.Context, currency string) (float64, error)

	// UserCount counts non-admin accounts.
	UserCount(ctx context.Context) (int, error)

	// OrderCount counts all orders.
	OrderCount(ctx context.Context) (int, error)

	// RecentUsers lists the newest non-admin accounts.
	RecentUsers(ctx context.Context, limit int) ([]model.User, error)

	// RecentOrders lists the newest orders, optionally paid only.
	RecentOrders(ctx context.Context, limit int, paidOnly bool) ([]model.OrderListEntry, error)
}

// APIKeyRepository defines the interface for partner API key lookups.
type APIKeyRepository interface {
	// GetByAccess returns the key record for a bearer value, or nil.
	GetByAccess(ctx context.Context, access string) (*model.APIKey, error)
}
