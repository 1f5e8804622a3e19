package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"strikex/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// cartRepository implements the CartRepository interface using PostgreSQL.
type cartRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCartRepository creates a new PostgreSQL-backed cart repository.
func NewCartRepository(pool *pgxpool.Pool, logger zerolog.Logger) CartRepository {
	return &cartRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "cart").Logger(),
	}
}

func scanCart(row pgx.Row) (*model.Cart, error) {
	var (
		cart model.Cart
		raw  []byte
	)
	if err := row.Scan(&cart.ID, &cart.UserID, &cart.SessionID, &raw, &cart.LastUpdated); err != nil {
		return nil, err
	}

	if len(raw) == 0 {
		cart.Items = []model.CartItem{}
		return &cart, nil
	}

	if err := json.Unmarshal(raw, &cart.Items); err != nil {
		return nil, fmt.Errorf("cart %d: %w", cart.ID, model.ErrMalformedRecord)
	}
	if cart.Items == nil {
		cart.Items = []model.CartItem{}
	}

	return &cart, nil
}

// FindByOwner returns the owner's cart, matching either the user id or the
// session token, or nil when none exists.
func (r *cartRepository) FindByOwner(ctx context.Context, owner model.CartOwner) (*model.Cart, error) {
	query := `
		SELECT id, user_id, session_id, cart_items, last_updated
		FROM carts
		WHERE user_id = $1 OR session_id = $2
		LIMIT 1
	`

	cart, err := scanCart(r.pool.QueryRow(ctx, query, owner.UserID, owner.SessionToken))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("session_id", owner.SessionToken).Msg("failed to query cart by owner")
		return nil, fmt.Errorf("failed to query cart: %w", err)
	}

	return cart, nil
}

// GetByID returns a cart by id, or nil when absent.
func (r *cartRepository) GetByID(ctx context.Context, id int64) (*model.Cart, error) {
	query := `
		SELECT id, user_id, session_id, cart_items, last_updated
		FROM carts
		WHERE id = $1
	`

	cart, err := scanCart(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Int64("cart_id", id).Msg("cart not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("cart_id", id).Msg("failed to query cart")
		return nil, fmt.Errorf("failed to query cart: %w", err)
	}

	return cart, nil
}

// Create inserts an empty cart for the owner and returns it.
func (r *cartRepository) Create(ctx context.Context, owner model.CartOwner) (*model.Cart, error) {
	query := `
		INSERT INTO carts (user_id, session_id, cart_items, last_updated)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	now := time.Now().UTC()
	cart := &model.Cart{
		UserID:      owner.UserID,
		Items:       []model.CartItem{},
		LastUpdated: now,
	}
	if owner.SessionToken != "" {
		token := owner.SessionToken
		cart.SessionID = &token
	}

	err := r.pool.QueryRow(ctx, query, owner.UserID, cart.SessionID, []byte("[]"), now).Scan(&cart.ID)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to create cart")
		return nil, fmt.Errorf("failed to create cart: %w", err)
	}

	r.logger.Debug().Int64("cart_id", cart.ID).Msg("cart created")

	return cart, nil
}

// SaveItems rewrites the full item list and bumps last_updated. The
// read-modify-write around this call is not transactional; concurrent
// writers can lose an update.
func (r *cartRepository) SaveItems(ctx context.Context, cartID int64, items []model.CartItem) error {
	if items == nil {
		items = []model.CartItem{}
	}

	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode cart items: %w", err)
	}

	query := `UPDATE carts SET cart_items = $1, last_updated = $2 WHERE id = $3`

	tag, err := r.pool.Exec(ctx, query, raw, time.Now().UTC(), cartID)
	if err != nil {
		r.logger.Error().Err(err).Int64("cart_id", cartID).Msg("failed to update cart items")
		return fmt.Errorf("failed to update cart items: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCartNotFound
	}

	return nil
}

// AssignUser reassigns a session-owned cart to a user.
func (r *cartRepository) AssignUser(ctx context.Context, cartID, userID int64) error {
	query := `UPDATE carts SET user_id = $1 WHERE id = $2`

	if _, err := r.pool.Exec(ctx, query, userID, cartID); err != nil {
		r.logger.Error().Err(err).Int64("cart_id", cartID).Int64("user_id", userID).Msg("failed to assign cart")
		return fmt.Errorf("failed to assign cart: %w", err)
	}

	r.logger.Debug().Int64("cart_id", cartID).Int64("user_id", userID).Msg("cart assigned to user")

	return nil
}

// Delete removes a consumed cart; deleting a missing cart is a no-op.
func (r *cartRepository) Delete(ctx context.Context, cartID int64) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM carts WHERE id = $1`, cartID); err != nil {
		r.logger.Error().Err(err).Int64("cart_id", cartID).Msg("failed to delete cart")
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}
