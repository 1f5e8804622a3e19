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

// orderRepository implements the OrderRepository interface using PostgreSQL.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

// Create inserts the order snapshot and returns its id.
func (r *orderRepository) Create(ctx context.Context, order *model.Order) (int64, error) {
	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return 0, fmt.Errorf("failed to encode order items: %w", err)
	}
	addressJSON, err := json.Marshal(order.ShippingAddress)
	if err != nil {
		return 0, fmt.Errorf("failed to encode shipping address: %w", err)
	}

	query := `
		INSERT INTO orders (
			user_id, cart_id, order_items,
			subtotal_amount, discount_amount, shipping_amount, total_amount,
			currency, coupon_code, status, payment_status, payment_method,
			shipping_address, customer_notes, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id
	`

	var id int64
	err = r.pool.QueryRow(ctx, query,
		order.UserID, order.CartID, itemsJSON,
		order.Subtotal, order.Discount, order.Shipping, order.Total,
		order.Currency, order.CouponCode, order.Status, order.PaymentStatus, order.PaymentMethod,
		addressJSON, order.CustomerNotes, time.Now().UTC(),
	).Scan(&id)
	if err != nil {
		r.logger.Error().Err(err).Int64("user_id", order.UserID).Msg("failed to create order")
		return 0, fmt.Errorf("failed to create order: %w", err)
	}

	r.logger.Debug().Int64("order_id", id).Msg("order created")

	return id, nil
}

const orderColumns = `
	id, user_id, cart_id, order_items,
	subtotal_amount, discount_amount, shipping_amount, total_amount,
	currency, coupon_code, status, payment_status, payment_method, payment_id,
	shipping_address, customer_notes, created_at`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var (
		o           model.Order
		itemsJSON   []byte
		addressJSON []byte
	)
	err := row.Scan(
		&o.ID, &o.UserID, &o.CartID, &itemsJSON,
		&o.Subtotal, &o.Discount, &o.Shipping, &o.Total,
		&o.Currency, &o.CouponCode, &o.Status, &o.PaymentStatus, &o.PaymentMethod, &o.PaymentID,
		&addressJSON, &o.CustomerNotes, &o.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(itemsJSON) > 0 {
		if err := json.Unmarshal(itemsJSON, &o.Items); err != nil {
			return nil, fmt.Errorf("order %d items: %w", o.ID, model.ErrMalformedRecord)
		}
	}
	if len(addressJSON) > 0 {
		if err := json.Unmarshal(addressJSON, &o.ShippingAddress); err != nil {
			return nil, fmt.Errorf("order %d address: %w", o.ID, model.ErrMalformedRecord)
		}
	}

	return &o, nil
}

// GetByID returns an order, or nil when absent.
func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE id = $1`, orderColumns)

	order, err := scanOrder(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Int64("order_id", id).Msg("order not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("order_id", id).Msg("failed to query order")
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	return order, nil
}

// GetForUser returns an order scoped to its owning user.
func (r *orderRepository) GetForUser(ctx context.Context, id, userID int64) (*model.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE id = $1 AND user_id = $2`, orderColumns)

	order, err := scanOrder(r.pool.QueryRow(ctx, query, id, userID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("order_id", id).Int64("user_id", userID).Msg("failed to query order")
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	return order, nil
}

// ListForUser returns the user's order history, newest first.
func (r *orderRepository) ListForUser(ctx context.Context, userID int64, limit int) ([]model.OrderListEntry, error) {
	query := `
		SELECT id, total_amount, currency, status, payment_status, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		r.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to list orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	return collectOrderEntries(rows, r.logger)
}

// MarkPaid transitions an order to processing/paid. The payment_status guard
// makes repeated completion calls (client + webhook) no-ops.
func (r *orderRepository) MarkPaid(ctx context.Context, orderID int64, userID *int64, paymentIntentID string) (bool, error) {
	query := `
		UPDATE orders
		SET status = $1, payment_status = $2, payment_method = $3, payment_id = $4
		WHERE id = $5
		  AND payment_status <> $2
		  AND ($6::bigint IS NULL OR user_id = $6)
	`

	tag, err := r.pool.Exec(ctx, query,
		model.OrderStatusProcessing, model.PaymentStatusPaid, model.PaymentMethodStripe,
		paymentIntentID, orderID, userID,
	)
	if err != nil {
		r.logger.Error().Err(err).Int64("order_id", orderID).Msg("failed to mark order paid")
		return false, fmt.Errorf("failed to mark order paid: %w", err)
	}

	updated := tag.RowsAffected() > 0
	r.logger.Debug().Int64("order_id", orderID).Bool("updated", updated).Msg("order payment recorded")

	return updated, nil
}

func collectOrderEntries(rows pgx.Rows, logger zerolog.Logger) ([]model.OrderListEntry, error) {
	var entries []model.OrderListEntry
	for rows.Next() {
		var e model.OrderListEntry
		if err := rows.Scan(&e.ID, &e.Total, &e.Currency, &e.Status, &e.PaymentStatus, &e.CreatedAt); err != nil {
			logger.Error().Err(err).Msg("failed to scan order row")
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("error iterating order rows")
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	return entries, nil
}
