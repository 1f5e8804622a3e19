package repository

import (
	"context"
	"fmt"

	"strikex/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// adminRepository implements the AdminRepository interface using PostgreSQL.
type adminRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewAdminRepository creates a new PostgreSQL-backed admin repository.
func NewAdminRepository(pool *pgxpool.Pool, logger zerolog.Logger) AdminRepository {
	return &adminRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "admin").Logger(),
	}
}

// PaidRevenue sums total_amount over paid orders in the given currency.
func (r *adminRepository) PaidRevenue(ctx context.Context, currency string) (float64, error) {
	query := `
		SELECT COALESCE(SUM(total_amount), 0)
		FROM orders
		WHERE payment_status = $1 AND currency = $2
	`

	var total float64
	if err := r.pool.QueryRow(ctx, query, model.PaymentStatusPaid, currency).Scan(&total); err != nil {
		r.logger.Error().Err(err).Msg("failed to sum paid revenue")
		return 0, fmt.Errorf("failed to sum paid revenue: %w", err)
	}

	return total, nil
}

// UserCount counts non-admin accounts.
func (r *adminRepository) UserCount(ctx context.Context) (int, error) {
	query := `SELECT COUNT(*) FROM users WHERE auth IS NULL OR auth <> $1`

	var count int
	if err := r.pool.QueryRow(ctx, query, model.RoleAdmin).Scan(&count); err != nil {
		r.logger.Error().Err(err).Msg("failed to count users")
		return 0, fmt.Errorf("failed to count users: %w", err)
	}

	return count, nil
}

// OrderCount counts all orders.
func (r *adminRepository) OrderCount(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM orders`).Scan(&count); err != nil {
		r.logger.Error().Err(err).Msg("failed to count orders")
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}

	return count, nil
}

// RecentUsers lists the newest non-admin accounts.
func (r *adminRepository) RecentUsers(ctx context.Context, limit int) ([]model.User, error) {
	query := `
		SELECT id, email, first_name, last_name, auth, created_at
		FROM users
		WHERE auth IS NULL OR auth <> $1
		ORDER BY id DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, model.RoleAdmin, limit)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to list recent users")
		return nil, fmt.Errorf("failed to list recent users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.Auth, &u.CreatedAt); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan user row")
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating user rows")
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return users, nil
}

// RecentOrders lists the newest orders, optionally paid only.
func (r *adminRepository) RecentOrders(ctx context.Context, limit int, paidOnly bool) ([]model.OrderListEntry, error) {
	query := `
		SELECT id, total_amount, currency, status, payment_status, created_at
		FROM orders
		WHERE ($1 = FALSE OR payment_status = $2)
		ORDER BY created_at DESC
		LIMIT $3
	`

	rows, err := r.pool.Query(ctx, query, paidOnly, model.PaymentStatusPaid, limit)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to list recent orders")
		return nil, fmt.Errorf("failed to list recent orders: %w", err)
	}
	defer rows.Close()

	return collectOrderEntries(rows, r.logger)
}
