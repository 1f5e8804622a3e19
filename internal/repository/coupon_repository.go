package repository

import (
	"context"
	"fmt"

	"strikex/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// couponRepository implements the CouponRepository interface using PostgreSQL.
type couponRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCouponRepository creates a new PostgreSQL-backed coupon repository.
func NewCouponRepository(pool *pgxpool.Pool, logger zerolog.Logger) CouponRepository {
	return &couponRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "coupon").Logger(),
	}
}

// GetByCode looks up a coupon by its normalized code.
func (r *couponRepository) GetByCode(ctx context.Context, code string) (*model.Coupon, error) {
	query := `
		SELECT id, code, percent_off, min_subtotal, active, starts_at, ends_at, usage_limit, times_used
		FROM coupons
		WHERE UPPER(code) = $1
		LIMIT 1
	`

	var c model.Coupon
	err := r.pool.QueryRow(ctx, query, code).Scan(
		&c.ID, &c.Code, &c.PercentOff, &c.MinSubtotal, &c.Active,
		&c.StartsAt, &c.EndsAt, &c.UsageLimit, &c.TimesUsed,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("code", code).Msg("coupon not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("code", code).Msg("failed to query coupon")
		return nil, fmt.Errorf("failed to query coupon: %w", err)
	}

	return &c, nil
}

// IncrementUsage bumps times_used. The validity check and this increment are
// separate statements; concurrent checkouts can jointly exceed usage_limit.
func (r *couponRepository) IncrementUsage(ctx context.Context, code string) error {
	query := `UPDATE coupons SET times_used = times_used + 1 WHERE UPPER(code) = $1`

	if _, err := r.pool.Exec(ctx, query, code); err != nil {
		r.logger.Error().Err(err).Str("code", code).Msg("failed to increment coupon usage")
		return fmt.Errorf("failed to increment coupon usage: %w", err)
	}

	r.logger.Debug().Str("code", code).Msg("coupon usage incremented")

	return nil
}
