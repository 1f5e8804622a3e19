package repository

import (
	"context"
	"fmt"
	"time"

	"strikex/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// addressRepository implements the AddressRepository interface using PostgreSQL.
type addressRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewAddressRepository creates a new PostgreSQL-backed address repository.
func NewAddressRepository(pool *pgxpool.Pool, logger zerolog.Logger) AddressRepository {
	return &addressRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "address").Logger(),
	}
}

// ListForUser returns addresses default-first, then newest.
func (r *addressRepository) ListForUser(ctx context.Context, userID int64) ([]model.Address, error) {
	query := `
		SELECT id, user_id, full_name, phone_number, address_line1, address_line2,
		       city, region, postal_code, country, is_default, created_at
		FROM addresses
		WHERE user_id = $1
		ORDER BY is_default DESC, created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to list addresses")
		return nil, fmt.Errorf("failed to list addresses: %w", err)
	}
	defer rows.Close()

	var addresses []model.Address
	for rows.Next() {
		var a model.Address
		err := rows.Scan(
			&a.ID, &a.UserID, &a.FullName, &a.PhoneNumber, &a.AddressLine1, &a.AddressLine2,
			&a.City, &a.Region, &a.PostalCode, &a.Country, &a.IsDefault, &a.CreatedAt,
		)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan address row")
			return nil, fmt.Errorf("failed to scan address: %w", err)
		}
		addresses = append(addresses, a)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating address rows")
		return nil, fmt.Errorf("error iterating addresses: %w", err)
	}

	return addresses, nil
}

// ClearDefault unsets any existing default for the user.
func (r *addressRepository) ClearDefault(ctx context.Context, userID int64) error {
	query := `UPDATE addresses SET is_default = FALSE WHERE user_id = $1`

	if _, err := r.pool.Exec(ctx, query, userID); err != nil {
		r.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to clear default address")
		return fmt.Errorf("failed to clear default address: %w", err)
	}

	return nil
}

// Create inserts a new address and returns its id.
func (r *addressRepository) Create(ctx context.Context, addr *model.Address) (int64, error) {
	query := `
		INSERT INTO addresses (
			user_id, full_name, phone_number, address_line1, address_line2,
			city, region, postal_code, country, is_default, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`

	var id int64
	err := r.pool.QueryRow(ctx, query,
		addr.UserID, addr.FullName, addr.PhoneNumber, addr.AddressLine1, addr.AddressLine2,
		addr.City, addr.Region, addr.PostalCode, addr.Country, addr.IsDefault, time.Now().UTC(),
	).Scan(&id)
	if err != nil {
		r.logger.Error().Err(err).Int64("user_id", addr.UserID).Msg("failed to create address")
		return 0, fmt.Errorf("failed to create address: %w", err)
	}

	r.logger.Debug().Int64("address_id", id).Msg("address created")

	return id, nil
}
