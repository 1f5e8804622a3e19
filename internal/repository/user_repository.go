package repository

import (
	"context"
	"fmt"
	"time"

	"strikex/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const userColumns = `id, email, password, first_name, last_name, company, stripe_customer_id, auth, ip_address, created_at`

// userRepository implements the UserRepository interface using PostgreSQL.
type userRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewUserRepository creates a new PostgreSQL-backed user repository.
func NewUserRepository(pool *pgxpool.Pool, logger zerolog.Logger) UserRepository {
	return &userRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "user").Logger(),
	}
}

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(
		&u.ID, &u.Email, &u.Password, &u.FirstName, &u.LastName,
		&u.Company, &u.StripeCustomerID, &u.Auth, &u.IPAddress, &u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail returns the account for an email, or nil when absent.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = $1`, userColumns)

	user, err := scanUser(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Msg("failed to query user by email")
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return user, nil
}

// GetByID returns an account, or nil when absent.
func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)

	user, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Int64("user_id", id).Msg("user not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("user_id", id).Msg("failed to query user")
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return user, nil
}

// Create inserts a new account and returns its id. The email uniqueness
// check and this insert are separate statements; concurrent registrations
// with the same email can race.
func (r *userRepository) Create(ctx context.Context, user *model.User) (int64, error) {
	query := `
		INSERT INTO users (email, password, first_name, last_name, company, ip_address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	var id int64
	err := r.pool.QueryRow(ctx, query,
		user.Email, user.Password, user.FirstName, user.LastName,
		user.Company, user.IPAddress, time.Now().UTC(),
	).Scan(&id)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to create user")
		return 0, fmt.Errorf("failed to create user: %w", err)
	}

	r.logger.Debug().Int64("user_id", id).Msg("user created")

	return id, nil
}

// SetStripeCustomerID persists the lazily created processor customer.
func (r *userRepository) SetStripeCustomerID(ctx context.Context, userID int64, customerID string) error {
	query := `UPDATE users SET stripe_customer_id = $1 WHERE id = $2`

	if _, err := r.pool.Exec(ctx, query, customerID, userID); err != nil {
		r.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to store stripe customer id")
		return fmt.Errorf("failed to store stripe customer id: %w", err)
	}

	return nil
}
