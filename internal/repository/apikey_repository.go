package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"strikex/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// apiKeyRepository implements the APIKeyRepository interface using PostgreSQL.
type apiKeyRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewAPIKeyRepository creates a new PostgreSQL-backed API key repository.
func NewAPIKeyRepository(pool *pgxpool.Pool, logger zerolog.Logger) APIKeyRepository {
	return &apiKeyRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "apikey").Logger(),
	}
}

// GetByAccess returns the key record for a bearer value, or nil.
func (r *apiKeyRepository) GetByAccess(ctx context.Context, access string) (*model.APIKey, error) {
	query := `SELECT id, access, status, authorised_urls FROM api_keys WHERE access = $1`

	var (
		key     model.APIKey
		rawURLs []byte
	)
	err := r.pool.QueryRow(ctx, query, access).Scan(&key.ID, &key.Access, &key.Status, &rawURLs)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Msg("failed to query api key")
		return nil, fmt.Errorf("failed to query api key: %w", err)
	}

	if len(rawURLs) > 0 {
		if err := json.Unmarshal(rawURLs, &key.AuthorisedURLs); err != nil {
			return nil, fmt.Errorf("api key %d: %w", key.ID, model.ErrMalformedRecord)
		}
	}

	return &key, nil
}
