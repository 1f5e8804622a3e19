package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Session record key: session:{token}
const keySession = "session:%s"

// Store persists session records keyed by token.
type Store interface {
	// Get returns the session for a token, or nil when absent.
	Get(ctx context.Context, token string) (*Session, error)

	// Save writes the session record, refreshing its TTL.
	Save(ctx context.Context, sess *Session) error

	// Delete removes the session record.
	Delete(ctx context.Context, token string) error
}

// redisStore implements Store on Redis with JSON-encoded records.
type redisStore struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(rdb *redis.Client, ttl time.Duration, logger zerolog.Logger) Store {
	return &redisStore{
		rdb:    rdb,
		ttl:    ttl,
		logger: logger.With().Str("component", "session-store").Logger(),
	}
}

// Get returns the session for a token, or nil when absent. A record that no
// longer decodes is treated as absent so the visitor gets a fresh session.
func (s *redisStore) Get(ctx context.Context, token string) (*Session, error) {
	raw, err := s.rdb.Get(ctx, fmt.Sprintf(keySession, token)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		s.logger.Error().Err(err).Msg("failed to read session")
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		s.logger.Warn().Err(err).Msg("discarding malformed session record")
		return nil, nil
	}

	return &sess, nil
}

// Save writes the session record, refreshing its TTL.
func (s *redisStore) Save(ctx context.Context, sess *Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if err := s.rdb.Set(ctx, fmt.Sprintf(keySession, sess.ID), raw, s.ttl).Err(); err != nil {
		s.logger.Error().Err(err).Msg("failed to write session")
		return fmt.Errorf("failed to write session: %w", err)
	}

	return nil
}

// Delete removes the session record.
func (s *redisStore) Delete(ctx context.Context, token string) error {
	if err := s.rdb.Del(ctx, fmt.Sprintf(keySession, token)).Err(); err != nil {
		s.logger.Error().Err(err).Msg("failed to delete session")
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
