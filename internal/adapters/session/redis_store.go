package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gururaser/real-estate-game/internal/domain/entities"
	"github.com/gururaser/real-estate-game/internal/domain/providers"
	apperrors "github.com/gururaser/real-estate-game/pkg/errors"
)

const sessionKeyPrefix = "game:session:"

// RedisStore keeps game sessions in Redis with a TTL. State stays
// session-scoped: every key expires, nothing is kept beyond the game.
// Useful when the API runs as more than one instance.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed session store
func NewRedisStore(client *redis.Client, ttlSeconds int) providers.SessionStore {
	if ttlSeconds < 1 {
		ttlSeconds = 3600
	}
	return &RedisStore{
		client: client,
		ttl:    time.Duration(ttlSeconds) * time.Second,
	}
}

// Get retrieves a session by ID
func (s *RedisStore) Get(ctx context.Context, id string) (*entities.Session, error) {
	raw, err := s.client.Get(ctx, sessionKeyPrefix+id).Bytes()
	if err == redis.Nil {
		return nil, apperrors.NewNotFoundError("session not found: " + id)
	}
	if err != nil {
		return nil, apperrors.NewExternalError("failed to load session", err)
	}
	session := &entities.Session{}
	if err := json.Unmarshal(raw, session); err != nil {
		return nil, apperrors.NewInternalError("failed to decode session", err)
	}
	return session, nil
}

// Save stores the session and refreshes its TTL
func (s *RedisStore) Save(ctx context.Context, session *entities.Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return apperrors.NewInternalError("failed to encode session", err)
	}
	if err := s.client.Set(ctx, sessionKeyPrefix+session.ID, raw, s.ttl).Err(); err != nil {
		return apperrors.NewExternalError("failed to save session", err)
	}
	return nil
}

// Delete removes a session
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, sessionKeyPrefix+id).Err(); err != nil {
		return apperrors.NewExternalError("failed to delete session", err)
	}
	return nil
}
