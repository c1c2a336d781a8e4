package session

import (
	"context"
	"encoding/json"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/gururaser/real-estate-game/internal/domain/entities"
	"github.com/gururaser/real-estate-game/internal/domain/providers"
	apperrors "github.com/gururaser/real-estate-game/pkg/errors"
)

// MemoryStore keeps game sessions in an in-process LRU cache. It is the
// default store: sessions are ephemeral and the oldest are evicted when
// the capacity is reached. Values are stored as JSON snapshots so callers
// never share mutable state with the store, matching the Redis store's
// semantics.
type MemoryStore struct {
	cache *lru.Cache[string, []byte]
}

// NewMemoryStore creates an in-memory session store with the given capacity
func NewMemoryStore(capacity int) (providers.SessionStore, error) {
	if capacity < 1 {
		capacity = 1024
	}
	cache, err := lru.New[string, []byte](capacity)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to create session cache", err)
	}
	return &MemoryStore{cache: cache}, nil
}

// Get retrieves a session by ID
func (s *MemoryStore) Get(ctx context.Context, id string) (*entities.Session, error) {
	raw, ok := s.cache.Get(id)
	if !ok {
		return nil, apperrors.NewNotFoundError("session not found: " + id)
	}
	session := &entities.Session{}
	if err := json.Unmarshal(raw, session); err != nil {
		return nil, apperrors.NewInternalError("failed to decode session", err)
	}
	return session, nil
}

// Save stores a snapshot of the session, replacing any existing value
func (s *MemoryStore) Save(ctx context.Context, session *entities.Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return apperrors.NewInternalError("failed to encode session", err)
	}
	s.cache.Add(session.ID, raw)
	return nil
}

// Delete removes a session
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.cache.Remove(id)
	return nil
}
