package providers

import (
	"context"

	"github.com/gururaser/real-estate-game/internal/domain/entities"
)

// SessionStore persists game sessions for the lifetime of a game.
// Sessions are ephemeral: implementations hold them in memory or in a
// TTL-bound cache, never in durable storage.
type SessionStore interface {
	// Get retrieves a session by ID
	Get(ctx context.Context, id string) (*entities.Session, error)

	// Save stores a session, replacing any existing value wholesale
	Save(ctx context.Context, session *entities.Session) error

	// Delete removes a session
	Delete(ctx context.Context, id string) error
}
