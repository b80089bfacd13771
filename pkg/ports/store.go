package ports

import (
	"context"

	"github.com/lbatista/espalier/pkg/domain"
)

// SessionStore defines the interface for persisting per-session progress.
// Semantics are whole-value: every Save replaces the full state, there is no
// partial update.
type SessionStore interface {
	// Save persists the state for a given session ID.
	Save(ctx context.Context, sessionID string, state *domain.SessionState) error

	// Load retrieves the state for a given session ID.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (*domain.SessionState, error)

	// Delete removes the state for a given session ID.
	Delete(ctx context.Context, sessionID string) error
}
