package ports

import (
	"context"

	"github.com/nocap-placify/placify/pkg/domain"
)

// StateStore defines the interface for persisting wizard sessions.
// This allows a half-filled wizard to survive restarts and be shared by replicas.
type StateStore interface {
	// Save persists the session under its ID.
	Save(ctx context.Context, sessionID string, session *domain.Session) error

	// Load retrieves the session for a given ID.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (*domain.Session, error)

	// Delete removes the session for a given ID.
	Delete(ctx context.Context, sessionID string) error

	// List returns the IDs of stored sessions.
	List(ctx context.Context) ([]string, error)
}
