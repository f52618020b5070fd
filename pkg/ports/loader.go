package ports

import (
	"context"

	"github.com/nocap-placify/placify/pkg/domain"
)

// DefinitionLoader defines how the engine retrieves wizard definitions.
// This allows the source (YAML directory, Go tables, memory) to be decoupled.
type DefinitionLoader interface {
	// Load returns every definition available from the source.
	// Definitions are returned unvalidated; the registry validates them.
	Load(ctx context.Context) ([]*domain.Definition, error)
}

// Watchable defines an interface for loaders that can notify about backend changes.
// This is typically used for hot-reload or dev-mode functionality.
type Watchable interface {
	// Watch returns a channel that is signaled when the underlying definitions change.
	// It abstracts away the specific event details, signaling only that a reload is required.
	Watch(ctx context.Context) (<-chan struct{}, error)
}
