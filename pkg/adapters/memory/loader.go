package memory

import (
	"context"

	"github.com/nocap-placify/placify/pkg/domain"
)

// Loader implements ports.DefinitionLoader over a fixed set of definitions.
type Loader struct {
	defs []*domain.Definition
}

// NewLoader creates a loader returning the given definitions.
func NewLoader(defs ...*domain.Definition) *Loader {
	return &Loader{defs: defs}
}

// Load returns the definitions passed to NewLoader.
func (l *Loader) Load(ctx context.Context) ([]*domain.Definition, error) {
	out := make([]*domain.Definition, len(l.defs))
	copy(out, l.defs)
	return out, nil
}
