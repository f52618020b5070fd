// Package registry holds the wizard definitions a service can run.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/nocap-placify/placify/pkg/domain"
	"github.com/nocap-placify/placify/pkg/schema"
)

// Registry manages the available wizard definitions.
// It is safe for concurrent use; Replace swaps the whole set atomically.
type Registry struct {
	mu      sync.RWMutex
	wizards map[string]*domain.Definition
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		wizards: make(map[string]*domain.Definition),
	}
}

// Register validates and adds a definition.
// If a wizard with the same ID exists, it is overwritten.
func (r *Registry) Register(def *domain.Definition) error {
	if err := check(def); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.wizards[def.ID] = def
	return nil
}

// Replace validates every definition and swaps the registry contents.
// On error the registry is left unchanged.
func (r *Registry) Replace(defs []*domain.Definition) error {
	next := make(map[string]*domain.Definition, len(defs))
	for _, def := range defs {
		if err := check(def); err != nil {
			return err
		}
		if _, dup := next[def.ID]; dup {
			return fmt.Errorf("duplicate wizard %q", def.ID)
		}
		next[def.ID] = def
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.wizards = next
	return nil
}

// Get looks up a definition by ID.
func (r *Registry) Get(id string) (*domain.Definition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, ok := r.wizards[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrWizardNotFound, id)
	}
	return def, nil
}

// List returns every definition sorted by ID.
func (r *Registry) List() []*domain.Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Definition, 0, len(r.wizards))
	for _, def := range r.wizards {
		out = append(out, def)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func check(def *domain.Definition) error {
	if def == nil {
		return fmt.Errorf("nil wizard definition")
	}
	if err := def.Validate(); err != nil {
		return err
	}
	if _, err := schema.ForDefinition(def); err != nil {
		return err
	}
	return nil
}
