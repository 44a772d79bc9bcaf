package library

import (
	"fmt"
	"sort"
	"sync"

	"github.com/logiksim/core/element"
	"github.com/logiksim/core/internal/errs"
	"github.com/logiksim/core/internal/ident"
	"github.com/logiksim/core/metadata"
)

// Factory builds a new element of one GUID's kind.
type Factory func(id ident.ID, parent *ident.ID, md metadata.Map) (element.Element, error)

// Registry binds GUIDs to their schema and factory, generalizing the
// bidirectional name/ID binding idiom from int IDs to string GUIDs.
type Registry struct {
	mu       sync.RWMutex
	schemas  map[string]Schema
	factories map[string]Factory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		schemas:   make(map[string]Schema),
		factories: make(map[string]Factory),
	}
}

// Register binds a GUID to its schema and factory. Registering the
// same GUID twice replaces the previous binding.
func (r *Registry) Register(schema Schema, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.schemas[schema.GUID] = schema
	r.factories[schema.GUID] = factory
}

// Create instantiates a new element of the given GUID.
func (r *Registry) Create(guid string, id ident.ID, parent *ident.ID, md metadata.Map) (element.Element, error) {
	r.mu.RLock()
	factory, ok := r.factories[guid]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", errs.ErrLibraryMissing, guid)
	}
	return factory(id, parent, md)
}

// Schema returns the schema registered for guid.
func (r *Registry) Schema(guid string) (Schema, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.schemas[guid]
	return s, ok
}

// Enumerate returns every registered schema, sorted by GUID, for the
// enumerate_components command.
func (r *Registry) Enumerate() []Schema {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Schema, 0, len(r.schemas))
	for _, s := range r.schemas {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GUID < out[j].GUID })
	return out
}
