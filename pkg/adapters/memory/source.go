// Package memory provides an in-memory catalog source, mainly for tests and
// for callers that assemble definitions programmatically.
package memory

import (
	"context"
	"sync"

	"github.com/aretw0/remat/pkg/catalog"
	"github.com/aretw0/remat/pkg/domain"
)

// Source implements ports.MutableCatalogSource in memory.
// Safe for concurrent use.
type Source struct {
	mu   sync.RWMutex
	data map[string]domain.Definition
}

// NewSource creates an empty in-memory source, optionally seeded.
func NewSource(defs ...domain.Definition) *Source {
	s := &Source{data: make(map[string]domain.Definition, len(defs))}
	for _, d := range defs {
		s.data[d.ID] = d.Clone()
	}
	return s
}

// Put stores a copy of the definition so callers can't mutate it afterwards.
func (s *Source) Put(_ context.Context, def domain.Definition) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[def.ID] = def.Clone()
	return nil
}

// Get retrieves a copy of the definition.
func (s *Source) Get(_ context.Context, id string) (domain.Definition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	def, ok := s.data[id]
	if !ok {
		return domain.Definition{}, domain.ErrMaterialNotFound
	}
	return def.Clone(), nil
}

// Delete removes the definition.
func (s *Source) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

// Load materializes the full catalog.
func (s *Source) Load(_ context.Context) (*catalog.Catalog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	defs := make([]domain.Definition, 0, len(s.data))
	for _, d := range s.data {
		defs = append(defs, d)
	}
	return catalog.New(defs...), nil
}
