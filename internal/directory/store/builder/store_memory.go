package builder

import (
	"context"
	"slices"
	"sync"

	"standsdir/internal/directory/models"
	id "standsdir/pkg/domain"
	"standsdir/pkg/platform/sentinel"
)

// InMemory keeps builders in insertion order.
type InMemory struct {
	mu       sync.RWMutex
	order    []id.BuilderID
	builders map[id.BuilderID]*models.Builder
}

func NewInMemory() *InMemory {
	return &InMemory{builders: make(map[id.BuilderID]*models.Builder)}
}

// Save inserts or replaces a builder. Replacing keeps the original position.
func (s *InMemory) Save(_ context.Context, b *models.Builder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.builders[b.ID]; !exists {
		s.order = append(s.order, b.ID)
	}
	s.builders[b.ID] = clone(b)
	return nil
}

func (s *InMemory) FindByID(_ context.Context, builderID id.BuilderID) (*models.Builder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.builders[builderID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return clone(b), nil
}

// List returns every builder in insertion order.
func (s *InMemory) List(_ context.Context) ([]*models.Builder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Builder, 0, len(s.order))
	for _, builderID := range s.order {
		out = append(out, clone(s.builders[builderID]))
	}
	return out, nil
}

func clone(b *models.Builder) *models.Builder {
	c := *b
	c.ServiceLocations = slices.Clone(b.ServiceLocations)
	return &c
}
