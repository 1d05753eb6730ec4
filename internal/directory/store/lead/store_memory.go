package lead

import (
	"context"
	"slices"
	"sync"
	"time"

	"standsdir/internal/directory/models"
	id "standsdir/pkg/domain"
	"standsdir/pkg/platform/sentinel"
)

// InMemory keeps leads in creation order.
type InMemory struct {
	mu    sync.RWMutex
	order []id.LeadID
	leads map[id.LeadID]*models.Lead
}

func NewInMemory() *InMemory {
	return &InMemory{leads: make(map[id.LeadID]*models.Lead)}
}

func (s *InMemory) Create(_ context.Context, l *models.Lead) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.leads[l.ID]; exists {
		return sentinel.ErrConflict
	}
	s.order = append(s.order, l.ID)
	s.leads[l.ID] = clone(l)
	return nil
}

func (s *InMemory) Update(_ context.Context, l *models.Lead) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.leads[l.ID]; !exists {
		return sentinel.ErrNotFound
	}
	s.leads[l.ID] = clone(l)
	return nil
}

func (s *InMemory) FindByID(_ context.Context, leadID id.LeadID) (*models.Lead, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := s.leads[leadID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return clone(l), nil
}

func (s *InMemory) List(_ context.Context) ([]*models.Lead, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Lead, 0, len(s.order))
	for _, leadID := range s.order {
		out = append(out, clone(s.leads[leadID]))
	}
	return out, nil
}

// ListRerouteCandidates returns routed, not yet rerouted leads last routed
// before cutoff.
func (s *InMemory) ListRerouteCandidates(_ context.Context, cutoff time.Time) ([]*models.Lead, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.Lead
	for _, leadID := range s.order {
		l := s.leads[leadID]
		if l.CanReroute(cutoff) {
			out = append(out, clone(l))
		}
	}
	return out, nil
}

// OpenLeadCounts returns, per builder, how many open leads are assigned to it.
func (s *InMemory) OpenLeadCounts(_ context.Context) (map[id.BuilderID]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[id.BuilderID]int)
	for _, l := range s.leads {
		if !l.Status.IsOpen() {
			continue
		}
		for _, a := range l.Assignments {
			counts[a.BuilderID]++
		}
	}
	return counts, nil
}

func clone(l *models.Lead) *models.Lead {
	c := *l
	c.Assignments = slices.Clone(l.Assignments)
	if l.RoutedAt != nil {
		routedAt := *l.RoutedAt
		c.RoutedAt = &routedAt
	}
	return &c
}
