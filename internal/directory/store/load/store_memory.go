// Package load tracks how many open leads each builder currently holds.
package load

import (
	"context"
	"sync"

	id "standsdir/pkg/domain"
)

type InMemory struct {
	mu     sync.Mutex
	counts map[id.BuilderID]int
}

func NewInMemory() *InMemory {
	return &InMemory{counts: make(map[id.BuilderID]int)}
}

// Increment adds delta to the builder's count and returns the new value.
// Counts never drop below zero.
func (s *InMemory) Increment(_ context.Context, builderID id.BuilderID, delta int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := max(s.counts[builderID]+delta, 0)
	s.counts[builderID] = n
	return n, nil
}

// Counts returns the count for every requested builder; unknown builders are 0.
func (s *InMemory) Counts(_ context.Context, builderIDs []id.BuilderID) (map[id.BuilderID]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[id.BuilderID]int, len(builderIDs))
	for _, builderID := range builderIDs {
		out[builderID] = s.counts[builderID]
	}
	return out, nil
}

// Set overwrites the counts of the given builders.
func (s *InMemory) Set(_ context.Context, counts map[id.BuilderID]int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for builderID, n := range counts {
		s.counts[builderID] = max(n, 0)
	}
	return nil
}
