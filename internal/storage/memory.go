// Package storage provides blend archive implementations.
package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/hammamikhairi/fuelforge/internal/domain"
	"github.com/hammamikhairi/fuelforge/internal/logger"
)

// Compile-time interface check.
var _ domain.BlendStore = (*MemoryStore)(nil)

type entry struct {
	result *domain.BlendResult
	seq    int
}

// MemoryStore is an in-memory blend archive. Safe for concurrent access.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]entry
	next    int
	log     *logger.Logger
}

// NewMemoryStore creates an empty in-memory archive.
func NewMemoryStore(log *logger.Logger) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]entry),
		log:     log,
	}
}

// Save archives a result. Overwrites if the ID already exists.
func (s *MemoryStore) Save(ctx context.Context, result *domain.BlendResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.log.Debug("saving blend %s (fuel=%s, recipe=%s)", result.ID, result.FuelType, result.Summary())
	s.next++
	s.entries[result.ID] = entry{result: result, seq: s.next}
	return nil
}

// Load retrieves a result by ID.
func (s *MemoryStore) Load(ctx context.Context, id string) (*domain.BlendResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[id]
	if !ok {
		s.log.Debug("blend not found: %s", id)
		return nil, domain.ErrNotFound
	}
	return e.result, nil
}

// Delete removes a result by ID.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.entries, id)
	s.log.Debug("deleted blend %s", id)
	return nil
}

// List returns every result for a fuel type, newest first.
func (s *MemoryStore) List(ctx context.Context, fuel domain.FuelType) ([]*domain.BlendResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []entry
	for _, e := range s.entries {
		if e.result.FuelType == fuel {
			matched = append(matched, e)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.result.CreatedAt.Equal(b.result.CreatedAt) {
			return a.result.CreatedAt.After(b.result.CreatedAt)
		}
		return a.seq > b.seq
	})

	out := make([]*domain.BlendResult, len(matched))
	for i, e := range matched {
		out[i] = e.result
	}
	s.log.Debug("listing %s blends, count=%d", fuel, len(out))
	return out, nil
}
