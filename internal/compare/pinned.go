package compare

import (
	"github.com/hammamikhairi/fuelforge/internal/domain"
)

// PinnedSet is an ordered set of blend results keyed by ID. Insertion
// order is pin order. Results are shared, never copied.
type PinnedSet struct {
	order []*domain.BlendResult
}

// NewPinnedSet creates an empty set.
func NewPinnedSet() *PinnedSet {
	return &PinnedSet{}
}

// Clone returns a set with the same members, independent of s.
func (s *PinnedSet) Clone() *PinnedSet {
	c := &PinnedSet{}
	if s != nil {
		c.order = append(c.order, s.order...)
	}
	return c
}

// Pin appends r unless a result with the same ID is already pinned.
// It reports whether r was added.
func (s *PinnedSet) Pin(r *domain.BlendResult) bool {
	if r == nil || s.Contains(r.ID) {
		return false
	}
	s.order = append(s.order, r)
	return true
}

// Remove drops the result with the given ID and reports whether it was present.
func (s *PinnedSet) Remove(id string) bool {
	for i, r := range s.order {
		if r.ID == id {
			s.order = append(s.order[:i:i], s.order[i+1:]...)
			return true
		}
	}
	return false
}

// Clear empties the set.
func (s *PinnedSet) Clear() { s.order = nil }

// Contains reports whether a result with the given ID is pinned.
func (s *PinnedSet) Contains(id string) bool {
	if s == nil {
		return false
	}
	for _, r := range s.order {
		if r.ID == id {
			return true
		}
	}
	return false
}

// Len returns the number of pinned results.
func (s *PinnedSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// Blends returns the pinned results in pin order.
func (s *PinnedSet) Blends() []*domain.BlendResult {
	if s == nil {
		return nil
	}
	out := make([]*domain.BlendResult, len(s.order))
	copy(out, s.order)
	return out
}

// Table builds a fresh comparison table from the current members.
func (s *PinnedSet) Table() Table {
	return BuildTable(s.Blends())
}
