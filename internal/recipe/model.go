// Package recipe implements the editable blend recipe: component slots
// with percentages, their validation rules, and normalization to 100%.
package recipe

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/hammamikhairi/fuelforge/internal/domain"
)

// normalizedEpsilon is how close to 100 a total must be for Normalize to
// treat the recipe as already normalized.
const normalizedEpsilon = 1e-6

// Option configures a Model.
type Option func(*Model)

// WithIDGenerator replaces the UUID generator, mostly for tests.
func WithIDGenerator(fn func() string) Option {
	return func(m *Model) { m.newID = fn }
}

// Model is an ordered, validated set of blend components. Every failing
// operation leaves the model untouched.
type Model struct {
	items domain.Recipe
	newID func() string
}

// New creates an empty model.
func New(opts ...Option) *Model {
	m := &Model{newID: uuid.NewString}
	for _, o := range opts {
		o(m)
	}
	return m
}

// FromRecipe builds a model around a copy of r. Components without an ID
// get one. The recipe is not validated; CanPredict reports any problem.
func FromRecipe(r domain.Recipe, opts ...Option) *Model {
	m := New(opts...)
	m.items = r.Clone()
	for i := range m.items {
		if m.items[i].ID == "" {
			m.items[i].ID = m.newID()
		}
	}
	return m
}

// Clone returns an independent copy sharing the ID generator.
func (m *Model) Clone() *Model {
	return &Model{items: m.items.Clone(), newID: m.newID}
}

// Len returns the number of components.
func (m *Model) Len() int { return len(m.items) }

// Components returns a copy of the components in slot order.
func (m *Model) Components() domain.Recipe { return m.items.Clone() }

// Snapshot is an alias of Components used where an immutable copy is
// handed to another owner (prediction request, blend result).
func (m *Model) Snapshot() domain.Recipe { return m.items.Clone() }

// At returns the component in the given 0-based slot.
func (m *Model) At(slot int) (domain.Component, bool) {
	if slot < 0 || slot >= len(m.items) {
		return domain.Component{}, false
	}
	return m.items[slot], true
}

// Add appends a component with 0%.
func (m *Model) Add(name string) (domain.Component, error) {
	if len(m.items) >= domain.MaxComponents {
		return domain.Component{}, domain.ErrCapacityExceeded
	}
	if m.items.HasName(name, "") {
		return domain.Component{}, fmt.Errorf("%w: %q", domain.ErrDuplicateComponent, name)
	}
	c := domain.Component{ID: m.newID(), Name: name}
	m.items = append(m.items, c)
	return c, nil
}

// Remove deletes the component with the given ID.
func (m *Model) Remove(id string) error {
	idx := m.items.Index(id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", domain.ErrComponentNotFound, id)
	}
	if len(m.items)-1 < domain.MinComponents {
		return domain.ErrMinimumSize
	}
	m.items = append(m.items[:idx:idx], m.items[idx+1:]...)
	return nil
}

// SetName renames a component in place, keeping its ID.
func (m *Model) SetName(id, name string) error {
	idx := m.items.Index(id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", domain.ErrComponentNotFound, id)
	}
	if m.items.HasName(name, id) {
		return fmt.Errorf("%w: %q", domain.ErrDuplicateComponent, name)
	}
	m.items[idx].Name = name
	return nil
}

// SetPercentage stores a raw share. The recipe total is only checked at
// predict time.
func (m *Model) SetPercentage(id string, value float64) error {
	idx := m.items.Index(id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", domain.ErrComponentNotFound, id)
	}
	if math.IsNaN(value) || value < 0 || value > 100 {
		return fmt.Errorf("%w: %g", domain.ErrOutOfRange, value)
	}
	m.items[idx].Percentage = value
	return nil
}

// Total returns the sum of all percentages.
func (m *Model) Total() float64 { return m.items.Total() }

// Normalize scales every share so the total is 100. It is a no-op when
// the total is zero or already 100, and reports whether anything changed.
func (m *Model) Normalize() bool {
	total := m.Total()
	if total == 0 || math.Abs(total-100) <= normalizedEpsilon {
		return false
	}
	factor := 100 / total
	for i := range m.items {
		m.items[i].Percentage *= factor
	}
	return true
}

// CanPredict returns nil when the recipe may be sent to the predictor,
// otherwise ErrRecipeTooSmall or ErrRecipeNotNormalized.
func (m *Model) CanPredict() error {
	if len(m.items) < domain.MinComponents {
		return domain.ErrRecipeTooSmall
	}
	if total := m.Total(); math.Abs(total-100) > domain.TotalTolerance {
		return fmt.Errorf("%w (%.1f%%)", domain.ErrRecipeNotNormalized, total)
	}
	return nil
}

// Ready reports whether CanPredict succeeds.
func (m *Model) Ready() bool { return m.CanPredict() == nil }

// Summary joins the short component names with " + ".
func (m *Model) Summary() string { return m.items.Summary() }
