// Package domain defines the core types and interfaces for the blend
// analyzer. All other packages depend on domain; domain depends on nothing.
package domain

import "strings"

// Recipe limits.
const (
	MinComponents = 2
	MaxComponents = 5

	// TotalTolerance is how far the total may drift from 100% and still
	// be accepted for prediction.
	TotalTolerance = 0.1
)

// Component is one entry of a blend recipe.
type Component struct {
	ID         string  `json:"id" yaml:"-"`
	Name       string  `json:"name" yaml:"name"`
	Percentage float64 `json:"percentage" yaml:"percentage"`
}

// Recipe is an ordered list of components. Slot 0 is conventionally the
// base fuel; the rest are additives.
type Recipe []Component

// Clone returns an independent copy of the recipe.
func (r Recipe) Clone() Recipe {
	if r == nil {
		return nil
	}
	out := make(Recipe, len(r))
	copy(out, r)
	return out
}

// Total returns the sum of all percentages.
func (r Recipe) Total() float64 {
	var sum float64
	for _, c := range r {
		sum += c.Percentage
	}
	return sum
}

// Index returns the slot of the component with the given ID, or -1.
func (r Recipe) Index(id string) int {
	for i, c := range r {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// HasName reports whether any component other than exceptID is named name.
func (r Recipe) HasName(name, exceptID string) bool {
	for _, c := range r {
		if c.Name == name && c.ID != exceptID {
			return true
		}
	}
	return false
}

// ShortName returns the first whitespace-separated token of a component
// name ("Ethanol (C2)" -> "Ethanol").
func ShortName(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// Summary joins the short names of every component with " + ".
func (r Recipe) Summary() string {
	parts := make([]string, 0, len(r))
	for _, c := range r {
		parts = append(parts, ShortName(c.Name))
	}
	return strings.Join(parts, " + ")
}
