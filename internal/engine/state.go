package engine

import (
	"fmt"

	"github.com/hammamikhairi/fuelforge/internal/compare"
	"github.com/hammamikhairi/fuelforge/internal/domain"
	"github.com/hammamikhairi/fuelforge/internal/recipe"
)

// State is one immutable snapshot of a blending session. Reducers never
// modify their input; they return a new State with the recipe and pinned
// set copied.
type State struct {
	FuelType domain.FuelType
	Recipe   domain.Recipe
	Pinned   *compare.PinnedSet
	Busy     bool
	Current  *domain.BlendResult
	Seq      uint64
	Catalog  *domain.Catalog
}

// PredictRequest is issued by BeginPredict and echoed back, with the
// outcome, in a PredictResponse.
type PredictRequest struct {
	Seq      uint64
	FuelType domain.FuelType
	Recipe   domain.Recipe
}

// PredictResponse carries the outcome of a PredictRequest.
type PredictResponse struct {
	Seq      uint64
	FuelType domain.FuelType
	Result   *domain.BlendResult
	Err      error
}

// NewState returns the initial state for a fuel type, seeded from the
// catalog when one is available.
func NewState(fuel domain.FuelType, catalog *domain.Catalog) State {
	return State{
		FuelType: fuel,
		Recipe:   recipe.Seed(catalog, fuel).Components(),
		Pinned:   compare.NewPinnedSet(),
		Catalog:  catalog,
	}
}

func (s State) clone() State {
	c := s
	c.Recipe = s.Recipe.Clone()
	c.Pinned = s.Pinned.Clone()
	return c
}

func (s State) model() *recipe.Model {
	return recipe.FromRecipe(s.Recipe)
}

func (s State) withModel(m *recipe.Model) State {
	c := s.clone()
	c.Recipe = m.Components()
	return c
}

// SlotID resolves a 1-based slot number to a component ID.
func (s State) SlotID(slot int) (string, error) {
	if slot < 1 || slot > len(s.Recipe) {
		return "", fmt.Errorf("slot %d: %w", slot, domain.ErrComponentNotFound)
	}
	return s.Recipe[slot-1].ID, nil
}

// Total is the current recipe's percentage sum.
func (s State) Total() float64 { return s.Recipe.Total() }

// CanPredict reports why the current recipe cannot be submitted, if so.
func (s State) CanPredict() error { return s.model().CanPredict() }

// Comparison builds the comparison table from the pinned set.
func (s State) Comparison() compare.Table { return s.Pinned.Table() }

// Catalogued rejects a name the catalog does not offer for the current
// fuel type. Without a catalog every name is accepted, so recipe files
// still load offline.
func (s State) Catalogued(name string) error {
	if s.Catalog.Empty() {
		return nil
	}
	if _, ok := s.Catalog.Lookup(s.FuelType, name); !ok {
		return fmt.Errorf("%q: %w", name, domain.ErrUnknownComponent)
	}
	return nil
}

// LoadCatalog installs a freshly fetched catalog. An empty recipe is
// seeded from it.
func LoadCatalog(s State, catalog *domain.Catalog) State {
	c := s.clone()
	c.Catalog = catalog
	if len(c.Recipe) == 0 {
		c.Recipe = recipe.Seed(catalog, c.FuelType).Components()
	}
	return c
}

// AddComponent appends a 0% slot. An empty name picks the first
// catalogued additive not yet in the recipe.
func AddComponent(s State, name string) (State, error) {
	if len(s.Recipe) >= domain.MaxComponents {
		return s, domain.ErrCapacityExceeded
	}
	if name == "" {
		next, ok := recipe.NextAdditive(s.Catalog, s.FuelType, s.Recipe)
		if !ok {
			return s, fmt.Errorf("no unused additive: %w", domain.ErrCatalogUnavailable)
		}
		name = next
	} else if err := s.Catalogued(name); err != nil {
		return s, err
	}
	m := s.model()
	if _, err := m.Add(name); err != nil {
		return s, err
	}
	return s.withModel(m), nil
}

// RemoveComponent drops the component with the given ID.
func RemoveComponent(s State, id string) (State, error) {
	m := s.model()
	if err := m.Remove(id); err != nil {
		return s, err
	}
	return s.withModel(m), nil
}

// RenameComponent changes a component's catalog name.
func RenameComponent(s State, id, name string) (State, error) {
	if err := s.Catalogued(name); err != nil {
		return s, err
	}
	m := s.model()
	if err := m.SetName(id, name); err != nil {
		return s, err
	}
	return s.withModel(m), nil
}

// SetPercentage stores a raw percentage for a component.
func SetPercentage(s State, id string, value float64) (State, error) {
	m := s.model()
	if err := m.SetPercentage(id, value); err != nil {
		return s, err
	}
	return s.withModel(m), nil
}

// Normalize rescales the recipe to 100%. It reports whether anything
// changed.
func Normalize(s State) (State, bool) {
	m := s.model()
	if !m.Normalize() {
		return s, false
	}
	return s.withModel(m), true
}

// ReplaceRecipe installs a recipe loaded from elsewhere. Changing the
// fuel type this way behaves like SwitchFuel without reseeding.
func ReplaceRecipe(s State, fuel domain.FuelType, r domain.Recipe) State {
	var c State
	if fuel != s.FuelType {
		c = resetFuel(s, fuel)
	} else {
		c = s.clone()
	}
	c.Recipe = recipe.FromRecipe(r).Components()
	return c
}

// SwitchFuel moves the session to another fuel type. The current result
// and pinned set are dropped, any in-flight prediction becomes stale, and
// the recipe is reseeded from the catalog.
func SwitchFuel(s State, fuel domain.FuelType) State {
	if fuel == s.FuelType {
		return s
	}
	c := resetFuel(s, fuel)
	c.Recipe = recipe.Seed(c.Catalog, fuel).Components()
	return c
}

func resetFuel(s State, fuel domain.FuelType) State {
	c := s.clone()
	c.FuelType = fuel
	c.Current = nil
	c.Pinned = compare.NewPinnedSet()
	c.Busy = false
	c.Seq++
	return c
}

// Pin adds the current result to the pinned set. It reports whether the
// result was newly pinned.
func Pin(s State) (State, bool, error) {
	if s.Current == nil {
		return s, false, domain.ErrNoResult
	}
	c := s.clone()
	added := c.Pinned.Pin(s.Current)
	return c, added, nil
}

// Unpin removes a pinned result by blend ID.
func Unpin(s State, id string) (State, error) {
	c := s.clone()
	if !c.Pinned.Remove(id) {
		return s, fmt.Errorf("blend %s: %w", id, domain.ErrNotFound)
	}
	return c, nil
}

// ClearPinned empties the pinned set.
func ClearPinned(s State) State {
	c := s.clone()
	c.Pinned.Clear()
	return c
}

// BeginPredict validates the recipe, including that every name is
// catalogued, and marks a prediction in flight. The previous result is
// cleared right away.
func BeginPredict(s State) (State, PredictRequest, error) {
	if s.Busy {
		return s, PredictRequest{}, domain.ErrBusy
	}
	if err := s.CanPredict(); err != nil {
		return s, PredictRequest{}, err
	}
	for _, comp := range s.Recipe {
		if err := s.Catalogued(comp.Name); err != nil {
			return s, PredictRequest{}, err
		}
	}
	c := s.clone()
	c.Busy = true
	c.Current = nil
	c.Seq++
	req := PredictRequest{Seq: c.Seq, FuelType: c.FuelType, Recipe: c.Recipe.Clone()}
	return c, req, nil
}

// CompletePredict applies a response. Responses for a superseded request
// or another fuel type are ignored and reported as not applied. A failed
// prediction clears the busy flag and leaves no result.
func CompletePredict(s State, resp PredictResponse) (State, bool) {
	if !s.Busy || resp.Seq != s.Seq || resp.FuelType != s.FuelType {
		return s, false
	}
	c := s.clone()
	c.Busy = false
	if resp.Err == nil {
		c.Current = resp.Result
	}
	return c, true
}
