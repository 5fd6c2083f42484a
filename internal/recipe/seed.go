package recipe

import (
	"github.com/hammamikhairi/fuelforge/internal/domain"
)

// Seed builds the default two-component recipe for a fuel type from the
// first catalogued base and additive. It returns an empty model when the
// catalog cannot supply both.
func Seed(catalog *domain.Catalog, fuel domain.FuelType, opts ...Option) *Model {
	m := New(opts...)
	base, ok := catalog.FirstBase(fuel)
	if !ok {
		return m
	}
	additive, ok := catalog.FirstAdditive(fuel)
	if !ok || additive.Value == base.Value {
		return m
	}
	p := fuel.Profile()
	m.items = domain.Recipe{
		{ID: m.newID(), Name: base.Value, Percentage: p.SeedBase},
		{ID: m.newID(), Name: additive.Value, Percentage: p.SeedAdditive},
	}
	return m
}

// NextAdditive returns the first catalogued additive not already in the
// recipe, used as the default name for a newly added slot.
func NextAdditive(catalog *domain.Catalog, fuel domain.FuelType, r domain.Recipe) (string, bool) {
	for _, e := range catalog.Additives(fuel) {
		if !r.HasName(e.Value, "") {
			return e.Value, true
		}
	}
	return "", false
}
