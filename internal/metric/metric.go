// Package metric maps raw fuel properties onto the [0,1] visualization
// scale used by the radar chart and gauges.
package metric

import (
	"math"

	"github.com/hammamikhairi/fuelforge/internal/domain"
	"github.com/hammamikhairi/fuelforge/internal/radar"
)

// Domain is the fixed physical range of one axis. Max is always
// greater than Min.
type Domain struct {
	Min float64
	Max float64
}

// Fraction maps raw into [0,1], saturating at the domain edges. NaN maps to 0.
func (d Domain) Fraction(raw float64) float64 {
	if math.IsNaN(raw) {
		return 0
	}
	f := (raw - d.Min) / (d.Max - d.Min)
	return math.Max(0, math.Min(1, f))
}

// AxisKey identifies a radar axis.
type AxisKey int

const (
	AxisPerformance AxisKey = iota
	AxisEnergy
	AxisEfficiency
	AxisOxygen
	AxisCostEffectiveness
)

// Fixed axis domains.
var (
	GasolinePerformance = Domain{Min: 80, Max: 105} // AKI
	DieselPerformance   = Domain{Min: 40, Max: 65}  // CN
	Energy              = Domain{Min: 25, Max: 48}  // LHV, MJ/kg
	Efficiency          = Domain{Min: 0, Max: 100}
	Oxygen              = Domain{Min: 0, Max: 20} // wt%
	Cost                = Domain{Min: 0.6, Max: 1.5}
)

// Axis describes one radar axis for a given fuel type.
type Axis struct {
	Key      AxisKey
	Label    string
	Property domain.PropertyKey
	Domain   Domain
	// Inverted axes score high when the raw value is low.
	Inverted bool
}

// Fraction returns the axis score for a raw property value.
func (a Axis) Fraction(raw float64) float64 {
	f := a.Domain.Fraction(raw)
	if a.Inverted {
		return 1 - f
	}
	return f
}

// Axes returns the five radar axes for a fuel type, in drawing order.
func Axes(fuel domain.FuelType) []Axis {
	perf := Axis{Key: AxisPerformance, Label: "Octane (AKI)", Property: domain.AKI, Domain: GasolinePerformance}
	if fuel == domain.Diesel {
		perf = Axis{Key: AxisPerformance, Label: "Cetane (CN)", Property: domain.CN, Domain: DieselPerformance}
	}
	return []Axis{
		perf,
		{Key: AxisEnergy, Label: "Energy (LHV)", Property: domain.LHV, Domain: Energy},
		{Key: AxisEfficiency, Label: "Efficiency", Property: domain.EfficiencyScore, Domain: Efficiency},
		{Key: AxisOxygen, Label: "Cleanliness (O₂)", Property: domain.O2WtPercent, Domain: Oxygen},
		{Key: AxisCostEffectiveness, Label: "Cost-Effectiveness", Property: domain.CostPerL, Domain: Cost, Inverted: true},
	}
}

// AxisFor returns the axis definition for key under fuel.
func AxisFor(key AxisKey, fuel domain.FuelType) (Axis, bool) {
	for _, a := range Axes(fuel) {
		if a.Key == key {
			return a, true
		}
	}
	return Axis{}, false
}

// Fraction maps a raw value for the given axis and fuel type into [0,1].
// Unknown axes map to 0.
func Fraction(key AxisKey, raw float64, fuel domain.FuelType) float64 {
	a, ok := AxisFor(key, fuel)
	if !ok {
		return 0
	}
	return a.Fraction(raw)
}

// Fingerprint builds the labelled radar points for a blend result. Axes
// whose property is missing score 0 and are flagged Missing.
func Fingerprint(result *domain.BlendResult) []radar.Point {
	axes := Axes(result.FuelType)
	out := make([]radar.Point, len(axes))
	for i, a := range axes {
		raw, ok := result.Properties.Get(a.Property)
		if !ok {
			out[i] = radar.Point{Label: a.Label, Missing: true}
			continue
		}
		out[i] = radar.Point{Label: a.Label, Fraction: a.Fraction(raw)}
	}
	return out
}
