package domain

import (
	"fmt"
	"strings"
)

// FuelType is the closed set of fuel families the predictor understands.
type FuelType int

const (
	Gasoline FuelType = iota
	Diesel
)

// Range is a closed numeric interval used for gauges.
type Range struct {
	Min float64
	Max float64
}

// Profile carries everything that differs between fuel families so
// callers never branch on fuel names.
type Profile struct {
	Wire        string // value sent to / received from the backend
	DisplayName string

	// PrimaryMetric drives the first radar axis.
	PrimaryMetric PropertyKey

	// PrimaryGauge is the headline gauge metric and its display range.
	PrimaryGauge      PropertyKey
	PrimaryGaugeRange Range

	KeyMetrics []PropertyKey

	// DetailColumns are the per-component properties worth showing
	// for this fuel, in order, before the common LHV/Density columns.
	DetailColumns []PropertyKey

	// SeedBase / SeedAdditive are the percentages of the default recipe.
	SeedBase     float64
	SeedAdditive float64
}

var profiles = map[FuelType]Profile{
	Gasoline: {
		Wire:              "gasoline",
		DisplayName:       "Gasoline",
		PrimaryMetric:     AKI,
		PrimaryGauge:      RON,
		PrimaryGaugeRange: Range{Min: 70, Max: 110},
		KeyMetrics:        []PropertyKey{RON, MON, AKI, ViabilityScore},
		DetailColumns:     []PropertyKey{RON, MON},
		SeedBase:          90,
		SeedAdditive:      10,
	},
	Diesel: {
		Wire:              "diesel",
		DisplayName:       "Diesel",
		PrimaryMetric:     CN,
		PrimaryGauge:      CN,
		PrimaryGaugeRange: Range{Min: 40, Max: 65},
		KeyMetrics:        []PropertyKey{CN, ViabilityScore},
		DetailColumns:     []PropertyKey{CN},
		SeedBase:          95,
		SeedAdditive:      5,
	},
}

// FuelTypes lists every fuel type in display order.
func FuelTypes() []FuelType { return []FuelType{Gasoline, Diesel} }

// Profile returns the descriptor for the fuel type.
func (f FuelType) Profile() Profile {
	p, ok := profiles[f]
	if !ok {
		return profiles[Gasoline]
	}
	return p
}

// String returns the wire name ("gasoline", "diesel").
func (f FuelType) String() string {
	if p, ok := profiles[f]; ok {
		return p.Wire
	}
	return "unknown"
}

// ParseFuelType accepts the wire name in any case.
func ParseFuelType(s string) (FuelType, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, f := range FuelTypes() {
		if profiles[f].Wire == name {
			return f, nil
		}
	}
	return Gasoline, fmt.Errorf("%w: %q", ErrUnknownFuelType, s)
}

// MarshalText implements encoding.TextMarshaler.
func (f FuelType) MarshalText() ([]byte, error) {
	if _, ok := profiles[f]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownFuelType, int(f))
	}
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *FuelType) UnmarshalText(b []byte) error {
	parsed, err := ParseFuelType(string(b))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
