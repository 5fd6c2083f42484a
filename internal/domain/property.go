package domain

import "sort"

// PropertyKey names a predicted or catalogued fuel property. The string
// value matches the backend's JSON field name.
type PropertyKey string

const (
	ViabilityScore     PropertyKey = "Viability_Score"
	RON                PropertyKey = "RON"
	MON                PropertyKey = "MON"
	AKI                PropertyKey = "AKI"
	CN                 PropertyKey = "CN"
	LHV                PropertyKey = "LHV"
	Density            PropertyKey = "Density"
	O2WtPercent        PropertyKey = "O2_wt_percent"
	CostPerL           PropertyKey = "Simulated_Cost_per_L"
	EfficiencyScore    PropertyKey = "Efficiency_Score"
	OxidativeStability PropertyKey = "Oxidative_Stability"
	GumContent         PropertyKey = "Gum_Content"
	Acidity            PropertyKey = "Acidity"
)

// PropertyInfo is the display metadata of a registered property.
type PropertyInfo struct {
	Key  PropertyKey
	Name string
	Unit string
}

// Label returns "Name (unit)" or just the name when unitless.
func (p PropertyInfo) Label() string {
	if p.Unit == "" {
		return p.Name
	}
	return p.Name + " (" + p.Unit + ")"
}

// registry is the fixed display order of every known property.
var registry = []PropertyInfo{
	{ViabilityScore, "Viability Score", ""},
	{RON, "RON", ""},
	{MON, "MON", ""},
	{AKI, "AKI", ""},
	{CN, "Cetane Number", ""},
	{LHV, "LHV", "MJ/kg"},
	{Density, "Density", "g/mL"},
	{O2WtPercent, "Oxygen", "wt%"},
	{CostPerL, "Cost", "$/L"},
	{EfficiencyScore, "Efficiency Score", ""},
	{OxidativeStability, "Oxidative Stability", "h"},
	{GumContent, "Gum Content", "mg/100mL"},
	{Acidity, "Acidity", "mg KOH/g"},
}

// Properties returns the registry in display order.
func Properties() []PropertyInfo {
	out := make([]PropertyInfo, len(registry))
	copy(out, registry)
	return out
}

// LookupProperty returns the metadata for key.
func LookupProperty(key PropertyKey) (PropertyInfo, bool) {
	for _, p := range registry {
		if p.Key == key {
			return p, true
		}
	}
	return PropertyInfo{}, false
}

// PropertyBag maps property keys to values. A missing key means the
// property does not apply (or was not reported).
type PropertyBag map[PropertyKey]float64

// Get returns the value for key and whether it is present.
func (b PropertyBag) Get(key PropertyKey) (float64, bool) {
	if b == nil {
		return 0, false
	}
	v, ok := b[key]
	return v, ok
}

// Has reports whether key is present.
func (b PropertyBag) Has(key PropertyKey) bool {
	_, ok := b.Get(key)
	return ok
}

// Clone returns an independent copy.
func (b PropertyBag) Clone() PropertyBag {
	if b == nil {
		return nil
	}
	out := make(PropertyBag, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}

// Keys returns the present keys, registered ones first in registry
// order, then any unregistered keys sorted by name.
func (b PropertyBag) Keys() []PropertyKey {
	var out []PropertyKey
	seen := make(map[PropertyKey]bool, len(b))
	for _, p := range registry {
		if b.Has(p.Key) {
			out = append(out, p.Key)
			seen[p.Key] = true
		}
	}
	var extra []PropertyKey
	for k := range b {
		if !seen[k] {
			extra = append(extra, k)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(out, extra...)
}
