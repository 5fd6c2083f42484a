package metric

import (
	"github.com/hammamikhairi/fuelforge/internal/domain"
)

// Gauge is a labelled horizontal meter.
type Gauge struct {
	Label   string
	Unit    string
	Value   float64
	Range   domain.Range
	Percent float64 // 0..100
	Missing bool
}

// Gauges returns the headline meters of a result: the fuel's primary
// gauge (RON or CN) and the energy content.
func Gauges(result *domain.BlendResult) []Gauge {
	p := result.FuelType.Profile()
	return []Gauge{
		gauge(result, p.PrimaryGauge, string(p.PrimaryGauge), "", p.PrimaryGaugeRange),
		gauge(result, domain.LHV, "Energy Content", "MJ/kg", domain.Range{Min: Energy.Min, Max: Energy.Max}),
	}
}

func gauge(result *domain.BlendResult, key domain.PropertyKey, label, unit string, r domain.Range) Gauge {
	g := Gauge{Label: label, Unit: unit, Range: r}
	v, ok := result.Properties.Get(key)
	if !ok {
		g.Missing = true
		return g
	}
	g.Value = v
	g.Percent = 100 * Domain{Min: r.Min, Max: r.Max}.Fraction(v)
	return g
}
