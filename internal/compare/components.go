package compare

import (
	"fmt"

	"github.com/hammamikhairi/fuelforge/internal/domain"
)

// ComponentTable is the per-component property breakdown of one result.
type ComponentTable struct {
	Headers []string // "Component", "Percentage", then property labels
	Keys    []domain.PropertyKey
	Rows    [][]string
}

// BuildComponentTable lists each component of a result with the
// properties relevant to its fuel type. Property columns that are empty
// on every row are dropped.
func BuildComponentTable(result *domain.BlendResult) ComponentTable {
	candidates := append([]domain.PropertyKey{}, result.FuelType.Profile().DetailColumns...)
	candidates = append(candidates, domain.LHV, domain.Density)

	var keys []domain.PropertyKey
	for _, k := range candidates {
		for _, d := range result.ComponentDetails {
			if d.Properties.Has(k) {
				keys = append(keys, k)
				break
			}
		}
	}

	t := ComponentTable{Headers: []string{"Component", "Percentage"}, Keys: keys}
	for _, k := range keys {
		label := string(k)
		if info, ok := domain.LookupProperty(k); ok {
			label = info.Label()
		}
		t.Headers = append(t.Headers, label)
	}

	for _, d := range result.ComponentDetails {
		row := []string{d.Name, fmt.Sprintf("%.1f%%", d.Percentage)}
		for _, k := range keys {
			row = append(row, FormatValue(d.Properties, k))
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}
