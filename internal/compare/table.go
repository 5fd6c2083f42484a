// Package compare builds side-by-side property tables from pinned blend
// results. Tables are always rebuilt from the current input; nothing is
// patched incrementally.
package compare

import (
	"fmt"
	"strconv"

	"github.com/hammamikhairi/fuelforge/internal/domain"
)

// NotAvailable is the cell text for a property a blend did not report.
const NotAvailable = "N/A"

// Column is the header of one blend column.
type Column struct {
	BlendID string
	Title   string // "Blend 1", "Blend 2", ...
	Summary string // "Isooctane + Ethanol"
	// Recipe lists "<pct>% <name>" per component, for the footer row.
	Recipe []string
}

// Row is one property across every blend.
type Row struct {
	Property domain.PropertyInfo
	Cells    []string
}

// Table is a property x blend matrix.
type Table struct {
	Columns []Column
	Rows    []Row
}

// Empty reports whether the table has no columns.
func (t Table) Empty() bool { return len(t.Columns) == 0 }

// Row returns the row for key, if present.
func (t Table) Row(key domain.PropertyKey) (Row, bool) {
	for _, r := range t.Rows {
		if r.Property.Key == key {
			return r, true
		}
	}
	return Row{}, false
}

// BuildTable lays out the given results as columns in input order. A
// property row is included only when at least one result reports it.
func BuildTable(results []*domain.BlendResult) Table {
	t := Table{Columns: make([]Column, 0, len(results))}
	for i, r := range results {
		t.Columns = append(t.Columns, Column{
			BlendID: r.ID,
			Title:   "Blend " + strconv.Itoa(i+1),
			Summary: r.Summary(),
			Recipe:  recipeLines(r.Recipe),
		})
	}

	for _, info := range domain.Properties() {
		if !anyHas(results, info.Key) {
			continue
		}
		row := Row{Property: info, Cells: make([]string, len(results))}
		for i, r := range results {
			row.Cells[i] = FormatValue(r.Properties, info.Key)
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// FormatValue renders a property with two decimals, or NotAvailable.
func FormatValue(bag domain.PropertyBag, key domain.PropertyKey) string {
	v, ok := bag.Get(key)
	if !ok {
		return NotAvailable
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func anyHas(results []*domain.BlendResult, key domain.PropertyKey) bool {
	for _, r := range results {
		if r.Properties.Has(key) {
			return true
		}
	}
	return false
}

func recipeLines(r domain.Recipe) []string {
	out := make([]string, len(r))
	for i, c := range r {
		out[i] = fmt.Sprintf("%.1f%% %s", c.Percentage, c.Name)
	}
	return out
}
