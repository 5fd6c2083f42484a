package display

import (
	"errors"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"

	"github.com/hammamikhairi/fuelforge/internal/compare"
	"github.com/hammamikhairi/fuelforge/internal/domain"
)

func TestPadding(t *testing.T) {
	if got := padRight("O₂", 5); runewidth.StringWidth(got) != 5 {
		t.Fatalf("padRight width = %d", runewidth.StringWidth(got))
	}
	if got := padLeft("7.5", 6); got != "   7.5" {
		t.Fatalf("padLeft = %q", got)
	}
	if got := padRight("toolong", 3); got != "toolong" {
		t.Fatalf("padRight should not truncate, got %q", got)
	}
}

func TestGridAlignsColumns(t *testing.T) {
	out := grid([]string{"Name", "Value"}, [][]string{{"a", "1.00"}, {"longer", "N/A"}})
	lines := strings.Split(out, "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header, rule and 2 rows, got %d lines", len(lines))
	}
	if lines[2] != "  a        1.00" {
		t.Fatalf("unexpected row %q", lines[2])
	}
	if lines[3] != "  longer    N/A" {
		t.Fatalf("unexpected row %q", lines[3])
	}
}

func TestRecipeView(t *testing.T) {
	if !strings.Contains(RecipeView(domain.Gasoline, nil, domain.ErrRecipeTooSmall), "catalog") {
		t.Fatal("empty recipe should mention the catalog")
	}
	r := domain.Recipe{{ID: "a", Name: "Isooctane", Percentage: 60}, {ID: "b", Name: "Ethanol", Percentage: 20}}
	out := RecipeView(domain.Gasoline, r, errors.New("total percentage is not 100%"))
	for _, want := range []string{"1. Isooctane", "2. Ethanol", "60.0%", "Total: 80.0%"} {
		if !strings.Contains(out, want) {
			t.Fatalf("recipe view missing %q:\n%s", want, out)
		}
	}
}

func TestTableViewShowsNA(t *testing.T) {
	r1 := &domain.BlendResult{ID: "b1", Recipe: domain.Recipe{{Name: "Diesel", Percentage: 100}}, Properties: domain.PropertyBag{domain.CN: 50}}
	r2 := &domain.BlendResult{ID: "b2", Recipe: domain.Recipe{{Name: "HVO", Percentage: 100}}, Properties: domain.PropertyBag{domain.LHV: 43}}
	out := TableView(compare.BuildTable([]*domain.BlendResult{r1, r2}))
	for _, want := range []string{"Blend 1", "Blend 2", "50.00", compare.NotAvailable, "Recipe", "100.0% HVO"} {
		if !strings.Contains(out, want) {
			t.Fatalf("table view missing %q:\n%s", want, out)
		}
	}
	if !strings.Contains(TableView(compare.Table{}), "No pinned") {
		t.Fatal("empty table should print a hint")
	}
}

func TestResultViewMarksMissingAxes(t *testing.T) {
	res := &domain.BlendResult{
		ID:         "blend_1",
		FuelType:   domain.Diesel,
		Recipe:     domain.Recipe{{Name: "Diesel Base", Percentage: 100}},
		Properties: domain.PropertyBag{domain.CN: 52.5},
		Insights:   domain.Insights{Viability: "Good."},
	}
	out := ResultView(res)
	for _, want := range []string{"blend_1", "52.50", "Cetane (CN)", "not reported", "Viability: Good."} {
		if !strings.Contains(out, want) {
			t.Fatalf("result view missing %q:\n%s", want, out)
		}
	}
}

func TestStatusBar(t *testing.T) {
	out := statusBar(Status{Fuel: domain.Diesel, Components: 3, Total: 100, Ready: true, Pinned: 2, Busy: true}, 120, 0)
	for _, want := range []string{"Diesel", "components: 3", "100.0%", "pinned: 2", "predicting"} {
		if !strings.Contains(out, want) {
			t.Fatalf("status bar missing %q: %s", want, out)
		}
	}
}

func TestCenterBlock(t *testing.T) {
	out := centerBlock("ab\nabcd\n", 8)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[0], "  ") {
		t.Fatalf("unexpected centring %q", out)
	}
}
