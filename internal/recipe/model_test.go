package recipe

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/hammamikhairi/fuelforge/internal/domain"
)

func seqIDs() Option {
	n := 0
	return WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("c%d", n)
	})
}

func build(t *testing.T, parts ...domain.Component) *Model {
	t.Helper()
	return FromRecipe(domain.Recipe(parts), seqIDs())
}

func TestAddCapacity(t *testing.T) {
	m := New(seqIDs())
	for i := 0; i < domain.MaxComponents; i++ {
		c, err := m.Add(fmt.Sprintf("Comp%d", i))
		if err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
		if c.Percentage != 0 {
			t.Fatalf("new component should start at 0%%, got %g", c.Percentage)
		}
	}

	_, err := m.Add("Overflow")
	if !errors.Is(err, domain.ErrCapacityExceeded) {
		t.Fatalf("expected ErrCapacityExceeded, got %v", err)
	}
	if m.Len() != domain.MaxComponents {
		t.Fatalf("failed add changed size to %d", m.Len())
	}
}

func TestAddRejectsDuplicate(t *testing.T) {
	m := build(t, domain.Component{Name: "BaseA", Percentage: 90}, domain.Component{Name: "AdditiveB", Percentage: 10})
	if _, err := m.Add("BaseA"); !errors.Is(err, domain.ErrDuplicateComponent) {
		t.Fatalf("expected ErrDuplicateComponent, got %v", err)
	}
}

func TestRemoveMinimumSize(t *testing.T) {
	m := build(t, domain.Component{Name: "BaseA", Percentage: 90}, domain.Component{Name: "AdditiveB", Percentage: 10})

	first, _ := m.At(0)
	if err := m.Remove(first.ID); !errors.Is(err, domain.ErrMinimumSize) {
		t.Fatalf("expected ErrMinimumSize, got %v", err)
	}
	if m.Len() != 2 {
		t.Fatalf("failed remove changed size to %d", m.Len())
	}

	if err := m.Remove("nope"); !errors.Is(err, domain.ErrComponentNotFound) {
		t.Fatalf("expected ErrComponentNotFound, got %v", err)
	}

	c, err := m.Add("AdditiveC")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := m.Remove(c.ID); err != nil {
		t.Fatalf("remove third component: %v", err)
	}
	if m.Len() != 2 {
		t.Fatalf("expected 2 components, got %d", m.Len())
	}
}

func TestSetName(t *testing.T) {
	m := build(t, domain.Component{Name: "BaseA", Percentage: 90}, domain.Component{Name: "AdditiveB", Percentage: 10})
	second, _ := m.At(1)

	tests := []struct {
		name    string
		newName string
		wantErr error
	}{
		{"duplicate of other", "BaseA", domain.ErrDuplicateComponent},
		{"same as itself", "AdditiveB", nil},
		{"fresh name", "AdditiveC", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := m.SetName(second.ID, tt.newName)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			got, _ := m.At(1)
			if got.ID != second.ID {
				t.Fatalf("rename changed id: %s -> %s", second.ID, got.ID)
			}
			if tt.wantErr == nil && got.Name != tt.newName {
				t.Fatalf("name = %q, want %q", got.Name, tt.newName)
			}
		})
	}
}

func TestSetPercentageRange(t *testing.T) {
	m := build(t, domain.Component{Name: "BaseA", Percentage: 90}, domain.Component{Name: "AdditiveB", Percentage: 10})
	c, _ := m.At(0)

	for _, v := range []float64{-0.1, 100.01, math.NaN()} {
		if err := m.SetPercentage(c.ID, v); !errors.Is(err, domain.ErrOutOfRange) {
			t.Fatalf("SetPercentage(%g): expected ErrOutOfRange, got %v", v, err)
		}
	}
	if got, _ := m.At(0); got.Percentage != 90 {
		t.Fatalf("rejected edit changed value to %g", got.Percentage)
	}

	if err := m.SetPercentage(c.ID, 100); err != nil {
		t.Fatalf("100 should be accepted: %v", err)
	}
	if m.Total() != 110 {
		t.Fatalf("total = %g, want 110 (total is not checked per edit)", m.Total())
	}
}

func TestNormalizeScenarioA(t *testing.T) {
	m := build(t, domain.Component{Name: "BaseA", Percentage: 60}, domain.Component{Name: "AdditiveB", Percentage: 20})

	if !m.Normalize() {
		t.Fatal("expected normalize to change an 80% recipe")
	}
	a, _ := m.At(0)
	b, _ := m.At(1)
	if math.Abs(a.Percentage-75) > 1e-9 || math.Abs(b.Percentage-25) > 1e-9 {
		t.Fatalf("got [%g, %g], want [75, 25]", a.Percentage, b.Percentage)
	}
}

func TestNormalizeProperties(t *testing.T) {
	tests := [][]float64{
		{60, 20},
		{1, 2, 3},
		{33.3, 33.3, 33.3},
		{0.001, 99, 47, 12.5, 3},
		{100, 100, 100, 100, 100},
	}
	for _, shares := range tests {
		t.Run(fmt.Sprint(shares), func(t *testing.T) {
			var parts []domain.Component
			for i, s := range shares {
				parts = append(parts, domain.Component{Name: fmt.Sprintf("C%d", i), Percentage: s})
			}
			m := build(t, parts...)
			m.Normalize()
			if math.Abs(m.Total()-100) > 1e-6 {
				t.Fatalf("total after normalize = %.9f", m.Total())
			}

			before := m.Components()
			m.Normalize()
			after := m.Components()
			for i := range before {
				if math.Abs(before[i].Percentage-after[i].Percentage) > 1e-9 {
					t.Fatalf("second normalize changed slot %d: %g -> %g", i, before[i].Percentage, after[i].Percentage)
				}
			}
		})
	}
}

func TestNormalizeZeroTotal(t *testing.T) {
	m := build(t, domain.Component{Name: "BaseA"}, domain.Component{Name: "AdditiveB"})
	if m.Normalize() {
		t.Fatal("normalize of a zero recipe should be a no-op")
	}
	if m.Total() != 0 {
		t.Fatalf("total = %g", m.Total())
	}
}

func TestCanPredict(t *testing.T) {
	tests := []struct {
		name    string
		parts   []domain.Component
		wantErr error
	}{
		{"scenario B: single component", []domain.Component{{Name: "BaseA", Percentage: 60}}, domain.ErrRecipeTooSmall},
		{"scenario C: exact 100", []domain.Component{{Name: "BaseA", Percentage: 90}, {Name: "AdditiveB", Percentage: 10}}, nil},
		{"within tolerance", []domain.Component{{Name: "BaseA", Percentage: 90.05}, {Name: "AdditiveB", Percentage: 10}}, nil},
		{"not normalized", []domain.Component{{Name: "BaseA", Percentage: 60}, {Name: "AdditiveB", Percentage: 20}}, domain.ErrRecipeNotNormalized},
		{"empty", nil, domain.ErrRecipeTooSmall},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := build(t, tt.parts...)
			err := m.CanPredict()
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if m.Ready() != (tt.wantErr == nil) {
				t.Fatalf("Ready() = %v disagrees with CanPredict", m.Ready())
			}
		})
	}
}

func TestCloneIsIndependent(t *testing.T) {
	m := build(t, domain.Component{Name: "BaseA", Percentage: 90}, domain.Component{Name: "AdditiveB", Percentage: 10})
	c := m.Clone()
	first, _ := c.At(0)
	if err := c.SetPercentage(first.ID, 50); err != nil {
		t.Fatalf("set: %v", err)
	}
	if orig, _ := m.At(0); orig.Percentage != 90 {
		t.Fatalf("clone edit leaked into original: %g", orig.Percentage)
	}
}

func TestSummary(t *testing.T) {
	m := build(t, domain.Component{Name: "Isooctane (C8)", Percentage: 90}, domain.Component{Name: "Ethanol (C2)", Percentage: 10})
	if got := m.Summary(); got != "Isooctane + Ethanol" {
		t.Fatalf("summary = %q", got)
	}
}
