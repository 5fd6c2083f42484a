package report

import (
	"errors"
	"image"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hammamikhairi/fuelforge/internal/compare"
	"github.com/hammamikhairi/fuelforge/internal/domain"
	"github.com/hammamikhairi/fuelforge/internal/logger"
)

func sampleResult(id string) *domain.BlendResult {
	return &domain.BlendResult{
		ID:       id,
		FuelType: domain.Gasoline,
		Recipe: domain.Recipe{
			{ID: "a", Name: "Isooctane", Percentage: 90},
			{ID: "b", Name: "Ethanol", Percentage: 10},
		},
		Properties: domain.PropertyBag{
			domain.RON:             98.2,
			domain.MON:             89.5,
			domain.AKI:             93.85,
			domain.LHV:             42.6,
			domain.EfficiencyScore: 71.2,
			domain.ViabilityScore:  88.4,
			domain.CostPerL:        0.78,
		},
		Insights: domain.Insights{
			Viability: "Excellent. Components are highly compatible.",
			Summary:   "This gasoline blend shows strong anti-knock properties.",
		},
	}
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestFit(t *testing.T) {
	const pageW, pageH = 210.0, 297.0
	tests := []struct {
		name       string
		imgW, imgH float64
		want       Placement
	}{
		{"wide image fits width", 1000, 500, Placement{X: 10, Y: 10, W: 190, H: 95}},
		{"square image fits width", 800, 800, Placement{X: 10, Y: 10, W: 190, H: 190}},
		{"tall image fits height", 500, 1000, Placement{X: (210 - 138.5) / 2, Y: 10, W: 138.5, H: 277}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Fit(tt.imgW, tt.imgH, pageW, pageH, PageMargin)
			if !approx(got.X, tt.want.X) || !approx(got.Y, tt.want.Y) || !approx(got.W, tt.want.W) || !approx(got.H, tt.want.H) {
				t.Fatalf("expected %+v, got %+v", tt.want, got)
			}
			if !approx(got.W/got.H, tt.imgW/tt.imgH) {
				t.Fatalf("aspect ratio changed: %v vs %v", got.W/got.H, tt.imgW/tt.imgH)
			}
			if got.X+got.W > pageW-PageMargin+1e-9 || got.Y+got.H > pageH-PageMargin+1e-9 {
				t.Fatalf("placement %+v exceeds margins", got)
			}
		})
	}
}

func TestExportRejectsMissingOrUnsettled(t *testing.T) {
	e := NewExporter(t.TempDir(), logger.New(logger.LevelOff, nil))

	if _, err := e.Export(nil, "x"); !errors.Is(err, ErrNoSnapshot) {
		t.Fatalf("expected ErrNoSnapshot, got %v", err)
	}
	unsettled := &Snapshot{Name: "x", Image: image.NewRGBA(image.Rect(0, 0, 10, 10))}
	if _, err := e.Export(unsettled, "x"); !errors.Is(err, ErrSnapshotNotSettled) {
		t.Fatalf("expected ErrSnapshotNotSettled, got %v", err)
	}
}

func TestRenderBlendReportAndExport(t *testing.T) {
	res := sampleResult("blend_42")
	snap, err := RenderBlendReport(res, 400)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !snap.Settled || snap.Image == nil {
		t.Fatal("rendered snapshot should be settled")
	}
	if snap.Name != "FuelForge_Report_blend_42" {
		t.Fatalf("unexpected name %q", snap.Name)
	}
	if w := snap.Image.Bounds().Dx(); w < 400+220 {
		t.Fatalf("image narrower than the radar viewBox: %d", w)
	}

	dir := filepath.Join(t.TempDir(), "exports")
	e := NewExporter(dir, logger.New(logger.LevelOff, nil))
	path, err := e.Export(snap, snap.Name)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if path != filepath.Join(dir, "FuelForge_Report_blend_42.pdf") {
		t.Fatalf("unexpected path %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read pdf: %v", err)
	}
	if !strings.HasPrefix(string(data), "%PDF-") {
		t.Fatal("output is not a PDF")
	}
}

func TestRenderBlendReportNil(t *testing.T) {
	if _, err := RenderBlendReport(nil, 400); !errors.Is(err, ErrNoSnapshot) {
		t.Fatalf("expected ErrNoSnapshot, got %v", err)
	}
}

func TestRenderComparison(t *testing.T) {
	if _, err := RenderComparison(compare.Table{}); !errors.Is(err, ErrNoSnapshot) {
		t.Fatalf("expected ErrNoSnapshot for empty table, got %v", err)
	}

	a := sampleResult("b1")
	b := sampleResult("b2")
	b.Properties = domain.PropertyBag{domain.RON: 95}
	tbl := compare.BuildTable([]*domain.BlendResult{a, b})

	snap, err := RenderComparison(tbl)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if snap.Name != ComparisonName || !snap.Settled {
		t.Fatalf("unexpected snapshot %q settled=%v", snap.Name, snap.Settled)
	}

	path, err := NewExporter(t.TempDir(), logger.New(logger.LevelOff, nil)).Export(snap, snap.Name)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if filepath.Base(path) != "FuelForge_Comparison.pdf" {
		t.Fatalf("unexpected file %q", path)
	}
}

func TestViabilityBarsSkipMissingScores(t *testing.T) {
	a := sampleResult("b1")
	b := sampleResult("b2")
	b.Properties = domain.PropertyBag{domain.RON: 95}
	c := sampleResult("b3")
	c.Properties = domain.PropertyBag{domain.ViabilityScore: 61}

	bars := viabilityBars(compare.BuildTable([]*domain.BlendResult{a, b, c}))
	if len(bars) != 2 {
		t.Fatalf("expected 2 bars, got %d", len(bars))
	}
	if bars[0].Label != "Blend 1" || bars[0].Value != 88.4 {
		t.Fatalf("unexpected first bar %+v", bars[0])
	}
	if bars[1].Label != "Blend 3" || bars[1].Value != 61 {
		t.Fatalf("unexpected second bar %+v", bars[1])
	}

	none := compare.BuildTable([]*domain.BlendResult{b})
	if got := viabilityBars(none); len(got) != 0 {
		t.Fatalf("expected no bars, got %+v", got)
	}
}

func TestTableColumnsFooter(t *testing.T) {
	tbl := compare.BuildTable([]*domain.BlendResult{sampleResult("b1")})
	cols := tableColumns(tbl)
	if len(cols) != 2 {
		t.Fatalf("expected label + 1 blend column, got %d", len(cols))
	}
	last := cols[1][len(cols[1])-1]
	if last != "10.0% Ethanol" {
		t.Fatalf("expected recipe footer, got %q", last)
	}
	if cols[1][0] != "Blend 1: Isooctane + Ethanol" {
		t.Fatalf("unexpected header %q", cols[1][0])
	}
}

func TestWrap(t *testing.T) {
	lines := wrap("one two three four five six", textWidth("one two three"))
	if len(lines) != 2 || lines[0] != "one two three" {
		t.Fatalf("unexpected wrap %q", lines)
	}
	if wrap("   ", 100) != nil {
		t.Fatal("blank text should wrap to nothing")
	}
}
