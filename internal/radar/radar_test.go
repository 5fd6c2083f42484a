package radar

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"
)

const eps = 1e-9

func fivePoints(fracs ...float64) []Point {
	labels := []string{"Octane", "Energy", "Efficiency", "Cleanliness", "Cost"}
	out := make([]Point, len(fracs))
	for i, f := range fracs {
		out[i] = Point{Label: labels[i%len(labels)], Fraction: f}
	}
	return out
}

func dist(a, b Vec) float64 { return math.Hypot(a.X-b.X, a.Y-b.Y) }

func TestDrawingSize(t *testing.T) {
	tests := []struct {
		width, want float64
	}{
		{100, 300},
		{300, 300},
		{375, 375},
		{450, 450},
		{1200, 450},
		{math.NaN(), 300},
	}
	for _, tt := range tests {
		if got := DrawingSize(tt.width); got != tt.want {
			t.Fatalf("DrawingSize(%g) = %g, want %g", tt.width, got, tt.want)
		}
	}
}

func TestBuildLayout(t *testing.T) {
	g, err := Build(fivePoints(0.5, 0.5, 0.5, 0.5, 0.5), 300)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if g.ViewBox != 520 {
		t.Fatalf("viewBox = %g, want 520", g.ViewBox)
	}
	if g.Center != (Vec{260, 260}) {
		t.Fatalf("center = %+v", g.Center)
	}
	if g.Radius != 195 {
		t.Fatalf("radius = %g, want 195", g.Radius)
	}
}

func TestAnglesFiveAxes(t *testing.T) {
	g, err := Build(fivePoints(1, 1, 1, 1, 1), 400)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if g.Angles[0] != -90 {
		t.Fatalf("first axis should point up, got %g°", g.Angles[0])
	}
	for i := 1; i < len(g.Angles); i++ {
		if d := g.Angles[i] - g.Angles[i-1]; d != 72 {
			t.Fatalf("axis %d-%d differ by %g°, want 72°", i-1, i, d)
		}
	}
	// First vertex straight above the centre.
	if math.Abs(g.Vertices[0].X-g.Center.X) > eps || g.Vertices[0].Y >= g.Center.Y {
		t.Fatalf("first vertex %+v not above centre %+v", g.Vertices[0], g.Center)
	}
	// Second axis lies clockwise (to the right on screen).
	if g.Vertices[1].X <= g.Center.X {
		t.Fatalf("second vertex %+v should be right of centre", g.Vertices[1])
	}
}

func TestVertexPlacement(t *testing.T) {
	g, err := Build(fivePoints(0, 1, 0.5, -3, 7), 450)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if g.Vertices[0] != g.Center {
		t.Fatalf("fraction 0 should sit on the centre, got %+v", g.Vertices[0])
	}
	if d := dist(g.Vertices[1], g.Center); math.Abs(d-g.Radius) > eps {
		t.Fatalf("fraction 1 at distance %g, want %g", d, g.Radius)
	}
	if d := dist(g.Vertices[2], g.Center); math.Abs(d-g.Radius/2) > eps {
		t.Fatalf("fraction 0.5 at distance %g, want %g", d, g.Radius/2)
	}
	if g.Vertices[3] != g.Center {
		t.Fatalf("negative fraction should clamp to the centre, got %+v", g.Vertices[3])
	}
	if d := dist(g.Vertices[4], g.Center); math.Abs(d-g.Radius) > eps {
		t.Fatalf("fraction >1 should clamp to the radius, got %g", d)
	}
}

func TestRingsAndSpokes(t *testing.T) {
	g, err := Build(fivePoints(0.2, 0.4, 0.6, 0.8, 1), 360)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(g.Rings) != RingCount {
		t.Fatalf("expected %d rings, got %d", RingCount, len(g.Rings))
	}
	for k, r := range g.Rings {
		level := float64(k + 1)
		if math.Abs(r.Radius-g.Radius*level/RingCount) > eps {
			t.Fatalf("ring %d radius %g", k+1, r.Radius)
		}
		if r.Score != 100*level/RingCount {
			t.Fatalf("ring %d score %g", k+1, r.Score)
		}
		for i, p := range r.Points {
			if math.Abs(dist(p, g.Center)-r.Radius) > eps {
				t.Fatalf("ring %d point %d off the ring", k+1, i)
			}
		}
		if r.LabelPos != (Vec{g.Center.X + 5, g.Center.Y - r.Radius}) {
			t.Fatalf("ring %d label at %+v", k+1, r.LabelPos)
		}
	}
	if g.Rings[RingCount-1].Score != 100 {
		t.Fatalf("outer ring should be labelled 100")
	}
	for i, s := range g.Spokes {
		if s.From != g.Center || math.Abs(dist(s.To, g.Center)-g.Radius) > eps {
			t.Fatalf("spoke %d = %+v", i, s)
		}
	}
}

func TestLabelAnchors(t *testing.T) {
	g, err := Build(fivePoints(1, 1, 1, 1, 1), 300)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	want := []Anchor{AnchorMiddle, AnchorStart, AnchorStart, AnchorEnd, AnchorEnd}
	for i, l := range g.Labels {
		if l.Anchor != want[i] {
			t.Fatalf("label %d (%q at x=%.1f) anchor %s, want %s", i, l.Text, l.Pos.X, l.Anchor, want[i])
		}
		if d := dist(l.Pos, g.Center); math.Abs(d-(g.Radius+LabelOffset)) > eps {
			t.Fatalf("label %d at distance %g", i, d)
		}
	}

	// Four axes: the bottom label is also centred.
	g4, err := Build([]Point{{Label: "N"}, {Label: "E"}, {Label: "S"}, {Label: "W"}}, 300)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	want4 := []Anchor{AnchorMiddle, AnchorStart, AnchorMiddle, AnchorEnd}
	for i, l := range g4.Labels {
		if l.Anchor != want4[i] {
			t.Fatalf("4-axis label %s anchor %s, want %s", l.Text, l.Anchor, want4[i])
		}
	}
}

func TestBuildDeterministic(t *testing.T) {
	pts := fivePoints(0.1, 0.9, 0.33, 0.75, 0.5)
	a, err := Build(pts, 420)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	b, _ := Build(pts, 420)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("identical inputs produced different geometry")
	}
	if a.Path() != b.Path() || a.SVG() != b.SVG() {
		t.Fatal("serialized geometry differs between identical builds")
	}
}

func TestBuildErrors(t *testing.T) {
	if _, err := Build(fivePoints(1, 1), 300); !errors.Is(err, ErrTooFewAxes) {
		t.Fatalf("expected ErrTooFewAxes, got %v", err)
	}
	if _, err := Build(fivePoints(1, 1, 1), 0); !errors.Is(err, ErrInvalidSize) {
		t.Fatalf("expected ErrInvalidSize, got %v", err)
	}
}

func TestPathClosed(t *testing.T) {
	g, err := Build(fivePoints(0, 0, 0), 300)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	want := "M 260,260 L 260,260 L 260,260 Z"
	if got := g.Path(); got != want {
		t.Fatalf("path = %q, want %q", got, want)
	}
}

func TestSVG(t *testing.T) {
	g, err := Build([]Point{{Label: "O<2>", Fraction: 1}, {Label: "B"}, {Label: "C"}}, 300)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	svg := g.SVG()
	for _, want := range []string{`viewBox="0 0 520 520"`, `width="300"`, "O&lt;2&gt;", `text-anchor="middle"`, ">100<", g.Path()} {
		if !strings.Contains(svg, want) {
			t.Fatalf("svg missing %q:\n%s", want, svg)
		}
	}
	if strings.Count(svg, "<polygon") != RingCount {
		t.Fatalf("expected %d ring polygons", RingCount)
	}
}
