// Package radar turns an ordered list of normalized metrics into radar
// chart geometry: the data polygon, concentric grid rings, spokes and
// label anchors. Everything here is a pure function of its inputs.
package radar

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Layout constants, in viewBox units.
const (
	MinDrawingSize = 300.0
	MaxDrawingSize = 450.0

	// ViewBoxPadding is added to the drawing size to leave room for
	// labels outside the chart.
	ViewBoxPadding = 220.0
	RadiusScale    = 0.75
	RingCount      = 4
	LabelOffset    = 20.0

	// AnchorThreshold is how far a label must sit from the vertical
	// centre line before it is start/end aligned.
	AnchorThreshold = 10.0

	ringLabelDX = 5.0
)

var (
	ErrTooFewAxes  = errors.New("radar: at least 3 axes are required")
	ErrInvalidSize = errors.New("radar: drawing size must be positive")
)

// Point is one labelled axis value. Fraction is expected in [0,1] and
// is clamped when placed.
type Point struct {
	Label    string
	Fraction float64
	// Missing marks axes whose source value was not reported.
	Missing bool
}

// Vec is a 2D coordinate in viewBox units (y grows downward).
type Vec struct {
	X, Y float64
}

// Anchor is the horizontal text alignment of a label.
type Anchor int

const (
	AnchorMiddle Anchor = iota
	AnchorStart
	AnchorEnd
)

// String returns the SVG text-anchor value.
func (a Anchor) String() string {
	switch a {
	case AnchorStart:
		return "start"
	case AnchorEnd:
		return "end"
	default:
		return "middle"
	}
}

// Label is an axis caption.
type Label struct {
	Text   string
	Pos    Vec
	Anchor Anchor
}

// Ring is one concentric grid level.
type Ring struct {
	Level  int
	Radius float64
	// Score is the proportional score printed next to the ring (25, 50, ...).
	Score    float64
	Points   []Vec // ring polygon through every axis
	LabelPos Vec
}

// Spoke is an axis line from the centre to the outer ring.
type Spoke struct {
	From, To Vec
}

// Geometry is the complete renderable description of a radar chart.
type Geometry struct {
	DrawingSize float64
	ViewBox     float64
	Center      Vec
	Radius      float64
	// Angles holds each axis direction in degrees, -90 pointing up.
	Angles   []float64
	Vertices []Vec
	Rings    []Ring
	Spokes   []Spoke
	Labels   []Label
}

// DrawingSize clamps a container width into the supported band.
func DrawingSize(containerWidth float64) float64 {
	if math.IsNaN(containerWidth) {
		return MinDrawingSize
	}
	return math.Min(MaxDrawingSize, math.Max(MinDrawingSize, containerWidth))
}

// Build computes the chart geometry for the given axes.
func Build(points []Point, drawingSize float64) (Geometry, error) {
	n := len(points)
	if n < 3 {
		return Geometry{}, fmt.Errorf("%w (got %d)", ErrTooFewAxes, n)
	}
	if math.IsNaN(drawingSize) || drawingSize <= 0 {
		return Geometry{}, fmt.Errorf("%w (got %g)", ErrInvalidSize, drawingSize)
	}

	viewBox := drawingSize + ViewBoxPadding
	c := viewBox / 2
	g := Geometry{
		DrawingSize: drawingSize,
		ViewBox:     viewBox,
		Center:      Vec{c, c},
		Radius:      c * RadiusScale,
		Angles:      make([]float64, n),
		Vertices:    make([]Vec, n),
		Spokes:      make([]Spoke, n),
		Labels:      make([]Label, n),
	}

	step := 360.0 / float64(n)
	for i, p := range points {
		g.Angles[i] = -90 + float64(i)*step
		g.Vertices[i] = g.at(i, clamp01(p.Fraction)*g.Radius)
		g.Spokes[i] = Spoke{From: g.Center, To: g.at(i, g.Radius)}

		pos := g.at(i, g.Radius+LabelOffset)
		g.Labels[i] = Label{Text: p.Label, Pos: pos, Anchor: anchorFor(pos.X, c)}
	}

	g.Rings = make([]Ring, RingCount)
	for k := 1; k <= RingCount; k++ {
		r := g.Radius * float64(k) / RingCount
		ring := Ring{
			Level:    k,
			Radius:   r,
			Score:    100 * float64(k) / RingCount,
			Points:   make([]Vec, n),
			LabelPos: Vec{c + ringLabelDX, c - r},
		}
		for i := range points {
			ring.Points[i] = g.at(i, r)
		}
		g.Rings[k-1] = ring
	}
	return g, nil
}

// at returns the point at distance r from the centre along axis i.
func (g Geometry) at(i int, r float64) Vec {
	rad := g.Angles[i] * math.Pi / 180
	return Vec{
		X: g.Center.X + math.Cos(rad)*r,
		Y: g.Center.Y + math.Sin(rad)*r,
	}
}

// Path renders the data polygon as an SVG path, closed back to the
// first vertex.
func (g Geometry) Path() string {
	return pathOf(g.Vertices)
}

func pathOf(vs []Vec) string {
	var b strings.Builder
	for i, v := range vs {
		if i == 0 {
			b.WriteString("M ")
		} else {
			b.WriteString(" L ")
		}
		fmt.Fprintf(&b, "%s,%s", num(v.X), num(v.Y))
	}
	if len(vs) > 0 {
		b.WriteString(" Z")
	}
	return b.String()
}

func anchorFor(x, center float64) Anchor {
	switch {
	case x > center+AnchorThreshold:
		return AnchorStart
	case x < center-AnchorThreshold:
		return AnchorEnd
	default:
		return AnchorMiddle
	}
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// num formats a coordinate with at most two decimals.
func num(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}
