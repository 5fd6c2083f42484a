package radar

import (
	"fmt"
	"html"
	"strings"
)

// SVG renders the geometry as a standalone SVG document. The outer
// width/height is the drawing size; the viewBox includes label padding.
func (g Geometry) SVG() string {
	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s">`,
		num(g.DrawingSize), num(g.DrawingSize), num(g.ViewBox), num(g.ViewBox))
	b.WriteString("\n")

	b.WriteString(`  <g class="grid-group">` + "\n")
	for _, r := range g.Rings {
		fmt.Fprintf(&b, `    <polygon class="radar-grid" points="%s" fill="none" stroke="#d4d4d8"/>`+"\n", pointList(r.Points))
		fmt.Fprintf(&b, `    <text class="radar-grid-label" x="%s" y="%s" dy="0.3em" font-size="11" fill="#71717a">%s</text>`+"\n",
			num(r.LabelPos.X), num(r.LabelPos.Y), num(r.Score))
	}
	b.WriteString("  </g>\n")

	b.WriteString(`  <g class="spokes-group">` + "\n")
	for i, s := range g.Spokes {
		fmt.Fprintf(&b, `    <line class="radar-spoke" x1="%s" y1="%s" x2="%s" y2="%s" stroke="#d4d4d8"/>`+"\n",
			num(s.From.X), num(s.From.Y), num(s.To.X), num(s.To.Y))
		l := g.Labels[i]
		fmt.Fprintf(&b, `    <text class="radar-label" x="%s" y="%s" dy="0.3em" text-anchor="%s" font-size="13">%s</text>`+"\n",
			num(l.Pos.X), num(l.Pos.Y), l.Anchor, html.EscapeString(l.Text))
	}
	b.WriteString("  </g>\n")

	fmt.Fprintf(&b, `  <path class="radar-area" d="%s" fill="#38bdf8" fill-opacity="0.35" stroke="#0284c7" stroke-width="2"/>`+"\n", g.Path())
	b.WriteString("</svg>\n")
	return b.String()
}

func pointList(vs []Vec) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = num(v.X) + "," + num(v.Y)
	}
	return strings.Join(parts, " ")
}
