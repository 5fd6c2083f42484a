package report

import (
	"fmt"
	"math"

	"github.com/hammamikhairi/fuelforge/internal/compare"
	"github.com/hammamikhairi/fuelforge/internal/domain"
	"github.com/hammamikhairi/fuelforge/internal/metric"
	"github.com/hammamikhairi/fuelforge/internal/radar"
)

const (
	pad         = 24
	gaugeWidth  = 260
	gaugeHeight = 10
)

// RenderBlendReport draws the radar fingerprint, gauges, key metrics and
// insights of one result.
func RenderBlendReport(result *domain.BlendResult, drawingSize float64) (*Snapshot, error) {
	if result == nil {
		return nil, ErrNoSnapshot
	}
	points := metric.Fingerprint(result)
	geo, err := radar.Build(points, radar.DrawingSize(drawingSize))
	if err != nil {
		return nil, fmt.Errorf("radar: %w", err)
	}

	p := result.FuelType.Profile()
	width := int(math.Ceil(geo.ViewBox)) + 2*pad
	textWidthPx := width - 2*pad
	insights := append(wrap(result.Insights.Viability, textWidthPx), "")
	insights = append(insights, wrap(result.Insights.Summary, textWidthPx)...)

	header := 3 * lineHeight
	gauges := metric.Gauges(result)
	body := (len(p.KeyMetrics)+1)*lineHeight + len(gauges)*(lineHeight+gaugeHeight+8)
	height := pad + header + int(math.Ceil(geo.ViewBox)) + body + (len(insights)+1)*lineHeight + pad

	c, err := newCanvas(width, height)
	if err != nil {
		return nil, fmt.Errorf("canvas: %w", err)
	}

	y := pad + lineHeight
	c.text(fmt.Sprintf("%s blend %s", p.DisplayName, result.ID), pad, y, 1, colorText)
	y += lineHeight
	c.text(result.Recipe.Summary(), pad, y, 1, colorMuted)
	y += lineHeight

	drawRadar(c, geo, points, pad, y)
	y += int(math.Ceil(geo.ViewBox))

	for _, g := range gauges {
		y += lineHeight
		value := "N/A"
		if !g.Missing {
			value = fmt.Sprintf("%.2f %s", g.Value, g.Unit)
		}
		c.text(g.Label, pad, y, 1, colorText)
		c.text(value, pad+gaugeWidth, y, -1, colorText)
		y += 4
		c.rect(pad, y, gaugeWidth, gaugeHeight, colorHeader)
		if !g.Missing {
			c.rect(pad, y, int(float64(gaugeWidth)*g.Percent/100), gaugeHeight, colorAccent)
		}
		y += gaugeHeight + 4
	}

	y += lineHeight
	c.text("Key metrics", pad, y, 1, colorText)
	for _, key := range p.KeyMetrics {
		y += lineHeight
		info, _ := domain.LookupProperty(key)
		c.text(info.Label(), pad, y, 1, colorMuted)
		c.text(compare.FormatValue(result.Properties, key), pad+gaugeWidth, y, -1, colorText)
	}

	y += lineHeight
	for _, line := range insights {
		y += lineHeight
		c.text(line, pad, y, 1, colorText)
	}

	return &Snapshot{Name: ReportName(result.ID), Image: c.img, Settled: true}, nil
}

// drawRadar paints g with its origin at (ox, oy). Labels of axes whose
// value was not reported are drawn in the warning colour.
func drawRadar(c *canvas, g radar.Geometry, points []radar.Point, ox, oy int) {
	off := func(v radar.Vec) pt { return pt{v.X + float64(ox), v.Y + float64(oy)} }
	offAll := func(vs []radar.Vec) []pt {
		out := make([]pt, len(vs))
		for i, v := range vs {
			out[i] = off(v)
		}
		return out
	}

	for _, r := range g.Rings {
		c.polygon(offAll(r.Points), nil, colorGrid, 1)
		lp := off(r.LabelPos)
		c.text(fmt.Sprintf("%.0f", r.Score), int(lp.x), int(lp.y), 1, colorMuted)
	}
	for _, s := range g.Spokes {
		c.line(off(s.From), off(s.To), colorGrid, 1)
	}
	c.polygon(offAll(g.Vertices), colorAccent.WithAlpha(96), colorAccent, 2)

	for i, l := range g.Labels {
		p := off(l.Pos)
		col := colorText
		if i < len(points) && points[i].Missing {
			col = colorMissing
		}
		align := 0
		switch l.Anchor {
		case radar.AnchorStart:
			align = 1
		case radar.AnchorEnd:
			align = -1
		}
		c.text(l.Text, int(p.x), int(p.y), align, col)
	}
}
