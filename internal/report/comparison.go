package report

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"strconv"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/hammamikhairi/fuelforge/internal/compare"
	"github.com/hammamikhairi/fuelforge/internal/domain"
)

const (
	cellPad      = 8
	chartHeight  = 280
	barWidth     = 48
	barSpacing   = 32
	barSlotWidth = 96
)

// RenderComparison draws a comparison table followed by a bar chart of
// viability scores when the table has them.
func RenderComparison(t compare.Table) (*Snapshot, error) {
	if t.Empty() {
		return nil, ErrNoSnapshot
	}

	cols := tableColumns(t)
	widths := make([]int, len(cols))
	for i, col := range cols {
		for _, s := range col {
			if w := textWidth(s) + 2*cellPad; w > widths[i] {
				widths[i] = w
			}
		}
	}
	tableW := 0
	for _, w := range widths {
		tableW += w
	}
	rows := len(cols[0])

	bars, err := viabilityChart(t)
	if err != nil {
		return nil, fmt.Errorf("viability chart: %w", err)
	}
	width := tableW + 2*pad
	height := pad + lineHeight*2 + rows*lineHeight + pad
	if bars != nil {
		if bw := bars.Bounds().Dx() + 2*pad; bw > width {
			width = bw
		}
		height += bars.Bounds().Dy() + pad
	}

	c, err := newCanvas(width, height)
	if err != nil {
		return nil, fmt.Errorf("canvas: %w", err)
	}

	y := pad + lineHeight
	c.text(fmt.Sprintf("Comparison of %d blends", len(t.Columns)), pad, y, 1, colorText)
	y += lineHeight / 2

	c.rect(pad, y, tableW, lineHeight, colorHeader)
	for r := 0; r < rows; r++ {
		x := pad
		base := y + (r+1)*lineHeight - 4
		for i, col := range cols {
			cellCol := colorText
			if col[r] == compare.NotAvailable {
				cellCol = colorMuted
			}
			if i == 0 {
				c.text(col[r], x+cellPad, base, 1, colorText)
			} else {
				c.text(col[r], x+widths[i]-cellPad, base, -1, cellCol)
			}
			x += widths[i]
		}
		c.line(pt{float64(pad), float64(y + (r+1)*lineHeight)}, pt{float64(pad + tableW), float64(y + (r+1)*lineHeight)}, colorGrid, 1)
	}
	y += rows*lineHeight + pad

	if bars != nil {
		b := bars.Bounds()
		draw.Draw(c.img, image.Rect(pad, y, pad+b.Dx(), y+b.Dy()), bars, b.Min, draw.Over)
	}

	return &Snapshot{Name: ComparisonName, Image: c.img, Settled: true}, nil
}

// tableColumns flattens t into text columns: a label column then one
// column per blend. The recipe footer lists each blend's components.
func tableColumns(t compare.Table) [][]string {
	footer := 0
	for _, c := range t.Columns {
		if len(c.Recipe) > footer {
			footer = len(c.Recipe)
		}
	}

	label := []string{"Property"}
	for _, r := range t.Rows {
		label = append(label, r.Property.Label())
	}
	label = append(label, "Recipe")
	for i := 1; i < footer; i++ {
		label = append(label, "")
	}

	out := [][]string{label}
	for i, c := range t.Columns {
		col := []string{c.Title + ": " + c.Summary}
		for _, r := range t.Rows {
			col = append(col, r.Cells[i])
		}
		for j := 0; j < footer; j++ {
			if j < len(c.Recipe) {
				col = append(col, c.Recipe[j])
			} else {
				col = append(col, "")
			}
		}
		out = append(out, col)
	}
	return out
}

// viabilityBars returns one bar per blend that reports a viability
// score. Blends without one get no bar.
func viabilityBars(t compare.Table) []chart.Value {
	row, ok := t.Row(domain.ViabilityScore)
	if !ok {
		return nil
	}
	var bars []chart.Value
	for i, cell := range row.Cells {
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			continue
		}
		bars = append(bars, chart.Value{Label: t.Columns[i].Title, Value: v})
	}
	return bars
}

// viabilityChart renders the viability score of each blend as a bar
// chart, or returns nil when no blend reports one.
func viabilityChart(t compare.Table) (image.Image, error) {
	bars := viabilityBars(t)
	if len(bars) == 0 {
		return nil, nil
	}

	bc := chart.BarChart{
		Title:      "Viability Score",
		Width:      120 + len(bars)*barSlotWidth,
		Height:     chartHeight,
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: 100},
			Ticks: []chart.Tick{{Value: 0, Label: "0"}, {Value: 25, Label: "25"}, {Value: 50, Label: "50"}, {Value: 75, Label: "75"}, {Value: 100, Label: "100"}},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := bc.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return png.Decode(&buf)
}
