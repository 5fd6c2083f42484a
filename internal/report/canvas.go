package report

import (
	"image"
	"image/color"
	"image/draw"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var (
	colorBackground = drawing.ColorWhite
	colorText       = drawing.ColorFromHex("1f2933")
	colorMuted      = drawing.ColorFromHex("7b8794")
	colorGrid       = drawing.ColorFromHex("cbd2d9")
	colorAccent     = drawing.ColorFromHex("2680c2")
	colorHeader     = drawing.ColorFromHex("e4e7eb")
	colorMissing    = drawing.ColorFromHex("d64545")
)

var face = basicfont.Face7x13

// lineHeight is the baseline-to-baseline distance for face.
const lineHeight = 16

// canvas wraps an RGBA image with vector and text helpers.
type canvas struct {
	img *image.RGBA
	gc  *drawing.RasterGraphicContext
}

func newCanvas(w, h int) (*canvas, error) {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(colorBackground), image.Point{}, draw.Src)
	gc, err := drawing.NewRasterGraphicContext(img)
	if err != nil {
		return nil, err
	}
	return &canvas{img: img, gc: gc}, nil
}

type pt struct{ x, y float64 }

func (c *canvas) polygon(points []pt, fill, stroke color.Color, width float64) {
	if len(points) == 0 {
		return
	}
	c.gc.BeginPath()
	c.gc.MoveTo(points[0].x, points[0].y)
	for _, p := range points[1:] {
		c.gc.LineTo(p.x, p.y)
	}
	c.gc.Close()
	c.gc.SetLineWidth(width)
	c.gc.SetStrokeColor(stroke)
	if fill == nil {
		c.gc.Stroke()
		return
	}
	c.gc.SetFillColor(fill)
	c.gc.FillStroke()
}

func (c *canvas) line(a, b pt, stroke color.Color, width float64) {
	c.gc.BeginPath()
	c.gc.MoveTo(a.x, a.y)
	c.gc.LineTo(b.x, b.y)
	c.gc.SetLineWidth(width)
	c.gc.SetStrokeColor(stroke)
	c.gc.Stroke()
}

func (c *canvas) rect(x, y, w, h int, fill color.Color) {
	draw.Draw(c.img, image.Rect(x, y, x+w, y+h), image.NewUniform(fill), image.Point{}, draw.Over)
}

func textWidth(s string) int {
	return font.MeasureString(face, s).Ceil()
}

// text draws s with its baseline at y. align is -1 for end, 0 for
// centre, 1 for start.
func (c *canvas) text(s string, x, y int, align int, col color.Color) {
	switch align {
	case 0:
		x -= textWidth(s) / 2
	case -1:
		x -= textWidth(s)
	}
	d := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(s)
}

// wrap breaks s into lines no wider than width pixels.
func wrap(s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}
	var lines []string
	cur := words[0]
	for _, w := range words[1:] {
		if textWidth(cur+" "+w) > width {
			lines = append(lines, cur)
			cur = w
			continue
		}
		cur += " " + w
	}
	return append(lines, cur)
}
