package display

import (
	_ "embed"
	"os"
	"strings"

	"github.com/charmbracelet/x/term"
	"github.com/mattn/go-runewidth"

	"github.com/hammamikhairi/fuelforge/internal/radar"
)

//go:embed banner.txt
var bannerRaw string

// pixelsPerColumn converts terminal columns into report pixels when
// sizing the radar chart.
const pixelsPerColumn = 5

// RenderBanner returns the banner art horizontally centred for the
// current terminal width. To change the banner just replace banner.txt.
func RenderBanner() string {
	return centerBlock(bannerRaw, termWidth())
}

func centerBlock(raw string, width int) string {
	lines := strings.Split(strings.TrimRight(raw, "\n"), "\n")
	if len(lines) == 0 {
		return ""
	}

	maxW := 0
	for _, l := range lines {
		maxW = max(maxW, runewidth.StringWidth(l))
	}

	var b strings.Builder
	for _, l := range lines {
		if width > maxW {
			b.WriteString(strings.Repeat(" ", (width-maxW)/2))
		}
		b.WriteString(BannerStyle.Render(l))
		b.WriteByte('\n')
	}
	return b.String()
}

// RadarDrawingSize derives the radar drawing size from the terminal
// width, clamped to the supported band.
func RadarDrawingSize() float64 {
	return radar.DrawingSize(float64(termWidth() * pixelsPerColumn))
}

// termWidth returns the current terminal column count, or 80 as fallback.
func termWidth() int {
	if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 {
		return w
	}
	return 80
}
