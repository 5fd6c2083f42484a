package report

import (
	"bytes"
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"

	"github.com/hammamikhairi/fuelforge/internal/logger"
)

// PageMargin is the margin, in millimetres, around the placed image.
const PageMargin = 10.0

// Placement is where an image lands on a page, in page units.
type Placement struct {
	X, Y, W, H float64
}

// Fit scales an imgW x imgH image onto a pageW x pageH page: full width
// minus margins first, and if that is too tall, full height minus margins
// instead. Aspect ratio is kept, the image is centred horizontally and
// sits margin below the top edge.
func Fit(imgW, imgH, pageW, pageH, margin float64) Placement {
	if imgW <= 0 || imgH <= 0 {
		return Placement{X: margin, Y: margin}
	}
	w := pageW - 2*margin
	h := w * imgH / imgW
	if h > pageH-2*margin {
		h = pageH - 2*margin
		w = h * imgW / imgH
	}
	return Placement{X: (pageW - w) / 2, Y: margin, W: w, H: h}
}

// ExporterOption configures an Exporter.
type ExporterOption func(*Exporter)

// WithPageSize overrides the A4 page (e.g. "Letter").
func WithPageSize(size string) ExporterOption {
	return func(e *Exporter) { e.pageSize = size }
}

// Exporter writes settled snapshots as single-page PDFs.
type Exporter struct {
	dir      string
	pageSize string
	log      *logger.Logger
}

// NewExporter writes into dir, creating it on first export.
func NewExporter(dir string, log *logger.Logger, opts ...ExporterOption) *Exporter {
	e := &Exporter{dir: dir, pageSize: "A4", log: log}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Export writes snap to "{dir}/{fileName}.pdf" and returns the path.
func (e *Exporter) Export(snap *Snapshot, fileName string) (string, error) {
	if snap == nil || snap.Image == nil {
		e.log.Warn("export %q: no snapshot", fileName)
		return "", ErrNoSnapshot
	}
	if !snap.Settled {
		return "", ErrSnapshotNotSettled
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, snap.Image); err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}

	pdf := fpdf.New("P", "mm", e.pageSize, "")
	pdf.SetTitle(fileName, true)
	pdf.SetCreator("FuelForge", true)
	pdf.AddPage()

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	info := pdf.RegisterImageOptionsReader(snap.Name, opts, &buf)
	if err := pdf.Error(); err != nil {
		return "", fmt.Errorf("register image: %w", err)
	}

	pageW, pageH := pdf.GetPageSize()
	place := Fit(info.Width(), info.Height(), pageW, pageH, PageMargin)
	pdf.ImageOptions(snap.Name, place.X, place.Y, place.W, place.H, false, opts, 0, "")

	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(e.dir, fileName+".pdf")
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	e.log.Info("exported %s (%dx%d px)", path, snap.Image.Bounds().Dx(), snap.Image.Bounds().Dy())
	return path, nil
}
