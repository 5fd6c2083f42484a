// Package report renders blend results and comparison tables to raster
// snapshots and lays them out on a PDF page.
//
// Export is two-phase: a Render function draws the complete content into
// a Snapshot and marks it settled, and only then does an Exporter place
// it on a page. An unsettled snapshot is never exported.
package report

import (
	"errors"
	"image"
)

// Export errors.
var (
	ErrNoSnapshot         = errors.New("nothing to export")
	ErrSnapshotNotSettled = errors.New("snapshot is still being rendered")
)

// Snapshot is a finished raster of one report region.
type Snapshot struct {
	Name    string
	Image   *image.RGBA
	Settled bool
}

// File name prefixes.
const (
	reportPrefix   = "FuelForge_Report_"
	ComparisonName = "FuelForge_Comparison"
)

// ReportName is the export file name for a single blend.
func ReportName(blendID string) string { return reportPrefix + blendID }
