package export

import (
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"snappyruler/internal/engine"
)

// A4 printable area in millimetres, after a 10mm margin on each side.
const (
	pageWidthMM  = 190.0
	pageHeightMM = 277.0
	pageMarginMM = 10.0
)

// WritePDF draws the committed strokes as line segments on an A4 page,
// scaled uniformly so the padded bounding box fills the printable area.
func WritePDF(path string, strokes []*engine.Stroke) error {
	bounds, ok := ComputeBounds(strokes)
	if !ok {
		return fmt.Errorf("nothing to export: canvas is empty")
	}

	scale := pageWidthMM / bounds.Width()
	if s := pageHeightMM / bounds.Height(); s < scale {
		scale = s
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetFillColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.SetLineCapStyle("round")

	toPage := func(x, y float64) (float64, float64) {
		return pageMarginMM + (x-bounds.MinX)*scale,
			pageMarginMM + (y-bounds.MinY)*scale
	}

	for _, s := range strokes {
		if len(s.Points) == 1 {
			// A tap leaves a dot, as in the PNG renderer.
			x, y := toPage(s.Points[0].X, s.Points[0].Y)
			pdf.Circle(x, y, 0.25, "F")
			continue
		}
		for i := 1; i < len(s.Points); i++ {
			x1, y1 := toPage(s.Points[i-1].X, s.Points[i-1].Y)
			x2, y2 := toPage(s.Points[i].X, s.Points[i].Y)
			pdf.Line(x1, y1, x2, y2)
		}
	}
	return pdf.OutputFileAndClose(path)
}
