// Package export renders the finalized stroke list to PNG and PDF. It reads
// only committed strokes and computes its own bounding box and padding; the
// drawing engine is never involved.
package export

import (
	"gonum.org/v1/gonum/floats"

	"snappyruler/internal/engine"
)

// Padding is the margin, in canvas units, added around the drawing's
// bounding box in exported output.
const Padding = 20.0

// Bounds is an axis-aligned bounding box in canvas space.
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

// Width returns the horizontal extent.
func (b Bounds) Width() float64 { return b.MaxX - b.MinX }

// Height returns the vertical extent.
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// ComputeBounds returns the padded bounding box of all committed stroke
// points. The second return is false when there is nothing to export.
func ComputeBounds(strokes []*engine.Stroke) (Bounds, bool) {
	var xs, ys []float64
	for _, s := range strokes {
		for _, p := range s.Points {
			xs = append(xs, p.X)
			ys = append(ys, p.Y)
		}
	}
	if len(xs) == 0 {
		return Bounds{}, false
	}
	return Bounds{
		MinX: floats.Min(xs) - Padding,
		MinY: floats.Min(ys) - Padding,
		MaxX: floats.Max(xs) + Padding,
		MaxY: floats.Max(ys) + Padding,
	}, true
}
