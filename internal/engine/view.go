package engine

import (
	"snappyruler/internal/geometry"
)

// Zoom limits for the canvas view. The lower bound keeps the inverse
// transform well-defined (scale never reaches zero).
const (
	MinScale = 0.1
	MaxScale = 5.0
)

// View is the current device↔canvas transform: canvas coordinates are
// scaled then offset to produce screen coordinates.
type View struct {
	Scale float64
	PanX  float64
	PanY  float64
}

// DefaultView returns the identity view.
func DefaultView() View {
	return View{Scale: 1}
}

// ClampScale restricts a scale factor to the allowed zoom range.
func ClampScale(s float64) float64 {
	if s < MinScale {
		return MinScale
	}
	if s > MaxScale {
		return MaxScale
	}
	return s
}

// CanvasToScreen maps a canvas-space point to screen space.
func (v View) CanvasToScreen(p geometry.Point) geometry.Point {
	return geometry.Point{
		X: p.X*v.Scale + v.PanX,
		Y: p.Y*v.Scale + v.PanY,
	}
}

// ScreenToCanvas maps a screen-space point to canvas space. It is the exact
// algebraic inverse of CanvasToScreen; Scale is clamped away from zero so the
// division is always defined.
func (v View) ScreenToCanvas(p geometry.Point) geometry.Point {
	s := ClampScale(v.Scale)
	return geometry.Point{
		X: (p.X - v.PanX) / s,
		Y: (p.Y - v.PanY) / s,
	}
}

// PinchGesture tracks a two-contact zoom/pan gesture. It is armed at the
// instant the input transitions to two simultaneous contacts and updated for
// every subsequent two-contact frame. Zoom is relative to the captured
// baseline; pan accumulates the centroid delta between consecutive frames.
type PinchGesture struct {
	active       bool
	initialDist  float64
	initialScale float64
	lastCentroid geometry.Point
}

// Begin captures the gesture baseline from the two contact points and the
// current view.
func (g *PinchGesture) Begin(a, b geometry.Point, v View) {
	g.active = true
	g.initialDist = a.Distance(b)
	g.initialScale = v.Scale
	g.lastCentroid = geometry.Midpoint(a, b)
}

// Active reports whether a gesture is in progress.
func (g *PinchGesture) Active() bool {
	return g.active
}

// Update applies one two-contact move to the view and returns the result.
// A degenerate baseline (both contacts at the same point) leaves the scale
// untouched; pan still tracks the centroid.
func (g *PinchGesture) Update(a, b geometry.Point, v View) View {
	if !g.active {
		return v
	}
	if g.initialDist > 0 {
		v.Scale = ClampScale(g.initialScale * a.Distance(b) / g.initialDist)
	}
	centroid := geometry.Midpoint(a, b)
	v.PanX += centroid.X - g.lastCentroid.X
	v.PanY += centroid.Y - g.lastCentroid.Y
	g.lastCentroid = centroid
	return v
}

// End terminates the gesture. A later transition back to one contact does
// not resume drawing; the next stroke starts fresh on pointer-down.
func (g *PinchGesture) End() {
	g.active = false
}
