package ui

import (
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"snappyruler/internal/engine"
	"snappyruler/internal/geometry"
	"snappyruler/internal/settings"
)

const zoomStep = 1.25

var (
	backgroundColor = color.NRGBA{R: 245, G: 246, B: 248, A: 255}
	gridColor       = color.NRGBA{R: 220, G: 220, B: 220, A: 120}
	inkColor        = color.NRGBA{A: 255}
	previewColor    = color.NRGBA{A: 140}
)

// SketchWidget is the interactive drawing surface. It owns no drawing state
// of its own: pointer events are forwarded to the engine and rendering reads
// back through Snapshot/ActiveStroke.
type SketchWidget struct {
	widget.BaseWidget

	engine   *engine.Engine
	settings *settings.Settings
	showGrid bool

	drawing bool
}

var _ fyne.Widget = (*SketchWidget)(nil)
var _ fyne.Draggable = (*SketchWidget)(nil)
var _ desktop.Mouseable = (*SketchWidget)(nil)

// NewSketchWidget creates the drawing surface bound to an engine.
func NewSketchWidget(eng *engine.Engine, sett *settings.Settings) *SketchWidget {
	w := &SketchWidget{
		engine:   eng,
		settings: sett,
		showGrid: true,
	}
	w.ExtendBaseWidget(w)
	return w
}

// ToggleGrid flips the background grid.
func (w *SketchWidget) ToggleGrid() {
	w.showGrid = !w.showGrid
	w.Refresh()
}

// ResetView restores the identity view.
func (w *SketchWidget) ResetView() {
	w.engine.UpdateView(1, 0, 0)
	w.Refresh()
}

func screenPt(pos fyne.Position) geometry.Point {
	return geometry.Pt(float64(pos.X), float64(pos.Y))
}

func (w *SketchWidget) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button == desktop.MouseButtonPrimary {
		w.drawing = true
		w.engine.StartStroke(screenPt(ev.Position))
		w.Refresh()
	}
}

func (w *SketchWidget) MouseUp(ev *desktop.MouseEvent) {
	if ev.Button == desktop.MouseButtonPrimary && w.drawing {
		w.drawing = false
		w.engine.EndStroke()
		w.Refresh()
	}
}

func (w *SketchWidget) MouseIn(*desktop.MouseEvent)    {}
func (w *SketchWidget) MouseOut()                      {}
func (w *SketchWidget) MouseMoved(*desktop.MouseEvent) {}

// Dragged extends the active stroke while drawing; any other drag pans the
// canvas.
func (w *SketchWidget) Dragged(ev *fyne.DragEvent) {
	if w.drawing {
		w.engine.ContinueStroke(screenPt(ev.Position))
	} else {
		v := w.engine.View()
		w.engine.UpdateView(v.Scale, v.PanX+float64(ev.Dragged.DX), v.PanY+float64(ev.Dragged.DY))
	}
	w.Refresh()
}

func (w *SketchWidget) DragEnd() {
	if w.drawing {
		w.drawing = false
		w.engine.EndStroke()
		w.Refresh()
	}
}

// Scrolled zooms about the cursor so the canvas point under it stays put.
func (w *SketchWidget) Scrolled(ev *fyne.ScrollEvent) {
	v := w.engine.View()
	factor := zoomStep
	if ev.Scrolled.DY < 0 {
		factor = 1 / zoomStep
	}
	newScale := engine.ClampScale(v.Scale * factor)
	ratio := newScale / v.Scale
	cx := float64(ev.Position.X)
	cy := float64(ev.Position.Y)
	w.engine.UpdateView(newScale, cx-(cx-v.PanX)*ratio, cy-(cy-v.PanY)*ratio)
	w.Refresh()
}

func (w *SketchWidget) CreateRenderer() fyne.WidgetRenderer {
	r := &sketchRenderer{widget: w}
	r.background = canvas.NewRectangle(backgroundColor)
	return r
}

type sketchRenderer struct {
	widget     *SketchWidget
	background *canvas.Rectangle
}

func (r *sketchRenderer) Objects() []fyne.CanvasObject {
	w := r.widget
	v := w.engine.View()
	size := w.Size()

	objects := []fyne.CanvasObject{r.background}
	if w.showGrid {
		objects = append(objects, gridLines(v, size, w.settings.GridSpacing)...)
	}

	for _, s := range w.engine.Snapshot() {
		objects = append(objects, strokeLines(s.Path(), v, inkColor, 2)...)
	}
	if active := w.engine.ActiveStroke(); active != nil {
		objects = append(objects, strokeLines(active.Path(), v, previewColor, 2)...)
	}
	return objects
}

// gridLines builds the background grid in screen space, spaced by the
// configured canvas pitch times the current zoom.
func gridLines(v engine.View, size fyne.Size, spacing float64) []fyne.CanvasObject {
	step := spacing * v.Scale
	if step < 4 {
		// Too dense to be useful at far zoom-out.
		return nil
	}
	var lines []fyne.CanvasObject
	for x := math.Mod(v.PanX, step); x < float64(size.Width); x += step {
		l := canvas.NewLine(gridColor)
		l.StrokeWidth = 0.5
		l.Position1 = fyne.NewPos(float32(x), 0)
		l.Position2 = fyne.NewPos(float32(x), size.Height)
		lines = append(lines, l)
	}
	for y := math.Mod(v.PanY, step); y < float64(size.Height); y += step {
		l := canvas.NewLine(gridColor)
		l.StrokeWidth = 0.5
		l.Position1 = fyne.NewPos(0, float32(y))
		l.Position2 = fyne.NewPos(size.Width, float32(y))
		lines = append(lines, l)
	}
	return lines
}

func strokeLines(path []geometry.Point, v engine.View, c color.Color, width float32) []fyne.CanvasObject {
	if len(path) == 0 {
		return nil
	}
	if len(path) == 1 {
		p := v.CanvasToScreen(path[0])
		dot := canvas.NewCircle(c)
		dot.Resize(fyne.NewSize(width*2, width*2))
		dot.Move(fyne.NewPos(float32(p.X)-width, float32(p.Y)-width))
		return []fyne.CanvasObject{dot}
	}
	lines := make([]fyne.CanvasObject, 0, len(path)-1)
	for i := 1; i < len(path); i++ {
		p1 := v.CanvasToScreen(path[i-1])
		p2 := v.CanvasToScreen(path[i])
		l := canvas.NewLine(c)
		l.StrokeWidth = width
		l.Position1 = fyne.NewPos(float32(p1.X), float32(p1.Y))
		l.Position2 = fyne.NewPos(float32(p2.X), float32(p2.Y))
		lines = append(lines, l)
	}
	return lines
}

func (r *sketchRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)
}

func (r *sketchRenderer) MinSize() fyne.Size {
	return fyne.NewSize(400, 300)
}

func (r *sketchRenderer) Refresh() {
	canvas.Refresh(r.widget)
}

func (r *sketchRenderer) Destroy() {}
