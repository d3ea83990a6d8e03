// Package engine implements the geometric constraint and drawing-history
// core of the sketch surface: device↔canvas coordinate mapping, per-tool
// point snapping, the stroke lifecycle, bounded undo/redo, and the live
// measurement HUD.
//
// The engine has a single logical owner per canvas session and is driven
// synchronously from one input-event stream, so it takes no internal locks.
// Collaborators that read concurrently (rendering, export, share) get
// defensive copies via Snapshot.
package engine

import (
	"snappyruler/internal/geometry"
)

// Engine ties the core components together behind the operations the
// surrounding application calls. Every operation is synchronous and
// non-blocking; malformed or out-of-order event sequences degrade to silent
// no-ops rather than errors.
type Engine struct {
	view      View
	tool      Tool
	snap      SnapConfig
	active    *Stroke
	committed []*Stroke
	history   *History
	hud       HudMetrics
	gesture   PinchGesture

	changed chan struct{}

	// OnCommit, when set, is invoked with each stroke as it is committed to
	// the canvas. The share layer uses it to broadcast local strokes.
	OnCommit func(*Stroke)
}

// New creates an engine with an identity view and the given snap
// configuration.
func New(snap SnapConfig) *Engine {
	return &Engine{
		view:    DefaultView(),
		snap:    snap,
		history: NewHistory(),
		changed: make(chan struct{}, 1),
	}
}

// Changed returns the notification channel the rendering layer subscribes
// to. A pending notification means engine state has changed since the last
// Snapshot; notifications are coalesced, never blocking.
func (e *Engine) Changed() <-chan struct{} {
	return e.changed
}

func (e *Engine) notify() {
	select {
	case e.changed <- struct{}{}:
	default:
	}
}

// SetTool changes the active tool for subsequent strokes. A stroke already
// in progress keeps the tool it started with.
func (e *Engine) SetTool(t Tool) {
	e.tool = t
}

// ActiveTool returns the tool subsequent strokes will use.
func (e *Engine) ActiveTool() Tool {
	return e.tool
}

// SetSnapConfig replaces the snapping parameters (tolerance, angle set).
func (e *Engine) SetSnapConfig(snap SnapConfig) {
	e.snap = snap
}

// View returns the current device↔canvas transform.
func (e *Engine) View() View {
	return e.view
}

// UpdateView replaces the view transform, clamping scale to the legal zoom
// range.
func (e *Engine) UpdateView(scale, panX, panY float64) {
	e.view = View{Scale: ClampScale(scale), PanX: panX, PanY: panY}
	e.notify()
}

// StartStroke begins a new stroke at a screen-space point: the point is
// mapped to canvas space, history is checkpointed, and the stroke becomes
// active. A stroke already in progress is force-finalized first, the same
// rule applied when a second contact appears. Ignored while a pinch gesture
// is tracking: drawing and zoom/pan are mutually exclusive.
func (e *Engine) StartStroke(screen geometry.Point) {
	if e.gesture.Active() {
		return
	}
	if e.active != nil {
		e.EndStroke()
	}
	e.history.Record(e.committed)
	e.active = NewStroke(e.tool, e.view.ScreenToCanvas(screen))
	e.hud = metricsFor(e.active)
	e.notify()
}

// ContinueStroke maps a screen-space point to canvas space, applies the
// active tool's constraint, appends the result to the active stroke, and
// recomputes the HUD. No-op when no stroke is active.
func (e *Engine) ContinueStroke(screen geometry.Point) {
	if e.active == nil {
		return
	}
	canvas := e.view.ScreenToCanvas(screen)
	constrained := ConstrainerFor(e.active.Tool, e.snap).Constrain(e.active.Points, canvas)
	e.active.Append(constrained)
	e.hud = metricsFor(e.active)
	e.notify()
}

// EndStroke finalizes the active stroke and commits it to the canvas.
// No-op when no stroke is active.
func (e *Engine) EndStroke() {
	if e.active == nil {
		return
	}
	s := e.active
	e.active = nil
	s.Finalize()
	e.committed = append(e.committed, s)
	e.hud = HudMetrics{}
	if e.OnCommit != nil {
		e.OnCommit(s)
	}
	e.notify()
}

// Undo restores the most recent checkpoint; no-op when history is empty.
func (e *Engine) Undo() {
	if snap, ok := e.history.Undo(e.committed); ok {
		e.committed = snap
		e.notify()
	}
}

// Redo re-applies the most recently undone state; no-op when nothing has
// been undone since the last checkpointed action.
func (e *Engine) Redo() {
	if snap, ok := e.history.Redo(e.committed); ok {
		e.committed = snap
		e.notify()
	}
}

// Clear checkpoints the current canvas, then empties the committed stroke
// list. The cleared state is itself undoable.
func (e *Engine) Clear() {
	e.history.Record(e.committed)
	e.committed = nil
	e.notify()
}

// CanUndo and CanRedo report history availability for UI affordances.
func (e *Engine) CanUndo() bool { return e.history.CanUndo() }
func (e *Engine) CanRedo() bool { return e.history.CanRedo() }

// CurrentHud returns the live measurement metrics by value. Reads are pure:
// consecutive calls without an intervening ContinueStroke return identical
// values.
func (e *Engine) CurrentHud() HudMetrics {
	return e.hud
}

// Snapshot returns a copy of the committed stroke list for rendering,
// export, or share. The strokes inside are frozen; callers must not mutate
// them.
func (e *Engine) Snapshot() []*Stroke {
	snap := make([]*Stroke, len(e.committed))
	copy(snap, e.committed)
	return snap
}

// ActiveStroke returns the in-progress stroke, or nil. The rendering layer
// draws its Path as a preview; nothing else may touch it.
func (e *Engine) ActiveStroke() *Stroke {
	return e.active
}

// BeginGesture arms pinch tracking at the instant the input transitions to
// two simultaneous contacts (screen space). Any in-progress stroke is
// force-finalized first: single-pointer drawing and multi-pointer zoom/pan
// never overlap.
func (e *Engine) BeginGesture(a, b geometry.Point) {
	e.EndStroke()
	e.gesture.Begin(a, b, e.view)
}

// MoveGesture applies one two-contact frame to the view.
func (e *Engine) MoveGesture(a, b geometry.Point) {
	if !e.gesture.Active() {
		return
	}
	e.view = e.gesture.Update(a, b, e.view)
	e.notify()
}

// EndGesture stops pinch tracking. Dropping back to one contact does not
// resume the finalized stroke.
func (e *Engine) EndGesture() {
	e.gesture.End()
}

// AddRemoteStroke appends a finalized stroke received from a share peer.
// Remote strokes bypass history: undo remains local-only.
func (e *Engine) AddRemoteStroke(s *Stroke) {
	if s == nil || len(s.Points) == 0 {
		return
	}
	s.Finalize()
	e.committed = append(e.committed, s)
	e.notify()
}

// ClearRemote empties the canvas on behalf of a share peer, without a local
// checkpoint.
func (e *Engine) ClearRemote() {
	e.committed = nil
	e.notify()
}
