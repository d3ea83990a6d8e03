package engine

// HistoryDepth is the hard cap on each history stack. Exceeding it evicts
// the oldest entry, never the newest.
const HistoryDepth = 50

// Snapshot is an immutable copy of the committed stroke list at one point in
// time. Only the slice is copied: the strokes inside are frozen at commit,
// so snapshots share their point data structurally and a checkpoint costs
// O(strokes), not O(points).
type Snapshot []*Stroke

func snapshotOf(strokes []*Stroke) Snapshot {
	snap := make(Snapshot, len(strokes))
	copy(snap, strokes)
	return snap
}

// History holds bounded undo and redo stacks of canvas snapshots.
type History struct {
	undo []Snapshot
	redo []Snapshot
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{
		undo: make([]Snapshot, 0, HistoryDepth),
		redo: make([]Snapshot, 0, HistoryDepth),
	}
}

// Record pushes a checkpoint of the current state onto the undo stack and
// clears the redo stack, keeping the timeline strictly linear. Called once
// per discrete user action, never per pointer move.
func (h *History) Record(current []*Stroke) {
	if len(h.undo) >= HistoryDepth {
		h.undo = h.undo[1:]
	}
	h.undo = append(h.undo, snapshotOf(current))
	h.redo = h.redo[:0]
}

// Undo exchanges the current state for the most recent checkpoint. It
// returns the restored snapshot and true, or nil and false when there is
// nothing to undo.
func (h *History) Undo(current []*Stroke) (Snapshot, bool) {
	if len(h.undo) == 0 {
		return nil, false
	}
	if len(h.redo) >= HistoryDepth {
		h.redo = h.redo[1:]
	}
	h.redo = append(h.redo, snapshotOf(current))
	top := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	return top, true
}

// Redo re-applies the most recently undone state; symmetric to Undo.
func (h *History) Redo(current []*Stroke) (Snapshot, bool) {
	if len(h.redo) == 0 {
		return nil, false
	}
	if len(h.undo) >= HistoryDepth {
		h.undo = h.undo[1:]
	}
	h.undo = append(h.undo, snapshotOf(current))
	top := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	return top, true
}

// CanUndo reports whether an undo step is available.
func (h *History) CanUndo() bool {
	return len(h.undo) > 0
}

// CanRedo reports whether a redo step is available.
func (h *History) CanRedo() bool {
	return len(h.redo) > 0
}
