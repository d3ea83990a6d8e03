package engine

import (
	"github.com/google/uuid"

	"snappyruler/internal/geometry"
)

// Stroke is one continuous pointer-down-to-pointer-up drawing action. It is
// mutated only while incomplete; Finalize freezes it, after which it is
// committed to the canvas and never touched again.
type Stroke struct {
	ID       string           `json:"id"`
	Tool     Tool             `json:"tool"`
	Points   []geometry.Point `json:"points"`
	Complete bool             `json:"complete"`

	// path is the renderable polyline, rebuilt from Points on every append
	// so it can never diverge from the point sequence.
	path []geometry.Point
}

// NewStroke begins a stroke with the given tool and its first point.
func NewStroke(tool Tool, first geometry.Point) *Stroke {
	s := &Stroke{
		ID:     uuid.NewString(),
		Tool:   tool,
		Points: []geometry.Point{first},
	}
	s.rebuildPath()
	return s
}

// Append adds a point to an in-progress stroke and rebuilds the renderable
// path from the full point sequence. Appending to a finalized stroke is a
// silent no-op.
func (s *Stroke) Append(p geometry.Point) {
	if s.Complete {
		return
	}
	s.Points = append(s.Points, p)
	s.rebuildPath()
}

// Finalize freezes the stroke. It is the only legal mutation once drawing
// has ended.
func (s *Stroke) Finalize() {
	s.Complete = true
}

// Path returns the renderable polyline for the stroke. Strokes decoded from
// the wire arrive with only Points populated, so the path is rebuilt on
// first use.
func (s *Stroke) Path() []geometry.Point {
	if s.path == nil && len(s.Points) > 0 {
		s.rebuildPath()
	}
	return s.path
}

// First returns the stroke's first point. Points is non-empty from creation
// onward.
func (s *Stroke) First() geometry.Point {
	return s.Points[0]
}

// Last returns the stroke's most recent point.
func (s *Stroke) Last() geometry.Point {
	return s.Points[len(s.Points)-1]
}

func (s *Stroke) rebuildPath() {
	s.path = make([]geometry.Point, len(s.Points))
	copy(s.path, s.Points)
}
