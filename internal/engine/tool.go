package engine

import (
	"encoding/json"
	"math"

	"snappyruler/internal/geometry"
)

// Tool identifies which drawing aid is active for a stroke.
type Tool int

const (
	ToolFreehand Tool = iota
	ToolRuler
	ToolSetSquare
	ToolProtractor
	ToolCompass
)

var toolNames = map[Tool]string{
	ToolFreehand:   "freehand",
	ToolRuler:      "ruler",
	ToolSetSquare:  "setsquare",
	ToolProtractor: "protractor",
	ToolCompass:    "compass",
}

func (t Tool) String() string {
	if name, ok := toolNames[t]; ok {
		return name
	}
	return "freehand"
}

// ParseTool maps a tool name back to its Tool value. Unknown names fall back
// to freehand so strokes received from newer peers still render.
func ParseTool(name string) Tool {
	for t, n := range toolNames {
		if n == name {
			return t
		}
	}
	return ToolFreehand
}

// MarshalJSON encodes the tool by name so shared strokes stay readable
// across versions.
func (t Tool) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON decodes a tool name, falling back to freehand for names this
// version does not know.
func (t *Tool) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	*t = ParseTool(name)
	return nil
}

// SnapConfig carries the user-tunable snapping parameters consumed by the
// ruler constraint. The tolerance and angle set come from settings, not from
// constants baked into the constraint.
type SnapConfig struct {
	// ToleranceDeg is the angular window within which a raw angle is
	// replaced by a canonical one.
	ToleranceDeg float64
	// RulerAngles lists the canonical angles (degrees) the ruler snaps to,
	// tried in order.
	RulerAngles []float64
}

// DefaultSnapConfig returns the stock 15° tolerance and snap-angle set.
func DefaultSnapConfig() SnapConfig {
	return SnapConfig{
		ToleranceDeg: 15,
		RulerAngles:  []float64{0, 90, -90, 180, 45, -45, 135},
	}
}

// Constrainer maps a raw candidate point, given the stroke's existing
// points, to a geometrically constrained point. Implementations are
// stateless: they consult only their explicit inputs.
type Constrainer interface {
	Constrain(points []geometry.Point, raw geometry.Point) geometry.Point
}

// ConstrainerFor selects the constraint implementation for a tool.
func ConstrainerFor(tool Tool, cfg SnapConfig) Constrainer {
	switch tool {
	case ToolRuler:
		return rulerConstraint{cfg: cfg}
	case ToolSetSquare:
		return setSquareConstraint{}
	case ToolProtractor:
		return protractorConstraint{}
	default:
		// Freehand draws unconstrained. Compass currently has no distinct
		// constraint either; it keeps its own variant so an arc lock can
		// land here without touching dispatch.
		return identityConstraint{}
	}
}

type identityConstraint struct{}

func (identityConstraint) Constrain(_ []geometry.Point, raw geometry.Point) geometry.Point {
	return raw
}

// rulerConstraint snaps the segment from the stroke's first point to the raw
// point onto the nearest canonical angle, when within tolerance. Horizontal
// snaps keep the raw x, vertical snaps keep the raw y, and diagonal snaps
// use the smaller axis delta with signs taken from the raw deltas.
type rulerConstraint struct {
	cfg SnapConfig
}

func (r rulerConstraint) Constrain(points []geometry.Point, raw geometry.Point) geometry.Point {
	if len(points) == 0 {
		return raw
	}
	start := points[0]
	dx := raw.X - start.X
	dy := raw.Y - start.Y
	if dx == 0 && dy == 0 {
		return raw
	}
	angle := start.AngleTo(raw)

	for _, snap := range r.cfg.RulerAngles {
		if geometry.AngularDistance(angle, snap) >= r.cfg.ToleranceDeg {
			continue
		}
		switch {
		case isHorizontal(snap):
			return geometry.Point{X: raw.X, Y: start.Y}
		case isVertical(snap):
			return geometry.Point{X: start.X, Y: raw.Y}
		default: // diagonal
			d := math.Min(math.Abs(dx), math.Abs(dy))
			return geometry.Point{
				X: start.X + math.Copysign(d, dx),
				Y: start.Y + math.Copysign(d, dy),
			}
		}
	}
	return raw
}

func isHorizontal(angle float64) bool {
	n := geometry.NormalizeDeg(angle)
	return n == 0 || n == 180
}

func isVertical(angle float64) bool {
	n := geometry.NormalizeDeg(angle)
	return n == 90 || n == -90
}

// setSquareConstraint locks the raw point to the dominant axis relative to
// the second-to-last stroke point, producing clean right-angle corners.
type setSquareConstraint struct{}

func (setSquareConstraint) Constrain(points []geometry.Point, raw geometry.Point) geometry.Point {
	if len(points) < 2 {
		return raw
	}
	prev := points[len(points)-2]
	dx := raw.X - prev.X
	dy := raw.Y - prev.Y
	if math.Abs(dx) >= math.Abs(dy) {
		return geometry.Point{X: raw.X, Y: prev.Y}
	}
	return geometry.Point{X: prev.X, Y: raw.Y}
}

// protractorAngles is the fixed candidate set, in tie-break order: when two
// candidates are equally near, the earlier one wins.
var protractorAngles = []float64{
	0, 30, -30, 45, -45, 60, -60, 90, -90, 120, -120, 135, -135, 150, -150, 180,
}

// protractorConstraint replaces the angle from the stroke's first point to
// the raw point with the nearest candidate angle, preserving distance.
type protractorConstraint struct{}

func (protractorConstraint) Constrain(points []geometry.Point, raw geometry.Point) geometry.Point {
	if len(points) == 0 {
		return raw
	}
	start := points[0]
	dist := start.Distance(raw)
	if dist == 0 {
		return raw
	}
	return geometry.PointAt(start, nearestProtractorAngle(start.AngleTo(raw)), dist)
}

// nearestProtractorAngle picks the candidate closest to angle by shortest
// angular distance; exact ties keep the earlier-listed candidate.
func nearestProtractorAngle(angle float64) float64 {
	best := protractorAngles[0]
	bestDist := geometry.AngularDistance(angle, best)
	for _, cand := range protractorAngles[1:] {
		if d := geometry.AngularDistance(angle, cand); d < bestDist {
			best = cand
			bestDist = d
		}
	}
	return best
}
