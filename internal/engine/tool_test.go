package engine

import (
	"math"
	"testing"

	"snappyruler/internal/geometry"
)

func TestRulerConstraint(t *testing.T) {
	c := rulerConstraint{cfg: DefaultSnapConfig()}
	start := geometry.Pt(0, 0)

	tests := []struct {
		name string
		raw  geometry.Point
		want geometry.Point
	}{
		// angle ≈ 5.7°: inside the horizontal window.
		{"near horizontal", geometry.Pt(100, 10), geometry.Pt(100, 0)},
		// angle ≈ 174.3°: horizontal from the other side.
		{"near horizontal west", geometry.Pt(-100, 10), geometry.Pt(-100, 0)},
		{"near vertical", geometry.Pt(10, 100), geometry.Pt(0, 100)},
		{"near vertical down", geometry.Pt(-10, -100), geometry.Pt(0, -100)},
		// angle ≈ 49°: snaps to +45° with d = min(|dx|,|dy|).
		{"near plus diagonal", geometry.Pt(100, 115), geometry.Pt(100, 100)},
		// angle ≈ -41°: snaps to −45°, signs from the raw deltas.
		{"near minus diagonal", geometry.Pt(115, -100), geometry.Pt(100, -100)},
		// angle ≈ 131°: the 135° window, mirrored diagonal.
		{"near 135 diagonal", geometry.Pt(-100, 115), geometry.Pt(-100, 100)},
		// angle = 30°: outside every window, passes through.
		{"unsnapped", geometry.Pt(100, 57.735), geometry.Pt(100, 57.735)},
		// angle ≈ -135°: not in the default snap set.
		{"southwest unsnapped", geometry.Pt(-100, -110), geometry.Pt(-100, -110)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Constrain([]geometry.Point{start}, tt.raw)
			if !pointsEqual(got, tt.want, 1e-9) {
				t.Errorf("Constrain(%v) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestRulerConstraint_Degenerate(t *testing.T) {
	c := rulerConstraint{cfg: DefaultSnapConfig()}

	// No points yet: pass through.
	raw := geometry.Pt(3, 4)
	if got := c.Constrain(nil, raw); got != raw {
		t.Errorf("empty stroke: got %v, want %v", got, raw)
	}
	// Raw coincides with start: zero-length vector passes through.
	start := geometry.Pt(3, 4)
	if got := c.Constrain([]geometry.Point{start}, start); got != start {
		t.Errorf("coincident point: got %v, want %v", got, start)
	}
}

func TestRulerConstraint_ConfigurableTolerance(t *testing.T) {
	// A 2° tolerance leaves a 5.7° approach unsnapped.
	tight := rulerConstraint{cfg: SnapConfig{ToleranceDeg: 2, RulerAngles: []float64{0, 90, -90, 180}}}
	raw := geometry.Pt(100, 10)
	if got := tight.Constrain([]geometry.Point{geometry.Pt(0, 0)}, raw); got != raw {
		t.Errorf("tight tolerance snapped %v to %v", raw, got)
	}
	// An empty angle set disables the ruler entirely.
	off := rulerConstraint{cfg: SnapConfig{ToleranceDeg: 15}}
	if got := off.Constrain([]geometry.Point{geometry.Pt(0, 0)}, raw); got != raw {
		t.Errorf("empty angle set snapped %v to %v", raw, got)
	}
}

func TestSetSquareConstraint(t *testing.T) {
	c := setSquareConstraint{}
	// prev (second-to-last) is (0, 0); (50, 50) is the latest point.
	points := []geometry.Point{geometry.Pt(0, 0), geometry.Pt(50, 50)}

	tests := []struct {
		name string
		raw  geometry.Point
		want geometry.Point
	}{
		{"horizontal dominance", geometry.Pt(40, 10), geometry.Pt(40, 0)},
		{"vertical dominance", geometry.Pt(10, 40), geometry.Pt(0, 40)},
		{"tie goes horizontal", geometry.Pt(30, 30), geometry.Pt(30, 0)},
		{"negative deltas", geometry.Pt(-40, -10), geometry.Pt(-40, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Constrain(points, tt.raw)
			if got != tt.want {
				t.Errorf("Constrain(%v) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestSetSquareConstraint_TooFewPoints(t *testing.T) {
	c := setSquareConstraint{}
	raw := geometry.Pt(40, 10)
	if got := c.Constrain([]geometry.Point{geometry.Pt(0, 0)}, raw); got != raw {
		t.Errorf("one point: got %v, want pass-through %v", got, raw)
	}
	if got := c.Constrain(nil, raw); got != raw {
		t.Errorf("no points: got %v, want pass-through %v", got, raw)
	}
}

func TestProtractorConstraint(t *testing.T) {
	c := protractorConstraint{}
	start := geometry.Pt(0, 0)

	tests := []struct {
		name     string
		rawAngle float64
		wantAng  float64
	}{
		{"40 to 45", 40, 45},
		{"exact zero", 0, 0},
		{"minus 28 to minus 30", -28, -30},
		{"100 to 90", 100, 90},
		{"172 to 180", 172, 180},
		{"minus 172 to 180", -172, 180},
	}
	const dist = 100.0
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := geometry.PointAt(start, tt.rawAngle, dist)
			got := c.Constrain([]geometry.Point{start}, raw)
			want := geometry.PointAt(start, tt.wantAng, dist)
			if !pointsEqual(got, want, 1e-6) {
				t.Errorf("angle %v: got %v, want %v", tt.rawAngle, got, want)
			}
			if d := start.Distance(got); math.Abs(d-dist) > 1e-6 {
				t.Errorf("angle %v: distance %v, want %v preserved", tt.rawAngle, d, dist)
			}
		})
	}
}

func TestNearestProtractorAngle_TieBreak(t *testing.T) {
	// The geometric path loses exact equidistance to atan2 rounding, so the
	// selection is checked with exact tie angles directly: the
	// earlier-listed candidate must win.
	tests := []struct {
		name  string
		angle float64
		want  float64
	}{
		{"37.5 between 30 and 45", 37.5, 30},
		{"minus 37.5 between -30 and -45", -37.5, -30},
		{"127.5 between 120 and 135", 127.5, 120},
		{"142.5 between 135 and 150", 142.5, 135},
		{"165 between 150 and 180", 165, 150},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := nearestProtractorAngle(tt.angle); got != tt.want {
				t.Errorf("nearestProtractorAngle(%v) = %v, want %v", tt.angle, got, tt.want)
			}
		})
	}
}

func TestProtractorConstraint_FortyDegrees(t *testing.T) {
	// start (0,0), raw at 40° and distance 100 → 45° → ≈ (70.7, 70.7).
	c := protractorConstraint{}
	raw := geometry.PointAt(geometry.Pt(0, 0), 40, 100)
	got := c.Constrain([]geometry.Point{geometry.Pt(0, 0)}, raw)
	want := geometry.Pt(100/math.Sqrt2, 100/math.Sqrt2)
	if !pointsEqual(got, want, 1e-6) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestProtractorConstraint_Degenerate(t *testing.T) {
	c := protractorConstraint{}
	start := geometry.Pt(5, 5)
	if got := c.Constrain([]geometry.Point{start}, start); got != start {
		t.Errorf("zero distance: got %v, want %v", got, start)
	}
	raw := geometry.Pt(1, 2)
	if got := c.Constrain(nil, raw); got != raw {
		t.Errorf("no points: got %v, want %v", got, raw)
	}
}

func TestIdentityTools(t *testing.T) {
	cfg := DefaultSnapConfig()
	raw := geometry.Pt(12.3, -4.56)
	points := []geometry.Point{geometry.Pt(0, 0), geometry.Pt(1, 1)}
	for _, tool := range []Tool{ToolFreehand, ToolCompass} {
		got := ConstrainerFor(tool, cfg).Constrain(points, raw)
		if got != raw {
			t.Errorf("%v: got %v, want identity %v", tool, got, raw)
		}
	}
}

func TestToolNameRoundTrip(t *testing.T) {
	for _, tool := range []Tool{ToolFreehand, ToolRuler, ToolSetSquare, ToolProtractor, ToolCompass} {
		if got := ParseTool(tool.String()); got != tool {
			t.Errorf("ParseTool(%q) = %v, want %v", tool.String(), got, tool)
		}
	}
	if got := ParseTool("laser"); got != ToolFreehand {
		t.Errorf("unknown tool = %v, want freehand fallback", got)
	}
}
