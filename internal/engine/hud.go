package engine

// HudMetrics is the live measurement readout for the active stroke: the
// straight-line length from the stroke's first to last point (deliberately
// not the cumulative path length, which is only approximate for freehand)
// and the heading angle in degrees, (-180, 180].
type HudMetrics struct {
	LengthPixels float64
	AngleDegrees float64
	Visible      bool
}

// metricsFor derives HUD metrics from an active stroke. A single-point
// stroke measures zero length at angle zero rather than producing NaN.
func metricsFor(s *Stroke) HudMetrics {
	first := s.First()
	last := s.Last()
	m := HudMetrics{
		LengthPixels: first.Distance(last),
		Visible:      true,
	}
	if first != last {
		m.AngleDegrees = first.AngleTo(last)
	}
	return m
}
