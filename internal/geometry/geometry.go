// Package geometry provides the basic 2D types shared by the drawing engine.
package geometry

import "math"

// Point is a 2D point with floating-point coordinates. Depending on context
// it lives in canvas space (logical drawing units) or screen space (device
// pixels); the engine's view transform converts between the two.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for constructing a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points.
func (p Point) Add(other Point) Point {
	return Point{X: p.X + other.X, Y: p.Y + other.Y}
}

// Sub returns the difference of two points.
func (p Point) Sub(other Point) Point {
	return Point{X: p.X - other.X, Y: p.Y - other.Y}
}

// Scale returns the point scaled by a factor.
func (p Point) Scale(factor float64) Point {
	return Point{X: p.X * factor, Y: p.Y * factor}
}

// Distance returns the Euclidean distance to another point.
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// AngleTo returns the angle of the vector from p to other, in degrees,
// in the half-open interval (-180, 180].
func (p Point) AngleTo(other Point) float64 {
	return NormalizeDeg(math.Atan2(other.Y-p.Y, other.X-p.X) * 180 / math.Pi)
}

// PointAt returns the point at the given angle (degrees) and distance
// from origin.
func PointAt(origin Point, angleDeg, dist float64) Point {
	rad := angleDeg * math.Pi / 180
	return Point{
		X: origin.X + dist*math.Cos(rad),
		Y: origin.Y + dist*math.Sin(rad),
	}
}

// NormalizeDeg wraps an angle in degrees into (-180, 180].
func NormalizeDeg(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg > 180 {
		deg -= 360
	} else if deg <= -180 {
		deg += 360
	}
	return deg
}

// AngularDistance returns the magnitude of the shortest rotation between
// two angles in degrees, always in [0, 180].
func AngularDistance(a, b float64) float64 {
	return math.Abs(NormalizeDeg(a - b))
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b Point) Point {
	return Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}
