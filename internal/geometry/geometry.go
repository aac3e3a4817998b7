// Package geometry provides the 2D primitives used throughout the clock
// detection pipeline: points, line segments, and the detected clock center.
//
// # Coordinate System
//
// All coordinates use the standard image convention:
//   - Origin (0, 0) at top-left corner
//   - X increases rightward
//   - Y increases downward
//
// # Angle Convention
//
// Angles are measured in degrees, clockwise from the 12-o'clock direction
// (image "up", i.e. decreasing Y), in the range [0, 360). This matches how
// time is read off a dial: 0° points at the 12, 90° at the 3, 180° at the 6,
// 270° at the 9. AngleFromCenter is the single canonical angle function;
// every other angle in the module reduces to it.
package geometry

import "math"

// Point is a 2D coordinate in pixel space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// IsValid reports whether both coordinates are finite numbers.
func (p Point) IsValid() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Segment is a candidate straight feature, given by its two endpoints.
// Endpoint order carries no meaning; all operations on a Segment are
// endpoint-order-agnostic.
type Segment struct {
	A Point `json:"a"`
	B Point `json:"b"`
}

// Seg is a shorthand constructor from raw (x1, y1, x2, y2) coordinates.
func Seg(x1, y1, x2, y2 float64) Segment {
	return Segment{A: Point{X: x1, Y: y1}, B: Point{X: x2, Y: y2}}
}

// Length returns the Euclidean distance between the segment's endpoints.
func (s Segment) Length() float64 {
	return Distance(s.A, s.B)
}

// IsValid reports whether both endpoints have finite coordinates.
func (s Segment) IsValid() bool {
	return s.A.IsValid() && s.B.IsValid()
}

// FarEndpoint returns whichever endpoint lies farther from the center.
//
// Hand segments run from near the pivot outward, so the far endpoint is the
// one that encodes the hand's pointing direction. Angle computations must use
// it, never an arbitrary endpoint.
func (s Segment) FarEndpoint(c Center) Point {
	if Distance(s.A, c.Point) >= Distance(s.B, c.Point) {
		return s.A
	}
	return s.B
}

// NearEndpoint returns whichever endpoint lies closer to the center.
func (s Segment) NearEndpoint(c Center) Point {
	if Distance(s.A, c.Point) < Distance(s.B, c.Point) {
		return s.A
	}
	return s.B
}

// Center is the detected rotational center of the clock's hands, together
// with the radius of the clock face. It is produced once per pipeline run
// and treated as read-only ground truth by all downstream geometry.
type Center struct {
	Point  Point `json:"point"`
	Radius int   `json:"radius"`
}

// IsValid reports whether the center position is finite and the radius
// non-negative.
func (c Center) IsValid() bool {
	return c.Point.IsValid() && c.Radius >= 0
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// AngleFromCenter returns the angle of the vector from the center to p,
// measured clockwise from 12 o'clock, in degrees [0, 360).
//
// With image coordinates (Y down), "up" is decreasing Y, so:
//
//	angle = (degrees(atan2(p.x - cx, cy - p.y)) + 360) mod 360
func AngleFromCenter(p Point, c Center) float64 {
	dx := p.X - c.Point.X
	dy := c.Point.Y - p.Y // invert Y axis: image up is decreasing Y
	deg := math.Atan2(dx, dy) * 180 / math.Pi
	return math.Mod(deg+360, 360)
}
