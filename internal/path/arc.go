// Package path approximates circular arcs with polylines.
//
// Every vertex lies on the circle, so the polyline runs inside the true
// curve and no chord strays further from it than the requested tolerance.
package path

import "math"

// Point represents a 2D point (internal copy to avoid import cycle).
type Point struct {
	X, Y float64
}

// DefaultTolerance is the maximum distance from the curve for flattening,
// in model units (millimeters for plate outlines).
const DefaultTolerance = 0.01

// maxStep keeps coarse approximations from collapsing below quarter turns.
const maxStep = math.Pi / 2

// ArcStep returns the largest angle step, in radians, whose chord stays
// within tolerance of a circle of radius r.
func ArcStep(r, tolerance float64) float64 {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	if tolerance >= r {
		return maxStep
	}
	// The sagitta of a chord spanning angle a is r * (1 - cos(a/2)).
	return math.Min(2*math.Acos(1-tolerance/r), maxStep)
}

// ArcPoints returns points on the arc around center from angle a1 to a2
// (radians), both endpoints included. The sweep follows the sign of a2-a1,
// so arcs may run clockwise. A zero sweep or radius yields the start point.
func ArcPoints(center Point, r, a1, a2, tolerance float64) []Point {
	start := onCircle(center, r, a1)
	sweep := a2 - a1
	if sweep == 0 || r <= 0 {
		return []Point{start}
	}
	n := int(math.Ceil(math.Abs(sweep) / ArcStep(r, tolerance)))
	pts := make([]Point, 0, n+1)
	pts = append(pts, start)
	for i := 1; i < n; i++ {
		pts = append(pts, onCircle(center, r, a1+sweep*float64(i)/float64(n)))
	}
	return append(pts, onCircle(center, r, a2))
}

// Circle returns a counter-clockwise ring on the circle starting at angle 0.
// The closing point is not repeated.
func Circle(center Point, r, tolerance float64) []Point {
	if r <= 0 {
		return nil
	}
	n := max(int(math.Ceil(2*math.Pi/ArcStep(r, tolerance))), 4)
	pts := make([]Point, n)
	for i := range pts {
		pts[i] = onCircle(center, r, 2*math.Pi*float64(i)/float64(n))
	}
	return pts
}

func onCircle(center Point, r, angle float64) Point {
	return Point{X: center.X + r*math.Cos(angle), Y: center.Y + r*math.Sin(angle)}
}
