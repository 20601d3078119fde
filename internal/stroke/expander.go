package stroke

import (
	"math"

	"github.com/gogpu/outline/internal/path"
)

// Point represents a 2D point (internal copy to avoid import cycle).
type Point struct {
	X, Y float64
}

// Add returns the sum of a point and a vector.
func (p Point) Add(v Vec2) Point {
	return Point{X: p.X + v.X, Y: p.Y + v.Y}
}

// Sub returns the difference between two points as a vector.
func (p Point) Sub(q Point) Vec2 {
	return Vec2{X: p.X - q.X, Y: p.Y - q.Y}
}

// Vec2 represents a 2D vector.
type Vec2 struct {
	X, Y float64
}

// Scale returns the vector scaled by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Neg returns the negated vector.
func (v Vec2) Neg() Vec2 {
	return Vec2{X: -v.X, Y: -v.Y}
}

// Dot returns the dot product of two vectors.
func (v Vec2) Dot(w Vec2) float64 {
	return v.X*w.X + v.Y*w.Y
}

// Cross returns the 2D cross product (z-component of 3D cross).
func (v Vec2) Cross(w Vec2) float64 {
	return v.X*w.Y - v.Y*w.X
}

// Length returns the length of the vector.
func (v Vec2) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Normalize returns a unit vector in the same direction.
func (v Vec2) Normalize() Vec2 {
	length := v.Length()
	if length < 1e-12 {
		return Vec2{}
	}
	return Vec2{X: v.X / length, Y: v.Y / length}
}

// Right returns the unit normal on the right-hand side of the direction.
func (v Vec2) Right() Vec2 {
	return Vec2{X: v.Y, Y: -v.X}.Normalize()
}

// Angle returns the angle of the vector in radians.
func (v Vec2) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// LineCap specifies the shape of open ends and reversals.
type LineCap int

const (
	// LineCapButt ends the band flush with the endpoint.
	LineCapButt LineCap = iota
	// LineCapRound adds a half disc around the endpoint.
	LineCapRound
	// LineCapSquare extends the band by half its width beyond the endpoint.
	LineCapSquare
)

// LineJoin specifies the shape of the band at turning vertices.
type LineJoin int

const (
	// LineJoinRound fills the turn with a circular arc.
	LineJoinRound LineJoin = iota
	// LineJoinMiter extends both edges to a sharp point (limited by MiterLimit).
	LineJoinMiter
	// LineJoinBevel cuts the turn with a straight line.
	LineJoinBevel
)

// String returns the join name.
func (j LineJoin) String() string {
	switch j {
	case LineJoinRound:
		return "round"
	case LineJoinMiter:
		return "miter"
	case LineJoinBevel:
		return "bevel"
	default:
		return "unknown"
	}
}

// Stroke defines the pen used for band generation.
type Stroke struct {
	Width      float64
	Cap        LineCap
	Join       LineJoin
	MiterLimit float64
}

// DefaultStroke returns a stroke with default settings.
func DefaultStroke() Stroke {
	return Stroke{
		Width:      1.0,
		Cap:        LineCapRound,
		Join:       LineJoinRound,
		MiterLimit: 4.0,
	}
}

// Expander converts ring and polyline boundaries into band pieces.
type Expander struct {
	style Stroke

	// Tolerance for arc flattening.
	tolerance float64

	// Join threshold for skipping insignificant turns.
	joinThresh float64

	pieces [][]Point
}

// NewExpander creates a new band expander with the given style.
func NewExpander(style Stroke) *Expander {
	if style.MiterLimit <= 0 {
		style.MiterLimit = DefaultStroke().MiterLimit
	}
	return &Expander{
		style:     style,
		tolerance: path.DefaultTolerance,
	}
}

// SetTolerance sets the arc flattening tolerance.
func (e *Expander) SetTolerance(tolerance float64) {
	if tolerance > 0 {
		e.tolerance = tolerance
	}
}

// Style returns the pen style.
func (e *Expander) Style() Stroke {
	return e.style
}

// Band returns the pieces covering every point within Width/2 of the
// boundary. A closed boundary joins its last point back to the first.
// Every returned piece is a counter-clockwise ring.
func (e *Expander) Band(points []Point, closed bool) [][]Point {
	e.pieces = nil
	pts := dedupe(points, closed)
	if len(pts) == 0 || e.style.Width <= 0 {
		return nil
	}
	e.joinThresh = 2.0 * e.tolerance / e.style.Width

	half := e.style.Width / 2
	if len(pts) == 1 {
		e.dot(pts[0], half)
		return e.pieces
	}

	n := len(pts)
	segments := n - 1
	if closed {
		segments = n
	}
	for i := 0; i < segments; i++ {
		e.doLine(pts[i], pts[(i+1)%n], half)
	}

	for i := 0; i < n; i++ {
		if !closed && (i == 0 || i == n-1) {
			continue
		}
		prev := pts[(i-1+n)%n]
		next := pts[(i+1)%n]
		e.doJoin(pts[i], pts[i].Sub(prev), next.Sub(pts[i]), half)
	}

	if !closed {
		e.applyCap(pts[0], pts[0].Sub(pts[1]), half)
		e.applyCap(pts[n-1], pts[n-1].Sub(pts[n-2]), half)
	}

	return e.pieces
}

// doLine adds the quad swept along one edge.
func (e *Expander) doLine(p0, p1 Point, half float64) {
	norm := p1.Sub(p0).Right().Scale(half)
	e.emit(p0.Add(norm), p1.Add(norm), p1.Add(norm.Neg()), p0.Add(norm.Neg()))
}

// doJoin fills the wedge left open on the outer side of a turn.
func (e *Expander) doJoin(p0 Point, tan0, tan1 Vec2, half float64) {
	cross := tan0.Cross(tan1)
	dot := tan0.Dot(tan1)
	hypot := math.Hypot(cross, dot)
	if hypot == 0 {
		return
	}

	// Skip join if angle change is insignificant; the edge quads already overlap.
	if dot > 0.0 && math.Abs(cross) < hypot*e.joinThresh {
		return
	}

	// A reversal has no outer side: the pen sweeps around the tip.
	if dot < 0.0 && math.Abs(cross) < hypot*1e-9 {
		e.applyCap(p0, tan0, half)
		return
	}

	// Outer side is the right for left turns and the left for right turns.
	n0 := tan0.Right()
	n1 := tan1.Right()
	if cross < 0 {
		n0, n1 = n0.Neg(), n1.Neg()
	}
	a := p0.Add(n0.Scale(half))
	b := p0.Add(n1.Scale(half))

	switch e.style.Join {
	case LineJoinBevel:
		e.emit(p0, a, b)
	case LineJoinMiter:
		e.applyMiterJoin(p0, a, b, n0, n1, dot, hypot, half)
	case LineJoinRound:
		e.applyRoundJoin(p0, n0, math.Atan2(cross, dot), half)
	}
}

// applyMiterJoin adds the kite reaching the miter point, falling back to a
// bevel when the miter would exceed the limit.
func (e *Expander) applyMiterJoin(p0, a, b Point, n0, n1 Vec2, dot, hypot, half float64) {
	miterLimitSq := e.style.MiterLimit * e.style.MiterLimit
	if 2.0*hypot >= (hypot+dot)*miterLimitSq {
		e.emit(p0, a, b)
		return
	}
	c := n0.Dot(n1)
	sum := Vec2{X: n0.X + n1.X, Y: n0.Y + n1.Y}
	miterPt := p0.Add(sum.Scale(half / (1 + c)))
	e.emit(p0, a, miterPt, b)
}

// applyRoundJoin adds a circular fan from the previous normal through the
// turning angle.
func (e *Expander) applyRoundJoin(p0 Point, norm Vec2, angle, half float64) {
	start := norm.Angle()
	arc := path.ArcPoints(path.Point(p0), half, start, start+angle, e.tolerance)
	fan := make([]Point, 0, len(arc)+1)
	fan = append(fan, p0)
	for _, p := range arc {
		fan = append(fan, Point(p))
	}
	e.emit(fan...)
}

// applyCap adds the cap beyond an end point; dir points away from the band.
func (e *Expander) applyCap(center Point, dir Vec2, half float64) {
	norm := dir.Right().Scale(half)
	switch e.style.Cap {
	case LineCapButt:
		// Flush end, nothing to add.
	case LineCapRound:
		e.applyRoundJoin(center, norm, math.Pi, half)
	case LineCapSquare:
		out := dir.Normalize().Scale(half)
		e.emit(center.Add(norm), center.Add(norm).Add(out), center.Add(norm.Neg()).Add(out), center.Add(norm.Neg()))
	}
}

// dot covers an isolated point with the cap shape.
func (e *Expander) dot(center Point, half float64) {
	if e.style.Cap == LineCapRound {
		ring := path.Circle(path.Point(center), half, e.tolerance)
		piece := make([]Point, len(ring))
		for i, p := range ring {
			piece[i] = Point(p)
		}
		e.emit(piece...)
		return
	}
	e.emit(
		Point{center.X - half, center.Y - half},
		Point{center.X + half, center.Y - half},
		Point{center.X + half, center.Y + half},
		Point{center.X - half, center.Y + half},
	)
}

// emit records a piece, normalized to counter-clockwise order.
func (e *Expander) emit(pts ...Point) {
	if len(pts) < 3 {
		return
	}
	if area := SignedArea(pts); math.Abs(area) < 1e-14 {
		return
	} else if area < 0 {
		reversed := make([]Point, len(pts))
		for i, p := range pts {
			reversed[len(pts)-1-i] = p
		}
		pts = reversed
	} else {
		pts = append([]Point(nil), pts...)
	}
	e.pieces = append(e.pieces, pts)
}

// SignedArea returns the shoelace area of a ring, positive when counter-clockwise.
func SignedArea(ring []Point) float64 {
	var area float64
	for i := range ring {
		p0 := ring[i]
		p1 := ring[(i+1)%len(ring)]
		area += p0.X*p1.Y - p1.X*p0.Y
	}
	return area / 2
}

// dedupe drops consecutive duplicates (and the closing duplicate of a ring).
func dedupe(points []Point, closed bool) []Point {
	out := make([]Point, 0, len(points))
	for _, p := range points {
		if len(out) == 0 || p.Sub(out[len(out)-1]).Length() > 1e-12 {
			out = append(out, p)
		}
	}
	if closed {
		for len(out) > 1 && out[0].Sub(out[len(out)-1]).Length() <= 1e-12 {
			out = out[:len(out)-1]
		}
	}
	return out
}
