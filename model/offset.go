package model

import (
	"fmt"
	"math"

	"github.com/ctessum/geom"

	"github.com/gogpu/outline/internal/path"
	"github.com/gogpu/outline/internal/stroke"
)

// Join selects how offset boundaries turn corners.
type Join int

const (
	// JoinRound rounds corners with arcs of the offset radius.
	JoinRound Join = iota
	// JoinPointed extends edges to a sharp miter point.
	JoinPointed
	// JoinBevel cuts corners with a straight chamfer.
	JoinBevel
)

// String returns the join name.
func (j Join) String() string {
	switch j {
	case JoinRound:
		return "round"
	case JoinPointed:
		return "pointed"
	case JoinBevel:
		return "bevel"
	default:
		return fmt.Sprintf("Join(%d)", int(j))
	}
}

// DefaultFarPoint lies outside any plausible plate geometry.
var DefaultFarPoint = Point{X: 7654321, Y: 1234567}

// OffsetOptions tunes Offset.
type OffsetOptions struct {
	// Tolerance is the arc flattening tolerance for round joins.
	Tolerance float64
	// MiterLimit bounds pointed joins; sharper corners are beveled.
	MiterLimit float64
	// FarPoint is a point outside all geometry, used to classify
	// degenerate rings that enclose no area.
	FarPoint Point
}

func (o OffsetOptions) withDefaults() OffsetOptions {
	if o.Tolerance <= 0 {
		o.Tolerance = path.DefaultTolerance
	}
	if o.MiterLimit <= 0 {
		o.MiterLimit = stroke.DefaultStroke().MiterLimit
	}
	if o.FarPoint == (Point{}) {
		o.FarPoint = DefaultFarPoint
	}
	return o
}

// Offset grows (inward=false) or shrinks (inward=true) every layer of m by
// amount. The offset is the layer united with, or cut by, the band swept by
// a pen of radius amount along its boundary.
func Offset(m *Model, amount float64, join Join, inward bool, opts OffsetOptions) *Model {
	if amount == 0 || m.IsEmpty() {
		return m.Clone()
	}
	amount = math.Abs(amount)
	opts = opts.withDefaults()

	e := stroke.NewExpander(penFor(join, amount, opts.MiterLimit))
	e.SetTolerance(opts.Tolerance)

	out := Empty()
	for _, layer := range m.originated() {
		region, degenerate := splitDegenerate(layer)

		var pieces []geom.Polygon
		for _, ring := range region {
			pieces = append(pieces, bandPieces(e, ring, true)...)
		}
		for _, ring := range degenerate {
			// A collapsed ring only matters where the region does not
			// already cover it: growing adds its band, shrinking has
			// nothing of its own to remove.
			if inward || contains(region, fromGeom(ring[0]), opts.FarPoint) {
				continue
			}
			pieces = append(pieces, bandPieces(e, ring, false)...)
		}
		band := mergeAll(pieces)

		var r geom.Polygon
		switch {
		case inward && isEmptyPolygon(region):
			continue
		case inward:
			r = polygonOf(region.Difference(band))
		case isEmptyPolygon(region):
			r = band
		default:
			r = polygonOf(region.Union(band))
		}
		if !isEmptyPolygon(r) {
			out.layers = append(out.layers, r)
		}
	}
	return out
}

// Band returns the region within radius of the polyline through points.
// A closed polyline joins its last point back to the first. Open ends and
// lone points get round caps for JoinRound and square caps otherwise.
func Band(points []Point, closed bool, radius float64, join Join, opts OffsetOptions) *Model {
	if radius <= 0 || len(points) == 0 {
		return Empty()
	}
	opts = opts.withDefaults()
	e := stroke.NewExpander(penFor(join, radius, opts.MiterLimit))
	e.SetTolerance(opts.Tolerance)

	line := make(geom.Path, len(points))
	for i, p := range points {
		line[i] = p.geom()
	}
	merged := mergeAll(bandPieces(e, line, closed))
	if isEmptyPolygon(merged) {
		return Empty()
	}
	return New(merged)
}

func penFor(join Join, amount, miterLimit float64) stroke.Stroke {
	s := stroke.Stroke{Width: 2 * amount, MiterLimit: miterLimit}
	switch join {
	case JoinPointed:
		s.Join, s.Cap = stroke.LineJoinMiter, stroke.LineCapSquare
	case JoinBevel:
		s.Join, s.Cap = stroke.LineJoinBevel, stroke.LineCapSquare
	default:
		s.Join, s.Cap = stroke.LineJoinRound, stroke.LineCapRound
	}
	return s
}

func bandPieces(e *stroke.Expander, ring geom.Path, closed bool) []geom.Polygon {
	pts := make([]stroke.Point, len(ring))
	for i, p := range ring {
		pts[i] = stroke.Point{X: p.X, Y: p.Y}
	}
	var out []geom.Polygon
	for _, piece := range e.Band(pts, closed) {
		r := make(geom.Path, len(piece))
		for i, p := range piece {
			r[i] = geom.Point{X: p.X, Y: p.Y}
		}
		out = append(out, geom.Polygon{r})
	}
	return out
}

// splitDegenerate separates rings enclosing area from collapsed ones.
func splitDegenerate(layer geom.Polygon) (region, degenerate geom.Polygon) {
	for _, ring := range layer {
		switch {
		case len(ring) == 0:
		case len(ring) >= 3 && math.Abs(ringArea(ring)) > areaEpsilon:
			region = append(region, ring)
		default:
			degenerate = append(degenerate, ring)
		}
	}
	return region, degenerate
}

// Contains reports whether pt lies inside any layer of m. The test casts a
// segment from pt to far and counts boundary crossings (even-odd), so far
// must lie outside all geometry.
func Contains(m *Model, pt, far Point) bool {
	for _, l := range m.originated() {
		if contains(l, pt, far) {
			return true
		}
	}
	return false
}

func contains(layer geom.Polygon, pt, far Point) bool {
	inside := false
	for _, ring := range layer {
		for i := range ring {
			a := fromGeom(ring[i])
			b := fromGeom(ring[(i+1)%len(ring)])
			if segmentsCross(pt, far, a, b) {
				inside = !inside
			}
		}
	}
	return inside
}

// segmentsCross uses a half-open rule on the edge so that a crossing through
// a shared vertex is counted once.
func segmentsCross(p, q, a, b Point) bool {
	d1 := q.Sub(p).Cross(a.Sub(p))
	d2 := q.Sub(p).Cross(b.Sub(p))
	if (d1 > 0) == (d2 > 0) {
		return false
	}
	d3 := b.Sub(a).Cross(p.Sub(a))
	d4 := b.Sub(a).Cross(q.Sub(a))
	return (d3 > 0) != (d4 > 0)
}
