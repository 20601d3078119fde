package model

import (
	"math"

	"github.com/ctessum/geom"
)

// simplifyTolerance is the distance below which vertices are considered
// collinear and merged by Simplify.
const simplifyTolerance = 1e-9

// Originate returns a copy of m with its pending transform baked into the
// coordinates, so that every layer is expressed relative to one origin.
func Originate(m *Model) *Model {
	out := Empty()
	for _, l := range m.originated() {
		out.layers = append(out.layers, clonePolygon(l))
	}
	return out
}

// Simplify returns a canonical copy of m: transforms are baked, collinear
// and duplicate vertices merged, and rings or layers without area removed.
// Simplify is idempotent.
func Simplify(m *Model) *Model {
	out := Empty()
	for _, l := range m.originated() {
		var layer geom.Polygon
		for _, ring := range l {
			r := simplifyRing(ring)
			if len(r) >= 3 && math.Abs(ringArea(r)) > areaEpsilon {
				layer = append(layer, r)
			}
		}
		if len(layer) > 0 {
			out.layers = append(out.layers, layer)
		}
	}
	return out
}

// simplifyRing drops duplicate vertices and vertices lying on the segment
// between their neighbours, repeating until nothing changes.
func simplifyRing(ring geom.Path) geom.Path {
	pts := ringFromPoints(pointsFromRing(ring))
	for changed := true; changed && len(pts) >= 3; {
		changed = false
		for i := 0; i < len(pts) && len(pts) >= 3; i++ {
			prev := fromGeom(pts[(i-1+len(pts))%len(pts)])
			cur := fromGeom(pts[i])
			next := fromGeom(pts[(i+1)%len(pts)])
			if collinear(prev, cur, next) {
				pts = append(pts[:i:i], pts[i+1:]...)
				changed = true
				i--
			}
		}
	}
	return pts
}

func collinear(a, b, c Point) bool {
	ab := b.Sub(a)
	ac := c.Sub(a)
	l := ac.Length()
	if l == 0 {
		return true
	}
	if math.Abs(ab.Cross(ac))/l > simplifyTolerance {
		return false
	}
	// b must lie between a and c, otherwise it is the tip of a spike.
	t := ab.Dot(ac) / (l * l)
	return t >= 0 && t <= 1
}
