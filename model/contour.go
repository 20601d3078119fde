package model

import (
	"math"
	"slices"

	"github.com/ctessum/geom"
)

// Contour is one ring of a layer, oriented counter-clockwise when it bounds
// the region from outside and clockwise when it bounds a hole.
type Contour struct {
	Points []Point
	Hole   bool
}

// Contours returns the rings of every layer with consistent orientation.
// A ring nested inside an odd number of the layer's other rings is a hole.
// Nesting is decided by the ring's first vertex, so rings that only touch
// at that vertex may be misclassified.
func Contours(m *Model) [][]Contour {
	var out [][]Contour
	for _, layer := range m.originated() {
		var cs []Contour
		for i, ring := range layer {
			area := ringArea(ring)
			if len(ring) < 3 || math.Abs(area) <= areaEpsilon {
				continue
			}
			first := fromGeom(ring[0])
			depth := 0
			for j, other := range layer {
				if j != i && contains(geom.Polygon{other}, first, DefaultFarPoint) {
					depth++
				}
			}
			c := Contour{Points: pointsFromRing(ring), Hole: depth%2 == 1}
			if (area > 0) == c.Hole {
				slices.Reverse(c.Points)
			}
			cs = append(cs, c)
		}
		if len(cs) > 0 {
			out = append(out, cs)
		}
	}
	return out
}
