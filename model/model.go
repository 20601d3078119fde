package model

import (
	"math"

	"github.com/ctessum/geom"
)

// areaEpsilon is the smallest ring area treated as a real region.
const areaEpsilon = 1e-12

// Model is a 2D region made of an ordered stack of layers.
//
// Each layer is a polygon with holes. Boolean operations combine layers
// (see Union, Subtract, Intersect), while Stack keeps them apart. A model
// also carries a pending affine transform that is only applied to the
// coordinates when the model is originated.
//
// Models are treated as values: every operation returns a new model and
// leaves its operands untouched.
type Model struct {
	layers []geom.Polygon
	xform  Matrix
}

// Empty returns a model with no geometry.
func Empty() *Model {
	return &Model{xform: Identity()}
}

// New returns a model with the given layers. Empty layers are dropped and
// the polygons are copied.
func New(layers ...geom.Polygon) *Model {
	m := Empty()
	for _, l := range layers {
		if !isEmptyPolygon(l) {
			m.layers = append(m.layers, clonePolygon(l))
		}
	}
	return m
}

// IsEmpty reports whether the model holds no geometry.
func (m *Model) IsEmpty() bool {
	return m == nil || len(m.layers) == 0
}

// LayerCount returns the number of stacked layers.
func (m *Model) LayerCount() int {
	if m == nil {
		return 0
	}
	return len(m.layers)
}

// Layers returns copies of the layers with the pending transform applied.
func (m *Model) Layers() []geom.Polygon {
	src := m.originated()
	out := make([]geom.Polygon, len(src))
	for i, l := range src {
		out[i] = clonePolygon(l)
	}
	return out
}

// Area returns the total area of all layers. Overlapping stacked layers
// are counted once per layer.
func (m *Model) Area() float64 {
	var area float64
	for _, l := range m.originated() {
		area += l.Area()
	}
	return area
}

// Clone returns a deep copy of the model.
func (m *Model) Clone() *Model {
	if m == nil {
		return Empty()
	}
	c := &Model{xform: m.xform, layers: make([]geom.Polygon, len(m.layers))}
	for i, l := range m.layers {
		c.layers[i] = clonePolygon(l)
	}
	return c
}

// Transform returns a copy of m with t applied after any pending transform.
func Transform(m *Model, t Matrix) *Model {
	c := m.Clone()
	c.xform = t.Multiply(c.xform)
	return c
}

// Move returns a copy of m translated by offset.
func Move(m *Model, offset Point) *Model {
	return Transform(m, Translate(offset.X, offset.Y))
}

// originated returns the layers in absolute coordinates. The result may
// share memory with m and must not be modified.
func (m *Model) originated() []geom.Polygon {
	if m == nil {
		return nil
	}
	if m.xform.IsIdentity() {
		return m.layers
	}
	out := make([]geom.Polygon, len(m.layers))
	for i, l := range m.layers {
		out[i] = mapPolygon(l, m.xform.TransformPoint)
	}
	return out
}

func mapPolygon(p geom.Polygon, fn func(Point) Point) geom.Polygon {
	out := make(geom.Polygon, len(p))
	for i, ring := range p {
		r := make(geom.Path, len(ring))
		for j, pt := range ring {
			r[j] = fn(fromGeom(pt)).geom()
		}
		out[i] = r
	}
	return out
}

func clonePolygon(p geom.Polygon) geom.Polygon {
	return mapPolygon(p, func(pt Point) Point { return pt })
}

// polygonOf collects the rings of a clipping result.
func polygonOf(p geom.Polygonal) geom.Polygon {
	if p, ok := p.(geom.Polygon); ok {
		return p
	}
	var out geom.Polygon
	if p != nil {
		for _, q := range p.Polygons() {
			out = append(out, q...)
		}
	}
	return out
}

// isEmptyPolygon reports whether p encloses no area.
func isEmptyPolygon(p geom.Polygon) bool {
	for _, ring := range p {
		if len(ring) >= 3 && math.Abs(ringArea(ring)) > areaEpsilon {
			return false
		}
	}
	return true
}

// ringArea returns the signed shoelace area, positive when counter-clockwise.
func ringArea(ring geom.Path) float64 {
	var area float64
	for i := range ring {
		p0 := ring[i]
		p1 := ring[(i+1)%len(ring)]
		area += p0.X*p1.Y - p1.X*p0.Y
	}
	return area / 2
}

func ringFromPoints(points []Point) geom.Path {
	ring := make(geom.Path, 0, len(points))
	for _, p := range points {
		if n := len(ring); n > 0 && fromGeom(ring[n-1]).Approx(p, 1e-12) {
			continue
		}
		ring = append(ring, p.geom())
	}
	for len(ring) > 1 && fromGeom(ring[0]).Approx(fromGeom(ring[len(ring)-1]), 1e-12) {
		ring = ring[:len(ring)-1]
	}
	return ring
}

func pointsFromRing(ring geom.Path) []Point {
	out := make([]Point, len(ring))
	for i, p := range ring {
		out[i] = fromGeom(p)
	}
	return out
}
