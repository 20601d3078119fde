package model

import "math"

// Box is an axis-aligned bounding box.
type Box struct {
	High Point
	Low  Point
}

// Width returns the horizontal extent.
func (b Box) Width() float64 { return b.High.X - b.Low.X }

// Height returns the vertical extent.
func (b Box) Height() float64 { return b.High.Y - b.Low.Y }

// Center returns the midpoint of the box.
func (b Box) Center() Point {
	return Point{X: (b.High.X + b.Low.X) / 2, Y: (b.High.Y + b.Low.Y) / 2}
}

// Extents measures the bounding box of every layer of m.
// An empty model measures as the zero box.
func Extents(m *Model) Box {
	var b Box
	first := true
	for _, l := range m.originated() {
		if isEmptyPolygon(l) {
			continue
		}
		lb := l.Bounds()
		if first {
			b = Box{High: fromGeom(lb.Max), Low: fromGeom(lb.Min)}
			first = false
			continue
		}
		b.High.X = math.Max(b.High.X, lb.Max.X)
		b.High.Y = math.Max(b.High.Y, lb.Max.Y)
		b.Low.X = math.Min(b.Low.X, lb.Min.X)
		b.Low.Y = math.Min(b.Low.Y, lb.Min.Y)
	}
	return b
}

// BoxOf returns the bounding box of a point list.
func BoxOf(points []Point) Box {
	if len(points) == 0 {
		return Box{}
	}
	b := Box{High: points[0], Low: points[0]}
	for _, p := range points[1:] {
		b.High.X = math.Max(b.High.X, p.X)
		b.High.Y = math.Max(b.High.Y, p.Y)
		b.Low.X = math.Min(b.Low.X, p.X)
		b.Low.Y = math.Min(b.Low.Y, p.Y)
	}
	return b
}
