package model

import (
	"github.com/ctessum/geom"

	"github.com/gogpu/outline/internal/path"
)

// Rectangle returns a w x h rectangle with its lower-left corner at the
// origin. Non-positive sizes yield an empty model.
func Rectangle(w, h float64) *Model {
	return Rect(Point{}, w, h)
}

// Rect returns a w x h rectangle with its lower-left corner at origin.
func Rect(origin Point, w, h float64) *Model {
	if w <= 0 || h <= 0 {
		return Empty()
	}
	return Polygon([]Point{
		origin,
		{origin.X + w, origin.Y},
		{origin.X + w, origin.Y + h},
		{origin.X, origin.Y + h},
	})
}

// Circle returns a polygon inscribed in the circle whose edges stay within
// tolerance of it.
func Circle(center Point, r, tolerance float64) *Model {
	if r <= 0 {
		return Empty()
	}
	ring := path.Circle(path.Point(center), r, tolerance)
	points := make([]Point, len(ring))
	for i, p := range ring {
		points[i] = Point(p)
	}
	return Polygon(points)
}

// Polygon returns the region enclosed by the ring through points.
// Degenerate rings (fewer than three distinct points or no area) yield an
// empty model.
func Polygon(points []Point) *Model {
	ring := ringFromPoints(points)
	if len(ring) < 3 {
		return Empty()
	}
	return New(geom.Polygon{ring})
}
