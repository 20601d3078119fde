package model

import (
	"math"

	"github.com/gogpu/outline/internal/path"
)

// Chain is one connected boundary of a model: a ring of a layer.
type Chain struct {
	Layer  int
	Ring   int
	Points []Point
}

// FindChains returns every boundary ring of m in layer and ring order.
// Coordinates are absolute (the pending transform is applied).
func FindChains(m *Model) []Chain {
	var chains []Chain
	for li, l := range m.originated() {
		for ri, ring := range l {
			chains = append(chains, Chain{Layer: li, Ring: ri, Points: pointsFromRing(ring)})
		}
	}
	return chains
}

// Fillet rounds every corner of a closed chain with an arc of the given
// radius. Where two corners compete for a short edge, each may use at most
// half of it and the radius shrinks accordingly.
func Fillet(c Chain, radius, tolerance float64) Chain {
	n := len(c.Points)
	out := Chain{Layer: c.Layer, Ring: c.Ring}
	if radius <= 0 || n < 3 {
		out.Points = append([]Point(nil), c.Points...)
		return out
	}

	for i, v := range c.Points {
		prev := c.Points[(i-1+n)%n]
		next := c.Points[(i+1)%n]
		out.Points = append(out.Points, filletCorner(prev, v, next, radius, tolerance)...)
	}
	return out
}

// filletCorner returns the points replacing corner v.
func filletCorner(prev, v, next Point, radius, tolerance float64) []Point {
	toPrev := prev.Sub(v)
	toNext := next.Sub(v)
	lp, ln := toPrev.Length(), toNext.Length()
	if lp == 0 || ln == 0 {
		return []Point{v}
	}
	a := toPrev.Mul(1 / lp)
	b := toNext.Mul(1 / ln)

	// theta is the interior angle between the two edges.
	theta := math.Acos(math.Max(-1, math.Min(1, a.Dot(b))))
	if theta < 1e-9 || math.Pi-theta < 1e-9 {
		return []Point{v}
	}

	half := theta / 2
	t := radius / math.Tan(half)
	if limit := math.Min(lp, ln) / 2; t > limit {
		t = limit
	}
	r := t * math.Tan(half)

	center := v.Add(a.Add(b).Normalize().Mul(r / math.Sin(half)))
	start := v.Add(a.Mul(t)).Sub(center).Angle()

	// The arc turns the same way the chain does at v.
	turn := v.Sub(prev).Cross(next.Sub(v))
	sweep := math.Pi - theta
	if turn < 0 {
		sweep = -sweep
	}

	arc := path.ArcPoints(path.Point(center), r, start, start+sweep, tolerance)
	pts := make([]Point, len(arc))
	for i, p := range arc {
		pts[i] = Point(p)
	}
	return pts
}

// ReplaceChains returns a copy of m where each chain's ring is replaced by
// the chain's points. Chains refer to rings by layer and ring index, as
// returned by FindChains.
func ReplaceChains(m *Model, chains []Chain) *Model {
	layers := m.Layers()
	for _, c := range chains {
		if c.Layer < 0 || c.Layer >= len(layers) || c.Ring < 0 || c.Ring >= len(layers[c.Layer]) {
			continue
		}
		layers[c.Layer][c.Ring] = ringFromPoints(c.Points)
	}
	out := Empty()
	for _, l := range layers {
		if !isEmptyPolygon(l) {
			out.layers = append(out.layers, l)
		}
	}
	return out
}

// ChainLength returns the perimeter of a closed chain.
func ChainLength(c Chain) float64 {
	var length float64
	for i, p := range c.Points {
		length += p.Distance(c.Points[(i+1)%len(c.Points)])
	}
	return length
}
