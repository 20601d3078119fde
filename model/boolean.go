package model

import "github.com/ctessum/geom"

// Union returns the region covered by a or b. All layers of both operands
// are dissolved into a single layer.
func Union(a, b *Model) *Model {
	layers := append(append([]geom.Polygon(nil), a.originated()...), b.originated()...)
	merged := mergeAll(layers)
	if isEmptyPolygon(merged) {
		return Empty()
	}
	return New(merged)
}

// Subtract removes the region of b from every layer of a. Layers that become
// empty are dropped; the remaining stack order is preserved.
func Subtract(a, b *Model) *Model {
	cut := mergeAll(b.originated())
	if isEmptyPolygon(cut) {
		return New(a.originated()...)
	}
	out := Empty()
	for _, l := range a.originated() {
		if r := polygonOf(l.Difference(cut)); !isEmptyPolygon(r) {
			out.layers = append(out.layers, r)
		}
	}
	return out
}

// Intersect keeps, in every layer of a, only the region also covered by b.
// Layers that become empty are dropped.
func Intersect(a, b *Model) *Model {
	mask := mergeAll(b.originated())
	out := Empty()
	if isEmptyPolygon(mask) {
		return out
	}
	for _, l := range a.originated() {
		if r := polygonOf(l.Intersection(mask)); !isEmptyPolygon(r) {
			out.layers = append(out.layers, r)
		}
	}
	return out
}

// Stack places the layers of b on top of a without any boolean combination.
func Stack(a, b *Model) *Model {
	return New(append(append([]geom.Polygon(nil), a.originated()...), b.originated()...)...)
}

// mergeAll unions polygons pairwise in a balanced tree, which keeps the
// intermediate polygons small when many pieces are merged.
func mergeAll(polys []geom.Polygon) geom.Polygon {
	live := make([]geom.Polygon, 0, len(polys))
	for _, p := range polys {
		if !isEmptyPolygon(p) {
			live = append(live, p)
		}
	}
	switch len(live) {
	case 0:
		return nil
	case 1:
		return clonePolygon(live[0])
	}
	for len(live) > 1 {
		next := make([]geom.Polygon, 0, (len(live)+1)/2)
		for i := 0; i < len(live); i += 2 {
			if i+1 == len(live) {
				next = append(next, live[i])
				continue
			}
			next = append(next, polygonOf(live[i].Union(live[i+1])))
		}
		live = next
	}
	return live[0]
}
