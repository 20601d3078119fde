// Package model is the geometric kernel behind outline composition.
//
// A Model is a stack of polygon layers (with holes) plus a pending affine
// transform. The package provides:
//   - Primitives: Rectangle, Rect, Circle, Polygon
//   - Booleans: Union, Subtract, Intersect and the non-boolean Stack
//   - Offsets: Offset with round, pointed or bevel joins
//   - Chains: FindChains, Fillet, ReplaceChains
//   - Measurement: Extents, BoxOf, Contains, Contours
//   - Canonical form: Originate, Simplify
//
// Polygon booleans are delegated to github.com/ctessum/geom. Curves
// (circles, round joins, fillets) are flattened to line segments with a
// caller supplied tolerance, in model units.
//
// Every function treats its input models as immutable values and returns
// a new model.
package model
