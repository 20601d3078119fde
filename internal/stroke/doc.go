// Package stroke builds the band swept by a pen of fixed width along polygon
// boundaries.
//
// # Algorithm Overview
//
// The band is returned as a set of small convex pieces instead of a single
// fill path:
//   - Edge pieces: one quad per edge, offset by ±Width/2 along the edge normal
//   - Join pieces: one wedge per turning vertex, on the outer side of the turn
//   - Cap pieces: at open ends and at 180 degree reversals
//
// Callers union the pieces with a polygon kernel to grow a region (offset
// outward) or subtract them to shrink it. Because every piece is emitted
// counter-clockwise, the pieces can also be filled directly with a non-zero
// rasterizer.
//
// # Line Joins
//
// Line joins define how the band turns a corner:
//   - LineJoinRound: circular arc around the vertex
//   - LineJoinMiter: sharp corner (falls back to bevel past MiterLimit)
//   - LineJoinBevel: straight line across the corner
//
// # Usage
//
//	e := stroke.NewExpander(stroke.Stroke{Width: 4, Join: stroke.LineJoinMiter})
//	e.SetTolerance(0.01) // Optional: adjust arc flattening
//
//	pieces := e.Band([]stroke.Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}, true)
//
// # References
//
// The join geometry follows tiny-skia (path/src/stroker.rs) and
// kurbo (src/stroke.rs).
package stroke
