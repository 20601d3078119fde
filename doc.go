// Package outline composes named 2D outlines from declarative parts.
//
// # Overview
//
// An outline is an ordered list of parts. Each part is a shape (rectangle,
// circle, polygon, or a reference to an earlier outline) placed at one or
// more anchors and folded into the running outline with an operation:
//
//	add        union with the outline so far
//	subtract   cut out of every layer so far
//	intersect  keep only the overlap in every layer so far
//	stack      add as a separate layer, without merging
//
// Finished outlines are originated and simplified, and become available to
// the outlines declared after them.
//
// # Quick Start
//
//	import "github.com/gogpu/outline"
//
//	cfg := outline.Config{Outlines: []outline.Declaration{
//		{Name: "plate", Parts: []outline.Part{
//			{Name: "body", Value: map[string]any{"what": "rectangle", "size": []any{20, 20}}},
//		}},
//		{Name: "frame", Parts: []outline.Part{
//			{Name: "body", Value: "plate"},
//			{Name: "hole", Value: map[string]any{"operation": "subtract", "name": "plate", "expand": -4}},
//		}},
//	}}
//
//	res, err := outline.Generate(cfg, anchor.NewRegistry(), units.Units{})
//	if err != nil {
//		return err
//	}
//	frame, _ := res.Get("frame")
//
// # Parts
//
// The keys common to every part are:
//   - operation: add, subtract, intersect or stack (default add)
//   - what: rectangle, circle, polygon or outline (default outline)
//   - bound: extend the shape towards its anchor's bind sides
//     (default true for rectangles only)
//   - mirror: also place the shape at mirrored anchors
//   - where: the anchors to place the shape at (default the origin)
//
// Shape keys:
//   - rectangle: size, corner, bevel (may use units sx and sy)
//   - circle: radius (where may use unit r)
//   - polygon: points, each an anchor relative to the previous point
//   - outline: name, fillet, expand, origin, joints (0 round, 1 pointed, 2 bevel)
//
// A string part is shorthand for an outline reference: "+name", "-name",
// "~name" and "^name" add, subtract, intersect and stack the outline.
//
// # Coordinate System
//
//   - X increases right, Y increases up
//   - Rotations are in degrees, counter-clockwise
//   - Curves are flattened to segments within WithTolerance
package outline
