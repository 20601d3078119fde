package outline

import (
	"math"

	"github.com/gogpu/outline/anchor"
	"github.com/gogpu/outline/model"
	"github.com/gogpu/outline/units"
	"github.com/gogpu/outline/validate"
)

// bind grows base towards the sides requested by the anchor's bind
// declaration ([top, right, bottom, left]). box is the local bounding box
// of the unbound shape.
//
// Each patch spans from the origin to one quadrant's far corner and is added
// when either of its two sides is set, so adjacent binds always meet.
func bind(base *model.Model, box model.Box, pt *anchor.Point, u units.Units) (*model.Model, error) {
	var raw any = 0
	if pt.Meta.Bind != nil {
		raw = pt.Meta.Bind
	}
	b, err := validate.TRBL(raw, pt.Meta.Name+".bind", u)
	if err != nil {
		return nil, err
	}
	if pt.Meta.Mirrored {
		b[1], b[3] = b[3], b[1]
	}
	top, right, bottom, left := b[0], b[1], b[2], b[3]

	bt := math.Max(box.High.Y, 0) + math.Max(top, 0)
	br := math.Max(box.High.X, 0) + math.Max(right, 0)
	bd := math.Min(box.Low.Y, 0) - math.Max(bottom, 0)
	bl := math.Min(box.Low.X, 0) - math.Max(left, 0)

	if top != 0 || right != 0 {
		base = model.Union(base, model.Rect(model.Pt(0, 0), br, bt))
	}
	if right != 0 || bottom != 0 {
		base = model.Union(base, model.Rect(model.Pt(0, bd), br, -bd))
	}
	if bottom != 0 || left != 0 {
		base = model.Union(base, model.Rect(model.Pt(bl, bd), -bl, -bd))
	}
	if left != 0 || top != 0 {
		base = model.Union(base, model.Rect(model.Pt(bl, 0), -bl, bt))
	}
	return base, nil
}
