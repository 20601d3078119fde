package outline

import (
	"github.com/gogpu/outline/anchor"
	"github.com/gogpu/outline/model"
	"github.com/gogpu/outline/units"
	"github.com/gogpu/outline/validate"
)

// rectangle validates {size, corner, bevel}. The shape units add sx and sy,
// the rectangle's own size, which corner and bevel may refer to.
func rectangle(e *env, params map[string]any, name string) (shape, units.Units, error) {
	if err := validate.Unexpected(params, name, []string{"size", "corner", "bevel"}); err != nil {
		return nil, units.Units{}, err
	}
	size, err := validate.WH(params["size"], name+".size", e.units)
	if err != nil {
		return nil, units.Units{}, err
	}
	w, h := size[0], size[1]
	ru := e.units.Extend(map[string]float64{"sx": w, "sy": h})

	corner, err := validate.Number(params["corner"], name+".corner", 0, ru)
	if err != nil {
		return nil, units.Units{}, err
	}
	bevel, err := validate.Number(params["bevel"], name+".bevel", 0, ru)
	if err != nil {
		return nil, units.Units{}, err
	}

	return func(pt *anchor.Point, bound bool) (*model.Model, error) {
		mod := 2 * (corner + bevel)
		cw := w - mod
		if cw < 0 {
			return nil, validate.Feasibilityf(name, "Rectangle for %q isn't wide enough for its corner and bevel (%v - 2 * %v - 2 * %v <= 0)!", name, w, corner, bevel)
		}
		ch := h - mod
		if ch < 0 {
			return nil, validate.Feasibilityf(name, "Rectangle for %q isn't tall enough for its corner and bevel (%v - 2 * %v - 2 * %v <= 0)!", name, h, corner, bevel)
		}

		var rect *model.Model
		switch {
		case bevel > 0:
			rect = model.Polygon([]model.Point{
				{X: -bevel, Y: 0},
				{X: -bevel, Y: ch},
				{X: 0, Y: ch + bevel},
				{X: cw, Y: ch + bevel},
				{X: cw + bevel, Y: ch},
				{X: cw + bevel, Y: 0},
				{X: cw, Y: -bevel},
				{X: 0, Y: -bevel},
			})
		default:
			rect = model.Rectangle(cw, ch)
		}
		if corner > 0 {
			if rect.IsEmpty() {
				// Corners eat the whole side: round the remaining segment.
				rect = model.Band([]model.Point{{}, {X: cw, Y: ch}}, false, corner, model.JoinRound, e.opts.offset())
			} else {
				rect = model.Offset(rect, corner, model.JoinRound, false, e.opts.offset())
			}
		}
		rect = model.Move(rect, model.Pt(-cw/2, -ch/2))

		if bound {
			box := model.Box{High: model.Pt(w/2, h/2), Low: model.Pt(-w/2, -h/2)}
			var err error
			if rect, err = bind(rect, box, pt, ru); err != nil {
				return nil, err
			}
		}
		return pt.Position(rect), nil
	}, ru, nil
}
