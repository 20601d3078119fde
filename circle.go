package outline

import (
	"github.com/gogpu/outline/anchor"
	"github.com/gogpu/outline/model"
	"github.com/gogpu/outline/units"
	"github.com/gogpu/outline/validate"
)

// circle validates {radius}. The shape units add r.
func circle(e *env, params map[string]any, name string) (shape, units.Units, error) {
	if err := validate.Unexpected(params, name, []string{"radius"}); err != nil {
		return nil, units.Units{}, err
	}
	v, err := validate.Sane(params["radius"], name+".radius", validate.TypeNumber, e.units)
	if err != nil {
		return nil, units.Units{}, err
	}
	radius := v.(float64)
	cu := e.units.Extend(map[string]float64{"r": radius})

	return func(pt *anchor.Point, bound bool) (*model.Model, error) {
		c := model.Circle(model.Point{}, radius, e.opts.tolerance)
		if bound {
			box := model.Box{High: model.Pt(radius, radius), Low: model.Pt(-radius, -radius)}
			var err error
			if c, err = bind(c, box, pt, cu); err != nil {
				return nil, err
			}
		}
		return pt.Position(c), nil
	}, cu, nil
}
