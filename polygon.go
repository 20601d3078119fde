package outline

import (
	"fmt"

	"github.com/gogpu/outline/anchor"
	"github.com/gogpu/outline/model"
	"github.com/gogpu/outline/units"
	"github.com/gogpu/outline/validate"
)

// polygon validates {points}. Each point is an anchor relative to the
// previous one; the first is relative to the origin.
func polygon(e *env, params map[string]any, name string) (shape, units.Units, error) {
	if err := validate.Unexpected(params, name, []string{"points"}); err != nil {
		return nil, units.Units{}, err
	}
	decls, err := validate.Array(params["points"], name+".points", e.units)
	if err != nil {
		return nil, units.Units{}, err
	}

	last := anchor.Origin()
	points := make([]model.Point, 0, len(decls))
	for i, decl := range decls {
		last, err = anchor.Parse(decl, fmt.Sprintf("%s.points[%d]", name, i), e.points, e.units, anchor.WithBase(last))
		if err != nil {
			return nil, units.Units{}, err
		}
		points = append(points, last.Pos())
	}
	poly := model.Polygon(points)
	if poly.IsEmpty() {
		return nil, units.Units{}, validate.Feasibilityf(name+".points", "Polygon for %q does not enclose any area!", name)
	}
	box := model.BoxOf(points)

	return func(pt *anchor.Point, bound bool) (*model.Model, error) {
		p := poly
		if bound {
			var err error
			if p, err = bind(p, box, pt, e.units); err != nil {
				return nil, err
			}
		}
		return pt.Position(p), nil
	}, e.units, nil
}
