package outline

import (
	"math"

	"github.com/gogpu/outline/anchor"
	"github.com/gogpu/outline/model"
	"github.com/gogpu/outline/units"
	"github.com/gogpu/outline/validate"
)

// Offset joint styles accepted by an outline reference.
var joints = []float64{
	float64(model.JoinRound),
	float64(model.JoinPointed),
	float64(model.JoinBevel),
}

// reference validates {name, fillet, expand, origin, joints}. The named
// outline must already be finalized.
func reference(e *env, params map[string]any, name string) (shape, units.Units, error) {
	if err := validate.Unexpected(params, name, []string{"name", "fillet", "expand", "origin", "joints"}); err != nil {
		return nil, units.Units{}, err
	}
	ref, err := validate.String(params["name"], name+".name", "", e.units)
	if err != nil {
		return nil, units.Units{}, err
	}
	src, ok := e.outlines.Get(ref)
	if !ok {
		return nil, units.Units{}, validate.Referencef(name+".name", "Field %q does not name an existing outline!", name+".name")
	}

	fillet, err := validate.Number(params["fillet"], name+".fillet", 0, e.units)
	if err != nil {
		return nil, units.Units{}, err
	}
	expand, err := validate.Number(params["expand"], name+".expand", 0, e.units)
	if err != nil {
		return nil, units.Units{}, err
	}
	j, err := validate.Number(params["joints"], name+".joints", 0, e.units)
	if err != nil {
		return nil, units.Units{}, err
	}
	if _, err := validate.In(j, name+".joints", joints); err != nil {
		return nil, units.Units{}, err
	}
	origin, err := anchor.Parse(params["origin"], name+".origin", e.points, e.units)
	if err != nil {
		return nil, units.Units{}, err
	}

	return func(pt *anchor.Point, bound bool) (*model.Model, error) {
		o := origin.Unposition(src)

		if fillet > 0 {
			chains := model.FindChains(o)
			for i := range chains {
				chains[i] = model.Fillet(chains[i], fillet, e.opts.tolerance)
			}
			o = model.ReplaceChains(o, chains)
		}

		if expand != 0 {
			o = model.Offset(o, math.Abs(expand), model.Join(j), expand < 0, e.opts.offset())
		}

		if bound {
			var err error
			if o, err = bind(o, model.Extents(o), pt, e.units); err != nil {
				return nil, err
			}
		}
		return pt.Position(o), nil
	}, e.units, nil
}
