package anchor

import (
	"fmt"
	"strings"

	"github.com/gogpu/outline/units"
	"github.com/gogpu/outline/validate"
)

// Option configures Parse.
type Option func(*parseOptions)

type parseOptions struct {
	base   *Point
	mirror bool
}

// WithBase makes the declaration relative to base instead of the origin.
func WithBase(base *Point) Option {
	return func(o *parseOptions) {
		o.base = base
	}
}

// WithMirror resolves every point reference to its mirrored twin.
func WithMirror(mirror bool) Option {
	return func(o *parseOptions) {
		o.mirror = mirror
	}
}

var anchorKeys = []string{"ref", "orient", "shift", "rotate", "affect", "resist"}

// Parse resolves an anchor declaration into a new point.
//
// Accepted declarations:
//   - nil: the base point (the origin by default)
//   - "name": the registered point name
//   - [x, y]: the base point shifted by (x, y) in its own frame
//   - [decl, decl, ...]: each declaration relative to the previous one
//   - {ref, orient, shift, rotate, affect, resist}: the full form
//
// Numbers may be unit expressions, evaluated against u.
func Parse(decl any, name string, reg *Registry, u units.Units, opts ...Option) (*Point, error) {
	o := parseOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.base == nil {
		o.base = Origin()
	}
	raw, err := u.Eval(decl)
	if err != nil {
		return nil, validate.Schemaf(name, "Anchor %q could not be evaluated: %v", name, err)
	}
	return parse(raw, name, reg, u, o)
}

func parse(raw any, name string, reg *Registry, u units.Units, o parseOptions) (*Point, error) {
	switch x := raw.(type) {
	case nil:
		return o.base.Clone(), nil
	case string:
		return parseObject(map[string]any{"ref": x}, name, reg, u, o)
	case []any:
		if isPair(x) {
			xy, err := validate.XY(x, name, u)
			if err != nil {
				return nil, err
			}
			p := o.base.Clone()
			p.Shift(xy, true, false)
			return p, nil
		}
		return parseChain(x, name, reg, u, o)
	case map[string]any:
		return parseObject(x, name, reg, u, o)
	default:
		return nil, validate.Schemaf(name, "Field %q should be an anchor (string, list or object)!", name)
	}
}

// isPair reports whether a list is an [x, y] shift rather than a chain.
func isPair(list []any) bool {
	if len(list) != 2 {
		return false
	}
	numbers := 0
	for _, e := range list {
		switch e.(type) {
		case float64, int:
			numbers++
		case string:
		default:
			return false
		}
	}
	return numbers > 0
}

func parseChain(steps []any, name string, reg *Registry, u units.Units, o parseOptions) (*Point, error) {
	current := o.base.Clone()
	for i, step := range steps {
		next := o
		next.base = current
		p, err := parse(step, fmt.Sprintf("%s[%d]", name, i+1), reg, u, next)
		if err != nil {
			return nil, err
		}
		current = p
	}
	return current, nil
}

func parseObject(raw map[string]any, name string, reg *Registry, u units.Units, o parseOptions) (*Point, error) {
	if err := validate.Unexpected(raw, name, anchorKeys); err != nil {
		return nil, err
	}

	point := o.base.Clone()
	if ref, ok := raw["ref"]; ok && ref != nil {
		var err error
		point, err = resolveRef(ref, name+".ref", reg, u, o)
		if err != nil {
			return nil, err
		}
	}

	resist, err := validate.Bool(raw["resist"], name+".resist", false, u)
	if err != nil {
		return nil, err
	}

	rotator := func(cfg any, path string) error {
		numeric := false
		switch c := cfg.(type) {
		case float64, int:
			numeric = true
		case string:
			numeric = !isRegistered(reg, c, o.mirror)
		}
		if numeric {
			angle, err := validate.Number(cfg, path, 0, u)
			if err != nil {
				return err
			}
			point.Rotate(angle, nil, resist)
			return nil
		}
		target, err := parse(cfg, path, reg, u, o)
		if err != nil {
			return err
		}
		point.R = point.Angle(target)
		return nil
	}

	if v, ok := raw["orient"]; ok && v != nil {
		if err := rotator(v, name+".orient"); err != nil {
			return nil, err
		}
	}
	if v, ok := raw["shift"]; ok && v != nil {
		xy, err := validate.WH(v, name+".shift", u)
		if err != nil {
			return nil, err
		}
		point.Shift(xy, true, resist)
	}
	if v, ok := raw["rotate"]; ok && v != nil {
		if err := rotator(v, name+".rotate"); err != nil {
			return nil, err
		}
	}
	if v, ok := raw["affect"]; ok && v != nil {
		if point, err = affect(v, name+".affect", point, o.base, u); err != nil {
			return nil, err
		}
	}
	return point, nil
}

func resolveRef(ref any, path string, reg *Registry, u units.Units, o parseOptions) (*Point, error) {
	switch x := ref.(type) {
	case string:
		target := MirrorName(x, o.mirror)
		p, ok := reg.Get(target)
		if !ok {
			return nil, validate.Referencef(path, "Unknown point reference %q in anchor %q!", target, strings.TrimSuffix(path, ".ref"))
		}
		return p.Clone(), nil
	case []any, map[string]any:
		return parse(x, path, reg, u, o)
	default:
		return nil, validate.Schemaf(path, "Field %q should be a point name or an anchor!", path)
	}
}

func isRegistered(reg *Registry, name string, mirror bool) bool {
	_, ok := reg.Get(MirrorName(name, mirror))
	return ok
}

// affect keeps only the listed components (x, y, r) of the candidate; the
// rest come from the base point.
func affect(v any, path string, candidate, base *Point, u units.Units) (*Point, error) {
	if s, ok := v.(string); ok {
		v = strings.Split(s, "")
	}
	if list, ok := v.([]string); ok {
		anys := make([]any, len(list))
		for i, s := range list {
			anys[i] = s
		}
		v = anys
	}
	fields, err := validate.StrArr(v, path, u)
	if err != nil {
		return nil, err
	}
	point := base.Clone()
	point.Meta = candidate.Meta
	for i, f := range fields {
		f, err := validate.In(f, fmt.Sprintf("%s[%d]", path, i+1), []string{"x", "y", "r"})
		if err != nil {
			return nil, err
		}
		switch f {
		case "x":
			point.X = candidate.X
		case "y":
			point.Y = candidate.Y
		case "r":
			point.R = candidate.R
		}
	}
	return point, nil
}
