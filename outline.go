package outline

import (
	"context"
	"log/slog"
	"maps"
	"strconv"

	"github.com/gogpu/outline/anchor"
	"github.com/gogpu/outline/filter"
	"github.com/gogpu/outline/model"
	"github.com/gogpu/outline/shorthand"
	"github.com/gogpu/outline/units"
	"github.com/gogpu/outline/validate"
)

// Config lists the outlines to build, in build order.
type Config struct {
	Outlines []Declaration
}

// Declaration is one named outline and its parts, in fold order.
type Declaration struct {
	Name  string
	Parts []Part
}

// Part is one contribution to an outline. Value is either a shorthand
// string ("-screw") or an object with the keys operation, what, bound,
// mirror, where and the keys of the chosen shape.
type Part struct {
	Name  string
	Value any
}

// Outlines holds finalized outlines in build order.
type Outlines struct {
	names  []string
	models map[string]*model.Model
}

func newOutlines() *Outlines {
	return &Outlines{models: make(map[string]*model.Model)}
}

// Names returns the outline names in build order.
func (o *Outlines) Names() []string {
	return append([]string(nil), o.names...)
}

// Get returns the finalized outline called name.
func (o *Outlines) Get(name string) (*model.Model, bool) {
	m, ok := o.models[name]
	return m, ok
}

// Len returns the number of outlines.
func (o *Outlines) Len() int {
	return len(o.names)
}

func (o *Outlines) add(name string, m *model.Model) {
	o.names = append(o.names, name)
	o.models[name] = m
}

// shape produces one placed instance of a part at an anchor.
type shape func(pt *anchor.Point, bound bool) (*model.Model, error)

// generator validates a part's shape keys once and returns its shape
// together with the units its where may refer to.
type generator func(e *env, params map[string]any, name string) (shape, units.Units, error)

// Shape kinds, in the order reported by validation errors.
var whats = []string{"rectangle", "circle", "polygon", "outline"}

var generators = map[string]generator{
	"rectangle": rectangle,
	"circle":    circle,
	"polygon":   polygon,
	"outline":   reference,
}

// Part operations, in the order reported by validation errors.
var operationNames = []string{"add", "subtract", "intersect", "stack"}

var operations = map[string]func(a, b *model.Model) *model.Model{
	"add":       model.Union,
	"subtract":  model.Subtract,
	"intersect": model.Intersect,
	"stack":     model.Stack,
}

// commonKeys are read by the assembler and hidden from shape generators.
var commonKeys = []string{"operation", "what", "bound", "mirror", "where"}

// env is the state shared by the generators of one Generate call.
type env struct {
	points   *anchor.Registry
	outlines *Outlines
	units    units.Units
	opts     options
}

// Generate builds every outline of cfg in declaration order. Parts are
// placed at anchors from points and resolve dimensions against u. An
// outline may reference only outlines declared before it.
//
// Generation stops at the first error; no partial result is returned.
func Generate(cfg Config, points *anchor.Registry, u units.Units, opts ...Option) (*Outlines, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if points == nil {
		points = anchor.NewRegistry()
	}
	e := &env{points: points, outlines: newOutlines(), units: u, opts: o}

	for _, decl := range cfg.Outlines {
		if decl.Name == "" {
			return nil, validate.Schemaf("outlines", "Outlines must be named!")
		}
		if _, dup := e.outlines.Get(decl.Name); dup {
			return nil, validate.Schemaf("outlines."+decl.Name, "Outline %q is defined more than once!", decl.Name)
		}
		m, err := e.assemble(decl)
		if err != nil {
			return nil, err
		}
		e.outlines.add(decl.Name, m)

		if l := Logger(); l.Enabled(context.Background(), slog.LevelDebug) {
			box := model.Extents(m)
			l.Debug("outline finalized",
				"outline", decl.Name, "layers", m.LayerCount(),
				"width", box.Width(), "height", box.Height(),
				"perimeter", perimeter(m))
		}
	}
	return e.outlines, nil
}

// perimeter sums the length of every ring of m.
func perimeter(m *model.Model) float64 {
	var total float64
	for _, c := range model.FindChains(m) {
		total += model.ChainLength(c)
	}
	return total
}

// assemble folds the parts of one outline and finalizes the result.
func (e *env) assemble(decl Declaration) (*model.Model, error) {
	declared := append(e.outlines.Names(), decl.Name)
	current := model.Empty()
	for i, part := range decl.Parts {
		partName := part.Name
		if partName == "" {
			partName = strconv.Itoa(i)
		}
		next, err := e.fold(current, part.Value, "outlines."+decl.Name+"."+partName, declared)
		if err != nil {
			return nil, err
		}
		current = next
	}
	return model.Simplify(model.Originate(current)), nil
}

// fold places one part at each of its anchors and combines every instance
// into current with the part's operation.
func (e *env) fold(current *model.Model, value any, name string, declared []string) (*model.Model, error) {
	params, err := e.normalize(value, name, declared)
	if err != nil {
		return nil, err
	}

	opName, err := validate.String(params["operation"], name+".operation", "add", e.units)
	if err != nil {
		return nil, err
	}
	if _, err := validate.In(opName, name+".operation", operationNames); err != nil {
		return nil, err
	}
	what, err := validate.String(params["what"], name+".what", "outline", e.units)
	if err != nil {
		return nil, err
	}
	if _, err := validate.In(what, name+".what", whats); err != nil {
		return nil, err
	}
	bound := what == "rectangle"
	if raw, ok := params["bound"]; ok && raw != nil {
		v, err := e.units.Eval(raw)
		if err != nil {
			return nil, validate.Schemaf(name+".bound", "Field %q could not be evaluated: %v", name+".bound", err)
		}
		bound = validate.Truthy(v)
	}
	mirror, err := validate.Bool(params["mirror"], name+".mirror", false, e.units)
	if err != nil {
		return nil, err
	}
	where := params["where"]
	for _, k := range commonKeys {
		delete(params, k)
	}

	makeShape, shapeUnits, err := generators[what](e, params, name)
	if err != nil {
		return nil, err
	}
	anchors, err := filter.Parse(where, name+".where", e.points, shapeUnits, mirror)
	if err != nil {
		return nil, err
	}
	if len(anchors) == 0 {
		Logger().Warn("part placed nowhere", "part", name)
	}

	op := operations[opName]
	for _, pt := range anchors {
		s, err := makeShape(pt, bound)
		if err != nil {
			return nil, err
		}
		current = op(current, s)
	}
	Logger().Debug("part folded",
		"part", name, "what", what, "operation", opName,
		"bound", bound, "anchors", len(anchors))
	return current, nil
}

// normalize returns a private copy of the part's object form, expanding
// shorthand strings first.
func (e *env) normalize(value any, name string, declared []string) (map[string]any, error) {
	if s, ok := value.(string); ok {
		return shorthand.Expand(s, map[string][]string{"outline": declared}, []string{"outline"}), nil
	}
	if obj, ok := value.(map[string]any); ok {
		return maps.Clone(obj), nil
	}
	obj, err := validate.Object(value, name, e.units)
	if err != nil {
		return nil, err
	}
	return maps.Clone(obj), nil
}
