package outline

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/outline/anchor"
	"github.com/gogpu/outline/model"
	"github.com/gogpu/outline/units"
	"github.com/gogpu/outline/validate"
)

func single(name string, parts ...Part) Config {
	return Config{Outlines: []Declaration{{Name: name, Parts: parts}}}
}

func generate(t *testing.T, cfg Config, reg *anchor.Registry, u units.Units) *Outlines {
	t.Helper()
	res, err := Generate(cfg, reg, u, WithTolerance(0.001))
	require.NoError(t, err)
	return res
}

func get(t *testing.T, res *Outlines, name string) *model.Model {
	t.Helper()
	m, ok := res.Get(name)
	require.True(t, ok, "outline %q missing", name)
	return m
}

func TestRectangleFeasibility(t *testing.T) {
	_, err := Generate(single("p", Part{Name: "r", Value: map[string]any{
		"what": "rectangle", "size": []any{10, 10}, "corner": 6,
	}}), nil, units.Units{})
	require.Error(t, err)
	assert.ErrorIs(t, err, validate.ErrFeasibility)
	assert.EqualError(t, err, `Rectangle for "outlines.p.r" isn't wide enough for its corner and bevel (10 - 2 * 6 - 2 * 0 <= 0)!`)

	_, err = Generate(single("p", Part{Name: "r", Value: map[string]any{
		"what": "rectangle", "size": []any{20, 4}, "bevel": 2.5,
	}}), nil, units.Units{})
	assert.ErrorIs(t, err, validate.ErrFeasibility)
	assert.Contains(t, err.Error(), "isn't tall enough")
}

func TestRectangleShapes(t *testing.T) {
	tests := []struct {
		name                     string
		part                     map[string]any
		lowX, lowY, highX, highY float64
		area                     float64
		tolerance                float64
	}{
		{"plain", map[string]any{"size": []any{10, 6}}, -5, -3, 5, 3, 60, 1e-9},
		{"square from scalar", map[string]any{"size": 4}, -2, -2, 2, 2, 16, 1e-9},
		{"rounded", map[string]any{"size": []any{10, 10}, "corner": 3}, -5, -5, 5, 5, 100 - (4-math.Pi)*9, 0.02},
		{"corner from own size", map[string]any{"size": []any{10, 10}, "corner": "sx / 10"}, -5, -5, 5, 5, 100 - (4 - math.Pi), 0.02},
		{"beveled", map[string]any{"size": []any{10, 10}, "bevel": 2}, -5, -5, 5, 5, 92, 1e-9},
		{"stadium", map[string]any{"size": []any{4, 10}, "corner": 2}, -2, -5, 2, 5, 24 + math.Pi*4, 0.02},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.part["what"] = "rectangle"
			m := get(t, generate(t, single("p", Part{Name: "r", Value: tt.part}), nil, units.Units{}), "p")
			assertBox(t, model.Extents(m), tt.lowX, tt.lowY, tt.highX, tt.highY)
			assert.InDelta(t, tt.area, m.Area(), tt.tolerance)
		})
	}
}

func TestCircleUnitsReachWhere(t *testing.T) {
	u := units.New(map[string]float64{"kx": 8})
	m := get(t, generate(t, single("c", Part{Value: map[string]any{
		"what":   "circle",
		"radius": "kx / 2",
		"where":  map[string]any{"shift": []any{"r", 0}},
	}}), nil, u), "c")
	assertBox(t, model.Extents(m), 0, -4, 8, 4)
}

func TestPolygonRelativePoints(t *testing.T) {
	m := get(t, generate(t, single("tri", Part{Value: map[string]any{
		"what":   "polygon",
		"points": []any{[]any{0, 0}, []any{10, 0}, []any{0, 10}},
	}}), nil, units.Units{}), "tri")
	assertBox(t, model.Extents(m), 0, 0, 10, 10)
	assert.InDelta(t, 50, m.Area(), 1e-9)

	_, err := Generate(single("line", Part{Value: map[string]any{
		"what":   "polygon",
		"points": []any{[]any{0, 0}, []any{10, 0}},
	}}), nil, units.Units{})
	assert.ErrorIs(t, err, validate.ErrFeasibility)
	assert.EqualError(t, err, `Polygon for "outlines.line.0" does not enclose any area!`)
	var ve *validate.Error
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "outlines.line.0.points", ve.Path)
}

func square(name string, size float64) Declaration {
	return Declaration{Name: name, Parts: []Part{{Name: "body", Value: map[string]any{
		"what": "rectangle", "size": []any{size, size},
	}}}}
}

func TestReferenceExpand(t *testing.T) {
	cfg := Config{Outlines: []Declaration{
		square("a", 20),
		{Name: "shrunk", Parts: []Part{{Value: map[string]any{"name": "a", "expand": -2, "joints": 1}}}},
		{Name: "grown", Parts: []Part{{Value: map[string]any{"name": "a", "expand": 2, "joints": 2}}}},
	}}
	res := generate(t, cfg, nil, units.Units{})

	assertBox(t, model.Extents(get(t, res, "shrunk")), -8, -8, 8, 8)
	assert.InDelta(t, 256, get(t, res, "shrunk").Area(), 1e-6)

	grown := get(t, res, "grown")
	assertBox(t, model.Extents(grown), -12, -12, 12, 12)
	assert.InDelta(t, 576-8, grown.Area(), 1e-6)
}

func TestReferenceFilletAndOrigin(t *testing.T) {
	cfg := Config{Outlines: []Declaration{
		square("a", 10),
		{Name: "round", Parts: []Part{{Value: map[string]any{"name": "a", "fillet": 2}}}},
		{Name: "moved", Parts: []Part{{Value: map[string]any{"name": "a", "origin": []any{5, 5}}}}},
	}}
	res := generate(t, cfg, nil, units.Units{})

	assertBox(t, model.Extents(get(t, res, "round")), -5, -5, 5, 5)
	assert.InDelta(t, 100-(4-math.Pi)*4, get(t, res, "round").Area(), 0.02)
	assertBox(t, model.Extents(get(t, res, "moved")), -10, -10, 0, 0)
}

func TestLargeFilletHonorsTolerance(t *testing.T) {
	cfg := Config{Outlines: []Declaration{
		square("plate", 400),
		{Name: "round", Parts: []Part{{Value: map[string]any{"name": "plate", "fillet": 100}}}},
	}}
	m := get(t, generate(t, cfg, nil, units.Units{}), "round")

	assertBox(t, model.Extents(m), -200, -200, 200, 200)
	// Inscribed arcs lose at most tolerance times arc length.
	want := 160000 - (4-math.Pi)*10000
	area := m.Area()
	assert.LessOrEqual(t, area, want+1e-6)
	assert.InDelta(t, want, area, 2*math.Pi*100*0.001)
}

func TestEndToEndFrame(t *testing.T) {
	cfg := Config{Outlines: []Declaration{
		square("A", 10),
		{Name: "B", Parts: []Part{
			{Name: "base", Value: map[string]any{"what": "rectangle", "size": []any{20, 20}}},
			{Name: "hole", Value: map[string]any{"operation": "subtract", "name": "A", "expand": 2}},
		}},
	}}
	res := generate(t, cfg, nil, units.Units{})
	assert.Equal(t, []string{"A", "B"}, res.Names())
	assert.Equal(t, 2, res.Len())

	b := get(t, res, "B")
	assertBox(t, model.Extents(b), -10, -10, 10, 10)
	require.Len(t, model.FindChains(b), 2)

	// The hole is A grown by 2 on every side with round joints.
	hole := 100 + 4*10*2 + math.Pi*4
	assert.InDelta(t, 400-hole, b.Area(), 0.05)
	assert.False(t, model.Contains(b, model.Pt(0, 0), model.DefaultFarPoint))
	assert.False(t, model.Contains(b, model.Pt(6.5, 0), model.DefaultFarPoint))
	assert.True(t, model.Contains(b, model.Pt(7.5, 0), model.DefaultFarPoint))
}

func TestShorthandParts(t *testing.T) {
	cfg := Config{Outlines: []Declaration{
		square("big", 20),
		square("small", 10),
		{Name: "frame", Parts: []Part{{Value: "big"}, {Value: "-small"}}},
		{Name: "overlap", Parts: []Part{{Value: "big"}, {Value: "~small"}}},
		{Name: "layers", Parts: []Part{{Value: "big"}, {Value: "^small"}}},
	}}
	res := generate(t, cfg, nil, units.Units{})

	assert.InDelta(t, 300, get(t, res, "frame").Area(), 1e-9)
	assert.InDelta(t, 100, get(t, res, "overlap").Area(), 1e-9)
	assert.Equal(t, 2, get(t, res, "layers").LayerCount())
	assert.InDelta(t, 500, get(t, res, "layers").Area(), 1e-9)
}

func TestStackThenSubtract(t *testing.T) {
	reg := anchor.NewRegistry()
	require.NoError(t, reg.Add(&anchor.Point{X: -5, Meta: anchor.Meta{Name: "l"}}))
	require.NoError(t, reg.Add(&anchor.Point{X: 5, Meta: anchor.Meta{Name: "r"}}))

	res := generate(t, single("s",
		Part{Name: "left", Value: map[string]any{"what": "rectangle", "size": 10, "where": "l"}},
		Part{Name: "right", Value: map[string]any{"what": "rectangle", "size": 10, "where": "r", "operation": "stack"}},
		Part{Name: "cut", Value: map[string]any{"what": "rectangle", "size": []any{2, 20}, "operation": "subtract"}},
	), reg, units.Units{})

	s := get(t, res, "s")
	assert.Equal(t, 2, s.LayerCount())
	assert.InDelta(t, 2*(100-10), s.Area(), 1e-9)
}

func TestMirroredBindThroughGenerate(t *testing.T) {
	reg := anchor.NewRegistry()
	require.NoError(t, reg.AddMirrored(&anchor.Point{X: 20, Meta: anchor.Meta{Name: "k", Bind: []any{0, 5, 0, 0}}}, 0))

	res := generate(t, single("keys", Part{Value: map[string]any{
		"what": "circle", "radius": 2, "where": "k", "mirror": true, "bound": true,
	}}), reg, units.Units{})

	m := get(t, res, "keys")
	assertBox(t, model.Extents(m), -27, -2, 27, 2)
}

func TestReferenceErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		msg  string
	}{
		{
			"forward reference",
			Config{Outlines: []Declaration{
				{Name: "a", Parts: []Part{{Name: "p", Value: map[string]any{"name": "b"}}}},
				square("b", 10),
			}},
			`Field "outlines.a.p.name" does not name an existing outline!`,
		},
		{
			"self reference",
			Config{Outlines: []Declaration{{Name: "a", Parts: []Part{{Name: "p", Value: "-a"}}}}},
			`Field "outlines.a.p.name" does not name an existing outline!`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Generate(tt.cfg, nil, units.Units{})
			assert.Nil(t, res)
			assert.ErrorIs(t, err, validate.ErrReference)
			assert.EqualError(t, err, tt.msg)
		})
	}
}

func TestSchemaErrors(t *testing.T) {
	tests := []struct {
		name string
		part any
		path string
	}{
		{"operation", map[string]any{"what": "circle", "radius": 1, "operation": "union"}, "outlines.o.p.operation"},
		{"what", map[string]any{"what": "ellipse"}, "outlines.o.p.what"},
		{"mirror", map[string]any{"what": "circle", "radius": 1, "mirror": "yes"}, "outlines.o.p.mirror"},
		{"unexpected key", map[string]any{"what": "circle", "radius": 1, "size": 3}, "outlines.o.p.size"},
		{"missing radius", map[string]any{"what": "circle"}, "outlines.o.p.radius"},
		{"part type", 5, "outlines.o.p"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Generate(single("o", Part{Name: "p", Value: tt.part}), nil, units.Units{})
			require.ErrorIs(t, err, validate.ErrSchema)
			var ve *validate.Error
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.path, ve.Path)
		})
	}

	_, err := Generate(Config{Outlines: []Declaration{
		square("a", 10),
		{Name: "b", Parts: []Part{{Value: map[string]any{"name": "a", "joints": 3}}}},
	}}, nil, units.Units{})
	assert.ErrorIs(t, err, validate.ErrSchema)

	_, err = Generate(Config{Outlines: []Declaration{square("a", 1), square("a", 2)}}, nil, units.Units{})
	assert.ErrorIs(t, err, validate.ErrSchema)
}

func TestReferenceNameMustBeString(t *testing.T) {
	_, err := Generate(Config{Outlines: []Declaration{
		square("a", 10),
		{Name: "b", Parts: []Part{{Value: map[string]any{"what": "outline", "name": 5}}}},
	}}, nil, units.Units{})
	require.ErrorIs(t, err, validate.ErrSchema)
	assert.NotErrorIs(t, err, validate.ErrReference)
	assert.EqualError(t, err, `Field "outlines.b.0.name" should be of type string!`)
}

func TestGenerateLeavesInputUntouched(t *testing.T) {
	part := map[string]any{"what": "rectangle", "size": []any{10, 10}, "where": nil, "bound": false}
	generate(t, single("p", Part{Value: part}), nil, units.Units{})
	assert.Equal(t, map[string]any{"what": "rectangle", "size": []any{10, 10}, "where": nil, "bound": false}, part)
}

func TestFinalizedOutlinesAreStable(t *testing.T) {
	res := generate(t, Config{Outlines: []Declaration{
		square("a", 10),
		{Name: "b", Parts: []Part{{Value: "a"}}},
	}}, nil, units.Units{})

	a := get(t, res, "a")
	again := model.Simplify(model.Originate(a))
	assert.Equal(t, model.FindChains(a), model.FindChains(again))
	assert.Equal(t, model.FindChains(a), model.FindChains(get(t, res, "b")))
}

func TestEmptyWhereFoldsNothing(t *testing.T) {
	res := generate(t, single("e", Part{Value: map[string]any{"what": "circle", "radius": 3, "where": false}}), nil, units.Units{})
	assert.True(t, get(t, res, "e").IsEmpty())
}
