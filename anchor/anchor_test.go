package anchor

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/outline/model"
	"github.com/gogpu/outline/units"
	"github.com/gogpu/outline/validate"
)

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	reg := NewRegistry()
	require.NoError(t, reg.AddMirrored(&Point{X: 10, Meta: Meta{Name: "a", Tags: []string{"key"}}}, 0))
	require.NoError(t, reg.Add(&Point{X: 10, Y: 0, R: 90, Meta: Meta{Name: "turned"}}))
	return reg
}

func assertPoint(t *testing.T, p *Point, x, y, r float64) {
	t.Helper()
	assert.InDelta(t, x, p.X, 1e-9, "x")
	assert.InDelta(t, y, p.Y, 1e-9, "y")
	assert.InDelta(t, r, p.R, 1e-9, "r")
}

func TestParseForms(t *testing.T) {
	reg := testRegistry(t)
	u := units.New(map[string]float64{"kx": 4})

	tests := []struct {
		name    string
		decl    any
		x, y, r float64
	}{
		{"nil is origin", nil, 0, 0, 0},
		{"reference", "a", 10, 0, 0},
		{"pair", []any{3, 4}, 3, 4, 0},
		{"pair with units", []any{"kx", 1}, 4, 1, 0},
		{"chain", []any{"turned", []any{1, 0}}, 10, 1, 90},
		{"object shift", map[string]any{"ref": "a", "shift": []any{2, 1}}, 12, 1, 0},
		{"object rotate", map[string]any{"ref": "a", "rotate": 15}, 10, 0, 15},
		{"shift follows rotation", map[string]any{"ref": "turned", "shift": []any{0, 2}}, 8, 0, 90},
		{"orient towards point", map[string]any{"orient": "a"}, 0, 0, -90},
		{"affect", map[string]any{"ref": "a", "shift": []any{0, 5}, "affect": "y"}, 0, 5, 0},
		{"lazy expression", units.MustParse(`{ shift = [kx / 2, 0] }`), 2, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Parse(tt.decl, "where", reg, u)
			require.NoError(t, err)
			assertPoint(t, p, tt.x, tt.y, tt.r)
		})
	}
}

func TestParseMirror(t *testing.T) {
	reg := testRegistry(t)
	var u units.Units
	decl := map[string]any{"ref": "a", "shift": []any{2, 1}, "rotate": 5}

	p, err := Parse(decl, "where", reg, u)
	require.NoError(t, err)
	assertPoint(t, p, 12, 1, 5)
	assert.False(t, p.Meta.Mirrored)

	m, err := Parse(decl, "where", reg, u, WithMirror(true))
	require.NoError(t, err)
	assertPoint(t, m, -12, 1, -5)
	assert.True(t, m.Meta.Mirrored)
	assert.Equal(t, "mirror_a", m.Meta.Name)

	resisted, err := Parse(map[string]any{"ref": "a", "shift": []any{2, 0}, "resist": true}, "where", reg, u, WithMirror(true))
	require.NoError(t, err)
	assertPoint(t, resisted, -8, 0, 0)

	_, err = Parse("turned", "where", reg, u, WithMirror(true))
	assert.ErrorIs(t, err, validate.ErrReference)
}

func TestParseRelativeToBase(t *testing.T) {
	base := &Point{X: 1, Y: 1, R: 90}
	p, err := Parse([]any{3, 4}, "points[1]", nil, units.Units{}, WithBase(base))
	require.NoError(t, err)
	assertPoint(t, p, -3, 4, 90)
	assertPoint(t, base, 1, 1, 90)
}

func TestParseErrors(t *testing.T) {
	reg := testRegistry(t)
	var u units.Units

	_, err := Parse("missing", "outlines.a.b.where", reg, u)
	require.Error(t, err)
	assert.ErrorIs(t, err, validate.ErrReference)
	assert.Contains(t, err.Error(), `"missing"`)

	_, err = Parse(map[string]any{"ref": "a", "spin": 3}, "where", reg, u)
	assert.ErrorIs(t, err, validate.ErrSchema)

	_, err = Parse(map[string]any{"affect": "xz"}, "where", reg, u)
	assert.ErrorIs(t, err, validate.ErrSchema)

	_, err = Parse(true, "where", reg, u)
	assert.ErrorIs(t, err, validate.ErrSchema)
}

func TestParseDoesNotShareRegistryPoints(t *testing.T) {
	reg := testRegistry(t)
	p, err := Parse("a", "where", reg, units.Units{})
	require.NoError(t, err)
	p.X = 99
	p.Meta.Tags[0] = "changed"

	orig, _ := reg.Get("a")
	assert.Equal(t, 10.0, orig.X)
	assert.Equal(t, []string{"key"}, orig.Meta.Tags)
}

func TestPositionRoundTrip(t *testing.T) {
	p := &Point{X: 5, Y: 5, R: 90}
	shape := model.Rect(model.Pt(0, -1), 4, 2)

	placed := p.Position(shape)
	box := model.Extents(placed)
	assert.InDelta(t, 4, box.Low.X, 1e-9)
	assert.InDelta(t, 6, box.High.X, 1e-9)
	assert.InDelta(t, 5, box.Low.Y, 1e-9)
	assert.InDelta(t, 9, box.High.Y, 1e-9)

	back := model.Extents(p.Unposition(placed))
	assert.InDelta(t, 0, back.Low.X, 1e-9)
	assert.InDelta(t, -1, back.Low.Y, 1e-9)
	assert.InDelta(t, 4, back.High.X, 1e-9)
	assert.InDelta(t, 1, back.High.Y, 1e-9)
}

func TestRotateAroundOrigin(t *testing.T) {
	p := &Point{X: 2}
	p.Rotate(90, &model.Point{}, false)
	assertPoint(t, p, 0, 2, 90)

	q := &Point{X: 2, Meta: Meta{Mirrored: true}}
	q.Rotate(90, &model.Point{}, false)
	assertPoint(t, q, 0, -2, -90)
}

func TestMirror(t *testing.T) {
	p := &Point{X: 3, Y: 1, R: 20, Meta: Meta{Name: "k"}}
	m := p.Mirror(10)
	assertPoint(t, m, 17, 1, -20)
	assert.Equal(t, "mirror_k", m.Meta.Name)
	assert.True(t, m.Meta.Mirrored)

	assert.Equal(t, "k", MirrorName("mirror_k", true))
	assert.Equal(t, "k", MirrorName("k", false))
	assert.True(t, p.Equal(p.Clone()))
	assert.False(t, p.Equal(m))
	assert.InDelta(t, -45, Origin().Angle(&Point{X: 1, Y: 1}), 1e-9)
	assert.InDelta(t, 180, math.Abs(Origin().Angle(&Point{Y: -1})), 1e-9)
}

func TestRegistry(t *testing.T) {
	reg := testRegistry(t)
	assert.Equal(t, []string{"a", "mirror_a", "turned"}, reg.Names())
	assert.Equal(t, 3, reg.Len())

	err := reg.Add(&Point{Meta: Meta{Name: "a"}})
	assert.ErrorIs(t, err, validate.ErrSchema)
	assert.ErrorIs(t, reg.Add(&Point{}), validate.ErrSchema)

	pts := reg.Points()
	require.Len(t, pts, 3)
	assert.Equal(t, "mirror_a", pts[1].Meta.Name)

	var empty *Registry
	_, ok := empty.Get("a")
	assert.False(t, ok)
}
