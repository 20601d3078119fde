package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/outline"
	"github.com/gogpu/outline/units"
)

const plate = `
units {
  kx   = 10
  half = kx / 2
}

point "k1" {
  tags = ["key"]
}

point "k2" {
  x      = kx
  tags   = ["key"]
  bind   = [0, half, 0, 0]
  mirror = -10
}

outline "keys" {
  part "caps" {
    what  = "rectangle"
    size  = [kx, kx]
    where = "key"
  }
}

outline "frame" {
  part "body" {
    what  = "rectangle"
    size  = [4 * kx, 2 * kx]
    where = { shift = [-kx, 0] }
  }
  part "cut" {
    ref = "-keys"
  }
}
`

func TestParseDefinition(t *testing.T) {
	f, err := Parse([]byte(plate), "plate.hcl")
	require.NoError(t, err)

	assert.Equal(t, []string{"half", "kx"}, f.Units.Names())
	half, ok := f.Units.Lookup("half")
	require.True(t, ok)
	assert.Equal(t, 5.0, half)

	assert.Equal(t, []string{"k1", "k2", "mirror_k2"}, f.Points.Names())
	k2, ok := f.Points.Get("k2")
	require.True(t, ok)
	assert.Equal(t, 10.0, k2.X)
	_, lazyBind := k2.Meta.Bind.(units.Expr)
	assert.True(t, lazyBind, "bind refers to units and must stay lazy")
	twin, ok := f.Points.Get("mirror_k2")
	require.True(t, ok)
	assert.Equal(t, -30.0, twin.X)
	assert.True(t, twin.Meta.Mirrored)

	require.Len(t, f.Config.Outlines, 2)
	keys := f.Config.Outlines[0]
	assert.Equal(t, "keys", keys.Name)
	require.Len(t, keys.Parts, 1)
	caps, ok := keys.Parts[0].Value.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "rectangle", caps["what"])
	assert.Equal(t, "key", caps["where"])
	_, lazy := caps["size"].(units.Expr)
	assert.True(t, lazy, "size refers to units and must stay lazy")

	frame := f.Config.Outlines[1]
	require.Len(t, frame.Parts, 2)
	assert.Equal(t, "cut", frame.Parts[1].Name)
	assert.Equal(t, "-keys", frame.Parts[1].Value)
}

func TestParsedDefinitionGenerates(t *testing.T) {
	f, err := Parse([]byte(plate), "plate.hcl")
	require.NoError(t, err)

	res, err := outline.Generate(f.Config, f.Points, f.Units)
	require.NoError(t, err)

	keys, ok := res.Get("keys")
	require.True(t, ok)
	// k1 and k2 touch, mirror_k2 stands alone. k2 is bound on the right
	// and its twin on the left.
	assert.InDelta(t, 400, keys.Area(), 1e-6)

	frame, ok := res.Get("frame")
	require.True(t, ok)
	assert.InDelta(t, 800-100-50-50, frame.Area(), 1e-6)
}

func TestUnitsSeeEarlierUnitsOnly(t *testing.T) {
	_, err := Parse([]byte(`
units {
  a = b + 1
  b = 2
}
`), "bad.hcl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unit "a"`)
}

func TestRefPartMustStandAlone(t *testing.T) {
	_, err := Parse([]byte(`
outline "o" {
  part "p" {
    ref  = "keys"
    what = "circle"
  }
}
`), "bad.hcl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ref must be the only attribute")
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"syntax", `outline "o" {`},
		{"unknown block", `shape "s" {}`},
		{"duplicate point", "point \"a\" {}\npoint \"a\" {}"},
		{"bad point attr", `point "a" { z = 1 }`},
		{"undefined unit", `point "a" { x = nope }`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src), "bad.hcl")
			assert.Error(t, err)
		})
	}
}

func TestLoadWalksDirectories(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "parts"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a_units.hcl"), []byte("units {\n  kx = 10\n}\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "parts", "b.hcl"), []byte(`
point "k" {}
outline "o" {
  part "p" {
    what   = "circle"
    radius = kx / 2
  }
}
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	f, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, f.Units.Len())
	assert.Equal(t, 1, f.Points.Len())
	require.Len(t, f.Config.Outlines, 1)

	res, err := outline.Generate(f.Config, f.Points, f.Units)
	require.NoError(t, err)
	o, ok := res.Get("o")
	require.True(t, ok)
	assert.InDelta(t, 78.5, o.Area(), 0.1)
}

func TestLoadNoFiles(t *testing.T) {
	_, err := Load(t.TempDir(), filepath.Join(t.TempDir(), "missing"))
	assert.ErrorContains(t, err, "no .hcl files found")
}
