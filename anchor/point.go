// Package anchor resolves position declarations into placed points.
//
// A Point is a position plus a rotation in degrees. Points place shapes:
// Position rotates a model around the origin by R and then moves it to
// (X, Y), and Unposition undoes that. Named points live in a Registry;
// mirrored twins are registered under "mirror_<name>".
package anchor

import (
	"math"
	"slices"
	"strings"

	"github.com/gogpu/outline/model"
)

// mirrorPrefix names the mirrored twin of a point.
const mirrorPrefix = "mirror_"

// Meta describes where a point came from.
type Meta struct {
	Name     string
	Mirrored bool
	// Bind is the raw bind declaration of the point, resolved by the
	// shapes placed on it.
	Bind any
	Tags []string
}

// Point is a placed position with a rotation in degrees.
type Point struct {
	X, Y float64
	R    float64
	Meta Meta
}

// Origin returns an unnamed point at (0, 0) with no rotation.
func Origin() *Point {
	return &Point{}
}

// Clone returns a deep copy of p.
func (p *Point) Clone() *Point {
	c := *p
	c.Meta.Tags = slices.Clone(p.Meta.Tags)
	return &c
}

// Pos returns the position of p.
func (p *Point) Pos() model.Point {
	return model.Pt(p.X, p.Y)
}

// Shift moves p by s. A relative shift is rotated with p first. Mirrored
// points shift the other way along x unless resist is set.
func (p *Point) Shift(s [2]float64, relative, resist bool) {
	if !resist && p.Meta.Mirrored {
		s[0] = -s[0]
	}
	d := model.Pt(s[0], s[1])
	if relative {
		d = model.RotateDegrees(p.R).TransformPoint(d)
	}
	p.X += d.X
	p.Y += d.Y
}

// Rotate turns p by angle degrees. With a non-nil origin the position
// orbits around it too. Mirrored points turn the other way unless resist
// is set.
func (p *Point) Rotate(angle float64, origin *model.Point, resist bool) {
	if !resist && p.Meta.Mirrored {
		angle = -angle
	}
	if origin != nil {
		m := model.Translate(origin.X, origin.Y).
			Multiply(model.RotateDegrees(angle)).
			Multiply(model.Translate(-origin.X, -origin.Y))
		q := m.TransformPoint(p.Pos())
		p.X, p.Y = q.X, q.Y
	}
	p.R += angle
}

// Angle returns the rotation that turns the upward direction of p towards q.
func (p *Point) Angle(q *Point) float64 {
	dx := q.X - p.X
	dy := q.Y - p.Y
	return -math.Atan2(dx, dy) * 180 / math.Pi
}

// Mirror returns the twin of p reflected across the vertical line x = axis.
func (p *Point) Mirror(axis float64) *Point {
	c := p.Clone()
	c.X = 2*axis - p.X
	c.R = -p.R
	c.Meta.Name = MirrorName(p.Meta.Name, true)
	c.Meta.Mirrored = !p.Meta.Mirrored
	return c
}

// Equal reports whether p and q have the same placement.
func (p *Point) Equal(q *Point) bool {
	const eps = 1e-9
	return math.Abs(p.X-q.X) <= eps && math.Abs(p.Y-q.Y) <= eps && math.Abs(p.R-q.R) <= eps
}

// Matrix returns the placement transform: rotate by R, then move to (X, Y).
func (p *Point) Matrix() model.Matrix {
	return model.Translate(p.X, p.Y).Multiply(model.RotateDegrees(p.R))
}

// Position places m at p.
func (p *Point) Position(m *model.Model) *model.Model {
	return model.Transform(m, p.Matrix())
}

// Unposition re-expresses m relative to p.
func (p *Point) Unposition(m *model.Model) *model.Model {
	return model.Transform(m, p.Matrix().Invert())
}

// MirrorName returns the name of the mirrored twin of name when mirror is
// set. Mirroring a twin's name gives back the original.
func MirrorName(name string, mirror bool) string {
	if !mirror {
		return name
	}
	if rest, ok := strings.CutPrefix(name, mirrorPrefix); ok {
		return rest
	}
	return mirrorPrefix + name
}
