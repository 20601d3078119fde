package anchor

import "github.com/gogpu/outline/validate"

// Registry holds named points in declaration order.
type Registry struct {
	order  []string
	byName map[string]*Point
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Point)}
}

// Add registers p under its meta name.
func (r *Registry) Add(p *Point) error {
	name := p.Meta.Name
	if name == "" {
		return validate.Schemaf("points", "Points must be named!")
	}
	if _, ok := r.byName[name]; ok {
		return validate.Schemaf("points."+name, "Point %q is defined more than once!", name)
	}
	r.order = append(r.order, name)
	r.byName[name] = p
	return nil
}

// AddMirrored registers p and its twin mirrored across x = axis.
func (r *Registry) AddMirrored(p *Point, axis float64) error {
	if err := r.Add(p); err != nil {
		return err
	}
	return r.Add(p.Mirror(axis))
}

// Get returns the point registered under name. The point is shared and
// must be cloned before modification.
func (r *Registry) Get(name string) (*Point, bool) {
	if r == nil {
		return nil, false
	}
	p, ok := r.byName[name]
	return p, ok
}

// Names returns the point names in declaration order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.order...)
}

// Points returns the registered points in declaration order.
func (r *Registry) Points() []*Point {
	if r == nil {
		return nil
	}
	out := make([]*Point, len(r.order))
	for i, name := range r.order {
		out[i] = r.byName[name]
	}
	return out
}

// Len returns the number of registered points.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.order)
}
