// Package filter expands a part's "where" declaration into the anchors the
// part is placed at.
//
// A declaration is one of:
//   - nil or {}: the origin
//   - an object, or a list holding an object at any depth: a single anchor
//     (see anchor.Parse)
//   - true or false: every registered point, or none
//   - a string or a list of strings: a condition over registered points
//
// Conditions match point names and tags. A plain string matches exactly,
// "/re/flags" is a regular expression and a leading "-" negates. "key ~ value"
// selects the field to compare ("meta.name", "meta.tags", "name" or "tags").
// Lists alternate logic by depth: the top level is OR, the next AND, and so on.
package filter

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/gogpu/outline/anchor"
	"github.com/gogpu/outline/units"
	"github.com/gogpu/outline/validate"
)

// Parse returns the anchors described by decl. When mirror is set the
// mirrored twins are added too: an anchor declaration must have a mirrored
// counterpart, while a condition only adds the twins that exist. Every call
// returns fresh points.
func Parse(decl any, name string, reg *anchor.Registry, u units.Units, mirror bool) ([]*anchor.Point, error) {
	raw, err := u.Eval(decl)
	if err != nil {
		return nil, validate.Schemaf(name, "Filter %q could not be evaluated: %v", name, err)
	}

	if raw == nil {
		return []*anchor.Point{anchor.Origin()}, nil
	}

	if containsObject(raw) {
		p, err := anchor.Parse(raw, name, reg, u)
		if err != nil {
			return nil, err
		}
		result := []*anchor.Point{p}
		if mirror {
			clone, err := anchor.Parse(raw, name, reg, u, anchor.WithMirror(true))
			if err != nil {
				return nil, err
			}
			if !p.Equal(clone) {
				result = append(result, clone)
			}
		}
		return result, nil
	}

	match, err := complexFilter(raw, name, false)
	if err != nil {
		return nil, err
	}
	var result []*anchor.Point
	for _, p := range reg.Points() {
		if match(p) {
			result = append(result, p.Clone())
		}
	}
	if mirror {
		pool := make([]string, 0, len(result))
		for _, p := range result {
			pool = append(pool, p.Meta.Name)
		}
		source := len(result)
		for _, p := range result[:source] {
			twin, ok := reg.Get(anchor.MirrorName(p.Meta.Name, true))
			if !ok || slices.Contains(pool, twin.Meta.Name) {
				continue
			}
			pool = append(pool, twin.Meta.Name)
			result = append(result, twin.Clone())
		}
	}
	return result, nil
}

func containsObject(v any) bool {
	switch x := v.(type) {
	case map[string]any:
		return true
	case []any:
		return slices.ContainsFunc(x, containsObject)
	}
	return false
}

type predicate func(*anchor.Point) bool

func and(ps []predicate) predicate {
	return func(p *anchor.Point) bool {
		for _, f := range ps {
			if !f(p) {
				return false
			}
		}
		return true
	}
}

func or(ps []predicate) predicate {
	return func(p *anchor.Point) bool {
		for _, f := range ps {
			if f(p) {
				return true
			}
		}
		return false
	}
}

// complexFilter builds the predicate for v. Lists combine their elements
// with AND when conj is set and OR otherwise, flipping at every level.
func complexFilter(v any, name string, conj bool) (predicate, error) {
	switch x := v.(type) {
	case bool:
		return func(*anchor.Point) bool { return x }, nil
	case string:
		return simpleFilter(x, name)
	case []any:
		ps := make([]predicate, 0, len(x))
		for _, e := range x {
			p, err := complexFilter(e, name, !conj)
			if err != nil {
				return nil, err
			}
			ps = append(ps, p)
		}
		if conj {
			return and(ps), nil
		}
		return or(ps), nil
	default:
		return nil, validate.Schemaf(name, "Unexpected type %q found at filter %q!", validate.Type(v), name)
	}
}

var defaultKeys = []string{"meta.name", "meta.tags"}

// simpleFilter parses "value", "~ value" or "key ~ value".
func simpleFilter(exp, name string) (predicate, error) {
	keys := defaultKeys
	value := exp
	parts := strings.Fields(exp)
	switch {
	case len(parts) >= 3 && parts[1] == "~":
		keys = []string{parts[0]}
		value = strings.Join(parts[2:], " ")
	case len(parts) >= 2 && parts[0] == "~":
		value = strings.Join(parts[1:], " ")
	}
	for _, k := range keys {
		if fieldValues(&anchor.Point{}, k) == nil {
			return nil, validate.Schemaf(name, "Unknown filter key %q at filter %q!", k, name)
		}
	}
	return similar(keys, value, name)
}

func similar(keys []string, reference, name string) (predicate, error) {
	neg := false
	if rest, ok := strings.CutPrefix(reference, "-"); ok {
		neg = true
		reference = rest
	}

	test := func(s string) bool { return s == reference }
	if strings.HasPrefix(reference, "/") {
		re, err := parseRegex(reference)
		if err != nil {
			return nil, validate.Schemaf(name, "Invalid regex %q found at filter %q!", reference, name)
		}
		test = re.MatchString
	}

	external := func(p *anchor.Point, key string) bool {
		return slices.ContainsFunc(fieldValues(p, key), test)
	}
	if neg {
		return func(p *anchor.Point) bool {
			for _, k := range keys {
				if external(p, k) {
					return false
				}
			}
			return true
		}, nil
	}
	return func(p *anchor.Point) bool {
		for _, k := range keys {
			if external(p, k) {
				return true
			}
		}
		return false
	}, nil
}

// parseRegex turns "/body/flags" into a regexp. Supported flags are i, m and s.
func parseRegex(ref string) (*regexp.Regexp, error) {
	end := strings.LastIndex(ref, "/")
	if end <= 0 {
		return nil, fmt.Errorf("missing closing slash")
	}
	body, flags := ref[1:end], ref[end+1:]
	if flags != "" {
		for _, f := range flags {
			if !strings.ContainsRune("ims", f) {
				return nil, fmt.Errorf("unsupported flag %q", f)
			}
		}
		body = "(?" + flags + ")" + body
	}
	return regexp.Compile(body)
}

// fieldValues returns the strings a filter key compares against, or nil for
// an unknown key.
func fieldValues(p *anchor.Point, key string) []string {
	switch strings.TrimPrefix(key, "meta.") {
	case "name":
		return []string{p.Meta.Name}
	case "tags":
		return append([]string{}, p.Meta.Tags...)
	}
	return nil
}
