// Package units resolves named dimensions and dimension expressions.
//
// A Units value is an immutable set of named numbers. Nested scopes call
// Extend to add their own names; the parent set never changes. Expressions
// use HCL expression syntax ("sx / 2 - 1", "max(r, 3)") and are evaluated
// against the set with github.com/zclconf/go-cty.
package units

import (
	"fmt"
	"maps"
	"math"
	"slices"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Units is an immutable set of named numeric values.
// The zero value is an empty set.
type Units struct {
	vals map[string]float64
}

// New returns a unit set holding a copy of vals.
func New(vals map[string]float64) Units {
	return Units{vals: maps.Clone(vals)}
}

// Extend returns a child set with every name of u plus vals. Names in vals
// shadow the parent's.
func (u Units) Extend(vals map[string]float64) Units {
	child := make(map[string]float64, len(u.vals)+len(vals))
	maps.Copy(child, u.vals)
	maps.Copy(child, vals)
	return Units{vals: child}
}

// Lookup returns the value bound to name.
func (u Units) Lookup(name string) (float64, bool) {
	v, ok := u.vals[name]
	return v, ok
}

// Names returns the unit names in sorted order.
func (u Units) Names() []string {
	return slices.Sorted(maps.Keys(u.vals))
}

// Len returns the number of units in the set.
func (u Units) Len() int {
	return len(u.vals)
}

// Context returns an HCL evaluation context exposing every unit as a
// variable together with the arithmetic functions.
func (u Units) Context() *hcl.EvalContext {
	vars := make(map[string]cty.Value, len(u.vals))
	for name, v := range u.vals {
		vars[name] = cty.NumberFloatVal(v)
	}
	return &hcl.EvalContext{
		Variables: vars,
		Functions: functions,
	}
}

// Eval resolves every lazy expression in v, descending into lists and
// objects. Other values are returned as they are.
func (u Units) Eval(v any) (any, error) {
	switch x := v.(type) {
	case Expr:
		return x.Native(u)
	case *Expr:
		if x == nil {
			return nil, nil
		}
		return x.Native(u)
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			r, err := u.Eval(e)
			if err != nil {
				return nil, err
			}
			out[i] = r
		}
		return out, nil
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			r, err := u.Eval(e)
			if err != nil {
				return nil, fmt.Errorf("in %q: %w", k, err)
			}
			out[k] = r
		}
		return out, nil
	default:
		return v, nil
	}
}

// Number evaluates v to a float. Numbers pass through, strings are parsed
// as expressions and lazy expressions are evaluated.
func (u Units) Number(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case int32:
		return float64(x), nil
	case string:
		e, err := Parse(x)
		if err != nil {
			return 0, err
		}
		return e.Number(u)
	case Expr:
		return x.Number(u)
	case *Expr:
		if x == nil {
			return 0, fmt.Errorf("nil expression is not a number")
		}
		return x.Number(u)
	default:
		return 0, fmt.Errorf("%T is not a number", v)
	}
}

// IsNumeric reports whether Number could succeed on v without evaluating
// it: v is a number, a string or a lazy expression.
func IsNumeric(v any) bool {
	switch v.(type) {
	case float64, float32, int, int64, int32, string, Expr, *Expr:
		return true
	}
	return false
}

func ctyNumber(v cty.Value) (float64, error) {
	if v.IsNull() || !v.IsKnown() {
		return 0, fmt.Errorf("value is not known")
	}
	n, err := convert.Convert(v, cty.Number)
	if err != nil {
		return 0, fmt.Errorf("%s is not a number", v.Type().FriendlyName())
	}
	var f float64
	if err := gocty.FromCtyValue(n, &f); err != nil {
		return 0, err
	}
	return f, nil
}

// toNative converts a cty value into float64, string, bool, []any or
// map[string]any.
func toNative(v cty.Value) (any, error) {
	if v.IsNull() || !v.IsKnown() {
		return nil, nil
	}
	ty := v.Type()
	switch {
	case ty == cty.Number:
		return ctyNumber(v)
	case ty == cty.String:
		return v.AsString(), nil
	case ty == cty.Bool:
		return v.True(), nil
	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		out := make([]any, 0, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			_, e := it.Element()
			n, err := toNative(e)
			if err != nil {
				return nil, err
			}
			out = append(out, n)
		}
		return out, nil
	case ty.IsObjectType() || ty.IsMapType():
		out := make(map[string]any, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			k, e := it.Element()
			n, err := toNative(e)
			if err != nil {
				return nil, fmt.Errorf("in %q: %w", k.AsString(), err)
			}
			out[k.AsString()] = n
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported value type %s", ty.FriendlyName())
	}
}

// functions are available to every expression. Trigonometry takes degrees,
// matching anchor rotations.
var functions = map[string]function.Function{
	"abs":   stdlib.AbsoluteFunc,
	"ceil":  stdlib.CeilFunc,
	"floor": stdlib.FloorFunc,
	"max":   stdlib.MaxFunc,
	"min":   stdlib.MinFunc,
	"pow":   stdlib.PowFunc,
	"sign":  stdlib.SignumFunc,
	"sqrt":  unaryFunction(math.Sqrt),
	"sin":   unaryFunction(func(d float64) float64 { return math.Sin(d * math.Pi / 180) }),
	"cos":   unaryFunction(func(d float64) float64 { return math.Cos(d * math.Pi / 180) }),
	"tan":   unaryFunction(func(d float64) float64 { return math.Tan(d * math.Pi / 180) }),
}

func unaryFunction(fn func(float64) float64) function.Function {
	return function.New(&function.Spec{
		Params: []function.Parameter{{Name: "num", Type: cty.Number}},
		Type:   function.StaticReturnType(cty.Number),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			f, err := ctyNumber(args[0])
			if err != nil {
				return cty.NilVal, err
			}
			r := fn(f)
			if math.IsNaN(r) || math.IsInf(r, 0) {
				return cty.NilVal, fmt.Errorf("result is not a finite number")
			}
			return cty.NumberFloatVal(r), nil
		},
	})
}
