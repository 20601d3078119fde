package validate

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gogpu/outline/units"
)

// Type names reported by Type.
const (
	TypeUndefined = "undefined"
	TypeNumber    = "number"
	TypeString    = "string"
	TypeBoolean   = "boolean"
	TypeArray     = "array"
	TypeObject    = "object"
)

// Type returns the declaration type of an already evaluated value.
func Type(v any) string {
	switch v.(type) {
	case nil:
		return TypeUndefined
	case float64, float32, int, int64, int32:
		return TypeNumber
	case string:
		return TypeString
	case bool:
		return TypeBoolean
	case []any:
		return TypeArray
	case map[string]any:
		return TypeObject
	default:
		return fmt.Sprintf("%T", v)
	}
}

// Unexpected fails when obj holds a key outside allowed.
func Unexpected(obj map[string]any, path string, allowed []string) error {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		if !slices.Contains(allowed, k) {
			return Schemaf(path+"."+k, "Unexpected key %q within field %q!", k, path)
		}
	}
	return nil
}

// In fails when v is not one of allowed.
func In[T comparable](v T, path string, allowed []T) (T, error) {
	if slices.Contains(allowed, v) {
		return v, nil
	}
	parts := make([]string, len(allowed))
	for i, a := range allowed {
		parts[i] = fmt.Sprint(a)
	}
	return v, Schemaf(path, "Field %q should be one of [%s]!", path, strings.Join(parts, ", "))
}

// Sane evaluates v under u and checks that it has the wanted type. Numbers
// may be given as expressions; the result is then a float64.
func Sane(v any, path, want string, u units.Units) (any, error) {
	if want == TypeNumber {
		if !units.IsNumeric(v) {
			return nil, Schemaf(path, "Field %q should be of type %s!", path, want)
		}
		n, err := u.Number(v)
		if err != nil {
			return nil, &Error{Path: path, Msg: fmt.Sprintf("Field %q should be of type %s! (%v)", path, want, err), Kind: KindSchema}
		}
		return n, nil
	}
	r, err := u.Eval(v)
	if err != nil {
		return nil, Schemaf(path, "Field %q could not be evaluated: %v", path, err)
	}
	if got := Type(r); got != want {
		return nil, Schemaf(path, "Field %q should be of type %s!", path, want)
	}
	return r, nil
}

// Number is Sane for numbers with a default used when v is nil.
func Number(v any, path string, def float64, u units.Units) (float64, error) {
	if v == nil {
		return def, nil
	}
	n, err := Sane(v, path, TypeNumber, u)
	if err != nil {
		return 0, err
	}
	return n.(float64), nil
}

// String is Sane for strings with a default used when v is nil.
func String(v any, path, def string, u units.Units) (string, error) {
	if v == nil {
		return def, nil
	}
	s, err := Sane(v, path, TypeString, u)
	if err != nil {
		return "", err
	}
	return s.(string), nil
}

// Bool is Sane for booleans with a default used when v is nil.
func Bool(v any, path string, def bool, u units.Units) (bool, error) {
	if v == nil {
		return def, nil
	}
	b, err := Sane(v, path, TypeBoolean, u)
	if err != nil {
		return false, err
	}
	return b.(bool), nil
}

// Array is Sane for lists.
func Array(v any, path string, u units.Units) ([]any, error) {
	a, err := Sane(v, path, TypeArray, u)
	if err != nil {
		return nil, err
	}
	return a.([]any), nil
}

// Object is Sane for objects.
func Object(v any, path string, u units.Units) (map[string]any, error) {
	o, err := Sane(v, path, TypeObject, u)
	if err != nil {
		return nil, err
	}
	return o.(map[string]any), nil
}

// Truthy reports whether an evaluated value counts as set: anything but
// nil, false, zero and the empty string.
func Truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case float64:
		return x != 0
	case int:
		return x != 0
	}
	return true
}

// numbers evaluates a list of exactly n numbers.
func numbers(v any, path string, n int, u units.Units) ([]float64, error) {
	r, err := u.Eval(v)
	if err != nil {
		return nil, Schemaf(path, "Field %q could not be evaluated: %v", path, err)
	}
	list, ok := r.([]any)
	if !ok || len(list) != n {
		return nil, Schemaf(path, "Field %q should be an array of length %d!", path, n)
	}
	out := make([]float64, n)
	for i, e := range list {
		if e == nil {
			return nil, Schemaf(path, "Field %q should be an array of length %d!", path, n)
		}
		f, err := Number(e, fmt.Sprintf("%s[%d]", path, i), 0, u)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}

// XY parses a pair of numbers.
func XY(v any, path string, u units.Units) ([2]float64, error) {
	n, err := numbers(v, path, 2, u)
	if err != nil {
		return [2]float64{}, err
	}
	return [2]float64{n[0], n[1]}, nil
}

// WH parses a width and height. A single number is used for both.
func WH(v any, path string, u units.Units) ([2]float64, error) {
	r, err := u.Eval(v)
	if err != nil {
		return [2]float64{}, Schemaf(path, "Field %q could not be evaluated: %v", path, err)
	}
	if units.IsNumeric(r) {
		n, err := Number(r, path, 0, u)
		if err != nil {
			return [2]float64{}, err
		}
		return [2]float64{n, n}, nil
	}
	return XY(r, path, u)
}

// TRBL parses top, right, bottom and left values from a single number, a
// [vertical, horizontal] pair or a list of four.
func TRBL(v any, path string, u units.Units) ([4]float64, error) {
	r, err := u.Eval(v)
	if err != nil {
		return [4]float64{}, Schemaf(path, "Field %q could not be evaluated: %v", path, err)
	}
	if units.IsNumeric(r) {
		n, err := Number(r, path, 0, u)
		if err != nil {
			return [4]float64{}, err
		}
		return [4]float64{n, n, n, n}, nil
	}
	if list, ok := r.([]any); ok && len(list) == 2 {
		vh, err := numbers(list, path, 2, u)
		if err != nil {
			return [4]float64{}, err
		}
		return [4]float64{vh[0], vh[1], vh[0], vh[1]}, nil
	}
	n, err := numbers(r, path, 4, u)
	if err != nil {
		return [4]float64{}, err
	}
	return [4]float64{n[0], n[1], n[2], n[3]}, nil
}

// StrArr parses a string or a list of strings.
func StrArr(v any, path string, u units.Units) ([]string, error) {
	r, err := u.Eval(v)
	if err != nil {
		return nil, Schemaf(path, "Field %q could not be evaluated: %v", path, err)
	}
	switch x := r.(type) {
	case string:
		return []string{x}, nil
	case []any:
		out := make([]string, len(x))
		for i, e := range x {
			s, ok := e.(string)
			if !ok {
				return nil, Schemaf(path, "Field %q should be an array of strings!", path)
			}
			out[i] = s
		}
		return out, nil
	}
	return nil, Schemaf(path, "Field %q should be a string or an array of strings!", path)
}
