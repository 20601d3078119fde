package units

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
)

// Expr is a dimension expression whose value depends on the unit set it is
// evaluated against. Exprs stay lazy until a consumer knows which units are
// in scope.
type Expr struct {
	src  string
	expr hcl.Expression
}

// Parse parses an expression in HCL syntax.
func Parse(src string) (Expr, error) {
	e, diags := hclsyntax.ParseExpression([]byte(src), "<expression>", hcl.InitialPos)
	if diags.HasErrors() {
		return Expr{}, fmt.Errorf("parsing %q: %w", src, diags)
	}
	return Expr{src: src, expr: e}, nil
}

// MustParse is like Parse but panics on error. It is meant for literals
// in tests and package-level variables.
func MustParse(src string) Expr {
	e, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return e
}

// FromHCL wraps an already parsed expression, typically an attribute of a
// configuration file.
func FromHCL(e hcl.Expression) Expr {
	src := ""
	if r := e.Range(); r.Filename != "" {
		src = r.String()
	}
	return Expr{src: src, expr: e}
}

// String returns the expression source, or its location when it came from a file.
func (e Expr) String() string {
	return e.src
}

// Variables returns the unit names the expression refers to.
func (e Expr) Variables() []string {
	if e.expr == nil {
		return nil
	}
	var names []string
	for _, t := range e.expr.Variables() {
		names = append(names, t.RootName())
	}
	return names
}

// Value evaluates the expression against u.
func (e Expr) Value(u Units) (cty.Value, error) {
	if e.expr == nil {
		return cty.NullVal(cty.DynamicPseudoType), nil
	}
	v, diags := e.expr.Value(u.Context())
	if diags.HasErrors() {
		return cty.NilVal, fmt.Errorf("evaluating %q: %w", e.src, diags)
	}
	return v, nil
}

// Native evaluates the expression and converts the result into plain Go
// values (float64, string, bool, []any, map[string]any).
func (e Expr) Native(u Units) (any, error) {
	v, err := e.Value(u)
	if err != nil {
		return nil, err
	}
	return toNative(v)
}

// Number evaluates the expression to a float.
func (e Expr) Number(u Units) (float64, error) {
	v, err := e.Value(u)
	if err != nil {
		return 0, err
	}
	f, err := ctyNumber(v)
	if err != nil {
		return 0, fmt.Errorf("evaluating %q: %w", e.src, err)
	}
	return f, nil
}
