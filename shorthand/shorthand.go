// Package shorthand expands string part declarations.
//
// A part may be written as a bare string: an optional operation prefix
// followed by a name. "+a" adds, "-a" subtracts, "~a" intersects and "^a"
// stacks; without a prefix the part adds. The name is looked up in the
// given choices to pick the part's "what".
package shorthand

// prefixes maps a leading character to its operation.
var prefixes = map[byte]string{
	'+': "add",
	'-': "subtract",
	'~': "intersect",
	'^': "stack",
}

// Expand returns the structured form of s: a map with "name",
// "operation" and, when one of choices lists the name, "what". Choices are
// consulted in order; keys missing from order are never consulted.
func Expand(s string, choices map[string][]string, order []string) map[string]any {
	res := map[string]any{"name": s, "operation": "add"}
	if s != "" {
		if op, ok := prefixes[s[0]]; ok {
			res["name"] = s[1:]
			res["operation"] = op
		}
	}
	name := res["name"].(string)
	for _, key := range order {
		for _, candidate := range choices[key] {
			if candidate == name {
				res["what"] = key
				return res
			}
		}
	}
	return res
}
