// Package validate checks declaration values and reports path-qualified
// errors.
//
// Every check takes the dotted path of the field it inspects
// ("outlines.plate.main.size") so that failures point at the offending
// declaration. Checks that accept dimensions resolve them against a
// units.Units set first.
package validate

import (
	"errors"
	"fmt"
)

// Kind classifies validation failures.
type Kind int

const (
	// KindSchema covers unknown keys, wrong types and values outside an enum.
	KindSchema Kind = iota
	// KindFeasibility covers values that are well formed but geometrically
	// impossible.
	KindFeasibility
	// KindReference covers names that do not resolve.
	KindReference
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindSchema:
		return "schema"
	case KindFeasibility:
		return "feasibility"
	case KindReference:
		return "reference"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Sentinel errors for errors.Is matching by kind.
var (
	ErrSchema      = errors.New("schema error")
	ErrFeasibility = errors.New("feasibility error")
	ErrReference   = errors.New("reference error")
)

// Error is a validation failure.
type Error struct {
	// Path is the dotted path of the offending field, if any.
	Path string
	// Msg is the complete human readable message.
	Msg  string
	Kind Kind
}

func (e *Error) Error() string {
	return e.Msg
}

// Is matches the sentinel of the error's kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrSchema:
		return e.Kind == KindSchema
	case ErrFeasibility:
		return e.Kind == KindFeasibility
	case ErrReference:
		return e.Kind == KindReference
	}
	return false
}

// Schemaf returns a schema error for path.
func Schemaf(path, format string, args ...any) *Error {
	return &Error{Path: path, Msg: fmt.Sprintf(format, args...), Kind: KindSchema}
}

// Feasibilityf returns a feasibility error.
func Feasibilityf(path, format string, args ...any) *Error {
	return &Error{Path: path, Msg: fmt.Sprintf(format, args...), Kind: KindFeasibility}
}

// Referencef returns a reference error for path.
func Referencef(path, format string, args ...any) *Error {
	return &Error{Path: path, Msg: fmt.Sprintf(format, args...), Kind: KindReference}
}

// Assert returns err when cond is false and nil otherwise.
func Assert(cond bool, err *Error) error {
	if cond {
		return nil
	}
	return err
}
