package gomap

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/signadot/typeconf/ir"
)

var (
	ErrWrongNodeType     = errors.New("wrong node type")
	ErrUnknownProperty   = errors.New("property not found")
	ErrDuplicateProperty = errors.New("duplicate property")
	ErrMissingRequired   = errors.New("required properties not found")
	ErrConversion        = errors.New("cannot convert value")
	ErrUnparsableType    = errors.New("unparsable type")
	ErrRegistration      = errors.New("registration conflict")
	ErrConstruction      = errors.New("could not instantiate")
)

// Error is the failure raised while synthesizing parsers or decoding nodes.
// Callers that know more about where the failure happened than the decoder
// does (a property, a file) append to Locations on the way out.
type Error struct {
	Kind    error    // one of the Err* sentinels
	Node    *ir.Node // offending node, nil for registration errors
	Other   *ir.Node // earlier node involved, e.g. the first of two duplicate keys
	Message string

	Names    []string // property names the error is about
	Accepted []string // tags the failing parser accepts

	Locations []string
	Err       error
}

func (e *Error) Error() string {
	b := &strings.Builder{}
	b.WriteString(e.Message)
	if e.Node != nil {
		fmt.Fprintf(b, " at %s", e.Node.Describe())
	}
	if e.Other != nil {
		fmt.Fprintf(b, " (first at %s)", e.Other.Describe())
	}
	if e.Err != nil {
		fmt.Fprintf(b, ": %v", e.Err)
	}
	for _, loc := range e.Locations {
		b.WriteString("\n  ")
		b.WriteString(loc)
	}
	return b.String()
}

func (e *Error) Unwrap() []error {
	res := []error{e.Kind}
	if e.Err != nil {
		res = append(res, e.Err)
	}
	return res
}

func (e *Error) AddLocation(loc string) *Error {
	e.Locations = append(e.Locations, loc)
	return e
}

// detach gives each caller of a collapsed flight its own copy of a decoding
// error, since callers append locations to it.
func detach(err error, shared bool) error {
	e, ok := err.(*Error)
	if !ok || !shared {
		return err
	}
	c := *e
	c.Names = slices.Clone(e.Names)
	c.Accepted = slices.Clone(e.Accepted)
	c.Locations = slices.Clone(e.Locations)
	return &c
}

// AsError returns the outermost *Error in err's chain.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// AddLocation appends loc to err's location trail when err carries one and
// returns err unchanged otherwise.
func AddLocation(err error, loc string) error {
	if e, ok := AsError(err); ok {
		e.AddLocation(loc)
	}
	return err
}

func quoteAll(names []string) string {
	qs := make([]string, len(names))
	for i, n := range names {
		qs[i] = fmt.Sprintf("%q", n)
	}
	return strings.Join(qs, ", ")
}

func wrongKind(node *ir.Node, want ir.Kind) *Error {
	return &Error{
		Kind:    ErrWrongNodeType,
		Node:    node,
		Message: fmt.Sprintf("wrong node type: expected %s, got %s", want, node.Kind),
	}
}

func wrongTag(node *ir.Node, accepted []string) *Error {
	return &Error{
		Kind:     ErrWrongNodeType,
		Node:     node,
		Accepted: accepted,
		Message:  fmt.Sprintf("wrong node type: expected one of [%s], got %s", strings.Join(accepted, " "), node.Tag),
	}
}

func unknownProperty(key *ir.Node, typeName string) *Error {
	return &Error{
		Kind:    ErrUnknownProperty,
		Node:    key,
		Names:   []string{key.Value},
		Message: fmt.Sprintf("property not found: %q in %s", key.Value, typeName),
	}
}

func duplicateProperty(first, again *ir.Node) *Error {
	return &Error{
		Kind:    ErrDuplicateProperty,
		Node:    again,
		Other:   first,
		Names:   []string{again.Value},
		Message: fmt.Sprintf("duplicate property: %q", again.Value),
	}
}

func missingRequired(node *ir.Node, typeName string, names []string) *Error {
	return &Error{
		Kind:    ErrMissingRequired,
		Node:    node,
		Names:   names,
		Message: fmt.Sprintf("required properties not found in %s: %s", typeName, quoteAll(names)),
	}
}

func conversion(node *ir.Node, target string, cause error) *Error {
	return &Error{
		Kind:    ErrConversion,
		Node:    node,
		Message: fmt.Sprintf("cannot convert %q to %s", node.Value, target),
		Err:     cause,
	}
}

func registration(format string, args ...any) *Error {
	return &Error{
		Kind:    ErrRegistration,
		Message: fmt.Sprintf(format, args...),
	}
}
