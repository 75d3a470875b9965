package gomap

import (
	"fmt"
	"reflect"

	"github.com/signadot/typeconf/debug"
	"github.com/signadot/typeconf/ir"
)

// Property is one compiled property of an [ObjectDescriptor].
type Property struct {
	spec  *fieldSpec
	parse Parser
}

func (p *Property) Name() string { return p.spec.name }
func (p *Property) Required() bool { return p.spec.required }
func (p *Property) Type() *Desc { return p.spec.desc }

// Default returns the value used when an optional property is absent.
func (p *Property) Default() any { return p.spec.def }

// ObjectDescriptor is the compiled construction plan of one type. It is
// immutable once published by a [Registry] and safe for concurrent parses:
// the values gathered during a parse live in a call-local [Args].
type ObjectDescriptor struct {
	goType reflect.Type
	name   string
	origin string
	props  []*Property
	byName map[string]int
	inline bool
	build  func(*Args) (any, error)
	raw    func(*ir.Node) (any, error)
}

func newObjectDescriptor(c *Constructor, origin string) *ObjectDescriptor {
	od := &ObjectDescriptor{
		goType: c.goType,
		name:   c.name,
		origin: origin,
		byName: make(map[string]int, len(c.fields)),
		inline: c.inline,
		build:  c.build,
		raw:    c.raw,
	}
	for i, f := range c.fields {
		od.props = append(od.props, &Property{spec: f})
		od.byName[f.name] = i
	}
	return od
}

func (od *ObjectDescriptor) Type() reflect.Type { return od.goType }
func (od *ObjectDescriptor) Name() string { return od.name }
func (od *ObjectDescriptor) Origin() string { return od.origin }
func (od *ObjectDescriptor) Properties() []*Property { return od.props }
func (od *ObjectDescriptor) Inlineable() bool { return od.inline }
func (od *ObjectDescriptor) IsRaw() bool { return od.raw != nil }

func (od *ObjectDescriptor) Property(name string) (*Property, bool) {
	i, ok := od.byName[name]
	if !ok {
		return nil, false
	}
	return od.props[i], true
}

// Parse constructs one instance from node.
func (od *ObjectDescriptor) Parse(node *ir.Node) (any, error) {
	if debug.Parse() {
		debug.Logf("parse %s from %v", od.name, node)
	}
	if od.raw != nil {
		v, err := od.raw(node)
		if err != nil {
			if _, ok := AsError(err); ok {
				return nil, err
			}
			return nil, conversion(node, od.name, err)
		}
		return v, nil
	}
	args := od.newArgs(node)
	var err error
	switch {
	case node.Kind == ir.MappingKind:
		err = od.walk(node, args)
	case od.inline:
		err = od.inlineWalk(node, args)
	default:
		err = wrongKind(node, ir.MappingKind)
	}
	if err != nil {
		return nil, err
	}
	var missing []string
	for i, p := range od.props {
		if p.spec.required && !args.set[i] {
			missing = append(missing, p.spec.name)
		}
	}
	if len(missing) != 0 {
		return nil, missingRequired(node, od.name, missing)
	}
	for i, p := range od.props {
		if !args.set[i] {
			args.vals[i] = p.spec.def
		}
	}
	v, err := od.build(args)
	if err != nil {
		return nil, &Error{
			Kind:    ErrConstruction,
			Node:    node,
			Message: fmt.Sprintf("could not instantiate %s", od.name),
			Err:     err,
		}
	}
	return v, nil
}

func (od *ObjectDescriptor) walk(node *ir.Node, args *Args) error {
	for i, key := range node.Fields {
		if key.Kind != ir.ScalarKind {
			return wrongKind(key, ir.ScalarKind)
		}
		idx, ok := od.byName[key.Value]
		if !ok {
			return unknownProperty(key, od.name)
		}
		if first := args.keys[idx]; first != nil {
			return duplicateProperty(first, key)
		}
		args.keys[idx] = key
		if err := od.bind(idx, node.Values[i], args); err != nil {
			return err
		}
	}
	return nil
}

func (od *ObjectDescriptor) inlineWalk(node *ir.Node, args *Args) error {
	switch node.Kind {
	case ir.ScalarKind:
		if len(od.props) != 1 {
			return &Error{
				Kind:    ErrWrongNodeType,
				Node:    node,
				Message: fmt.Sprintf("object %s does not take only one argument", od.name),
			}
		}
		return od.bind(0, node, args)
	case ir.SequenceKind:
		if len(node.Values) > len(od.props) {
			return &Error{
				Kind:    ErrWrongNodeType,
				Node:    node,
				Message: fmt.Sprintf("too many arguments for %s (max %d)", od.name, len(od.props)),
			}
		}
		for i, v := range node.Values {
			if err := od.bind(i, v, args); err != nil {
				return err
			}
		}
		return nil
	default:
		return wrongKind(node, ir.MappingKind)
	}
}

// bind decodes value into property i. A null value leaves an optional
// property absent.
func (od *ObjectDescriptor) bind(i int, value *ir.Node, args *Args) error {
	p := od.props[i]
	if value.IsNull() && !p.spec.required {
		return nil
	}
	v, err := p.parse(value)
	if err != nil {
		return AddLocation(err, fmt.Sprintf("in property %q", p.spec.name))
	}
	args.vals[i] = v
	args.set[i] = true
	return nil
}
