package gomap

import (
	"fmt"
	"reflect"

	"github.com/DataDog/datadog-agent/pkg/util/optional"

	"github.com/signadot/typeconf/ir"
)

// FieldSpec is implemented by [Field] values passed to [Object].
type FieldSpec interface {
	fieldSpec() *fieldSpec
}

type fieldSpec struct {
	name     string
	desc     *Desc
	required bool
	def      any
}

// Field is one declared property of an object schema. Its Get method reads
// the decoded value back inside a build function.
type Field[T any] struct {
	s *fieldSpec
}

func (f Field[T]) fieldSpec() *fieldSpec { return f.s }

func (f Field[T]) Name() string { return f.s.name }

// Get returns the value decoded for f, or its default when the property was
// absent. It panics if f is not a property of the object being built.
func (f Field[T]) Get(a *Args) T {
	i, ok := a.od.byName[f.s.name]
	if !ok || a.od.props[i].spec != f.s {
		panic(fmt.Sprintf("gomap: %s has no property %q", a.od.name, f.s.name))
	}
	return a.vals[i].(T)
}

// Required declares a property that must be present.
func Required[T any](name string, t Type[T]) Field[T] {
	return Field[T]{s: &fieldSpec{name: name, desc: t.d, required: true}}
}

// Optional declares a property that may be absent, in which case it decodes
// to none.
func Optional[T any](name string, t Type[T]) Field[optional.Option[T]] {
	ot := OptionalOf(t)
	return Field[optional.Option[T]]{s: &fieldSpec{name: name, desc: ot.d, def: optional.NewNoneOption[T]()}}
}

// Default declares a property that takes def when absent.
func Default[T any](name string, t Type[T], def T) Field[T] {
	return Field[T]{s: &fieldSpec{name: name, desc: t.d, def: def}}
}

// Args holds the values gathered for one construction, in declared order.
type Args struct {
	od   *ObjectDescriptor
	node *ir.Node
	vals []any
	keys []*ir.Node
	set  []bool
}

func (od *ObjectDescriptor) newArgs(node *ir.Node) *Args {
	return &Args{
		od:   od,
		node: node,
		vals: make([]any, len(od.props)),
		keys: make([]*ir.Node, len(od.props)),
		set:  make([]bool, len(od.props)),
	}
}

// Has reports whether the document supplied a value for the named property.
func (a *Args) Has(name string) bool {
	i, ok := a.od.byName[name]
	return ok && a.set[i]
}

// Node returns the node the object is being built from.
func (a *Args) Node() *ir.Node {
	return a.node
}

// Constructor is the declared construction plan of one Go type: either an
// ordered property schema with a build function, or a raw function of the
// undecoded node.
type Constructor struct {
	goType reflect.Type
	name   string
	fields []*fieldSpec
	inline bool
	build  func(*Args) (any, error)
	raw    func(*ir.Node) (any, error)
	err    error
}

func (c *Constructor) Type() reflect.Type { return c.goType }
func (c *Constructor) Name() string { return c.name }

// Builder assembles a [Constructor] for T.
type Builder[T any] struct {
	name   string
	fields []FieldSpec
	inline bool
}

// Object starts a schema for T with the given properties in constructor
// order.
func Object[T any](fields ...FieldSpec) *Builder[T] {
	return &Builder[T]{name: reflect.TypeFor[T]().Name(), fields: fields}
}

// Named overrides the display name used in diagnostics.
func (b *Builder[T]) Named(name string) *Builder[T] {
	b.name = name
	return b
}

// Inline lets T be written as a bare scalar (one property) or a sequence
// bound positionally to the properties.
func (b *Builder[T]) Inline() *Builder[T] {
	b.inline = true
	return b
}

func (b *Builder[T]) Build(fn func(*Args) (T, error)) *Constructor {
	c := &Constructor{
		goType: reflect.TypeFor[T](),
		name:   b.name,
		inline: b.inline,
		build: func(a *Args) (any, error) {
			return fn(a)
		},
	}
	seen := map[string]bool{}
	for _, f := range b.fields {
		s := f.fieldSpec()
		switch {
		case s == nil || s.desc == nil:
			c.err = registration("%s: zero Field", c.name)
		case s.name == "":
			c.err = registration("%s: property with empty name", c.name)
		case seen[s.name]:
			c.err = registration("%s: property %q declared twice", c.name, s.name)
		}
		if c.err != nil {
			return c
		}
		seen[s.name] = true
		c.fields = append(c.fields, s)
	}
	return c
}

// Raw declares a constructor that receives the undecoded node, for types
// whose shape is not a set of named properties.
func Raw[T any](fn func(*ir.Node) (T, error)) *Constructor {
	gt := reflect.TypeFor[T]()
	return &Constructor{
		goType: gt,
		name:   gt.Name(),
		raw: func(n *ir.Node) (any, error) {
			return fn(n)
		},
	}
}

// NamedRaw is Raw with an explicit display name.
func NamedRaw[T any](name string, fn func(*ir.Node) (T, error)) *Constructor {
	c := Raw(fn)
	c.name = name
	return c
}
