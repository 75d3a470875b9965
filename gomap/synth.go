package gomap

import (
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/signadot/typeconf/debug"
	"github.com/signadot/typeconf/ir"
	"github.com/signadot/typeconf/placeholder"
)

// Parser decodes one node into a value of the type it was synthesized for.
type Parser func(*ir.Node) (any, error)

// session synthesizes parsers for one request. Object descriptors created
// while it runs stay private to it until publish, so a recursive type sees
// its own in-progress descriptor and nobody else sees a half-built one.
type session struct {
	r       *Registry
	pending map[reflect.Type]*ObjectDescriptor
	order   []*ObjectDescriptor
}

func (r *Registry) newSession() *session {
	return &session{r: r, pending: map[reflect.Type]*ObjectDescriptor{}}
}

func (s *session) lookup(t reflect.Type) (*ObjectDescriptor, bool) {
	if od, ok := s.pending[t]; ok {
		return od, true
	}
	return s.r.GetIfPresent(t)
}

// descriptor returns the descriptor of t, building it from the type's
// declared constructor when needed. It returns nil, nil when t declares none.
func (s *session) descriptor(t reflect.Type) (*ObjectDescriptor, error) {
	if od, ok := s.lookup(t); ok {
		return od, nil
	}
	c, err := declaredConstructor(t)
	if err != nil || c == nil {
		return nil, err
	}
	return s.build(c, "native")
}

func (s *session) build(c *Constructor, origin string) (*ObjectDescriptor, error) {
	od, err := s.declare(c, origin)
	if err != nil {
		return nil, err
	}
	if err := s.compile(od); err != nil {
		return nil, err
	}
	return od, nil
}

// declare makes the descriptor of c visible to the session before its
// properties are compiled, so that constructors may refer to each other.
func (s *session) declare(c *Constructor, origin string) (*ObjectDescriptor, error) {
	if c.err != nil {
		return nil, c.err
	}
	if debug.Synth() {
		debug.Logf("synthesize %s (%s) from %s", c.name, c.goType, origin)
	}
	od := newObjectDescriptor(c, origin)
	s.pending[c.goType] = od
	s.order = append(s.order, od)
	return od, nil
}

func (s *session) compile(od *ObjectDescriptor) error {
	for _, p := range od.props {
		pp, err := s.parser(p.spec.desc)
		if err != nil {
			return AddLocation(err, fmt.Sprintf("in property %q of %s", p.spec.name, od.name))
		}
		p.parse = pp
	}
	return nil
}

// parser dispatches on the descriptor kind. Scalar kinds defer to a
// registered constructor for their Go type when there is one.
func (s *session) parser(d *Desc) (Parser, error) {
	if p, ok := s.r.cachedParser(d); ok {
		return p, nil
	}
	switch d.Kind {
	case MapKind, SortedMapKind, EnumMapKind:
		kp, err := s.parser(d.Key)
		if err != nil {
			return nil, err
		}
		vp, err := s.parser(d.Elem)
		if err != nil {
			return nil, err
		}
		return mapParser(d, kp, vp), nil
	case ArrayKind, ListKind:
		ep, err := s.parser(d.Elem)
		if err != nil {
			return nil, err
		}
		return seqParser(d, ep, []string{ir.TagSeq}), nil
	case SetKind, SortedSetKind:
		ep, err := s.parser(d.Elem)
		if err != nil {
			return nil, err
		}
		return seqParser(d, ep, []string{ir.TagSeq, ir.TagSet}), nil
	case LazyKind:
		ep, err := s.parser(d.Elem)
		if err != nil {
			return nil, err
		}
		return lazyParser(d, ep), nil
	case OptionalKind:
		ep, err := s.parser(d.Elem)
		if err != nil {
			return nil, err
		}
		return func(n *ir.Node) (any, error) {
			if n.IsNull() {
				return d.absent(), nil
			}
			v, err := ep(n)
			if err != nil {
				return nil, err
			}
			return d.present(v), nil
		}, nil
	case CustomKind:
		od, err := s.descriptor(d.GoType)
		if err != nil {
			return nil, err
		}
		if od == nil {
			return nil, &Error{
				Kind:    ErrUnparsableType,
				Message: fmt.Sprintf("cannot find parser for type %s: no configuration constructor", d.name),
			}
		}
		return od.Parse, nil
	case NodeKind:
		return func(n *ir.Node) (any, error) { return n, nil }, nil
	case BoolKind, Int8Kind, Int16Kind, Int32Kind, Int64Kind, IntKind,
		Float32Kind, Float64Kind, DecimalKind, StringKind, CharKind,
		TimeKind, UUIDKind, EnumKind:
		od, err := s.descriptor(d.GoType)
		if err != nil {
			return nil, err
		}
		if od != nil {
			return od.Parse, nil
		}
		return scalarParser(d), nil
	default:
		return nil, &Error{
			Kind:    ErrUnparsableType,
			Message: fmt.Sprintf("cannot find parser for type %s", d.name),
		}
	}
}

func checkScalar(n *ir.Node, accepted []string) error {
	if n.Kind != ir.ScalarKind {
		return wrongKind(n, ir.ScalarKind)
	}
	if !slices.Contains(accepted, n.Tag) {
		return wrongTag(n, accepted)
	}
	return nil
}

// CheckTag fails with a wrong node type error unless n is a scalar carrying
// one of the accepted tags. Raw constructors use it to validate their input.
func CheckTag(n *ir.Node, accepted ...string) error {
	return checkScalar(n, accepted)
}

var (
	numberTags  = []string{ir.TagInt, ir.TagFloat}
	boolTags    = []string{ir.TagBool, ir.TagStr}
	stringTags  = []string{ir.TagStr}
	charTags    = []string{ir.TagStr, ir.TagInt}
	timeTags    = []string{ir.TagTimestamp, ir.TagStr}
	enumTags    = []string{ir.TagStr, ir.TagBool}
	mappingTags = []string{ir.TagMap, ir.TagOmap}
)

func intParser[T ~int8 | ~int16 | ~int32 | ~int64 | ~int](d *Desc, bits int) Parser {
	return func(n *ir.Node) (any, error) {
		if err := checkScalar(n, numberTags); err != nil {
			return nil, err
		}
		v, err := ir.ParseInt(n.Value, bits)
		if err != nil {
			return nil, conversion(n, d.name, err)
		}
		return T(v), nil
	}
}

func floatParser[T ~float32 | ~float64](d *Desc, bits int) Parser {
	return func(n *ir.Node) (any, error) {
		if err := checkScalar(n, numberTags); err != nil {
			return nil, err
		}
		v, err := ir.ParseFloat(n.Value, bits)
		if err != nil {
			return nil, conversion(n, d.name, err)
		}
		return T(v), nil
	}
}

func scalarParser(d *Desc) Parser {
	switch d.Kind {
	case Int8Kind:
		return intParser[int8](d, 8)
	case Int16Kind:
		return intParser[int16](d, 16)
	case Int32Kind:
		return intParser[int32](d, 32)
	case Int64Kind:
		return intParser[int64](d, 64)
	case IntKind:
		return intParser[int](d, strconv.IntSize)
	case Float32Kind:
		return floatParser[float32](d, 32)
	case Float64Kind:
		return floatParser[float64](d, 64)
	case DecimalKind:
		return func(n *ir.Node) (any, error) {
			if err := checkScalar(n, numberTags); err != nil {
				return nil, err
			}
			v, err := decimal.NewFromString(strings.ReplaceAll(n.Value, "_", ""))
			if err != nil {
				return nil, conversion(n, d.name, err)
			}
			return v, nil
		}
	case BoolKind:
		return func(n *ir.Node) (any, error) {
			if err := checkScalar(n, boolTags); err != nil {
				return nil, err
			}
			v, err := ir.ParseBool(n.Value)
			if err != nil {
				return nil, conversion(n, d.name, err)
			}
			return v, nil
		}
	case StringKind:
		return func(n *ir.Node) (any, error) {
			if err := checkScalar(n, stringTags); err != nil {
				return nil, err
			}
			return n.Value, nil
		}
	case CharKind:
		return func(n *ir.Node) (any, error) {
			if err := checkScalar(n, charTags); err != nil {
				return nil, err
			}
			if utf8.RuneCountInString(n.Value) != 1 {
				return nil, conversion(n, d.name, fmt.Errorf("expected exactly one character"))
			}
			r, _ := utf8.DecodeRuneInString(n.Value)
			return r, nil
		}
	case TimeKind:
		return func(n *ir.Node) (any, error) {
			if err := checkScalar(n, timeTags); err != nil {
				return nil, err
			}
			v, err := ir.ParseTimestamp(n.Value)
			if err != nil {
				return nil, conversion(n, d.name, err)
			}
			return v, nil
		}
	case UUIDKind:
		return func(n *ir.Node) (any, error) {
			if err := checkScalar(n, stringTags); err != nil {
				return nil, err
			}
			if len(n.Value) != 36 {
				return nil, conversion(n, d.name, fmt.Errorf("not in canonical form"))
			}
			v, err := uuid.Parse(n.Value)
			if err != nil {
				return nil, conversion(n, d.name, err)
			}
			return v, nil
		}
	case EnumKind:
		return func(n *ir.Node) (any, error) {
			if err := checkScalar(n, enumTags); err != nil {
				return nil, err
			}
			v, ok := d.enum.byName[normalizeEnum(n.Value)]
			if !ok {
				return nil, &Error{
					Kind:    ErrConversion,
					Node:    n,
					Message: fmt.Sprintf("cannot find enum constant %q in %s", normalizeEnum(n.Value), d.name),
				}
			}
			return v, nil
		}
	}
	panic(fmt.Sprintf("gomap: no scalar parser for %s", d.name))
}

func seqParser(d *Desc, ep Parser, accepted []string) Parser {
	return func(n *ir.Node) (any, error) {
		elems := n.Values
		switch {
		case n.Kind == ir.MappingKind && n.Tag == ir.TagSet && slices.Contains(accepted, ir.TagSet):
			elems = n.Fields
		case n.Kind != ir.SequenceKind:
			return nil, wrongKind(n, ir.SequenceKind)
		case !slices.Contains(accepted, n.Tag):
			return nil, wrongTag(n, accepted)
		}
		return d.collect(len(elems), func(i int) (any, error) {
			v, err := ep(elems[i])
			if err != nil {
				return nil, AddLocation(err, fmt.Sprintf("at index %d", i))
			}
			return v, nil
		})
	}
}

func mapParser(d *Desc, kp, vp Parser) Parser {
	return func(n *ir.Node) (any, error) {
		if n.Kind != ir.MappingKind {
			return nil, wrongKind(n, ir.MappingKind)
		}
		if !slices.Contains(mappingTags, n.Tag) {
			return nil, wrongTag(n, mappingTags)
		}
		seen := make(map[string]*ir.Node, len(n.Fields))
		// distinct texts may decode to one key, e.g. enum spellings
		keys := make(map[any]*ir.Node, len(n.Fields))
		return d.assoc(len(n.Fields), func(i int) (any, any, error) {
			kn := n.Fields[i]
			if first, ok := seen[kn.Value]; ok {
				return nil, nil, duplicateKey(first, kn)
			}
			seen[kn.Value] = kn
			k, err := kp(kn)
			if err != nil {
				return nil, nil, err
			}
			if k != nil && reflect.TypeOf(k).Comparable() {
				if first, ok := keys[k]; ok {
					return nil, nil, duplicateKey(first, kn)
				}
				keys[k] = kn
			}
			v, err := vp(n.Values[i])
			if err != nil {
				return nil, nil, AddLocation(err, fmt.Sprintf("at key %q", kn.Value))
			}
			return k, v, nil
		})
	}
}

func duplicateKey(first, dup *ir.Node) *Error {
	e := duplicateProperty(first, dup)
	e.Message = fmt.Sprintf("duplicate key: %q", dup.Value)
	return e
}

func lazyParser(d *Desc, ep Parser) Parser {
	return func(n *ir.Node) (any, error) {
		if n.Kind != ir.ScalarKind {
			return nil, wrongKind(n, ir.ScalarKind)
		}
		text := placeholder.TranslateColors(n.Value)
		if placeholder.HasMarkers(text) {
			return d.deferred(text, n, ep), nil
		}
		if text != n.Value {
			n = n.WithValue(text)
		}
		v, err := ep(n)
		if err != nil {
			return nil, err
		}
		return d.resolved(v, text), nil
	}
}
