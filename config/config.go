// Package config gives keyed, typed access to a mapping node for code that
// reads configuration by hand instead of declaring a constructor.
package config

import (
	"fmt"

	"github.com/signadot/typeconf/gomap"
	"github.com/signadot/typeconf/ir"
	"github.com/signadot/typeconf/placeholder"
	"github.com/signadot/typeconf/stddecl"
)

// Section is a mapping node paired with the registry its values are decoded
// with.
type Section struct {
	r    *gomap.Registry
	node *ir.Node
}

// New wraps node, which must be a mapping.
func New(r *gomap.Registry, node *ir.Node) (*Section, error) {
	if node.Kind != ir.MappingKind {
		return nil, &gomap.Error{
			Kind:    gomap.ErrWrongNodeType,
			Node:    node,
			Message: fmt.Sprintf("wrong node type: expected %s, got %s", ir.MappingKind, node.Kind),
		}
	}
	return &Section{r: r, node: node}, nil
}

func (s *Section) Node() *ir.Node { return s.node }

func (s *Section) Registry() *gomap.Registry { return s.r }

// Has reports whether key holds a non-null value.
func (s *Section) Has(key string) bool {
	v := s.node.Get(key)
	return v != nil && !v.IsNull()
}

// Keys lists the scalar keys in document order.
func (s *Section) Keys() []string {
	res := make([]string, 0, len(s.node.Fields))
	for _, f := range s.node.Fields {
		if f.Kind == ir.ScalarKind {
			res = append(res, f.Value)
		}
	}
	return res
}

func (s *Section) missing(key string) error {
	return &gomap.Error{
		Kind:    gomap.ErrMissingRequired,
		Node:    s.node,
		Names:   []string{key},
		Message: fmt.Sprintf("required key not found: %q", key),
	}
}

func (s *Section) lookup(key string) *ir.Node {
	v := s.node.Get(key)
	if v == nil || v.IsNull() {
		return nil
	}
	return v
}

// Section returns the mapping under key.
func (s *Section) Section(key string) (*Section, error) {
	v := s.lookup(key)
	if v == nil {
		return nil, s.missing(key)
	}
	res, err := New(s.r, v)
	if err != nil {
		return nil, gomap.AddLocation(err, fmt.Sprintf("at key %q", key))
	}
	return res, nil
}

// Sections returns the mappings of the sequence under key. An absent key
// yields no sections.
func (s *Section) Sections(key string) ([]*Section, error) {
	v := s.lookup(key)
	if v == nil {
		return nil, nil
	}
	if v.Kind != ir.SequenceKind {
		return nil, gomap.AddLocation(&gomap.Error{
			Kind:    gomap.ErrWrongNodeType,
			Node:    v,
			Message: fmt.Sprintf("wrong node type: expected %s, got %s", ir.SequenceKind, v.Kind),
		}, fmt.Sprintf("at key %q", key))
	}
	res := make([]*Section, len(v.Values))
	for i, e := range v.Values {
		sec, err := New(s.r, e)
		if err != nil {
			return nil, gomap.AddLocation(gomap.AddLocation(err, fmt.Sprintf("at index %d", i)), fmt.Sprintf("at key %q", key))
		}
		res[i] = sec
	}
	return res, nil
}

// Get decodes the value under key as t. The boolean is false when the key
// is absent or null.
func Get[T any](s *Section, key string, t gomap.Type[T]) (T, bool, error) {
	var zero T
	v := s.lookup(key)
	if v == nil {
		return zero, false, nil
	}
	res, err := gomap.Parse(s.r, v, t)
	if err != nil {
		return zero, true, gomap.AddLocation(err, fmt.Sprintf("at key %q", key))
	}
	return res, true, nil
}

// GetOr is Get returning def for an absent key.
func GetOr[T any](s *Section, key string, t gomap.Type[T], def T) (T, error) {
	res, ok, err := Get(s, key, t)
	if err != nil || !ok {
		return def, err
	}
	return res, nil
}

// Require is Get failing when the key is absent.
func Require[T any](s *Section, key string, t gomap.Type[T]) (T, error) {
	res, ok, err := Get(s, key, t)
	if err != nil {
		return res, err
	}
	if !ok {
		return res, s.missing(key)
	}
	return res, nil
}

func (s *Section) String(key, def string) (string, error) {
	return GetOr(s, key, gomap.String(), def)
}

func (s *Section) Int(key string, def int) (int, error) {
	return GetOr(s, key, gomap.Int(), def)
}

func (s *Section) Int64(key string, def int64) (int64, error) {
	return GetOr(s, key, gomap.Int64(), def)
}

func (s *Section) Float32(key string, def float32) (float32, error) {
	return GetOr(s, key, gomap.Float32(), def)
}

func (s *Section) Float64(key string, def float64) (float64, error) {
	return GetOr(s, key, gomap.Float64(), def)
}

func (s *Section) Bool(key string, def bool) (bool, error) {
	return GetOr(s, key, gomap.Bool(), def)
}

func (s *Section) RequireString(key string) (string, error) {
	return Require(s, key, gomap.String())
}

func (s *Section) RequireInt(key string) (int, error) {
	return Require(s, key, gomap.Int())
}

func (s *Section) RequireInt64(key string) (int64, error) {
	return Require(s, key, gomap.Int64())
}

func (s *Section) RequireFloat32(key string) (float32, error) {
	return Require(s, key, gomap.Float32())
}

func (s *Section) RequireFloat64(key string) (float64, error) {
	return Require(s, key, gomap.Float64())
}

func (s *Section) RequireBool(key string) (bool, error) {
	return Require(s, key, gomap.Bool())
}

// Message reads a chat message: color codes are translated and placeholders
// are kept for resolution against a player.
func (s *Section) Message(key, def string) (placeholder.Value[string], error) {
	return GetOr(s, key, gomap.LazyOf(gomap.String()), placeholder.Resolved(placeholder.TranslateColors(def)))
}

func (s *Section) RequireMessage(key string) (placeholder.Value[string], error) {
	return Require(s, key, gomap.LazyOf(gomap.String()))
}

// The accessors below need a registry that imported stddecl.

func (s *Section) Color(key string, def stddecl.Color) (stddecl.Color, error) {
	return GetOr(s, key, gomap.Custom[stddecl.Color](), def)
}

func (s *Section) Sound(key string, def stddecl.Sound) (stddecl.Sound, error) {
	return GetOr(s, key, gomap.Custom[stddecl.Sound](), def)
}

func (s *Section) Material(key string, def stddecl.Material) (stddecl.Material, error) {
	return GetOr(s, key, gomap.Custom[stddecl.Material](), def)
}

func (s *Section) RequireLocation(key string) (stddecl.Location, error) {
	return Require(s, key, gomap.Custom[stddecl.Location]())
}
