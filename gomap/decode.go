package gomap

import (
	"reflect"

	"github.com/signadot/typeconf/format"
	"github.com/signadot/typeconf/ir"
	"github.com/signadot/typeconf/parse"
)

type fromOpts struct {
	format format.Format
	file   string
}

func (do *fromOpts) parseOpts() []parse.ParseOption {
	res := []parse.ParseOption{
		parse.ParseFormat(do.format),
	}
	if do.file != "" {
		res = append(res, parse.ParseFile(do.file))
	}
	return res
}

type FromOption func(*fromOpts)

func LoadFormat(f format.Format) FromOption { return func(o *fromOpts) { o.format = f } }
func LoadFile(name string) FromOption { return func(o *fromOpts) { o.file = name } }

// Parse decodes node as t.
func Parse[T any](r *Registry, node *ir.Node, t Type[T]) (T, error) {
	var zero T
	p, err := r.ParserFor(t.d)
	if err != nil {
		return zero, err
	}
	v, err := p(node)
	if err != nil {
		return zero, err
	}
	return v.(T), nil
}

// Decode decodes node with the object descriptor of T.
func Decode[T any](r *Registry, node *ir.Node) (T, error) {
	return Parse(r, node, Custom[T]())
}

// ParseBytes parses d with the front end selected by opts and decodes the
// first document as t.
func ParseBytes[T any](r *Registry, d []byte, t Type[T], opts ...FromOption) (T, error) {
	o := &fromOpts{}
	for _, f := range opts {
		f(o)
	}
	node, err := parse.Parse(d, o.parseOpts()...)
	if err != nil {
		var zero T
		return zero, err
	}
	return Parse(r, node, t)
}

// DescriptorFor returns the descriptor of T, failing when T has none.
func DescriptorFor[T any](r *Registry) (*ObjectDescriptor, error) {
	return r.Require(reflect.TypeFor[T]())
}
