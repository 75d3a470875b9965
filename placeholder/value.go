package placeholder

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/signadot/typeconf/debug"
	"github.com/signadot/typeconf/ir"
)

// Variant tells whether a Value is already resolved.
type Variant int

const (
	ResolvedVariant Variant = iota
	DeferredVariant
)

func (v Variant) String() string {
	switch v {
	case ResolvedVariant:
		return "resolved"
	case DeferredVariant:
		return "deferred"
	default:
		return fmt.Sprintf("<variant %d>", int(v))
	}
}

// ErrorHandler supplies the value of a deferred text that fails to resolve.
type ErrorHandler[T any] func(text string, err error) T

// LogError is the default ErrorHandler: it logs the failure and yields the
// zero value.
func LogError[T any](text string, err error) T {
	debug.Logger().Warn("cannot resolve placeholder value",
		zap.String("text", text), zap.Error(err))
	var zero T
	return zero
}

// Value holds either a value known at parse time or the text it will be
// computed from once a Context is available. Values are immutable; the zero
// Value is the resolved zero of T.
type Value[T any] struct {
	variant Variant
	value   T
	text    string
	node    *ir.Node
	parse   func(*ir.Node) (T, error)
	onError ErrorHandler[T]
}

// Resolved wraps a known value.
func Resolved[T any](v T) Value[T] {
	return Value[T]{variant: ResolvedVariant, value: v}
}

// Deferred wraps text whose markers are substituted at resolution time, after
// which the result is decoded with parse. node supplies the tag and position;
// it may be nil.
func Deferred[T any](text string, node *ir.Node, parse func(*ir.Node) (T, error)) Value[T] {
	return Value[T]{
		variant: DeferredVariant,
		text:    text,
		node:    node,
		parse:   parse,
	}
}

// WithText records the literal v was read from.
func (v Value[T]) WithText(text string) Value[T] {
	v.text = text
	return v
}

// WithErrorHandler returns a copy of v using h on resolution failures.
func (v Value[T]) WithErrorHandler(h ErrorHandler[T]) Value[T] {
	v.onError = h
	return v
}

func (v Value[T]) Variant() Variant { return v.variant }
func (v Value[T]) IsResolved() bool { return v.variant == ResolvedVariant }

// Resolve computes the value for ctx, which may be nil.
func (v Value[T]) Resolve(ctx *Context) T {
	return v.ResolveWith(ctx, nil)
}

// ResolveWith is Resolve with extra substitutions that take precedence over
// ctx's providers.
func (v Value[T]) ResolveWith(ctx *Context, extras map[string]string) T {
	res, err := v.TryResolve(ctx, extras)
	if err != nil {
		h := v.onError
		if h == nil {
			h = LogError[T]
		}
		return h(v.text, err)
	}
	return res
}

// TryResolve is ResolveWith reporting failures instead of handling them.
func (v Value[T]) TryResolve(ctx *Context, extras map[string]string) (T, error) {
	switch v.variant {
	case ResolvedVariant:
		return v.value, nil
	case DeferredVariant:
		var zero T
		text, err := Expand(v.text, ctx, extras)
		if err != nil {
			return zero, err
		}
		var n *ir.Node
		if v.node != nil {
			n = v.node.WithValue(text)
		} else {
			n = ir.FromScalar(text)
		}
		if debug.Lazy() {
			debug.Logf("resolve %q to %q", v.text, text)
		}
		return v.parse(n)
	default:
		panic(fmt.Sprintf("placeholder: bad variant %d", int(v.variant)))
	}
}

// String returns the literal the value was read from, or the value itself
// when it was built in code.
func (v Value[T]) String() string {
	if v.text != "" || v.variant == DeferredVariant {
		return v.text
	}
	return fmt.Sprint(v.value)
}
