package gomap

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/DataDog/datadog-agent/pkg/util/optional"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/signadot/typeconf/ir"
	"github.com/signadot/typeconf/placeholder"
)

// Kind enumerates the type descriptor variants.
type Kind int

const (
	InvalidKind Kind = iota
	BoolKind
	Int8Kind
	Int16Kind
	Int32Kind
	Int64Kind
	IntKind
	Float32Kind
	Float64Kind
	DecimalKind
	StringKind
	CharKind
	TimeKind
	UUIDKind
	EnumKind
	CustomKind
	NodeKind
	ArrayKind
	ListKind
	SetKind
	SortedSetKind
	MapKind
	SortedMapKind
	EnumMapKind
	OptionalKind
	LazyKind
)

// Desc describes a target type. It is built by the typed constructors below
// and is immutable afterwards.
type Desc struct {
	Kind   Kind
	GoType reflect.Type
	Elem   *Desc // containers, optional and lazy
	Key    *Desc // mappings

	name string
	key  string
	enum *enumTable

	collect  func(n int, next func(i int) (any, error)) (any, error)
	assoc    func(n int, next func(i int) (any, any, error)) (any, error)
	present  func(v any) any
	absent   func() any
	resolved func(v any, text string) any
	deferred func(text string, node *ir.Node, p Parser) any
}

func (d *Desc) String() string { return d.name }

// Type is a typed handle on a descriptor, so that parse results and
// properties keep their Go type.
type Type[T any] struct{ d *Desc }

func (t Type[T]) Desc() *Desc { return t.d }
func (t Type[T]) String() string { return t.d.name }
func (t Type[T]) GoType() reflect.Type { return t.d.GoType }

func typeKey(t reflect.Type) string {
	if t.PkgPath() == "" {
		return t.String()
	}
	return t.PkgPath() + "." + t.Name()
}

func prim[T any](k Kind, name string) Type[T] {
	return Type[T]{d: &Desc{Kind: k, GoType: reflect.TypeFor[T](), name: name, key: name}}
}

func Bool() Type[bool] { return prim[bool](BoolKind, "bool") }
func Int8() Type[int8] { return prim[int8](Int8Kind, "int8") }
func Int16() Type[int16] { return prim[int16](Int16Kind, "int16") }
func Int32() Type[int32] { return prim[int32](Int32Kind, "int32") }
func Int64() Type[int64] { return prim[int64](Int64Kind, "int64") }
func Int() Type[int] { return prim[int](IntKind, "int") }
func Float32() Type[float32] { return prim[float32](Float32Kind, "float32") }
func Float64() Type[float64] { return prim[float64](Float64Kind, "float64") }
func Decimal() Type[decimal.Decimal] { return prim[decimal.Decimal](DecimalKind, "decimal") }
func String() Type[string] { return prim[string](StringKind, "string") }
func Char() Type[rune] { return prim[rune](CharKind, "char") }
func Time() Type[time.Time] { return prim[time.Time](TimeKind, "time") }
func UUID() Type[uuid.UUID] { return prim[uuid.UUID](UUIDKind, "uuid") }
func RawNode() Type[*ir.Node] { return prim[*ir.Node](NodeKind, "node") }

type enumTable struct {
	byName map[string]any
	names  []string
}

func normalizeEnum(s string) string {
	return strings.ToUpper(strings.ReplaceAll(s, " ", "_"))
}

// Enum describes a string enumeration whose constants are their own names.
func Enum[T ~string](values ...T) Type[T] {
	names := make(map[string]T, len(values))
	for _, v := range values {
		names[string(v)] = v
	}
	return EnumOf(names)
}

// EnumOf describes an enumeration with an explicit name table. Names are
// matched after replacing spaces by underscores and upper-casing.
func EnumOf[T comparable](names map[string]T) Type[T] {
	gt := reflect.TypeFor[T]()
	tbl := &enumTable{byName: make(map[string]any, len(names))}
	for n, v := range names {
		nn := normalizeEnum(n)
		tbl.byName[nn] = v
		tbl.names = append(tbl.names, nn)
	}
	slices.Sort(tbl.names)
	return Type[T]{d: &Desc{
		Kind:   EnumKind,
		GoType: gt,
		name:   gt.String(),
		key:    "enum:" + typeKey(gt) + tbl.key(),
		enum:   tbl,
	}}
}

// key identifies the table itself, so two tables over one Go type never
// share a cached parser.
func (tbl *enumTable) key() string {
	b := &strings.Builder{}
	b.WriteByte('{')
	for i, n := range tbl.names {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(b, "%s=%v", n, tbl.byName[n])
	}
	b.WriteByte('}')
	return b.String()
}

// Custom describes a type decoded by its registered object descriptor.
func Custom[T any]() Type[T] {
	gt := reflect.TypeFor[T]()
	return Type[T]{d: &Desc{Kind: CustomKind, GoType: gt, name: gt.String(), key: typeKey(gt)}}
}

func collection[C any](k Kind, label string, elem *Desc, collect func(int, func(int) (any, error)) (any, error)) Type[C] {
	return Type[C]{d: &Desc{
		Kind:    k,
		GoType:  reflect.TypeFor[C](),
		Elem:    elem,
		name:    label + "<" + elem.name + ">",
		key:     label + "<" + elem.key + ">",
		collect: collect,
	}}
}

func fillSlice[T any](n int, next func(int) (any, error)) ([]T, error) {
	res := make([]T, n)
	for i := range res {
		v, err := next(i)
		if err != nil {
			return nil, err
		}
		res[i] = v.(T)
	}
	return res, nil
}

// ArrayOf describes a fixed sequence decoded into a slice.
func ArrayOf[T any](elem Type[T]) Type[[]T] {
	return collection[[]T](ArrayKind, "array", elem.d, func(n int, next func(int) (any, error)) (any, error) {
		return fillSlice[T](n, next)
	})
}

// ListOf describes an ordered sequence.
func ListOf[T any](elem Type[T]) Type[[]T] {
	return collection[[]T](ListKind, "list", elem.d, func(n int, next func(int) (any, error)) (any, error) {
		return fillSlice[T](n, next)
	})
}

// SetOf describes an unordered set.
func SetOf[T comparable](elem Type[T]) Type[map[T]struct{}] {
	return collection[map[T]struct{}](SetKind, "set", elem.d, func(n int, next func(int) (any, error)) (any, error) {
		res := make(map[T]struct{}, n)
		for i := 0; i < n; i++ {
			v, err := next(i)
			if err != nil {
				return nil, err
			}
			res[v.(T)] = struct{}{}
		}
		return res, nil
	})
}

// SortedSetOf describes a set kept as an ascending slice without duplicates.
func SortedSetOf[T cmp.Ordered](elem Type[T]) Type[[]T] {
	return collection[[]T](SortedSetKind, "sortedset", elem.d, func(n int, next func(int) (any, error)) (any, error) {
		res, err := fillSlice[T](n, next)
		if err != nil {
			return nil, err
		}
		slices.Sort(res)
		return slices.Compact(res), nil
	})
}

func mapping[M any](k Kind, label string, key, val *Desc, assoc func(int, func(int) (any, any, error)) (any, error)) Type[M] {
	return Type[M]{d: &Desc{
		Kind:   k,
		GoType: reflect.TypeFor[M](),
		Key:    key,
		Elem:   val,
		name:   label + "<" + key.name + "," + val.name + ">",
		key:    label + "<" + key.key + "," + val.key + ">",
		assoc:  assoc,
	}}
}

func fillMap[K comparable, V any](n int, next func(int) (any, any, error)) (map[K]V, error) {
	res := make(map[K]V, n)
	for i := 0; i < n; i++ {
		k, v, err := next(i)
		if err != nil {
			return nil, err
		}
		res[k.(K)] = v.(V)
	}
	return res, nil
}

// MapOf describes a hash mapping.
func MapOf[K comparable, V any](key Type[K], val Type[V]) Type[map[K]V] {
	return mapping[map[K]V](MapKind, "map", key.d, val.d, func(n int, next func(int) (any, any, error)) (any, error) {
		return fillMap[K, V](n, next)
	})
}

// EnumMapOf describes a mapping keyed by enumeration constants. It panics if
// key is not an enumeration descriptor.
func EnumMapOf[K comparable, V any](key Type[K], val Type[V]) Type[map[K]V] {
	if key.d.Kind != EnumKind {
		panic(fmt.Sprintf("gomap: EnumMapOf key %s is not an enum", key.d.name))
	}
	return mapping[map[K]V](EnumMapKind, "enummap", key.d, val.d, func(n int, next func(int) (any, any, error)) (any, error) {
		return fillMap[K, V](n, next)
	})
}

// SortedMapOf describes a mapping iterated in ascending key order.
func SortedMapOf[K cmp.Ordered, V any](key Type[K], val Type[V]) Type[*SortedMap[K, V]] {
	return mapping[*SortedMap[K, V]](SortedMapKind, "sortedmap", key.d, val.d, func(n int, next func(int) (any, any, error)) (any, error) {
		m, err := fillMap[K, V](n, next)
		if err != nil {
			return nil, err
		}
		return NewSortedMap(m), nil
	})
}

// OptionalOf describes a possibly absent value. A null node decodes to none.
func OptionalOf[T any](elem Type[T]) Type[optional.Option[T]] {
	return Type[optional.Option[T]]{d: &Desc{
		Kind:    OptionalKind,
		GoType:  reflect.TypeFor[optional.Option[T]](),
		Elem:    elem.d,
		name:    "optional<" + elem.d.name + ">",
		key:     "optional<" + elem.d.key + ">",
		present: func(v any) any { return optional.NewOption(v.(T)) },
		absent:  func() any { return optional.NewNoneOption[T]() },
	}}
}

// LazyOf describes a value whose text may carry placeholders resolved later.
func LazyOf[T any](elem Type[T]) Type[placeholder.Value[T]] {
	return Type[placeholder.Value[T]]{d: &Desc{
		Kind:     LazyKind,
		GoType:   reflect.TypeFor[placeholder.Value[T]](),
		Elem:     elem.d,
		name:     "lazy<" + elem.d.name + ">",
		key:      "lazy<" + elem.d.key + ">",
		resolved: func(v any, text string) any { return placeholder.Resolved(v.(T)).WithText(text) },
		deferred: func(text string, node *ir.Node, p Parser) any {
			return placeholder.Deferred(text, node, func(n *ir.Node) (T, error) {
				v, err := p(n)
				if err != nil {
					var zero T
					return zero, err
				}
				return v.(T), nil
			})
		},
	}}
}
