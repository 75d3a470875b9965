package ir

import (
	"fmt"
	"strconv"
)

// Node is a document node. Mappings keep their keys in Fields and the
// corresponding values in Values, in document order.
type Node struct {
	Kind        Kind
	Tag         string
	Value       string
	Fields      []*Node
	Values      []*Node
	Parent      *Node
	ParentIndex int
	ParentField string

	// Explicit is set when Tag was written in the source rather than resolved.
	Explicit bool
	Pos      Pos
}

func (y *Node) WithTag(tag string) *Node {
	y.Tag = tag
	y.Explicit = true
	return y
}

func (y *Node) WithPos(p Pos) *Node {
	y.Pos = p
	return y
}

// WithValue returns a detached copy of a scalar holding text. Unless the
// original tag was explicit, the copy's tag is resolved from text.
func (y *Node) WithValue(text string) *Node {
	res := &Node{
		Kind:        ScalarKind,
		Tag:         y.Tag,
		Value:       text,
		Explicit:    y.Explicit,
		Pos:         y.Pos,
		Parent:      y.Parent,
		ParentIndex: y.ParentIndex,
		ParentField: y.ParentField,
	}
	if !y.Explicit {
		res.Tag = ResolveTag(text)
	}
	return res
}

func (y *Node) IsScalar() bool   { return y.Kind == ScalarKind }
func (y *Node) IsSequence() bool { return y.Kind == SequenceKind }
func (y *Node) IsMapping() bool  { return y.Kind == MappingKind }
func (y *Node) IsNull() bool     { return y.Kind == ScalarKind && y.Tag == TagNull }

func (y *Node) Clone() *Node {
	res := &Node{}
	return y.CloneTo(res)
}

func (y *Node) CloneTo(dst *Node) *Node {
	dst.Parent = y.Parent
	dst.ParentIndex = y.ParentIndex
	dst.ParentField = y.ParentField
	dst.Kind = y.Kind
	dst.Tag = y.Tag
	dst.Value = y.Value
	dst.Explicit = y.Explicit
	dst.Pos = y.Pos
	dst.Values = make([]*Node, len(y.Values))
	dst.Fields = make([]*Node, len(y.Fields))
	for i, yv := range y.Values {
		dstI := yv.CloneTo(&Node{})
		dstI.Parent = dst
		dstI.ParentIndex = i
		dst.Values[i] = dstI
	}
	for i, yf := range y.Fields {
		dstI := yf.CloneTo(&Node{})
		dstI.Parent = dst
		dstI.ParentIndex = i
		dst.Fields[i] = dstI
	}
	return dst
}

func FromString(v string) *Node {
	return &Node{Kind: ScalarKind, Tag: TagStr, Value: v}
}

func FromInt(v int64) *Node {
	return &Node{Kind: ScalarKind, Tag: TagInt, Value: strconv.FormatInt(v, 10)}
}

func FromFloat(f float64) *Node {
	return &Node{Kind: ScalarKind, Tag: TagFloat, Value: strconv.FormatFloat(f, 'g', -1, 64)}
}

func FromBool(v bool) *Node {
	return &Node{Kind: ScalarKind, Tag: TagBool, Value: strconv.FormatBool(v)}
}

func Null() *Node {
	return &Node{Kind: ScalarKind, Tag: TagNull, Value: "null"}
}

// FromScalar builds a plain scalar whose tag is resolved from text.
func FromScalar(text string) *Node {
	return &Node{Kind: ScalarKind, Tag: ResolveTag(text), Value: text}
}

func FromSlice(vs []*Node) *Node {
	res := &Node{Kind: SequenceKind, Tag: TagSeq, Values: vs}
	for i, v := range vs {
		v.Parent = res
		v.ParentIndex = i
		v.ParentField = ""
	}
	return res
}

type KeyVal struct {
	Key *Node
	Val *Node
}

func FromKeyVals(kvs []KeyVal) *Node {
	res := &Node{Kind: MappingKind, Tag: TagMap}
	for _, kv := range kvs {
		res.Append(kv.Key, kv.Val)
	}
	return res
}

// FromMap builds a mapping with string keys in the order given by keys.
func FromMap(keys []string, m map[string]*Node) *Node {
	res := &Node{Kind: MappingKind, Tag: TagMap}
	for _, k := range keys {
		res.Append(FromString(k), m[k])
	}
	return res
}

// Append adds a key/value pair to a mapping node.
func (y *Node) Append(key, val *Node) {
	i := len(y.Fields)
	key.Parent = y
	key.ParentIndex = i
	val.Parent = y
	val.ParentIndex = i
	val.ParentField = key.Value
	y.Fields = append(y.Fields, key)
	y.Values = append(y.Values, val)
}

// Get returns the value of the first key whose text is key.
func (y *Node) Get(key string) *Node {
	if y.Kind != MappingKind {
		return nil
	}
	for i, f := range y.Fields {
		if f.Kind == ScalarKind && f.Value == key {
			return y.Values[i]
		}
	}
	return nil
}

// Pairs returns the key/value pairs of a mapping in document order.
func (y *Node) Pairs() []KeyVal {
	if y.Kind != MappingKind {
		return nil
	}
	res := make([]KeyVal, len(y.Fields))
	for i := range y.Fields {
		res[i] = KeyVal{Key: y.Fields[i], Val: y.Values[i]}
	}
	return res
}

func (y *Node) Root() *Node {
	x := y
	for x.Parent != nil {
		x = x.Parent
	}
	return x
}

// IsKey reports whether y is a key of its parent mapping.
func (y *Node) IsKey() bool {
	p := y.Parent
	if p == nil || p.Kind != MappingKind {
		return false
	}
	return y.ParentIndex < len(p.Fields) && p.Fields[y.ParentIndex] == y
}

// Visit walks the tree depth first. Returning false from f skips the
// children of the visited node.
func (y *Node) Visit(f func(*Node) bool) {
	if !f(y) {
		return
	}
	for i := range y.Values {
		if y.Kind == MappingKind {
			y.Fields[i].Visit(f)
		}
		y.Values[i].Visit(f)
	}
}

func (y *Node) String() string {
	switch y.Kind {
	case ScalarKind:
		return fmt.Sprintf("%s %q", y.Tag, y.Value)
	case SequenceKind:
		return fmt.Sprintf("%s[%d]", y.Tag, len(y.Values))
	default:
		return fmt.Sprintf("%s{%d}", y.Tag, len(y.Values))
	}
}
