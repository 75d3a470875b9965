package encode

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/signadot/typeconf/format"
	"github.com/signadot/typeconf/ir"
)

var ErrEncoding = errors.New("encoding error")

type EncState struct {
	indent    int
	tags      bool
	positions bool

	format format.Format
	Color  func(tag string, a ColorAttr, s string) string

	b strings.Builder
}

func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{indent: 2}
	for _, opt := range opts {
		opt(es)
	}
	switch es.format {
	case format.JSONFormat:
		if err := es.json(node, 0); err != nil {
			return err
		}
		es.b.WriteByte('\n')
	case format.YAMLFormat:
		es.yamlTop(node)
	default:
		return fmt.Errorf("%w: cannot encode %s", ErrEncoding, es.format)
	}
	_, err := io.WriteString(w, es.b.String())
	return err
}

func (es *EncState) color(tag string, a ColorAttr, s string) string {
	if es.Color == nil {
		return s
	}
	return es.Color(tag, a, s)
}

func (es *EncState) pad(depth int) {
	es.b.WriteString(strings.Repeat(" ", depth*es.indent))
}

// YAML

func (es *EncState) tagPrefix(n *ir.Node) string {
	if !es.tags && !n.Explicit {
		return ""
	}
	return es.color(n.Tag, TagColor, n.Tag) + " "
}

func (es *EncState) comment(n *ir.Node) {
	if !es.positions || !n.Pos.IsValid() {
		return
	}
	es.b.WriteString(es.color(n.Tag, CommentColor, " # "+n.Pos.String()))
}

func isBlock(n *ir.Node) bool {
	return n.Kind != ir.ScalarKind && len(n.Values) != 0
}

func (es *EncState) yamlTop(n *ir.Node) {
	if !isBlock(n) {
		es.b.WriteString(es.tagPrefix(n))
		es.flat(n)
		es.comment(n)
		es.b.WriteByte('\n')
		return
	}
	if p := es.tagPrefix(n); p != "" || es.positions && n.Pos.IsValid() {
		es.b.WriteString(strings.TrimSuffix(p, " "))
		es.comment(n)
		es.b.WriteByte('\n')
	}
	es.block(n, 0, false)
}

// block writes the entries of a non-empty container, one per line. When
// inline is set the first entry continues the current line.
func (es *EncState) block(n *ir.Node, depth int, inline bool) {
	for i := range n.Values {
		if i > 0 || !inline {
			es.pad(depth)
		}
		if n.Kind == ir.MappingKind {
			es.b.WriteString(es.color(n.Tag, FieldColor, es.scalarText(n.Fields[i], true)))
			es.b.WriteString(es.color(n.Tag, SepColor, ":"))
		} else {
			es.b.WriteString(es.color(n.Tag, SepColor, "-"))
		}
		es.child(n.Values[i], depth+1, n.Kind == ir.SequenceKind)
	}
}

// child writes a value following "key:" or "-".
func (es *EncState) child(n *ir.Node, depth int, inSeq bool) {
	prefix := es.tagPrefix(n)
	if !isBlock(n) {
		es.b.WriteByte(' ')
		es.b.WriteString(prefix)
		es.flat(n)
		es.comment(n)
		es.b.WriteByte('\n')
		return
	}
	if inSeq && prefix == "" && !(es.positions && n.Pos.IsValid()) {
		es.b.WriteByte(' ')
		es.block(n, depth, true)
		return
	}
	if prefix != "" {
		es.b.WriteByte(' ')
		es.b.WriteString(strings.TrimSuffix(prefix, " "))
	}
	es.comment(n)
	es.b.WriteByte('\n')
	es.block(n, depth, false)
}

func (es *EncState) flat(n *ir.Node) {
	switch n.Kind {
	case ir.MappingKind:
		es.b.WriteString(es.color(n.Tag, SepColor, "{}"))
	case ir.SequenceKind:
		es.b.WriteString(es.color(n.Tag, SepColor, "[]"))
	default:
		es.b.WriteString(es.color(n.Tag, ValueColor, es.scalarText(n, false)))
	}
}

func (es *EncState) scalarText(n *ir.Node, key bool) string {
	if n.Kind != ir.ScalarKind {
		// complex keys are rendered in flow form
		return flowText(n)
	}
	switch n.Tag {
	case ir.TagNull:
		if n.Value == "" {
			return "null"
		}
		return n.Value
	case ir.TagStr:
		if needsQuote(n.Value, key) {
			return strconv.Quote(n.Value)
		}
	}
	return n.Value
}

func flowText(n *ir.Node) string {
	switch n.Kind {
	case ir.SequenceKind:
		parts := make([]string, len(n.Values))
		for i, v := range n.Values {
			parts[i] = flowText(v)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case ir.MappingKind:
		parts := make([]string, len(n.Values))
		for i, v := range n.Values {
			parts[i] = flowText(n.Fields[i]) + ": " + flowText(v)
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		if n.Tag == ir.TagStr && needsQuote(n.Value, true) {
			return strconv.Quote(n.Value)
		}
		return n.Value
	}
}

func needsQuote(v string, key bool) bool {
	if v == "" || ir.ResolveTag(v) != ir.TagStr {
		return true
	}
	if strings.TrimSpace(v) != v || strings.ContainsAny(v, "\n\t\"#") {
		return true
	}
	if strings.Contains(v, ": ") || strings.HasSuffix(v, ":") {
		return true
	}
	if key && strings.ContainsAny(v, "{}[],") {
		return true
	}
	switch v[0] {
	case '*', '&', '%', '@', '`', '!', '|', '>', '\'', '{', '[', ',', '?', '-', ':':
		return true
	}
	return false
}

// JSON

func (es *EncState) json(n *ir.Node, depth int) error {
	switch n.Kind {
	case ir.MappingKind:
		return es.jsonContainer(n, depth, "{", "}")
	case ir.SequenceKind:
		return es.jsonContainer(n, depth, "[", "]")
	}
	v, err := jsonScalar(n)
	if err != nil {
		return err
	}
	es.b.WriteString(es.color(n.Tag, ValueColor, v))
	return nil
}

func (es *EncState) jsonContainer(n *ir.Node, depth int, lbr, rbr string) error {
	es.b.WriteString(es.color(n.Tag, SepColor, lbr))
	for i, v := range n.Values {
		if i > 0 {
			es.b.WriteString(es.color(n.Tag, SepColor, ","))
		}
		es.b.WriteByte('\n')
		es.pad(depth + 1)
		if n.Kind == ir.MappingKind {
			k := n.Fields[i]
			if k.Kind != ir.ScalarKind {
				return fmt.Errorf("%w: non-scalar key at %s", ErrEncoding, k.Describe())
			}
			es.b.WriteString(es.color(n.Tag, FieldColor, strconv.Quote(k.Value)))
			es.b.WriteString(es.color(n.Tag, SepColor, ": "))
		}
		if err := es.json(v, depth+1); err != nil {
			return err
		}
	}
	if len(n.Values) != 0 {
		es.b.WriteByte('\n')
		es.pad(depth)
	}
	es.b.WriteString(es.color(n.Tag, SepColor, rbr))
	return nil
}

func jsonScalar(n *ir.Node) (string, error) {
	switch n.Tag {
	case ir.TagNull:
		return "null", nil
	case ir.TagBool:
		v, err := ir.ParseBool(n.Value)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrEncoding, err)
		}
		return strconv.FormatBool(v), nil
	case ir.TagInt:
		v, err := ir.ParseInt(n.Value, 64)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrEncoding, err)
		}
		return strconv.FormatInt(v, 10), nil
	case ir.TagFloat:
		v, err := ir.ParseFloat(n.Value, 64)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrEncoding, err)
		}
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return strconv.Quote(n.Value), nil
		}
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	default:
		return strconv.Quote(n.Value), nil
	}
}
