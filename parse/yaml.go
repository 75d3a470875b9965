package parse

import (
	"fmt"

	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
	"github.com/goccy/go-yaml/token"

	"github.com/signadot/typeconf/ir"
)

type yamlConv struct {
	file    string
	anchors map[string]*ir.Node
}

func parseYAML(d []byte, o *parseOpts) ([]*ir.Node, error) {
	// duplicate keys are reported by the decoder with both positions
	f, err := parser.ParseBytes(d, 0, parser.AllowDuplicateMapKey())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	res := make([]*ir.Node, 0, len(f.Docs))
	for _, doc := range f.Docs {
		c := &yamlConv{file: o.file, anchors: map[string]*ir.Node{}}
		if doc.Body == nil {
			n := ir.Null()
			if doc.Start != nil {
				n.Pos = c.pos(doc.Start)
			}
			res = append(res, n)
			continue
		}
		n, err := c.node(doc.Body)
		if err != nil {
			return nil, err
		}
		res = append(res, n)
	}
	return res, nil
}

func (c *yamlConv) pos(tk *token.Token) ir.Pos {
	p := ir.Pos{File: c.file}
	if tk == nil || tk.Position == nil {
		return p
	}
	p.Line = tk.Position.Line
	p.Column = tk.Position.Column
	p.Offset = tk.Position.Offset
	return p
}

func (c *yamlConv) errorf(n ast.Node, base error, msg string, args ...any) error {
	return fmt.Errorf("%w at %s: %s", base, c.pos(n.GetToken()), fmt.Sprintf(msg, args...))
}

func (c *yamlConv) node(n ast.Node) (*ir.Node, error) {
	switch x := n.(type) {
	case *ast.DocumentNode:
		if x.Body == nil {
			return ir.Null().WithPos(c.pos(x.GetToken())), nil
		}
		return c.node(x.Body)
	case *ast.MappingNode:
		return c.mapping(x, x.Values)
	case *ast.MappingValueNode:
		return c.mapping(x, []*ast.MappingValueNode{x})
	case *ast.MappingKeyNode:
		return c.node(x.Value)
	case *ast.SequenceNode:
		res := &ir.Node{Kind: ir.SequenceKind, Tag: ir.TagSeq, Pos: c.pos(x.GetToken())}
		for i, v := range x.Values {
			vn, err := c.node(v)
			if err != nil {
				return nil, err
			}
			vn.Parent = res
			vn.ParentIndex = i
			res.Values = append(res.Values, vn)
		}
		return res, nil
	case *ast.TagNode:
		tag := ir.NormalizeTag(x.Start.Value)
		var (
			inner *ir.Node
			err   error
		)
		if x.Value == nil {
			inner = &ir.Node{Kind: ir.ScalarKind, Value: "", Pos: c.pos(x.Start)}
		} else if inner, err = c.node(x.Value); err != nil {
			return nil, err
		}
		inner.WithTag(tag)
		return inner, nil
	case *ast.AnchorNode:
		inner, err := c.node(x.Value)
		if err != nil {
			return nil, err
		}
		c.anchors[x.Name.GetToken().Value] = inner
		return inner, nil
	case *ast.AliasNode:
		name := x.Value.GetToken().Value
		target, ok := c.anchors[name]
		if !ok {
			return nil, c.errorf(x, ErrAlias, "*%s", name)
		}
		res := target.Clone()
		res.Parent = nil
		return res, nil
	case *ast.LiteralNode:
		res := &ir.Node{Kind: ir.ScalarKind, Tag: ir.TagStr, Pos: c.pos(x.GetToken())}
		if x.Value != nil {
			res.Value = x.Value.Value
		}
		return res, nil
	case *ast.StringNode:
		res := &ir.Node{Kind: ir.ScalarKind, Value: x.Value, Pos: c.pos(x.GetToken())}
		switch x.GetToken().Type {
		case token.SingleQuoteType, token.DoubleQuoteType:
			res.Tag = ir.TagStr
		default:
			res.Tag = ir.ResolveTag(x.Value)
		}
		return res, nil
	case *ast.NullNode, *ast.IntegerNode, *ast.FloatNode, *ast.BoolNode,
		*ast.InfinityNode, *ast.NanNode:
		tk := n.GetToken()
		return &ir.Node{Kind: ir.ScalarKind, Tag: ir.ResolveTag(tk.Value), Value: tk.Value, Pos: c.pos(tk)}, nil
	case *ast.MergeKeyNode:
		tk := x.GetToken()
		return &ir.Node{Kind: ir.ScalarKind, Tag: ir.TagMerge, Value: tk.Value, Pos: c.pos(tk)}, nil
	case *ast.CommentGroupNode:
		return ir.Null(), nil
	default:
		return nil, c.errorf(n, ErrNodeType, "%s", n.Type())
	}
}

func (c *yamlConv) mapping(at ast.Node, kvs []*ast.MappingValueNode) (*ir.Node, error) {
	res := &ir.Node{Kind: ir.MappingKind, Tag: ir.TagMap, Pos: c.pos(at.GetToken())}
	var merges []*ir.Node
	for _, kv := range kvs {
		if _, ok := kv.Key.(*ast.MergeKeyNode); ok {
			mv, err := c.node(kv.Value)
			if err != nil {
				return nil, err
			}
			merges = append(merges, mv)
			continue
		}
		kn, err := c.node(kv.Key)
		if err != nil {
			return nil, err
		}
		if kn.Kind != ir.ScalarKind {
			return nil, c.errorf(kv.Key, ErrKeyKind, "got %s", kn.Kind)
		}
		vn, err := c.node(kv.Value)
		if err != nil {
			return nil, err
		}
		res.Append(kn, vn)
	}
	for _, m := range merges {
		if err := mergeInto(res, m); err != nil {
			return nil, fmt.Errorf("%w at %s", err, m.Pos)
		}
	}
	return res, nil
}

// mergeInto applies a "<<" merge: keys of src not already present in dst are
// appended. A sequence merges each mapping in order, earlier ones winning.
func mergeInto(dst, src *ir.Node) error {
	switch src.Kind {
	case ir.MappingKind:
		for _, kv := range src.Pairs() {
			if dst.Get(kv.Key.Value) != nil {
				continue
			}
			dst.Append(kv.Key.Clone(), kv.Val.Clone())
		}
		return nil
	case ir.SequenceKind:
		for _, v := range src.Values {
			if v.Kind != ir.MappingKind {
				return ErrMerge
			}
			if err := mergeInto(dst, v); err != nil {
				return err
			}
		}
		return nil
	default:
		return ErrMerge
	}
}
