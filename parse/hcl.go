package parse

import (
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"

	"github.com/signadot/typeconf/ir"
)

type hclConv struct {
	file string
	ctx  *hcl.EvalContext
}

func parseHCL(d []byte, o *parseOpts) (*ir.Node, error) {
	name := o.file
	if name == "" {
		name = "<input>"
	}
	f, diags := hclparse.NewParser().ParseHCL(d, name)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: %w", ErrParse, diags)
	}
	body, ok := f.Body.(*hclsyntax.Body)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected body %T", ErrNodeType, f.Body)
	}
	c := &hclConv{file: o.file}
	if len(o.env) != 0 {
		env := make(map[string]cty.Value, len(o.env))
		for k, v := range o.env {
			env[k] = cty.StringVal(v)
		}
		c.ctx = &hcl.EvalContext{
			Variables: map[string]cty.Value{"env": cty.ObjectVal(env)},
		}
	}
	return c.body(body)
}

func (c *hclConv) pos(p hcl.Pos) ir.Pos {
	return ir.Pos{File: c.file, Line: p.Line, Column: p.Column, Offset: p.Byte}
}

type hclItem struct {
	start  int
	attr   *hclsyntax.Attribute
	blocks []*hclsyntax.Block
}

// body converts attributes and blocks in source order. Blocks sharing a type
// are grouped under one key: labeled blocks nest by label, repeated unlabeled
// blocks form a sequence.
func (c *hclConv) body(b *hclsyntax.Body) (*ir.Node, error) {
	var items []*hclItem
	for _, a := range b.Attributes {
		items = append(items, &hclItem{start: a.SrcRange.Start.Byte, attr: a})
	}
	byType := map[string]*hclItem{}
	for _, blk := range b.Blocks {
		it := byType[blk.Type]
		if it == nil {
			it = &hclItem{start: blk.TypeRange.Start.Byte}
			byType[blk.Type] = it
			items = append(items, it)
		}
		it.blocks = append(it.blocks, blk)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].start < items[j].start })

	res := &ir.Node{Kind: ir.MappingKind, Tag: ir.TagMap, Pos: c.pos(b.SrcRange.Start)}
	for _, it := range items {
		if it.attr != nil {
			v, err := c.expr(it.attr.Expr)
			if err != nil {
				return nil, err
			}
			key := ir.FromString(it.attr.Name).WithPos(c.pos(it.attr.NameRange.Start))
			res.Append(key, v)
			continue
		}
		first := it.blocks[0]
		key := ir.FromString(first.Type).WithPos(c.pos(first.TypeRange.Start))
		v, err := c.blocks(it.blocks)
		if err != nil {
			return nil, err
		}
		res.Append(key, v)
	}
	return res, nil
}

func (c *hclConv) blocks(bs []*hclsyntax.Block) (*ir.Node, error) {
	if len(bs[0].Labels) == 0 {
		if len(bs) == 1 {
			return c.body(bs[0].Body)
		}
		res := &ir.Node{Kind: ir.SequenceKind, Tag: ir.TagSeq, Pos: c.pos(bs[0].TypeRange.Start)}
		for i, blk := range bs {
			v, err := c.body(blk.Body)
			if err != nil {
				return nil, err
			}
			v.Parent = res
			v.ParentIndex = i
			res.Values = append(res.Values, v)
		}
		return res, nil
	}
	res := &ir.Node{Kind: ir.MappingKind, Tag: ir.TagMap, Pos: c.pos(bs[0].TypeRange.Start)}
	for _, blk := range bs {
		v, err := c.body(blk.Body)
		if err != nil {
			return nil, err
		}
		at := res
		for i, l := range blk.Labels {
			lpos := c.pos(blk.LabelRanges[i].Start)
			if i == len(blk.Labels)-1 {
				at.Append(ir.FromString(l).WithPos(lpos), v)
				break
			}
			next := at.Get(l)
			if next == nil || next.Kind != ir.MappingKind {
				next = &ir.Node{Kind: ir.MappingKind, Tag: ir.TagMap, Pos: lpos}
				at.Append(ir.FromString(l).WithPos(lpos), next)
			}
			at = next
		}
	}
	return res, nil
}

func (c *hclConv) expr(e hclsyntax.Expression) (*ir.Node, error) {
	switch x := e.(type) {
	case *hclsyntax.TupleConsExpr:
		res := &ir.Node{Kind: ir.SequenceKind, Tag: ir.TagSeq, Pos: c.pos(x.SrcRange.Start)}
		for i, ex := range x.Exprs {
			v, err := c.expr(ex)
			if err != nil {
				return nil, err
			}
			v.Parent = res
			v.ParentIndex = i
			res.Values = append(res.Values, v)
		}
		return res, nil
	case *hclsyntax.ObjectConsExpr:
		res := &ir.Node{Kind: ir.MappingKind, Tag: ir.TagMap, Pos: c.pos(x.SrcRange.Start)}
		for _, item := range x.Items {
			kv, diags := item.KeyExpr.Value(c.ctx)
			if diags.HasErrors() {
				return nil, fmt.Errorf("%w: %w", ErrParse, diags)
			}
			kn, err := c.value(kv, item.KeyExpr.Range().Start)
			if err != nil {
				return nil, err
			}
			if kn.Kind != ir.ScalarKind {
				return nil, fmt.Errorf("%w at %s", ErrKeyKind, kn.Pos)
			}
			vn, err := c.expr(item.ValueExpr)
			if err != nil {
				return nil, err
			}
			res.Append(kn, vn)
		}
		return res, nil
	}
	v, diags := e.Value(c.ctx)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: %w", ErrParse, diags)
	}
	return c.value(v, e.Range().Start)
}

func (c *hclConv) value(v cty.Value, at hcl.Pos) (*ir.Node, error) {
	p := c.pos(at)
	if v.IsNull() {
		return ir.Null().WithPos(p), nil
	}
	if !v.IsWhollyKnown() {
		return nil, fmt.Errorf("%w at %s", ErrUnknown, p)
	}
	v, _ = v.Unmark()
	ty := v.Type()
	switch {
	case ty == cty.String:
		return ir.FromString(v.AsString()).WithPos(p), nil
	case ty == cty.Bool:
		return ir.FromBool(v.True()).WithPos(p), nil
	case ty == cty.Number:
		bf := v.AsBigFloat()
		if bf.IsInt() {
			return &ir.Node{Kind: ir.ScalarKind, Tag: ir.TagInt, Value: bf.Text('f', 0), Pos: p}, nil
		}
		f, _ := bf.Float64()
		return ir.FromFloat(f).WithPos(p), nil
	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		res := &ir.Node{Kind: ir.SequenceKind, Tag: ir.TagSeq, Pos: p}
		if ty.IsSetType() {
			res.Tag = ir.TagSet
		}
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			en, err := c.value(ev, at)
			if err != nil {
				return nil, err
			}
			en.Parent = res
			en.ParentIndex = len(res.Values)
			res.Values = append(res.Values, en)
		}
		return res, nil
	case ty.IsMapType() || ty.IsObjectType():
		res := &ir.Node{Kind: ir.MappingKind, Tag: ir.TagMap, Pos: p}
		for it := v.ElementIterator(); it.Next(); {
			k, ev := it.Element()
			en, err := c.value(ev, at)
			if err != nil {
				return nil, err
			}
			res.Append(ir.FromString(k.AsString()).WithPos(p), en)
		}
		return res, nil
	default:
		return nil, fmt.Errorf("%w: cty type %s at %s", ErrNodeType, ty.FriendlyName(), p)
	}
}
