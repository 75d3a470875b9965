package gomap

import (
	"errors"
	"fmt"

	"github.com/DataDog/datadog-agent/pkg/util/optional"

	"github.com/signadot/typeconf/ir"
	"github.com/signadot/typeconf/parse"
	"github.com/signadot/typeconf/placeholder"
)

func mustParse(s string) *ir.Node {
	n, err := parse.Parse([]byte(s))
	if err != nil {
		panic(err)
	}
	return n
}

type pair struct {
	A int
	B string
}

var (
	pairA = Required("a", Int())
	pairB = Required("b", String())
)

func (pair) ConfigConstructor() *Constructor {
	return Object[pair](pairA, pairB).Build(func(a *Args) (pair, error) {
		return pair{A: pairA.Get(a), B: pairB.Get(a)}, nil
	})
}

type point struct {
	X, Y, Z float64
}

var (
	pointX = Required("x", Float64())
	pointY = Required("y", Float64())
	pointZ = Default("z", Float64(), 0)
)

func (point) ConfigConstructor() *Constructor {
	return Object[point](pointX, pointY, pointZ).Inline().Build(func(a *Args) (point, error) {
		return point{X: pointX.Get(a), Y: pointY.Get(a), Z: pointZ.Get(a)}, nil
	})
}

type label struct {
	Text string
}

var labelText = Required("text", String())

func (label) ConfigConstructor() *Constructor {
	return Object[label](labelText).Inline().Build(func(a *Args) (label, error) {
		return label{Text: labelText.Get(a)}, nil
	})
}

type itemFlag string

const (
	hideEnchants   itemFlag = "HIDE_ENCHANTS"
	hideAttributes itemFlag = "HIDE_ATTRIBUTES"
	hideUnbreak    itemFlag = "HIDE_UNBREAKABLE"
)

var itemFlags = Enum(hideEnchants, hideAttributes, hideUnbreak)

type item struct {
	Name   string
	Count  int
	Flags  []itemFlag
	Center point
	Lore   optional.Option[[]string]
	Title  placeholder.Value[string]
	Level  placeholder.Value[int]
}

var (
	itemName   = Required("name", String())
	itemCount  = Default("count", Int(), 1)
	itemFlagsF = Default("flags", ListOf(itemFlags), nil)
	itemCenter = Default("center", Custom[point](), point{})
	itemLore   = Optional("lore", ListOf(String()))
	itemTitle  = Default("title", LazyOf(String()), placeholder.Resolved(""))
	itemLevel  = Default("level", LazyOf(Int()), placeholder.Resolved(0))
)

func (item) ConfigConstructor() *Constructor {
	return Object[item](itemName, itemCount, itemFlagsF, itemCenter, itemLore, itemTitle, itemLevel).
		Build(func(a *Args) (item, error) {
			if c := itemCount.Get(a); c < 0 {
				return item{}, fmt.Errorf("count %d is negative", c)
			}
			return item{
				Name:   itemName.Get(a),
				Count:  itemCount.Get(a),
				Flags:  itemFlagsF.Get(a),
				Center: itemCenter.Get(a),
				Lore:   itemLore.Get(a),
				Title:  itemTitle.Get(a),
				Level:  itemLevel.Get(a),
			}, nil
		})
}

// tree refers to itself.
type tree struct {
	Name     string
	Children []tree
}

var (
	treeName     = Required("name", String())
	treeChildren = Default("children", ListOf(Custom[tree]()), nil)
)

func (tree) ConfigConstructor() *Constructor {
	return Object[tree](treeName, treeChildren).Build(func(a *Args) (tree, error) {
		return tree{Name: treeName.Get(a), Children: treeChildren.Get(a)}, nil
	})
}

// mismatched declares a constructor for another type.
type mismatched struct{}

func (mismatched) ConfigConstructor() *Constructor {
	return Object[pair]().Build(func(*Args) (pair, error) { return pair{}, nil })
}

type undeclared struct{}

type hexColor struct{ R, G, B uint8 }

type weight struct{ Grams int }

var weightGrams = Required("grams", Int())

type testDeclarator struct {
	name string
	cs   []*Constructor
}

func (d *testDeclarator) Name() string { return d.name }
func (d *testDeclarator) Constructors() []*Constructor { return d.cs }

func colorDeclarator(name string) *testDeclarator {
	return &testDeclarator{name: name, cs: []*Constructor{
		Raw(func(n *ir.Node) (hexColor, error) {
			if n.Kind != ir.ScalarKind {
				return hexColor{}, errors.New("expected a scalar")
			}
			var c hexColor
			if _, err := fmt.Sscanf(n.Value, "#%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
				return hexColor{}, err
			}
			return c, nil
		}),
	}}
}

func weightDeclarator() *testDeclarator {
	return &testDeclarator{name: "weights", cs: []*Constructor{
		Object[weight](weightGrams).Inline().Build(func(a *Args) (weight, error) {
			return weight{Grams: weightGrams.Get(a)}, nil
		}),
	}}
}
