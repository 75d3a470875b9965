package parse

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/signadot/typeconf/ir"
)

// shape renders a node as kind/tag/value triples for comparison.
func shape(n *ir.Node) any {
	switch n.Kind {
	case ir.ScalarKind:
		return n.Tag + " " + n.Value
	case ir.SequenceKind:
		res := []any{n.Tag}
		for _, v := range n.Values {
			res = append(res, shape(v))
		}
		return res
	default:
		res := []any{n.Tag}
		for _, kv := range n.Pairs() {
			res = append(res, []any{kv.Key.Value, shape(kv.Val)})
		}
		return res
	}
}

func TestParseYAMLScalars(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`null`, "!!null null"},
		{`yes`, "!!bool yes"},
		{`off`, "!!bool off"},
		{`"yes"`, "!!str yes"},
		{`55`, "!!int 55"},
		{`'55'`, "!!str 55"},
		{`1.5`, "!!float 1.5"},
		{`hide enchants`, "!!str hide enchants"},
		{`2001-12-14`, "!!timestamp 2001-12-14"},
		{`!!str 12`, "!!str 12"},
		{`!color 1;2;3`, "!color 1;2;3"},
		{"|\n  z\n", "!!str z\n"},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			n, err := Parse([]byte(tc.in))
			if err != nil {
				t.Fatal(err)
			}
			if got := shape(n); got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestParseYAMLStructure(t *testing.T) {
	in := `
str: Hello
count: 2
flags: [hide enchants, hide attributes]
center:
  x: 1
  y: 2
`
	n, err := Parse([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	want := []any{"!!map",
		[]any{"str", "!!str Hello"},
		[]any{"count", "!!int 2"},
		[]any{"flags", []any{"!!seq", "!!str hide enchants", "!!str hide attributes"}},
		[]any{"center", []any{"!!map", []any{"x", "!!int 1"}, []any{"y", "!!int 2"}}},
	}
	if diff := cmp.Diff(want, shape(n)); diff != "" {
		t.Error(diff)
	}
	c := n.Get("center").Get("y")
	if c.Pos.Line != 7 || c.Path() != "$.center.y" {
		t.Errorf("pos %v path %s", c.Pos, c.Path())
	}
}

func TestParseYAMLDuplicateKeysKept(t *testing.T) {
	n, err := Parse([]byte("a: 1\na: 2\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(n.Fields) != 2 || n.Fields[0].Pos.Line != 1 || n.Fields[1].Pos.Line != 2 {
		t.Errorf("got %v", shape(n))
	}
}

func TestParseYAMLAnchorsAndMerge(t *testing.T) {
	in := `
base: &b
  x: 1
  y: 2
pt:
  <<: *b
  y: 5
`
	n, err := Parse([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	want := []any{"!!map", []any{"y", "!!int 5"}, []any{"x", "!!int 1"}}
	if diff := cmp.Diff(want, shape(n.Get("pt"))); diff != "" {
		t.Error(diff)
	}
}

func TestParseYAMLSet(t *testing.T) {
	n, err := Parse([]byte("!!set [a, b]"))
	if err != nil {
		t.Fatal(err)
	}
	if n.Tag != ir.TagSet || n.Kind != ir.SequenceKind || len(n.Values) != 2 || !n.Explicit {
		t.Errorf("got %v", shape(n))
	}
}

func TestParseAll(t *testing.T) {
	docs, err := ParseAll([]byte("a: 1\n---\nb: 2\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 2 || docs[1].Get("b") == nil {
		t.Errorf("got %d docs", len(docs))
	}
}

func TestParseJSON(t *testing.T) {
	n, err := Parse([]byte(`{"center": [15, 30, 60], "name": "x"}`), ParseJSON(), ParseFile("c.json"))
	if err != nil {
		t.Fatal(err)
	}
	want := []any{"!!map",
		[]any{"center", []any{"!!seq", "!!int 15", "!!int 30", "!!int 60"}},
		[]any{"name", "!!str x"},
	}
	if diff := cmp.Diff(want, shape(n)); diff != "" {
		t.Error(diff)
	}
	if n.Get("name").Pos.File != "c.json" {
		t.Errorf("file not recorded: %v", n.Get("name").Pos)
	}
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{"a: [1, 2", "x: *nope\n", "a: b: c\n"} {
		if _, err := Parse([]byte(in)); !errors.Is(err, ErrParse) {
			t.Errorf("%q: expected ErrParse, got %v", in, err)
		}
	}
}

func TestParseHCL(t *testing.T) {
	in := `
name  = "sword"
count = 2
ratio = 1.5
tags  = ["a", "b"]
home  = { world = "w", x = 1 }
owner = env.USER

item "sword" {
  type = 55
}
item "bow" {
  type = "BOW"
}
`
	n, err := Parse([]byte(in), ParseHCL(), ParseEnv(map[string]string{"USER": "steve"}))
	if err != nil {
		t.Fatal(err)
	}
	want := []any{"!!map",
		[]any{"name", "!!str sword"},
		[]any{"count", "!!int 2"},
		[]any{"ratio", "!!float 1.5"},
		[]any{"tags", []any{"!!seq", "!!str a", "!!str b"}},
		[]any{"home", []any{"!!map", []any{"world", "!!str w"}, []any{"x", "!!int 1"}}},
		[]any{"owner", "!!str steve"},
		[]any{"item", []any{"!!map",
			[]any{"sword", []any{"!!map", []any{"type", "!!int 55"}}},
			[]any{"bow", []any{"!!map", []any{"type", "!!str BOW"}}},
		}},
	}
	if diff := cmp.Diff(want, shape(n)); diff != "" {
		t.Error(diff)
	}
	if p := n.Get("count").Pos; p.Line != 3 {
		t.Errorf("count pos %v", p)
	}
}

func TestParseHCLError(t *testing.T) {
	if _, err := Parse([]byte("a = "), ParseHCL()); !errors.Is(err, ErrParse) {
		t.Errorf("expected ErrParse, got %v", err)
	}
}
