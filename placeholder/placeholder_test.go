package placeholder

import (
	"errors"
	"strconv"
	"testing"

	"github.com/signadot/typeconf/ir"
)

type player struct {
	name  string
	level int
}

func (p *player) Name() string { return p.name }
func (p *player) Level() int { return p.level }

func atoi(n *ir.Node) (int, error) {
	if n.Tag != ir.TagInt {
		return 0, errors.New("not an int: " + n.Tag)
	}
	return strconv.Atoi(n.Value)
}

func TestTranslateColors(t *testing.T) {
	tests := []struct{ in, want string }{
		{"&aHello", "§aHello"},
		{"&CWarn &lbold", "§cWarn §lbold"},
		{"a & b", "a & b"},
		{"&z", "&z"},
		{"trailing &", "trailing &"},
	}
	for _, tc := range tests {
		if got := TranslateColors(tc.in); got != tc.want {
			t.Errorf("TranslateColors(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
	if got := StripColors("§aHi §lthere"); got != "Hi there" {
		t.Errorf("StripColors: %q", got)
	}
}

func TestHasMarkers(t *testing.T) {
	for _, s := range []string{"%player_name%", "lvl %x%!", "$[1 + 1]"} {
		if !HasMarkers(s) {
			t.Errorf("HasMarkers(%q) = false", s)
		}
	}
	for _, s := range []string{"plain", "50% off", "$[unterminated", "100%"} {
		if HasMarkers(s) {
			t.Errorf("HasMarkers(%q) = true", s)
		}
	}
}

func TestExpand(t *testing.T) {
	ctx := &Context{Subject: &player{name: "steve", level: 7}, Providers: Defaults()}
	ps := NewProviders(ctx.Providers)
	ps.Register(NewProvider("stat", func(_ any, arg string) (string, bool) {
		return "stat:" + arg, true
	}))
	ctx2 := &Context{Subject: ctx.Subject, Providers: ps}
	tests := []struct {
		in     string
		ctx    *Context
		extras map[string]string
		want   string
	}{
		{"hi %player_name%", ctx, nil, "hi steve"},
		{"%player_level%", ctx, nil, "7"},
		{"%unknown% stays", ctx, nil, "%unknown% stays"},
		{"50% of %player_level%", ctx, nil, "50% of 7"},
		{"%player_name%", ctx, map[string]string{"player_name": "alex"}, "alex"},
		{"%stat_kills_total%", ctx2, nil, "stat:kills_total"},
		{"$[1 + 2]", nil, nil, "3"},
		{"$[vars.n + \"!\"]", nil, map[string]string{"n": "x"}, "x!"},
		{"$[ph(\"player_level\")]", ctx, nil, "7"},
		{"no ctx %player_name%", nil, nil, "no ctx %player_name%"},
	}
	for _, tc := range tests {
		got, err := Expand(tc.in, tc.ctx, tc.extras)
		if err != nil {
			t.Errorf("Expand(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("Expand(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
	if _, err := Expand("$[1 +]", nil, nil); err == nil {
		t.Errorf("expected expression error")
	}
}

func TestProvidersDuplicate(t *testing.T) {
	ps := Defaults()
	err := ps.Register(NewProvider("player_name", func(any, string) (string, bool) { return "", false }))
	if !errors.Is(err, ErrDuplicateProvider) {
		t.Errorf("got %v", err)
	}
}

func TestDeferredResolvesPerContext(t *testing.T) {
	node := ir.FromScalar("%player_level%")
	v := Deferred("%player_level%", node, atoi)
	if v.IsResolved() {
		t.Fatal("deferred value reports resolved")
	}
	a := v.Resolve(&Context{Subject: &player{level: 3}, Providers: Defaults()})
	b := v.Resolve(&Context{Subject: &player{level: 9}, Providers: Defaults()})
	if a != 3 || b != 9 {
		t.Errorf("got %d, %d", a, b)
	}
	if v.String() != "%player_level%" || v.IsResolved() {
		t.Errorf("wrapper changed: %s", v)
	}
	if got := v.ResolveWith(nil, map[string]string{"player_level": "12"}); got != 12 {
		t.Errorf("extras: got %d", got)
	}
}

func TestDeferredErrorHandler(t *testing.T) {
	v := Deferred("%player_level%", nil, atoi)
	if got := v.Resolve(nil); got != 0 {
		t.Errorf("default handler: got %d", got)
	}
	var seen string
	h := v.WithErrorHandler(func(text string, err error) int {
		seen = text
		return -1
	})
	if got := h.Resolve(nil); got != -1 || seen != "%player_level%" {
		t.Errorf("custom handler: got %d %q", got, seen)
	}
	if _, err := v.TryResolve(nil, nil); err == nil {
		t.Errorf("expected error")
	}
}

func TestResolved(t *testing.T) {
	v := Resolved(5).WithText("5")
	if !v.IsResolved() || v.Resolve(nil) != 5 || v.String() != "5" {
		t.Errorf("got %v", v)
	}
	var zero Value[string]
	if !zero.IsResolved() || zero.Resolve(nil) != "" {
		t.Errorf("zero value not resolved")
	}
}
