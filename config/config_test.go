package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signadot/typeconf/gomap"
	"github.com/signadot/typeconf/parse"
	"github.com/signadot/typeconf/placeholder"
	"github.com/signadot/typeconf/stddecl"
)

const doc = `
name: lobby
port: 25565
big: 9000000000
ratio: 0.25
enabled: yes
motd: "&aWelcome %player_name%"
color: 255;0;0
icon: redstone wire
nothing: null
spawn: [world, 0, 64, 0]
limits:
  players: 20
  pct: 1.5
arenas:
  - name: a
  - name: b
`

func newSection(t *testing.T, d string) *Section {
	t.Helper()
	r := gomap.NewRegistry()
	require.NoError(t, r.Import(stddecl.Declarator()))
	n, err := parse.Parse([]byte(d))
	require.NoError(t, err)
	s, err := New(r, n)
	require.NoError(t, err)
	return s
}

func TestAccessors(t *testing.T) {
	s := newSection(t, doc)
	assert.True(t, s.Has("name"))
	assert.False(t, s.Has("nothing"))
	assert.False(t, s.Has("absent"))
	assert.Equal(t, []string{"name", "port", "big", "ratio", "enabled", "motd", "color", "icon", "nothing", "spawn", "limits", "arenas"}, s.Keys())

	name, err := s.String("name", "x")
	require.NoError(t, err)
	assert.Equal(t, "lobby", name)

	def, err := s.String("absent", "x")
	require.NoError(t, err)
	assert.Equal(t, "x", def)

	port, err := s.RequireInt("port")
	require.NoError(t, err)
	assert.Equal(t, 25565, port)

	big, err := s.RequireInt64("big")
	require.NoError(t, err)
	assert.Equal(t, int64(9000000000), big)

	ratio32, err := s.RequireFloat32("ratio")
	require.NoError(t, err)
	assert.Equal(t, float32(0.25), ratio32)

	ratio, err := s.Float64("ratio", 1)
	require.NoError(t, err)
	assert.Equal(t, 0.25, ratio)

	portF, err := s.RequireFloat64("port")
	require.NoError(t, err)
	assert.Equal(t, 25565.0, portF)

	enabled, err := s.RequireBool("enabled")
	require.NoError(t, err)
	assert.True(t, enabled)

	nothing, err := s.Int("nothing", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, nothing)
}

func TestRequireMissing(t *testing.T) {
	s := newSection(t, doc)
	_, err := s.RequireString("absent")
	require.ErrorIs(t, err, gomap.ErrMissingRequired)
	e, ok := gomap.AsError(err)
	require.True(t, ok)
	assert.Equal(t, []string{"absent"}, e.Names)

	_, err = s.RequireInt("nothing")
	require.ErrorIs(t, err, gomap.ErrMissingRequired)
}

func TestWrongType(t *testing.T) {
	s := newSection(t, doc)
	_, err := s.RequireInt("ratio")
	require.ErrorIs(t, err, gomap.ErrConversion)
	e, _ := gomap.AsError(err)
	assert.Equal(t, []string{`at key "ratio"`}, e.Locations)

	_, err = s.Int("name", 0)
	require.ErrorIs(t, err, gomap.ErrWrongNodeType)

	_, err = s.Section("name")
	require.ErrorIs(t, err, gomap.ErrWrongNodeType)

	_, err = New(s.Registry(), s.Node().Get("arenas"))
	require.ErrorIs(t, err, gomap.ErrWrongNodeType)
}

func TestSections(t *testing.T) {
	s := newSection(t, doc)
	limits, err := s.Section("limits")
	require.NoError(t, err)
	players, err := limits.RequireInt("players")
	require.NoError(t, err)
	assert.Equal(t, 20, players)
	pct, err := Require(limits, "pct", gomap.Decimal())
	require.NoError(t, err)
	assert.Equal(t, "1.5", pct.String())

	arenas, err := s.Sections("arenas")
	require.NoError(t, err)
	require.Len(t, arenas, 2)
	n, err := arenas[1].RequireString("name")
	require.NoError(t, err)
	assert.Equal(t, "b", n)

	none, err := s.Sections("absent")
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = s.Sections("limits")
	require.ErrorIs(t, err, gomap.ErrWrongNodeType)

	_, err = s.Section("absent")
	require.ErrorIs(t, err, gomap.ErrMissingRequired)
}

type player string

func (p player) Name() string { return string(p) }

func TestMessage(t *testing.T) {
	s := newSection(t, doc)
	motd, err := s.RequireMessage("motd")
	require.NoError(t, err)
	ctx := &placeholder.Context{Subject: player("steve"), Providers: placeholder.Defaults()}
	assert.Equal(t, "§aWelcome steve", motd.Resolve(ctx))

	bye, err := s.Message("bye", "&cBye")
	require.NoError(t, err)
	assert.Equal(t, "§cBye", bye.Resolve(ctx))
}

func TestDeclaredTypes(t *testing.T) {
	s := newSection(t, doc)
	c, err := s.Color("color", stddecl.Color{})
	require.NoError(t, err)
	assert.Equal(t, stddecl.Color{R: 255}, c)

	m, err := s.Material("icon", stddecl.Material{})
	require.NoError(t, err)
	assert.Equal(t, 55, m.ID)

	snd, err := s.Sound("absent", stddecl.Sound{Namespace: "minecraft", Key: "ui.button.click"})
	require.NoError(t, err)
	assert.Equal(t, "minecraft:ui.button.click", snd.String())

	loc, err := s.RequireLocation("spawn")
	require.NoError(t, err)
	assert.Equal(t, 64.0, loc.Y)

	flags, ok, err := Get(s, "arenas", gomap.ListOf(gomap.RawNode()))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Len(t, flags, 2)
}
