package stddecl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/signadot/typeconf/gomap"
	"github.com/signadot/typeconf/parse"
)

func newRegistry(t *testing.T, opts ...Option) *gomap.Registry {
	t.Helper()
	r := gomap.NewRegistry()
	require.NoError(t, r.Import(Declarator(opts...)))
	return r
}

func decode[T any](t *testing.T, r *gomap.Registry, doc string) (T, error) {
	t.Helper()
	n, err := parse.Parse([]byte(doc))
	require.NoError(t, err)
	return gomap.Decode[T](r, n)
}

func TestPosition(t *testing.T) {
	r := newRegistry(t)
	for doc, want := range map[string]Position{
		"[1, 2]":                  {X: 1, Y: 2},
		"[1, 2, 3.5]":             {X: 1, Y: 2, Z: 3.5},
		"{x: -1, y: 0.5, z: 100}": {X: -1, Y: 0.5, Z: 100},
	} {
		got, err := decode[Position](t, r, doc)
		require.NoError(t, err, doc)
		assert.Equal(t, want, got, doc)
	}
	_, err := decode[Position](t, r, "[1, 2, 3, 4]")
	require.ErrorIs(t, err, gomap.ErrWrongNodeType)
	assert.Contains(t, err.Error(), "too many arguments")
}

func TestLocation(t *testing.T) {
	r := newRegistry(t, KnownWorlds("world", "nether"))
	got, err := decode[Location](t, r, "[world, 1, 64, -3]")
	require.NoError(t, err)
	assert.Equal(t, Location{World: "world", X: 1, Y: 64, Z: -3}, got)
	assert.Equal(t, Position{X: 1, Y: 64, Z: -3}, got.Position())

	got, err = decode[Location](t, r, "{world: nether, x: 0, y: 0, z: 0, yaw: 90, pitch: -45}")
	require.NoError(t, err)
	assert.Equal(t, float32(90), got.Yaw)
	assert.Equal(t, float32(-45), got.Pitch)

	_, err = decode[Location](t, r, "[the_end, 0, 0, 0]")
	require.ErrorIs(t, err, gomap.ErrConstruction)
	assert.Contains(t, err.Error(), `cannot find world "the_end"`)

	_, err = decode[Location](t, r, "[world, 1, 2]")
	require.ErrorIs(t, err, gomap.ErrMissingRequired)
}

func TestColor(t *testing.T) {
	r := newRegistry(t)
	want := Color{R: 255, G: 128, B: 0}
	for _, doc := range []string{"255;128;0", "'255, 128, 0'", `"#ff8000"`, "{r: 255, g: 128, b: 0}"} {
		got, err := decode[Color](t, r, doc)
		require.NoError(t, err, doc)
		assert.Equal(t, want, got, doc)
	}
	assert.Equal(t, "#ff8000", want.Hex())

	for _, doc := range []string{"256;0;0", "1;2", `"#ff80"`, "red", "{r: 1, g: 2}", "{r: 1, g: 2, b: 3, a: 4}"} {
		_, err := decode[Color](t, r, doc)
		require.ErrorIs(t, err, gomap.ErrConversion, doc)
	}
	_, err := decode[Color](t, r, "[1, 2, 3]")
	require.ErrorIs(t, err, gomap.ErrWrongNodeType)
}

func TestSound(t *testing.T) {
	r := newRegistry(t)
	tests := []struct {
		doc  string
		want string
	}{
		{"ENTITY_PLAYER_LEVELUP", "minecraft:entity.player.levelup"},
		{"block.note_block.harp", "minecraft:block.note_block.harp"},
		{"Custom:Ambient.Wind", "custom:ambient.wind"},
		{"{id: ui.button.click}", "minecraft:ui.button.click"},
	}
	for _, tc := range tests {
		got, err := decode[Sound](t, r, tc.doc)
		require.NoError(t, err, tc.doc)
		assert.Equal(t, tc.want, got.String(), tc.doc)
	}
	_, err := decode[Sound](t, r, "':click'")
	require.ErrorIs(t, err, gomap.ErrConstruction)
}

func TestMaterial(t *testing.T) {
	r := newRegistry(t)
	byID, err := decode[Material](t, r, "55")
	require.NoError(t, err)
	byName, err := decode[Material](t, r, "REDSTONE_WIRE")
	require.NoError(t, err)
	assert.Equal(t, byID, byName)

	spaced, err := decode[Material](t, r, "redstone wire")
	require.NoError(t, err)
	assert.Equal(t, byID, spaced)

	_, err = decode[Material](t, r, "9999")
	require.ErrorIs(t, err, gomap.ErrConversion)
	_, err = decode[Material](t, r, "unobtainium")
	require.ErrorIs(t, err, gomap.ErrConversion)
	_, err = decode[Material](t, r, "1.5")
	require.ErrorIs(t, err, gomap.ErrWrongNodeType)
}

func TestEnchantment(t *testing.T) {
	r := newRegistry(t)
	a, err := decode[Enchantment](t, r, "16")
	require.NoError(t, err)
	b, err := decode[Enchantment](t, r, "damage all")
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, 5, a.MaxLevel)

	_, err = decode[Enchantment](t, r, "sharpness 9")
	require.ErrorIs(t, err, gomap.ErrConversion)
}

func TestInObject(t *testing.T) {
	type kit struct {
		Icon   Material
		Spawn  Location
		Sounds []Sound
		Ench   map[Enchantment]int
	}
	var (
		icon   = gomap.Required("icon", gomap.Custom[Material]())
		spawn  = gomap.Required("spawn", gomap.Custom[Location]())
		sounds = gomap.Default("sounds", gomap.ListOf(gomap.Custom[Sound]()), nil)
		ench   = gomap.Default("enchantments", gomap.MapOf(gomap.Custom[Enchantment](), gomap.Int()), nil)
	)
	r := newRegistry(t)
	require.NoError(t, r.Register(gomap.Object[kit](icon, spawn, sounds, ench).Build(func(a *gomap.Args) (kit, error) {
		return kit{Icon: icon.Get(a), Spawn: spawn.Get(a), Sounds: sounds.Get(a), Ench: ench.Get(a)}, nil
	})))
	doc := `
icon: diamond sword
spawn: [world, 0.5, 70, 0.5]
sounds: [ENTITY_PLAYER_LEVELUP]
enchantments:
  damage all: 3
  34: 1
`
	got, err := decode[kit](t, r, doc)
	require.NoError(t, err)
	assert.Equal(t, "DIAMOND_SWORD", got.Icon.Name)
	assert.Equal(t, "world", got.Spawn.World)
	assert.Equal(t, "minecraft:entity.player.levelup", got.Sounds[0].String())
	sharp, _ := LookupEnchantment("DAMAGE_ALL")
	unbreaking, _ := EnchantmentByID(34)
	assert.Equal(t, map[Enchantment]int{sharp: 3, unbreaking: 1}, got.Ench)

	_, err = decode[kit](t, r, "icon: nothing\nspawn: [world, 0, 0, 0]")
	require.ErrorIs(t, err, gomap.ErrConversion)
	e, _ := gomap.AsError(err)
	assert.Equal(t, []string{`in property "icon"`}, e.Locations)
}

func TestDeclaredOnce(t *testing.T) {
	r := newRegistry(t)
	require.ErrorIs(t, r.Import(Declarator()), gomap.ErrRegistration)
}
