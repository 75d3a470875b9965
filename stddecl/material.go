package stddecl

import (
	"fmt"
	"strings"

	"github.com/signadot/typeconf/gomap"
	"github.com/signadot/typeconf/ir"
)

// Material is a block or item type. Legacy configurations refer to
// materials by numeric id; both forms resolve to the same value.
type Material struct {
	ID   int
	Name string
}

func (m Material) String() string { return m.Name }

var materials = []Material{
	{0, "AIR"},
	{1, "STONE"},
	{2, "GRASS"},
	{3, "DIRT"},
	{4, "COBBLESTONE"},
	{5, "WOOD"},
	{6, "SAPLING"},
	{7, "BEDROCK"},
	{8, "WATER"},
	{10, "LAVA"},
	{12, "SAND"},
	{13, "GRAVEL"},
	{14, "GOLD_ORE"},
	{15, "IRON_ORE"},
	{16, "COAL_ORE"},
	{17, "LOG"},
	{18, "LEAVES"},
	{20, "GLASS"},
	{35, "WOOL"},
	{41, "GOLD_BLOCK"},
	{42, "IRON_BLOCK"},
	{46, "TNT"},
	{47, "BOOKSHELF"},
	{49, "OBSIDIAN"},
	{50, "TORCH"},
	{54, "CHEST"},
	{55, "REDSTONE_WIRE"},
	{56, "DIAMOND_ORE"},
	{57, "DIAMOND_BLOCK"},
	{58, "WORKBENCH"},
	{61, "FURNACE"},
	{89, "GLOWSTONE"},
	{138, "BEACON"},
	{261, "BOW"},
	{262, "ARROW"},
	{263, "COAL"},
	{264, "DIAMOND"},
	{265, "IRON_INGOT"},
	{266, "GOLD_INGOT"},
	{267, "IRON_SWORD"},
	{276, "DIAMOND_SWORD"},
	{278, "DIAMOND_PICKAXE"},
	{280, "STICK"},
	{331, "REDSTONE"},
	{339, "PAPER"},
	{340, "BOOK"},
	{345, "COMPASS"},
	{347, "WATCH"},
	{388, "EMERALD"},
	{399, "NETHER_STAR"},
}

var (
	materialsByID   = map[int]Material{}
	materialsByName = map[string]Material{}
)

func init() {
	for _, m := range materials {
		materialsByID[m.ID] = m
		materialsByName[m.Name] = m
	}
}

// LookupMaterial finds a material by name, ignoring case and treating
// spaces as underscores.
func LookupMaterial(name string) (Material, bool) {
	m, ok := materialsByName[normalizeName(name)]
	return m, ok
}

// MaterialByID finds a material by legacy numeric id.
func MaterialByID(id int) (Material, bool) {
	m, ok := materialsByID[id]
	return m, ok
}

func normalizeName(s string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), " ", "_"))
}

func materialConstructor() *gomap.Constructor {
	return gomap.Raw(func(n *ir.Node) (Material, error) {
		if err := gomap.CheckTag(n, ir.TagStr, ir.TagInt); err != nil {
			return Material{}, err
		}
		var (
			m  Material
			ok bool
		)
		if n.Tag == ir.TagInt {
			id, err := ir.ParseInt(n.Value, 32)
			if err != nil {
				return Material{}, err
			}
			m, ok = MaterialByID(int(id))
		} else {
			m, ok = LookupMaterial(n.Value)
		}
		if !ok {
			return Material{}, fmt.Errorf("unknown material %q", n.Value)
		}
		return m, nil
	})
}
