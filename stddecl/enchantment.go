package stddecl

import (
	"fmt"

	"github.com/signadot/typeconf/gomap"
	"github.com/signadot/typeconf/ir"
)

// Enchantment is an item enchantment type.
type Enchantment struct {
	ID       int
	Name     string
	MaxLevel int
}

func (e Enchantment) String() string { return e.Name }

var enchantments = []Enchantment{
	{0, "PROTECTION_ENVIRONMENTAL", 4},
	{1, "PROTECTION_FIRE", 4},
	{2, "PROTECTION_FALL", 4},
	{3, "PROTECTION_EXPLOSIONS", 4},
	{4, "PROTECTION_PROJECTILE", 4},
	{5, "OXYGEN", 3},
	{6, "WATER_WORKER", 1},
	{7, "THORNS", 3},
	{8, "DEPTH_STRIDER", 3},
	{16, "DAMAGE_ALL", 5},
	{17, "DAMAGE_UNDEAD", 5},
	{18, "DAMAGE_ARTHROPODS", 5},
	{19, "KNOCKBACK", 2},
	{20, "FIRE_ASPECT", 2},
	{21, "LOOT_BONUS_MOBS", 3},
	{32, "DIG_SPEED", 5},
	{33, "SILK_TOUCH", 1},
	{34, "DURABILITY", 3},
	{35, "LOOT_BONUS_BLOCKS", 3},
	{48, "ARROW_DAMAGE", 5},
	{49, "ARROW_KNOCKBACK", 2},
	{50, "ARROW_FIRE", 1},
	{51, "ARROW_INFINITE", 1},
	{61, "LUCK", 3},
	{62, "LURE", 3},
	{70, "MENDING", 1},
}

var (
	enchantmentsByID   = map[int]Enchantment{}
	enchantmentsByName = map[string]Enchantment{}
)

func init() {
	for _, e := range enchantments {
		enchantmentsByID[e.ID] = e
		enchantmentsByName[e.Name] = e
	}
}

// LookupEnchantment finds an enchantment by name, ignoring case and treating
// spaces as underscores.
func LookupEnchantment(name string) (Enchantment, bool) {
	e, ok := enchantmentsByName[normalizeName(name)]
	return e, ok
}

func EnchantmentByID(id int) (Enchantment, bool) {
	e, ok := enchantmentsByID[id]
	return e, ok
}

func enchantmentConstructor() *gomap.Constructor {
	return gomap.Raw(func(n *ir.Node) (Enchantment, error) {
		if err := gomap.CheckTag(n, ir.TagStr, ir.TagInt); err != nil {
			return Enchantment{}, err
		}
		var (
			e  Enchantment
			ok bool
		)
		if n.Tag == ir.TagInt {
			id, err := ir.ParseInt(n.Value, 32)
			if err != nil {
				return Enchantment{}, err
			}
			e, ok = EnchantmentByID(int(id))
		} else {
			e, ok = LookupEnchantment(n.Value)
		}
		if !ok {
			return Enchantment{}, fmt.Errorf("unknown enchantment %q", n.Value)
		}
		return e, nil
	})
}
