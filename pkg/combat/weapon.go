package combat

import (
	"fmt"
	"math"
	"sort"
)

type WeaponCategory string

const (
	CategoryPrimary   WeaponCategory = "primary"
	CategorySecondary WeaponCategory = "secondary"
	CategoryMelee     WeaponCategory = "melee"
	CategoryArchwing  WeaponCategory = "archwing"
	CategoryCompanion WeaponCategory = "companion"
	CategoryModular   WeaponCategory = "modular"
	CategoryRailjack  WeaponCategory = "railjack"
)

var meleeKinds = []string{
	"assault_saw", "blade_and_whip", "claws", "dagger", "dual_daggers", "dual_nikanas",
	"dual_swords", "fist", "glaive", "gunblade", "hammer", "heavy_blade", "heavy_scythe",
	"machete", "nikana", "nunchaku", "polearm", "rapier", "scythe", "sparring", "staff",
	"sword_and_shield", "sword", "tonfa", "two_handed_nikana", "warfan", "whip",
}

//weaponKinds lists the kinds allowed under each category
var weaponKinds = map[WeaponCategory][]string{
	CategoryPrimary:   {"arm_cannon", "bow", "crossbow", "launcher", "rifle", "shotgun", "sniper_rifle", "speargun"},
	CategorySecondary: {"crossbow", "dual_pistols", "dual_shotguns", "pistol", "shotgun_sidearm", "thrown", "tome"},
	CategoryMelee:     meleeKinds,
	CategoryArchwing:  {"archgun", "dual_pistols", "launcher", "melee", "rifle", "shotgun"},
	CategoryCompanion: {"glaive", "melee", "pistol", "rifle", "shotgun", "sniper_rifle"},
	CategoryModular:   append([]string{"amp", "launcher", "pistol", "rifle", "shotgun"}, meleeKinds...),
	CategoryRailjack:  {"ordnance", "turret"},
}

//WeaponCategories returns every category in a stable order
func WeaponCategories() []WeaponCategory {
	var r []WeaponCategory
	for k := range weaponKinds {
		r = append(r, k)
	}
	sort.Slice(r, func(i, j int) bool { return r[i] < r[j] })
	return r
}

//WeaponType classifies a weapon. Exalted weapons are summoned by an ability
//but otherwise share their category's kinds
type WeaponType struct {
	Category WeaponCategory `yaml:"category" json:"category"`
	Kind     string         `yaml:"kind" json:"kind"`
	Exalted  bool           `yaml:"exalted,omitempty" json:"exalted,omitempty"`
}

func (w WeaponType) Validate() error {
	kinds, ok := weaponKinds[w.Category]
	if !ok {
		return fmt.Errorf("invalid weapon category %q", w.Category)
	}
	for _, k := range kinds {
		if k == w.Kind {
			return nil
		}
	}
	return fmt.Errorf("invalid %v weapon kind %q", w.Category, w.Kind)
}

func (w WeaponType) String() string {
	s := string(w.Category) + "/" + w.Kind
	if w.Exalted {
		s = "exalted " + s
	}
	return s
}

//WeaponProfile supplies the base damage of a hit
type WeaponProfile struct {
	Name   string                 `yaml:"name" json:"name"`
	Type   *WeaponType            `yaml:"type,omitempty" json:"type,omitempty"`
	Damage map[DamageType]float64 `yaml:"damage" json:"damage"`
}

func (w WeaponProfile) Validate() error {
	if w.Type != nil {
		if err := w.Type.Validate(); err != nil {
			return fmt.Errorf("weapon %v: %w", w.Name, err)
		}
	}
	if len(w.Damage) == 0 {
		return fmt.Errorf("weapon %v has no base damage", w.Name)
	}
	for k, v := range w.Damage {
		if !k.Valid() {
			return fmt.Errorf("weapon %v: invalid damage type %q", w.Name, k)
		}
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("weapon %v: invalid %v damage %v", w.Name, k, v)
		}
	}
	return nil
}
