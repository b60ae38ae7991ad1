package combat

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var librarySource = `
- name: Cryo Rounds
  effects:
    - elemental: cold
      value: 0.9
- name: Piercing Caliber
  effects:
    - physical: puncture
      value: 1.2
- name: Bane of Infested
  effects:
    - bane: infested
      value: 0.3
- name: Galvanized Aptitude
  effects:
    - physical: impact
      value: 0.8
  conditional:
    - trigger: status
      stacking:
        max: 2
        duration: 20s
        timeout:
          reduce: all
      effect:
        physical: impact
        value: 0.4
`

func TestParseLibrary(t *testing.T) {
	l, err := ParseLibrary([]byte(librarySource))
	require.NoError(t, err)

	assert.Equal(t, 4, l.Len())
	assert.Equal(t, []string{"Bane of Infested", "Cryo Rounds", "Galvanized Aptitude", "Piercing Caliber"}, l.Names())

	m, ok := l.Get("Cryo Rounds")
	require.True(t, ok)
	assert.Equal(t, []ModEffect{ElementalEffect(Cold, 0.9)}, m.Effects)

	m, ok = l.Get("Galvanized Aptitude")
	require.True(t, ok)
	require.Len(t, m.Conditional, 1)
	c := m.Conditional[0]
	assert.Equal(t, TriggerStatus, c.Trigger)
	require.NotNil(t, c.Stacking)
	assert.Equal(t, 2, c.Stacking.Max)
	assert.Equal(t, 20*time.Second, c.Stacking.Duration)
	assert.Equal(t, ReduceAll, c.Stacking.Timeout.Reduce)
	assert.Equal(t, []ModEffect{PhysicalEffect(Impact, 0.8)}, m.ActiveEffects())

	_, ok = l.Get("Serration")
	assert.False(t, ok)
}

func TestLibraryErrors(t *testing.T) {
	cases := map[string]string{
		"bad yaml":       "- name: [",
		"no name":        "- effects: [{physical: slash, value: 1}]",
		"two tags":       "- name: x\n  effects: [{physical: slash, elemental: heat, value: 1}]",
		"no tag":         "- name: x\n  effects: [{value: 1}]",
		"bad element":    "- name: x\n  effects: [{elemental: fire, value: 1}]",
		"bad physical":   "- name: x\n  effects: [{physical: heat, value: 1}]",
		"bad faction":    "- name: x\n  effects: [{bane: sentient, value: 1}]",
		"duplicate":      "- name: x\n  effects: []\n- name: x\n  effects: []",
		"bad trigger":    "- name: x\n  conditional: [{trigger: jump, effect: {physical: slash, value: 1}}]",
		"stack max":      "- name: x\n  conditional: [{trigger: kill, stacking: {max: 0}, effect: {physical: slash, value: 1}}]",
		"timeout amount": "- name: x\n  conditional: [{trigger: kill, stacking: {max: 5, duration: 20s, timeout: {reduce: flat}}, effect: {physical: slash, value: 1}}]",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseLibrary([]byte(src))
			assert.Error(t, err)
		})
	}
}

func TestLoadLibraryRoundTrip(t *testing.T) {
	mods := nagantakaMods()
	var buf bytes.Buffer
	require.NoError(t, WriteLibrary(&buf, mods))

	path := filepath.Join(t.TempDir(), "mods.yaml")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))

	l, err := LoadLibrary(path)
	require.NoError(t, err)
	assert.Equal(t, path, l.Path())

	got, err := l.Lookup([]string{"Hellfire", "Cryo Rounds"})
	require.NoError(t, err)
	assert.Equal(t, []Mod{mods[2], mods[0]}, got)

	_, err = l.Lookup([]string{"Serration"})
	assert.ErrorIs(t, err, ErrUnknownMod)

	_, err = LoadLibrary(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDamageTypeClassification(t *testing.T) {
	cases := []struct {
		in    string
		class DamageClass
	}{
		{"impact", ClassPhysical},
		{"slash", ClassPhysical},
		{"cold", ClassElemental},
		{"corrosive", ClassElemental},
		{"void", ClassSpecial},
		{"true", ClassSpecial},
	}
	for _, c := range cases {
		d, err := ParseDamageType(c.in)
		require.NoError(t, err)
		class, ok := d.Class()
		assert.True(t, ok)
		assert.Equal(t, c.class, class, c.in)
	}

	_, err := ParseDamageType("fire")
	assert.Error(t, err)

	i, ok := Physical(Puncture).Ips()
	assert.True(t, ok)
	assert.Equal(t, Puncture, i)
	_, ok = Elemental(Heat).Ips()
	assert.False(t, ok)
	e, ok := Elemental(Viral).Element()
	assert.True(t, ok)
	assert.True(t, e.IsSecondary())
	assert.False(t, e.IsPrimary())

	assert.Len(t, DamageTypes, 16)
}

func TestEnemy(t *testing.T) {
	e, err := NewEnemy(EnemyProfile{
		Faction: Grineer,
		Weaknesses: map[DamageType]float64{
			Physical(Impact): 1,
			Elemental(Heat):  1.5,
		},
	})
	require.NoError(t, err)
	assert.Equal(t, map[DamageType]float64{Elemental(Heat): 1.5}, e.Weaknesses)
	assert.Equal(t, 1.5, e.WeaknessTo(Elemental(Heat)))
	assert.Equal(t, 1.0, e.WeaknessTo(Physical(Impact)))
	assert.Equal(t, 1.0, e.WeaknessTo(Elemental(Gas)))

	_, err = NewEnemy(EnemyProfile{Faction: "sentient"})
	assert.Error(t, err)
	_, err = NewEnemy(EnemyProfile{Faction: Corpus, Weaknesses: map[DamageType]float64{"fire": 2}})
	assert.Error(t, err)
	_, err = NewEnemy(EnemyProfile{Faction: Corpus, Weaknesses: map[DamageType]float64{Physical(Slash): -1}})
	assert.Error(t, err)

	f, err := ParseFaction("murmur")
	require.NoError(t, err)
	assert.Equal(t, Murmur, f)
}

func TestWeaponType(t *testing.T) {
	assert.NoError(t, WeaponType{Category: CategoryPrimary, Kind: "crossbow"}.Validate())
	assert.NoError(t, WeaponType{Category: CategoryModular, Kind: "nikana"}.Validate())
	assert.NoError(t, WeaponType{Category: CategoryMelee, Kind: "heavy_blade", Exalted: true}.Validate())
	assert.Error(t, WeaponType{Category: CategoryRailjack, Kind: "rifle"}.Validate())
	assert.Error(t, WeaponType{Category: "gear", Kind: "rifle"}.Validate())

	assert.Equal(t, "exalted melee/heavy_blade", WeaponType{Category: CategoryMelee, Kind: "heavy_blade", Exalted: true}.String())
	assert.Len(t, WeaponCategories(), 7)
}
