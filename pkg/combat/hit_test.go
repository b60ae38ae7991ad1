package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

const delta = 1e-6

func ips(i, p, s float64) map[DamageType]float64 {
	return map[DamageType]float64{
		Physical(Impact):   i,
		Physical(Puncture): p,
		Physical(Slash):    s,
	}
}

func TestBasicIps(t *testing.T) {
	h := NewHit(ips(30, 30, 40), nil, Enemy{
		Faction:    Infested,
		Weaknesses: map[DamageType]float64{Physical(Slash): 1.5},
	}, nil)

	assert.InDelta(t, 100, h.TotalBase(), delta)
	assert.InDelta(t, 6.25, h.Scale(), delta)
	assert.InDelta(t, 118.75, h.TotalQuantized(), delta)
}

func nagantakaMods() []Mod {
	return []Mod{
		{Name: "Cryo Rounds", Effects: []ModEffect{ElementalEffect(Cold, 0.9)}},
		{Name: "Malignant Force", Effects: []ModEffect{ElementalEffect(Toxin, 0.6)}},
		{Name: "Hellfire", Effects: []ModEffect{ElementalEffect(Heat, 0.9)}},
		{Name: "Piercing Caliber", Effects: []ModEffect{PhysicalEffect(Puncture, 1.2)}},
		{Name: "Valence Formation - Gas", Effects: []ModEffect{ElementalEffect(Gas, 2)}},
	}
}

func TestNagantakaPrime(t *testing.T) {
	h := NewHit(ips(1.7, 15.6, 155.7), nagantakaMods(), Enemy{Faction: Infested}, nil)

	assert.InDelta(t, 173, h.TotalBase(), delta)
	assert.InDelta(t, 10.8125, h.Scale(), delta)

	c := h.Contributions()
	expected := map[DamageType]float64{
		Physical(Impact):   0,
		Physical(Puncture): 10.8125 + 21.625,
		Physical(Slash):    151.375,
		Elemental(Viral):   259.5,
		Elemental(Heat):    151.375,
		Elemental(Gas):     346,
	}
	for k, v := range expected {
		require.Contains(t, c, k)
		assert.InDelta(t, v, c[k], delta, "contribution of %v", k)
	}
	//cold was fused into viral and stays behind at 0
	assert.InDelta(t, 0, c[Elemental(Cold)], delta)
	assert.NotContains(t, c, Elemental(Toxin))

	assert.InDelta(t, 940.6875, h.TotalQuantized(), delta)
}

func TestNoModsMatchesBase(t *testing.T) {
	cases := []map[DamageType]float64{
		ips(30, 30, 40),
		ips(1.7, 15.6, 155.7),
		ips(0, 12, 0),
		{Physical(Slash): 250},
	}
	for _, base := range cases {
		h := NewHit(base, nil, Enemy{Faction: Grineer}, nil)
		assert.InDelta(t, h.TotalBase(), h.TotalQuantized(), h.Scale()*float64(len(base)))
	}
}

func TestScaleAndQuantize(t *testing.T) {
	h := NewHit(ips(1.7, 15.6, 155.7), nil, Enemy{Faction: Corpus}, nil)
	assert.InDelta(t, h.TotalBase()/16, h.Scale(), delta)

	for i := 0; i < 40; i++ {
		v := float64(i) * h.Scale()
		assert.InDelta(t, v, h.Quantize(v), delta)
		assert.InDelta(t, h.Quantize(v), h.Quantize(h.Quantize(v)), delta)
	}
	//rounds to the nearest tick
	assert.InDelta(t, 10.8125, h.Quantize(15.6), delta)
	assert.InDelta(t, 21.625, h.Quantize(18.72), delta)
}

func TestZeroBaseDamage(t *testing.T) {
	h := NewHit(ips(0, 0, 0), []Mod{
		{Name: "Hellfire", Effects: []ModEffect{ElementalEffect(Heat, 0.9)}},
	}, Enemy{Faction: Grineer}, nil)

	assert.Equal(t, 0.0, h.Scale())
	assert.Equal(t, 0.0, h.Quantize(123))
	for k, v := range h.Contributions() {
		assert.Equal(t, 0.0, v, "contribution of %v", k)
	}
	assert.Equal(t, 0.0, h.TotalQuantized())
}

func TestBane(t *testing.T) {
	mods := append(nagantakaMods(), Mod{
		Name:    "Bane of Grineer",
		Effects: []ModEffect{BaneEffect(Grineer, 0.3)},
	})

	t.Run("inactive", func(t *testing.T) {
		h := NewHit(ips(1.7, 15.6, 155.7), mods, Enemy{Faction: Infested}, nil)
		assert.InDelta(t, 1, h.Bane(), delta)
		assert.InDelta(t, 940.6875, h.TotalQuantized(), delta)
	})

	t.Run("active", func(t *testing.T) {
		h := NewHit(ips(1.7, 15.6, 155.7), mods, Enemy{Faction: Grineer}, nil)
		assert.InDelta(t, 1.3, h.Bane(), delta)
		assert.InDelta(t, 940.6875*1.3, h.TotalQuantized(), 1e-4)
		assert.InDelta(t, 346*1.3, h.Contributions()[Elemental(Gas)], 1e-4)
	})

	t.Run("stacked", func(t *testing.T) {
		extra := append(mods, Mod{Name: "Primed Bane of Grineer", Effects: []ModEffect{BaneEffect(Grineer, 0.55)}})
		h := NewHit(ips(30, 30, 40), extra, Enemy{Faction: Grineer}, nil)
		assert.InDelta(t, 1.85, h.Bane(), delta)
	})
}

func TestPhysicalModWithoutBase(t *testing.T) {
	h := NewHit(map[DamageType]float64{Physical(Slash): 100}, []Mod{
		{Name: "Piercing Caliber", Effects: []ModEffect{PhysicalEffect(Puncture, 1.2)}},
		{Name: "Sawtooth Clip", Effects: []ModEffect{PhysicalEffect(Slash, 1.2)}},
	}, Enemy{Faction: Corpus}, nil)

	c := h.Contributions()
	require.Contains(t, c, Physical(Puncture))
	assert.Equal(t, 0.0, c[Physical(Puncture)])
	assert.InDelta(t, 100+118.75, c[Physical(Slash)], delta)
	assert.NotContains(t, c, Physical(Impact))
}

func TestWeaknessScaling(t *testing.T) {
	h := NewHit(ips(30, 30, 40), []Mod{
		{Name: "Hellfire", Effects: []ModEffect{ElementalEffect(Heat, 0.9)}},
	}, Enemy{
		Faction: Grineer,
		Weaknesses: map[DamageType]float64{
			Elemental(Heat):    1.25,
			Physical(Puncture): 0.5,
		},
	}, nil)

	c := h.Contributions()
	//0.9 * 100 = 90 -> 14.4 ticks -> 87.5
	assert.InDelta(t, 87.5*1.25, c[Elemental(Heat)], delta)
	assert.InDelta(t, 31.25*0.5, c[Physical(Puncture)], delta)
}

func TestDirectSecondaryStandsAlone(t *testing.T) {
	h := NewHit(ips(30, 30, 40), []Mod{
		{Name: "Valence Formation - Corrosive", Effects: []ModEffect{ElementalEffect(Corrosive, 0.6)}},
	}, Enemy{
		Faction:    Corpus,
		Weaknesses: map[DamageType]float64{Elemental(Corrosive): 2},
	}, nil)

	c := h.Contributions()
	assert.Len(t, c, 4)
	assert.InDelta(t, 62.5*2, c[Elemental(Corrosive)], delta)
}

func TestStatusChanceNotImplemented(t *testing.T) {
	h := NewHit(ips(30, 30, 40), nil, Enemy{Faction: Corpus}, nil)
	sc, err := h.StatusChance()
	assert.Nil(t, sc)
	assert.ErrorIs(t, err, ErrNotImplemented)
}

func TestResolve(t *testing.T) {
	r := Resolve(ips(1.7, 15.6, 155.7), nagantakaMods(), Enemy{Faction: Infested}, nil)
	assert.InDelta(t, 173, r.TotalBase, delta)
	assert.InDelta(t, 10.8125, r.Scale, delta)
	assert.InDelta(t, 1, r.Bane, delta)
	assert.InDelta(t, 940.6875, r.Total, delta)
	assert.Len(t, r.Contributions, 7)
}

func TestResolveDoesNotMutateInputs(t *testing.T) {
	base := ips(30, 30, 40)
	mods := nagantakaMods()
	enemy := Enemy{Faction: Infested, Weaknesses: map[DamageType]float64{Physical(Slash): 1.5}}

	Resolve(base, mods, enemy, nil)

	assert.Equal(t, ips(30, 30, 40), base)
	assert.Equal(t, nagantakaMods(), mods)
	assert.Equal(t, map[DamageType]float64{Physical(Slash): 1.5}, enemy.Weaknesses)
}

func TestSortTypes(t *testing.T) {
	m := map[DamageType]float64{
		Elemental(Gas):    1,
		Physical(Slash):   1,
		Elemental(Cold):   1,
		SpecialType(Void): 1,
		Physical(Impact):  1,
	}
	assert.Equal(t, []DamageType{
		Physical(Impact), Physical(Slash), Elemental(Cold), Elemental(Gas), SpecialType(Void),
	}, SortTypes(m))
}

func TestInvalidEffectIsLogged(t *testing.T) {
	log, logs := observed()
	mods := []Mod{
		{Name: "Fire Rounds", Effects: []ModEffect{ElementalEffect(Element("fire"), 1)}},
		{Name: "Mixed", Effects: []ModEffect{{Physical: Slash, Elemental: Heat, Value: 1}}},
	}
	r := Resolve(map[DamageType]float64{Physical(Slash): 100}, mods, Enemy{Faction: Grineer}, log)

	assert.Equal(t, map[DamageType]float64{Physical(Slash): 100}, r.Contributions)
	assert.InDelta(t, 100, r.Total, delta)

	warned := logs.FilterMessage("ignoring invalid effect").All()
	require.Len(t, warned, 2)
	for _, e := range warned {
		assert.Equal(t, zapcore.WarnLevel, e.Level)
	}
}

func TestEffectKindString(t *testing.T) {
	assert.Equal(t, "elemental", EffectElemental.String())
	assert.Error(t, ElementalEffect(Element("fire"), 1).Validate())
	assert.Equal(t, "invalid", ModEffect{}.Kind().String())
	assert.Equal(t, "kind(9)", EffectKind(9).String())
	assert.Equal(t, "kind(-1)", EffectKind(-1).String())
}
