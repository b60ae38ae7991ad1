package combat

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"
)

//ErrNotImplemented is returned by calculations that depend on data the
//calculator does not model yet
var ErrNotImplemented = errors.New("not implemented")

//Quanta is the number of equal ticks base damage is split into before rounding
const Quanta = 16

//Hit bundles everything needed to resolve one hit. It is never mutated
type Hit struct {
	BaseDamage map[DamageType]float64
	Mods       []Mod
	Enemy      Enemy

	Log *zap.SugaredLogger
}

func NewHit(base map[DamageType]float64, mods []Mod, enemy Enemy, log *zap.SugaredLogger) *Hit {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Hit{
		BaseDamage: base,
		Mods:       mods,
		Enemy:      enemy,
		Log:        log,
	}
}

func (h *Hit) log() *zap.SugaredLogger {
	if h.Log == nil {
		return zap.NewNop().Sugar()
	}
	return h.Log
}

//TotalBase is the unmodified sum of every base damage entry
func (h *Hit) TotalBase() float64 {
	var sum float64
	for _, t := range SortTypes(h.BaseDamage) {
		sum += h.BaseDamage[t]
	}
	return sum
}

//Scale is the quantization unit, TotalBase / 16
func (h *Hit) Scale() float64 {
	return h.TotalBase() / Quanta
}

//Quantize snaps v to the nearest multiple of Scale. With no base damage
//there is nothing to snap to and the result is 0
func (h *Hit) Quantize(v float64) float64 {
	return quantize(v, h.Scale())
}

func quantize(v, scale float64) float64 {
	if scale == 0 {
		return 0
	}
	return math.Round(v/scale) * scale
}

func (h *Hit) effects() []ModEffect {
	var r []ModEffect
	for _, m := range h.Mods {
		r = append(r, m.ActiveEffects()...)
	}
	return r
}

//Bane is the faction multiplier: 1 plus every bane bonus matching the enemy
func (h *Hit) Bane() float64 {
	return accumulate(h.effects(), h.Enemy.Faction).bane
}

//Contributions returns the final damage per type. Each term is quantized,
//scaled by the enemy's weakness and then by the faction multiplier
func (h *Hit) Contributions() map[DamageType]float64 {
	log := h.log()
	a := accumulate(h.effects(), h.Enemy.Faction)
	for _, e := range a.invalid {
		log.Warnw("ignoring invalid effect", "effect", e, "err", e.Validate())
	}
	for _, e := range a.inactive {
		log.Debugf("\tinactive bane %v against %v", e.Bane, h.Enemy.Faction)
	}
	bane := a.bane

	total := h.TotalBase()
	scale := total / Quanta
	log.Debugw("\tcalc", "total base", total, "scale", scale, "bane", bane)
	log.Debugw("\ttarget", "faction", h.Enemy.Faction, "weaknesses", h.Enemy.Weaknesses)

	result := make(map[DamageType]float64)
	add := func(t DamageType, v float64) {
		result[t] += v * bane
	}

	//base physical damage
	for _, ips := range IpsTypes {
		t := Physical(ips)
		base, ok := h.BaseDamage[t]
		if !ok {
			continue
		}
		v := quantize(base, scale) * h.Enemy.WeaknessTo(t)
		log.Debugw("\t\tbase", "type", t, "base", base, "dmg", v)
		add(t, v)
	}

	//physical mods only scale the matching base damage
	pm := a.phys.Finalize()
	for _, ips := range IpsTypes {
		m, ok := pm[ips]
		if !ok {
			continue
		}
		t := Physical(ips)
		var v float64
		if base, ok := h.BaseDamage[t]; ok {
			v = quantize(m*base, scale) * h.Enemy.WeaknessTo(t)
		}
		log.Debugw("\t\tphysical", "type", t, "mult", m, "dmg", v)
		add(t, v)
	}

	//elemental mods scale off the total base damage
	em := a.ele.Finalize()
	for _, list := range [][]Element{PrimaryElements, SecondaryElements} {
		for _, e := range list {
			m, ok := em[e]
			if !ok {
				continue
			}
			t := Elemental(e)
			v := quantize(m*total, scale) * h.Enemy.WeaknessTo(t)
			log.Debugw("\t\telemental", "type", t, "mult", m, "dmg", v)
			add(t, v)
		}
	}

	return result
}

//TotalQuantized is the single damage number for the hit
func (h *Hit) TotalQuantized() float64 {
	c := h.Contributions()
	var sum float64
	for _, t := range SortTypes(c) {
		sum += c[t]
	}
	return sum
}

//StatusChance would split the weapon's status chance across damage types
//weighted by contribution. The weapon's base status chance is not modelled
//so this always fails
func (h *Hit) StatusChance() (map[DamageType]float64, error) {
	return nil, fmt.Errorf("status chance needs a weapon base status chance: %w", ErrNotImplemented)
}

//Result is the outward facing breakdown of a resolved hit
type Result struct {
	TotalBase     float64                `json:"total_base"`
	Scale         float64                `json:"scale"`
	Bane          float64                `json:"bane"`
	Contributions map[DamageType]float64 `json:"contributions"`
	Total         float64                `json:"total"`
}

//Resolve runs a single hit and returns its breakdown
func Resolve(base map[DamageType]float64, mods []Mod, enemy Enemy, log *zap.SugaredLogger) Result {
	h := NewHit(base, mods, enemy, log)
	c := h.Contributions()
	r := Result{
		TotalBase:     h.TotalBase(),
		Scale:         h.Scale(),
		Bane:          h.Bane(),
		Contributions: c,
	}
	for _, t := range SortTypes(c) {
		r.Total += c[t]
	}
	h.log().Debugw("hit resolved", "total", r.Total, "contributions", c)
	return r
}

//SortTypes returns the keys of m in taxonomy order; unknown tags go last, by name
func SortTypes(m map[DamageType]float64) []DamageType {
	keys := make([]DamageType, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		oi, oj := keys[i].order(), keys[j].order()
		if oi != oj {
			return oi < oj
		}
		return keys[i] < keys[j]
	})
	return keys
}
