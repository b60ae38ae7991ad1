package combat

import (
	"errors"
	"fmt"
)

type EffectKind int

const (
	EffectInvalid EffectKind = iota
	EffectPhysical
	EffectElemental
	EffectBane
)

var effectKindString = [...]string{
	"invalid",
	"physical",
	"elemental",
	"bane",
}

func (k EffectKind) String() string {
	if k < 0 || int(k) >= len(effectKindString) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return effectKindString[k]
}

//ModEffect is one line of a mod. Exactly one of Physical, Elemental or Bane is
//set; Value is the fractional bonus (0.9 = +90%)
type ModEffect struct {
	Physical  Ips     `yaml:"physical,omitempty" json:"physical,omitempty"`
	Elemental Element `yaml:"elemental,omitempty" json:"elemental,omitempty"`
	Bane      Faction `yaml:"bane,omitempty" json:"bane,omitempty"`
	Value     float64 `yaml:"value" json:"value"`
}

func PhysicalEffect(ips Ips, value float64) ModEffect {
	return ModEffect{Physical: ips, Value: value}
}

func ElementalEffect(ele Element, value float64) ModEffect {
	return ModEffect{Elemental: ele, Value: value}
}

func BaneEffect(f Faction, value float64) ModEffect {
	return ModEffect{Bane: f, Value: value}
}

func (m ModEffect) Kind() EffectKind {
	n := 0
	k := EffectInvalid
	if m.Physical != "" {
		n++
		k = EffectPhysical
	}
	if m.Elemental != "" {
		n++
		k = EffectElemental
	}
	if m.Bane != "" {
		n++
		k = EffectBane
	}
	if n != 1 {
		return EffectInvalid
	}
	return k
}

func (m ModEffect) Validate() error {
	switch m.Kind() {
	case EffectPhysical:
		if !m.Physical.Valid() {
			return fmt.Errorf("invalid physical damage type %q", m.Physical)
		}
	case EffectElemental:
		if !m.Elemental.Valid() {
			return fmt.Errorf("invalid element %q", m.Elemental)
		}
	case EffectBane:
		if !m.Bane.Valid() {
			return fmt.Errorf("invalid bane faction %q", m.Bane)
		}
	default:
		return errors.New("effect must set exactly one of physical, elemental or bane")
	}
	return nil
}

func (m ModEffect) String() string {
	switch m.Kind() {
	case EffectPhysical:
		return fmt.Sprintf("%+.0f%% %v", m.Value*100, m.Physical)
	case EffectElemental:
		return fmt.Sprintf("%+.0f%% %v", m.Value*100, m.Elemental)
	case EffectBane:
		return fmt.Sprintf("%+.0f%% vs %v", m.Value*100, m.Bane)
	}
	return "invalid effect"
}

//Mod is a named set of effects applied to a hit
type Mod struct {
	Name        string              `yaml:"name" json:"name"`
	Effects     []ModEffect         `yaml:"effects" json:"effects"`
	Conditional []ConditionalEffect `yaml:"conditional,omitempty" json:"conditional,omitempty"`
}

func (m Mod) Validate() error {
	if m.Name == "" {
		return errors.New("mod is missing a name")
	}
	for i, e := range m.Effects {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("mod %v effect %v: %w", m.Name, i, err)
		}
	}
	for i, c := range m.Conditional {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("mod %v conditional %v: %w", m.Name, i, err)
		}
	}
	return nil
}

//EffectSource produces the flat list of effects that are active for a hit.
//Anything that models triggers or stacks has to reduce itself to this list
type EffectSource interface {
	ActiveEffects() []ModEffect
}

var _ EffectSource = Mod{}

//ActiveEffects returns the unconditional effects of the mod. Conditional
//effects are not evaluated
func (m Mod) ActiveEffects() []ModEffect {
	return m.Effects
}

//accumulated is a flat effect list split by what it does to a hit
type accumulated struct {
	phys *PhysicalAccumulator
	ele  *ElementalAccumulator
	bane float64
	//bane effects against another faction
	inactive []ModEffect
	//effects that fail Validate and never reach an accumulator
	invalid []ModEffect
}

//accumulate partitions a flat effect list into the physical and elemental
//accumulators and the faction multiplier against f
func accumulate(effects []ModEffect, f Faction) accumulated {
	a := accumulated{
		phys: &PhysicalAccumulator{},
		ele:  &ElementalAccumulator{},
		bane: 1.0,
	}

	for _, e := range effects {
		if e.Validate() != nil {
			a.invalid = append(a.invalid, e)
			continue
		}
		switch e.Kind() {
		case EffectPhysical:
			a.phys.Add(e.Physical, e.Value)
		case EffectElemental:
			a.ele.Add(e.Elemental, e.Value)
		case EffectBane:
			if e.Bane == f {
				a.bane += e.Value
			} else {
				a.inactive = append(a.inactive, e)
			}
		}
	}

	return a
}
