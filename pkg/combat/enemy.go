package combat

import "fmt"

//Faction of the target; bane mods only apply against their own faction
type Faction string

const (
	Grineer   Faction = "grineer"
	Corpus    Faction = "corpus"
	Corrupted Faction = "corrupted"
	Infested  Faction = "infested"
	Murmur    Faction = "murmur"
)

var Factions = []Faction{Grineer, Corpus, Corrupted, Infested, Murmur}

func (f Faction) Valid() bool {
	for _, v := range Factions {
		if v == f {
			return true
		}
	}
	return false
}

func ParseFaction(s string) (Faction, error) {
	f := Faction(s)
	if !f.Valid() {
		return "", fmt.Errorf("invalid faction %q", s)
	}
	return f, nil
}

//Enemy is the target of a hit. Weaknesses only hold entries that differ from 1
type Enemy struct {
	Faction    Faction
	Weaknesses map[DamageType]float64
}

//NewEnemy builds an enemy from a profile, dropping neutral (1.0) weaknesses
func NewEnemy(p EnemyProfile) (Enemy, error) {
	e := Enemy{
		Faction:    p.Faction,
		Weaknesses: make(map[DamageType]float64),
	}
	if !p.Faction.Valid() {
		return e, fmt.Errorf("invalid faction %q", p.Faction)
	}
	for k, v := range p.Weaknesses {
		if !k.Valid() {
			return e, fmt.Errorf("invalid weakness damage type %q", k)
		}
		if v < 0 {
			return e, fmt.Errorf("weakness to %v must not be negative: %v", k, v)
		}
		if v != 1 {
			e.Weaknesses[k] = v
		}
	}
	return e, nil
}

//WeaknessTo returns the damage multiplier the enemy takes from t
func (e Enemy) WeaknessTo(t DamageType) float64 {
	if v, ok := e.Weaknesses[t]; ok {
		return v
	}
	return 1
}
