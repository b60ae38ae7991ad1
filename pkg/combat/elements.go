package combat

//combination is one row of the pairing table: two primaries fuse into a secondary
type combination struct {
	secondary Element
	left      Element
	right     Element
}

//combinations is walked in this exact order when resolving elemental bonuses.
//the outcome of ElementalAccumulator.Finalize depends on it so it must stay a slice
var combinations = [...]combination{
	{Blast, Cold, Heat},
	{Viral, Cold, Toxin},
	{Magnetic, Cold, Electricity},
	{Gas, Heat, Toxin},
	{Radiation, Heat, Electricity},
	{Corrosive, Toxin, Electricity},
}

//Combination returns the two primaries a secondary element is made of
func Combination(secondary Element) (Element, Element, bool) {
	for _, c := range combinations {
		if c.secondary == secondary {
			return c.left, c.right, true
		}
	}
	return "", "", false
}

//Combines returns the secondary element produced by two primaries, in either order
func Combines(a, b Element) (Element, bool) {
	for _, c := range combinations {
		if (c.left == a && c.right == b) || (c.left == b && c.right == a) {
			return c.secondary, true
		}
	}
	return "", false
}

type elementBonus struct {
	ele   Element
	value float64
}

//ElementalAccumulator collects elemental bonuses for a single hit and fuses
//pairs of primaries into secondaries on Finalize
type ElementalAccumulator struct {
	primary   []elementBonus
	secondary []elementBonus
}

func (e *ElementalAccumulator) Add(ele Element, value float64) {
	if ele.IsSecondary() {
		e.secondary = append(e.secondary, elementBonus{ele, value})
		return
	}
	e.primary = append(e.primary, elementBonus{ele, value})
}

//Finalize resolves the accumulated bonuses into one multiplier per element.
//Primaries are resolved first, in the order they were added; bonuses added
//directly to a secondary are summed in afterwards.
func (e *ElementalAccumulator) Finalize() map[Element]float64 {
	result := make(map[Element]float64)

	for _, v := range e.primary {
		addPrimary(result, v.ele, v.value)
	}
	for _, v := range e.secondary {
		result[v.ele] += v.value
	}

	return result
}

func addPrimary(result map[Element]float64, ele Element, value float64) {
	combined := false
	for _, c := range combinations {
		var other Element
		switch ele {
		case c.left:
			other = c.right
		case c.right:
			other = c.left
		default:
			continue
		}

		//secondary already exists; top it up
		if _, ok := result[c.secondary]; ok {
			result[c.secondary] += value
			combined = true
			continue
		}

		//fuse with the partner primary; the partner entry stays behind at 0
		if v, ok := result[other]; ok && v > 0 {
			result[c.secondary] = value + v
			result[other] = 0
			combined = true
		}
	}

	if !combined {
		result[ele] += value
	}
}
