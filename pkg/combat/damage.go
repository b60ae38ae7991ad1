package combat

import "fmt"

//DamageClass groups damage types into physical, elemental and special
type DamageClass int

const (
	ClassPhysical DamageClass = iota
	ClassElemental
	ClassSpecial
)

func (c DamageClass) String() string {
	switch c {
	case ClassPhysical:
		return "physical"
	case ClassElemental:
		return "elemental"
	case ClassSpecial:
		return "special"
	}
	return "unknown"
}

//Ips is one of the three physical damage types
type Ips string

const (
	Impact   Ips = "impact"
	Puncture Ips = "puncture"
	Slash    Ips = "slash"
)

//Element is either a primary element or a secondary element made of two primaries
type Element string

//primary elements
const (
	Cold        Element = "cold"
	Heat        Element = "heat"
	Toxin       Element = "toxin"
	Electricity Element = "electricity"
)

//secondary elements
const (
	Blast     Element = "blast"
	Viral     Element = "viral"
	Magnetic  Element = "magnetic"
	Gas       Element = "gas"
	Radiation Element = "radiation"
	Corrosive Element = "corrosive"
)

//Special damage types are classified but never produced by the engine
type Special string

const (
	Void Special = "void"
	Tau  Special = "tau"
	True Special = "true"
)

//DamageType is the key every damage breakdown is indexed by
type DamageType string

var IpsTypes = []Ips{Impact, Puncture, Slash}

var PrimaryElements = []Element{Cold, Heat, Toxin, Electricity}

var SecondaryElements = []Element{Blast, Viral, Magnetic, Gas, Radiation, Corrosive}

var SpecialTypes = []Special{Void, Tau, True}

//DamageTypes lists every damage type in display order
var DamageTypes = func() []DamageType {
	var r []DamageType
	for _, v := range IpsTypes {
		r = append(r, Physical(v))
	}
	for _, v := range PrimaryElements {
		r = append(r, Elemental(v))
	}
	for _, v := range SecondaryElements {
		r = append(r, Elemental(v))
	}
	for _, v := range SpecialTypes {
		r = append(r, SpecialType(v))
	}
	return r
}()

func Physical(i Ips) DamageType { return DamageType(i) }

func Elemental(e Element) DamageType { return DamageType(e) }

func SpecialType(s Special) DamageType { return DamageType(s) }

func (i Ips) Valid() bool {
	for _, v := range IpsTypes {
		if v == i {
			return true
		}
	}
	return false
}

func (e Element) IsPrimary() bool {
	for _, v := range PrimaryElements {
		if v == e {
			return true
		}
	}
	return false
}

func (e Element) IsSecondary() bool {
	for _, v := range SecondaryElements {
		if v == e {
			return true
		}
	}
	return false
}

func (e Element) Valid() bool {
	return e.IsPrimary() || e.IsSecondary()
}

func (s Special) Valid() bool {
	for _, v := range SpecialTypes {
		if v == s {
			return true
		}
	}
	return false
}

//Class reports which variant the damage type belongs to; ok is false for unknown tags
func (d DamageType) Class() (DamageClass, bool) {
	switch {
	case Ips(d).Valid():
		return ClassPhysical, true
	case Element(d).Valid():
		return ClassElemental, true
	case Special(d).Valid():
		return ClassSpecial, true
	}
	return 0, false
}

//Ips returns the physical type if d is physical
func (d DamageType) Ips() (Ips, bool) {
	if Ips(d).Valid() {
		return Ips(d), true
	}
	return "", false
}

//Element returns the element if d is elemental
func (d DamageType) Element() (Element, bool) {
	if Element(d).Valid() {
		return Element(d), true
	}
	return "", false
}

func (d DamageType) Valid() bool {
	_, ok := d.Class()
	return ok
}

func (d DamageType) String() string {
	return string(d)
}

//ParseDamageType validates a damage type tag read from config
func ParseDamageType(s string) (DamageType, error) {
	d := DamageType(s)
	if !d.Valid() {
		return "", fmt.Errorf("invalid damage type %q", s)
	}
	return d, nil
}

//order returns the position of d in DamageTypes, or len(DamageTypes) when unknown
func (d DamageType) order() int {
	for i, v := range DamageTypes {
		if v == d {
			return i
		}
	}
	return len(DamageTypes)
}
