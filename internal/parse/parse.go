package parse

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/srliao/wfcalc/pkg/combat"
)

var ErrUnrecognised = errors.New("unrecognised stat")

//colour tags used by the public export in front of damage type names
var tagTypes = map[string]combat.DamageType{
	"DT_IMPACT_COLOR":      combat.Physical(combat.Impact),
	"DT_PUNCTURE_COLOR":    combat.Physical(combat.Puncture),
	"DT_SLASH_COLOR":       combat.Physical(combat.Slash),
	"DT_FREEZE_COLOR":      combat.Elemental(combat.Cold),
	"DT_FIRE_COLOR":        combat.Elemental(combat.Heat),
	"DT_POISON_COLOR":      combat.Elemental(combat.Toxin),
	"DT_ELECTRICITY_COLOR": combat.Elemental(combat.Electricity),
	"DT_EXPLOSION_COLOR":   combat.Elemental(combat.Blast),
	"DT_VIRAL_COLOR":       combat.Elemental(combat.Viral),
	"DT_MAGNETIC_COLOR":    combat.Elemental(combat.Magnetic),
	"DT_GAS_COLOR":         combat.Elemental(combat.Gas),
	"DT_RADIATION_COLOR":   combat.Elemental(combat.Radiation),
	"DT_CORROSIVE_COLOR":   combat.Elemental(combat.Corrosive),
}

type Parser struct {
	input  string
	l      *lexer
	tokens []item
	pos    int
}

func New(name, input string) *Parser {
	p := &Parser{input: input}
	p.l = lex(name, input)
	p.pos = -1
	return p
}

//Parse reads one stat line such as "+90% <DT_FREEZE_COLOR>Cold" or
//"+30% Damage to Grineer". Lines that are valid but carry a stat the
//calculator does not model return ErrUnrecognised
func (p *Parser) Parse() (combat.ModEffect, error) {
	var r combat.ModEffect
	n, err := p.consume(itemNumber)
	if err != nil {
		return r, err
	}
	amt, err := strconv.ParseFloat(n.val, 64)
	if err != nil {
		return r, fmt.Errorf("expecting a float value: %v", err)
	}
	_, err = p.consume(itemPercent)
	if err != nil {
		return r, err
	}
	value := amt / 100

	n = p.next()
	switch {
	case n.typ == itemTag:
		r, err = p.parseTagged(n, value)
	case n.typ == itemWord && strings.EqualFold(n.val, "damage"):
		r, err = p.parseBane(value)
	case n.typ == itemWord:
		p.backup()
		r, err = p.parseType(value)
	case n.typ == itemError:
		return r, errors.New(n.val)
	default:
		return r, fmt.Errorf("%w: %q", ErrUnrecognised, p.input)
	}
	if err != nil {
		return r, err
	}

	if n := p.next(); n.typ != itemEOF {
		return r, fmt.Errorf("%w: %q has trailing %v", ErrUnrecognised, p.input, n)
	}
	return r, nil
}

func (p *Parser) parseTagged(tag item, value float64) (combat.ModEffect, error) {
	t, ok := tagTypes[strings.Trim(tag.val, "<>")]
	if !ok {
		return combat.ModEffect{}, fmt.Errorf("%w: unknown tag %v", ErrUnrecognised, tag.val)
	}
	r, err := p.parseType(value)
	if err != nil {
		return r, err
	}
	if named := effectType(r); named != t {
		return r, fmt.Errorf("%w: tag %v does not match %v", ErrUnrecognised, tag.val, named)
	}
	return r, nil
}

func (p *Parser) parseType(value float64) (combat.ModEffect, error) {
	n, err := p.consume(itemWord)
	if err != nil {
		return combat.ModEffect{}, err
	}
	t, err := combat.ParseDamageType(strings.ToLower(n.val))
	if err != nil {
		return combat.ModEffect{}, fmt.Errorf("%w: %q", ErrUnrecognised, p.input)
	}
	if i, ok := t.Ips(); ok {
		return combat.PhysicalEffect(i, value), nil
	}
	if e, ok := t.Element(); ok {
		return combat.ElementalEffect(e, value), nil
	}
	return combat.ModEffect{}, fmt.Errorf("%w: %v is not moddable", ErrUnrecognised, t)
}

func (p *Parser) parseBane(value float64) (combat.ModEffect, error) {
	//Damage to [the] <faction>
	n := p.next()
	if n.typ != itemWord || !strings.EqualFold(n.val, "to") {
		return combat.ModEffect{}, fmt.Errorf("%w: %q", ErrUnrecognised, p.input)
	}
	n = p.next()
	if n.typ == itemWord && strings.EqualFold(n.val, "the") {
		n = p.next()
	}
	if n.typ != itemWord {
		return combat.ModEffect{}, fmt.Errorf("%w: %q", ErrUnrecognised, p.input)
	}
	f, err := combat.ParseFaction(strings.ToLower(n.val))
	if err != nil {
		return combat.ModEffect{}, fmt.Errorf("%w: %v", ErrUnrecognised, err)
	}
	return combat.BaneEffect(f, value), nil
}

func effectType(e combat.ModEffect) combat.DamageType {
	if e.Physical != "" {
		return combat.Physical(e.Physical)
	}
	return combat.Elemental(e.Elemental)
}

func (p *Parser) consume(i ItemType) (item, error) {
	n := p.next()
	if n.typ == itemError {
		return n, errors.New(n.val)
	}
	if n.typ != i {
		return n, fmt.Errorf("%w: expecting %v, got bad token at %v: %v", ErrUnrecognised, i, n.pos, n)
	}
	return n, nil
}

func (p *Parser) next() item {
	p.pos++
	if p.pos == len(p.tokens) {
		t := p.l.nextItem()
		p.tokens = append(p.tokens, t)
	}
	return p.tokens[p.pos]
}

func (p *Parser) backup() {
	if p.pos > 0 {
		p.pos--
	}
}

//Stat parses a single stat line
func Stat(line string) (combat.ModEffect, error) {
	return New("stat", strings.TrimSpace(line)).Parse()
}

//Stats parses the stat strings of one mod rank. A string may hold several
//lines. Lines that are not modelled are returned as is
func Stats(stats []string) ([]combat.ModEffect, []string) {
	var effects []combat.ModEffect
	var unknown []string
	for _, s := range stats {
		for _, line := range strings.Split(s, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			e, err := Stat(line)
			if err != nil {
				unknown = append(unknown, line)
				continue
			}
			effects = append(effects, e)
		}
	}
	return effects, unknown
}
