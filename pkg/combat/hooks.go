package combat

import (
	"errors"
	"fmt"
	"time"
)

//Trigger is the game event that activates a conditional effect
type Trigger string

const (
	TriggerKill     Trigger = "kill"
	TriggerHeadshot Trigger = "headshot"
	TriggerReload   Trigger = "reload"
	TriggerAbility  Trigger = "ability"
	TriggerStatus   Trigger = "status"
)

var triggers = []Trigger{TriggerKill, TriggerHeadshot, TriggerReload, TriggerAbility, TriggerStatus}

type ReduceKind string

const (
	ReduceFlat    ReduceKind = "flat"
	ReducePercent ReduceKind = "percent"
	ReduceAll     ReduceKind = "all"
)

//Timeout describes what happens to the stack count when a stack expires
type Timeout struct {
	Reduce ReduceKind `yaml:"reduce" json:"reduce"`
	Amount float64    `yaml:"amount,omitempty" json:"amount,omitempty"`
}

//Stacking caps and decays a conditional effect. A zero Duration means the
//stacks never expire
type Stacking struct {
	Max           int           `yaml:"max" json:"max"`
	Duration      time.Duration `yaml:"duration,omitempty" json:"duration,omitempty"`
	Timeout       Timeout       `yaml:"timeout,omitempty" json:"timeout,omitempty"`
	ResetsOnStack bool          `yaml:"resets_on_stack,omitempty" json:"resets_on_stack,omitempty"`
}

//ConditionalEffect is an effect that only applies after a trigger, optionally
//stacking. The calculator does not evaluate these yet
type ConditionalEffect struct {
	Trigger  Trigger   `yaml:"trigger" json:"trigger"`
	Stacking *Stacking `yaml:"stacking,omitempty" json:"stacking,omitempty"`
	Effect   ModEffect `yaml:"effect" json:"effect"`
}

func (c ConditionalEffect) Validate() error {
	ok := false
	for _, t := range triggers {
		if t == c.Trigger {
			ok = true
		}
	}
	if !ok {
		return fmt.Errorf("invalid trigger %q", c.Trigger)
	}
	if err := c.Effect.Validate(); err != nil {
		return err
	}
	if c.Stacking == nil {
		return nil
	}
	s := c.Stacking
	if s.Max < 1 {
		return fmt.Errorf("stacking max must be at least 1, got %v", s.Max)
	}
	if s.Duration < 0 {
		return errors.New("stacking duration must not be negative")
	}
	if s.Duration == 0 {
		return nil
	}
	switch s.Timeout.Reduce {
	case ReduceFlat, ReducePercent:
		if s.Timeout.Amount <= 0 {
			return fmt.Errorf("timeout %v needs a positive amount", s.Timeout.Reduce)
		}
	case ReduceAll:
	default:
		return fmt.Errorf("invalid timeout reduce %q", s.Timeout.Reduce)
	}
	return nil
}
