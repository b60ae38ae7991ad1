package combat

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

//Calc keeps track of one calculation built from a profile
type Calc struct {
	Log    *zap.SugaredLogger
	Label  string
	Weapon WeaponProfile
	Enemy  Enemy
	Mods   []Mod
}

//New creates a new calculation from the given profile. Mod names are looked
//up in lib, which may be nil when the profile only has inline mods
func New(p Profile, lib *Library) (*Calc, error) {
	log, err := NewLogger(p.LogConfig)
	if err != nil {
		return nil, err
	}
	return NewWithLogger(p, lib, log)
}

func NewWithLogger(p Profile, lib *Library, log *zap.SugaredLogger) (*Calc, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	c := &Calc{
		Log:    log,
		Label:  p.Label,
		Weapon: p.Weapon,
	}

	err := p.Weapon.Validate()
	if err != nil {
		return nil, err
	}
	for k := range p.Weapon.Damage {
		if _, ok := k.Ips(); !ok {
			log.Warnw("non physical base damage only counts towards the total", "weapon", p.Weapon.Name, "type", k)
		}
	}

	c.Enemy, err = NewEnemy(p.Enemy)
	if err != nil {
		return nil, err
	}

	if len(p.Mods) > 0 {
		if lib == nil {
			return nil, fmt.Errorf("profile lists %v mods but no mod library was loaded", len(p.Mods))
		}
		c.Mods, err = lib.Lookup(p.Mods)
		if err != nil {
			return nil, err
		}
	}
	for _, m := range p.Extra {
		if err := m.Validate(); err != nil {
			return nil, err
		}
		c.Mods = append(c.Mods, m)
	}

	dup := make(map[string]bool)
	for _, m := range c.Mods {
		if dup[m.Name] {
			log.Warnf("mod %v is equipped more than once", m.Name)
		}
		dup[m.Name] = true
		if len(m.Conditional) > 0 {
			log.Warnw("conditional effects are not evaluated", "mod", m.Name, "count", len(m.Conditional))
		}
	}

	log.Debugw("calc ready", "label", c.Label, "weapon", c.Weapon.Name, "mods", len(c.Mods))
	return c, nil
}

//Hit builds the hit this calculation resolves
func (c *Calc) Hit() *Hit {
	return NewHit(c.Weapon.Damage, c.Mods, c.Enemy, c.Log)
}

//Run resolves the hit
func (c *Calc) Run() Result {
	return Resolve(c.Weapon.Damage, c.Mods, c.Enemy, c.Log)
}

//NewLogger builds the sugared logger used across the calculator
func NewLogger(p LogConfig) (*zap.SugaredLogger, error) {
	config := zap.NewDevelopmentConfig()
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	switch p.LogLevel {
	case "debug":
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	case "info":
		config.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	case "warn":
		config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	case "error":
		config.Level = zap.NewAtomicLevelAt(zapcore.ErrorLevel)
	}
	config.EncoderConfig.TimeKey = ""
	config.EncoderConfig.StacktraceKey = ""
	if !p.LogShowCaller {
		config.EncoderConfig.CallerKey = ""
	}
	if p.LogFile != "" {
		config.OutputPaths = []string{p.LogFile}
	}

	logger, err := config.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}
