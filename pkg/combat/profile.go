package combat

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

//Profile describes one calculation: the weapon, the target and the mods
type Profile struct {
	Label     string        `yaml:"label"`
	Weapon    WeaponProfile `yaml:"weapon"`
	Enemy     EnemyProfile  `yaml:"enemy"`
	Mods      []string      `yaml:"mods"`
	Extra     []Mod         `yaml:"extra"`
	LogConfig `yaml:"log"`
}

type LogConfig struct {
	LogLevel      string `yaml:"level"`
	LogFile       string `yaml:"file"`
	LogShowCaller bool   `yaml:"show_caller"`
}

//EnemyProfile ...
type EnemyProfile struct {
	Faction    Faction                `yaml:"faction" json:"faction"`
	Weaknesses map[DamageType]float64 `yaml:"weaknesses" json:"weaknesses"`
}

func LoadProfile(path string) (Profile, error) {
	var p Profile
	source, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("read profile: %w", err)
	}
	p, err = ParseProfile(source)
	if err != nil {
		return p, fmt.Errorf("%v: %w", path, err)
	}
	return p, nil
}

func ParseProfile(source []byte) (Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(source, &p); err != nil {
		return p, fmt.Errorf("parse profile: %w", err)
	}
	return p, nil
}
