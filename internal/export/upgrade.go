package export

import (
	"encoding/json"
	"strings"
)

//Upgrade is one entry of the ExportUpgrades manifest
type Upgrade struct {
	UniqueName  string      `json:"uniqueName"`
	Name        string      `json:"name"`
	Polarity    Polarity    `json:"polarity"`
	Rarity      Rarity      `json:"rarity"`
	CodexSecret bool        `json:"codexSecret"`
	BaseDrain   int         `json:"baseDrain"`
	FusionLimit int         `json:"fusionLimit"`
	CompatName  string      `json:"compatName"`
	Type        string      `json:"type"`
	Description Description `json:"description"`
	LevelStats  []LevelStat `json:"levelStats"`
}

type LevelStat struct {
	Stats []string `json:"stats"`
}

//MaxRank returns the stats of the highest rank, if any
func (u Upgrade) MaxRank() []string {
	if len(u.LevelStats) == 0 {
		return nil
	}
	return u.LevelStats[len(u.LevelStats)-1].Stats
}

type Polarity string

var polarityNames = map[Polarity]string{
	"AP_ATTACK":    "madurai",
	"AP_DEFENSE":   "vazarin",
	"AP_POWER":     "naramon",
	"AP_PRECEPT":   "penjaga",
	"AP_TACTIC":    "zenurik",
	"AP_UMBRA":     "umbra",
	"AP_UNIVERSAL": "universal",
	"AP_ANY":       "universal",
	"AP_WARD":      "unairu",
}

//Name returns the in game polarity name, or unknown
func (p Polarity) Name() string {
	if n, ok := polarityNames[p]; ok {
		return n
	}
	return "unknown"
}

type Rarity string

const (
	RarityCommon    Rarity = "COMMON"
	RarityUncommon  Rarity = "UNCOMMON"
	RarityRare      Rarity = "RARE"
	RarityLegendary Rarity = "LEGENDARY"
)

func (r Rarity) Valid() bool {
	switch r {
	case RarityCommon, RarityUncommon, RarityRare, RarityLegendary:
		return true
	}
	return false
}

//Description is either a single string or a list of lines
type Description string

func (d *Description) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*d = Description(s)
		return nil
	}
	var lines []string
	if err := json.Unmarshal(b, &lines); err != nil {
		return err
	}
	*d = Description(strings.Join(lines, "\n"))
	return nil
}
