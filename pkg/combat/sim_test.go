package combat

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"go.uber.org/zap/zapcore"
)

var profileSource = `
label: nagantaka prime
weapon:
  name: Nagantaka Prime
  type:
    category: primary
    kind: crossbow
  damage:
    impact: 1.7
    puncture: 15.6
    slash: 155.7
enemy:
  faction: infested
mods:
  - Cryo Rounds
  - Malignant Force
extra:
  - name: Hellfire
    effects:
      - elemental: heat
        value: 0.9
  - name: Piercing Caliber
    effects:
      - physical: puncture
        value: 1.2
  - name: Valence Formation - Gas
    effects:
      - elemental: gas
        value: 2
log:
  level: error
`

func testLibrary(t *testing.T) *Library {
	t.Helper()
	l, err := NewLibrary(nagantakaMods()[:2])
	require.NoError(t, err)
	return l
}

func observed() (*zap.SugaredLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core).Sugar(), logs
}

func TestParseProfile(t *testing.T) {
	p, err := ParseProfile([]byte(profileSource))
	require.NoError(t, err)

	assert.Equal(t, "nagantaka prime", p.Label)
	assert.Equal(t, "Nagantaka Prime", p.Weapon.Name)
	require.NotNil(t, p.Weapon.Type)
	assert.Equal(t, CategoryPrimary, p.Weapon.Type.Category)
	assert.Equal(t, ips(1.7, 15.6, 155.7), p.Weapon.Damage)
	assert.Equal(t, Infested, p.Enemy.Faction)
	assert.Equal(t, []string{"Cryo Rounds", "Malignant Force"}, p.Mods)
	assert.Len(t, p.Extra, 3)
	assert.Equal(t, "error", p.LogLevel)

	_, err = ParseProfile([]byte("weapon: ["))
	assert.Error(t, err)
	_, err = LoadProfile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestCalcRun(t *testing.T) {
	p, err := ParseProfile([]byte(profileSource))
	require.NoError(t, err)

	c, err := New(p, testLibrary(t))
	require.NoError(t, err)
	assert.Len(t, c.Mods, 5)

	r := c.Run()
	assert.InDelta(t, 940.6875, r.Total, delta)
	assert.InDelta(t, r.Total, c.Hit().TotalQuantized(), delta)
}

func TestCalcErrors(t *testing.T) {
	base := func() Profile {
		p, err := ParseProfile([]byte(profileSource))
		require.NoError(t, err)
		return p
	}

	p := base()
	_, err := NewWithLogger(p, nil, nil)
	assert.Error(t, err, "mods without library")

	p = base()
	p.Mods = append(p.Mods, "Serration")
	_, err = NewWithLogger(p, testLibrary(t), nil)
	assert.ErrorIs(t, err, ErrUnknownMod)

	p = base()
	p.Enemy.Faction = "sentient"
	_, err = NewWithLogger(p, testLibrary(t), nil)
	assert.Error(t, err)

	p = base()
	p.Weapon.Damage = nil
	_, err = NewWithLogger(p, testLibrary(t), nil)
	assert.Error(t, err)

	p = base()
	p.Weapon.Type = &WeaponType{Category: CategoryPrimary, Kind: "nikana"}
	_, err = NewWithLogger(p, testLibrary(t), nil)
	assert.Error(t, err)

	p = base()
	p.Extra = append(p.Extra, Mod{Name: "Broken", Effects: []ModEffect{{Value: 1}}})
	_, err = NewWithLogger(p, testLibrary(t), nil)
	assert.Error(t, err)
}

func TestCalcWarnings(t *testing.T) {
	p, err := ParseProfile([]byte(profileSource))
	require.NoError(t, err)
	p.Weapon.Damage[Elemental(Heat)] = 10
	p.Mods = append(p.Mods, "Cryo Rounds")
	p.Extra = append(p.Extra, Mod{
		Name: "Galvanized Chamber",
		Conditional: []ConditionalEffect{{
			Trigger: TriggerKill,
			Effect:  ElementalEffect(Cold, 0.3),
		}},
	})

	log, logs := observed()
	_, err = NewWithLogger(p, testLibrary(t), log)
	require.NoError(t, err)

	assert.Equal(t, 1, logs.FilterMessage("non physical base damage only counts towards the total").Len())
	assert.Equal(t, 1, logs.FilterMessage("mod Cryo Rounds is equipped more than once").Len())
	assert.Equal(t, 1, logs.FilterMessage("conditional effects are not evaluated").Len())
}

func TestInactiveBaneIsLogged(t *testing.T) {
	log, logs := observed()
	h := NewHit(ips(30, 30, 40), []Mod{{Name: "Bane of Corpus", Effects: []ModEffect{BaneEffect(Corpus, 0.3)}}}, Enemy{Faction: Grineer}, log)
	assert.InDelta(t, 100, h.TotalQuantized(), 6.25)
	assert.Equal(t, 1, logs.FilterMessage("\tinactive bane corpus against grineer").Len())
}

func TestNewLogger(t *testing.T) {
	for _, lvl := range []string{"debug", "info", "warn", "error", ""} {
		log, err := NewLogger(LogConfig{LogLevel: lvl})
		require.NoError(t, err)
		assert.NotNil(t, log)
	}

	path := filepath.Join(t.TempDir(), "out.log")
	log, err := NewLogger(LogConfig{LogLevel: "info", LogFile: path, LogShowCaller: true})
	require.NoError(t, err)
	log.Info("written")
	assert.NoError(t, log.Sync())
	assert.FileExists(t, path)
}

func TestShippedProfile(t *testing.T) {
	lib, err := LoadLibrary(filepath.Join("..", "..", "data", "mods.yaml"))
	require.NoError(t, err)
	p, err := LoadProfile(filepath.Join("..", "..", "config.yaml"))
	require.NoError(t, err)

	c, err := NewWithLogger(p, lib, nil)
	require.NoError(t, err)
	assert.InDelta(t, 940.6875, c.Run().Total, delta)
}
