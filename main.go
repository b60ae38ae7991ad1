package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"time"

	"github.com/srliao/wfcalc/internal/config"
	"github.com/srliao/wfcalc/internal/report"
	"github.com/srliao/wfcalc/pkg/combat"
)

func main() {
	opt, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	debugPtr := flag.String("d", opt.LogLevel, "output level: debug, info, warn, error")
	pPtr := flag.String("p", opt.Profile, "which profile to use")
	lPtr := flag.String("l", opt.Library, "mod library, empty for inline mods only")
	f := flag.String("o", opt.LogFile, "detailed log file")
	showCaller := flag.Bool("c", false, "show caller in debug log")
	chart := flag.String("chart", "", "write a contribution chart to this html file")
	w := flag.Bool("w", false, "test how much each library mod adds to the build")
	sc := flag.Bool("sc", false, "also compute status chance")
	flag.Parse()

	cfg, err := combat.LoadProfile(*pPtr)
	if err != nil {
		log.Fatal(err)
	}

	cfg.LogLevel = *debugPtr
	cfg.LogFile = *f
	cfg.LogShowCaller = *showCaller
	if *f != "" {
		os.Remove(*f)
	}

	var lib *combat.Library
	if *lPtr != "" {
		lib, err = combat.LoadLibrary(*lPtr)
		if err != nil {
			log.Fatal(err)
		}
	}

	start := time.Now()
	c, err := combat.New(cfg, lib)
	if err != nil {
		log.Fatal(err)
	}
	r := c.Run()
	elapsed := time.Since(start)

	label := c.Label
	if label == "" {
		label = c.Weapon.Name
	}
	if err := report.Text(os.Stdout, label, r); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("profile %v done in %s\n", *pPtr, elapsed)

	if *sc {
		_, err := c.Hit().StatusChance()
		if err != nil {
			fmt.Printf("status chance: %v\n", err)
		}
	}

	if *chart != "" {
		out, err := os.Create(*chart)
		if err != nil {
			log.Fatal(err)
		}
		defer out.Close()
		if err := report.BarChart(out, label, r); err != nil {
			log.Fatal(err)
		}
	}

	if *w {
		if lib == nil {
			log.Fatal("need a mod library to test weights")
		}
		weights(c, lib, r.Total)
	}
}

//weights resolves the build once more for every library mod not yet equipped
func weights(c *combat.Calc, lib *combat.Library, base float64) {
	equipped := make(map[string]bool)
	for _, m := range c.Mods {
		equipped[m.Name] = true
	}

	type gain struct {
		name string
		diff float64
	}
	var result []gain
	for _, n := range lib.Names() {
		if equipped[n] {
			continue
		}
		m, _ := lib.Get(n)
		mods := make([]combat.Mod, 0, len(c.Mods)+1)
		mods = append(mods, c.Mods...)
		mods = append(mods, m)
		total := combat.Resolve(c.Weapon.Damage, mods, c.Enemy, nil).Total
		result = append(result, gain{name: n, diff: total - base})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].diff > result[j].diff
	})

	fmt.Println("------------------------------------------")
	for _, v := range result {
		fmt.Printf("%-32v %+10.2f (%+.2f%%)\n", v.name, v.diff, pct(v.diff, base))
	}
}

func pct(diff, base float64) float64 {
	if base == 0 {
		return 0
	}
	return diff / base * 100
}
