package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/srliao/wfcalc/internal/config"
	"github.com/srliao/wfcalc/internal/report"
	"github.com/srliao/wfcalc/pkg/combat"
	"github.com/srliao/wfcalc/pkg/monte"
)

func main() {
	opt, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	prf := flag.String("p", opt.Profile, "which profile to use")
	libPath := flag.String("l", opt.Library, "mod library to pick from")
	pool := flag.String("pool", "", "comma separated mod names to pick from; default the whole library")
	k := flag.Int("k", 3, "how many mods to add to the profile's build")
	n := flag.Int("n", 10, "how many builds to report")
	worker := flag.Int("w", opt.Workers, "number of workers")
	bin := flag.Float64("b", 50, "bin size")
	out := flag.String("o", "out.html", "output file")
	debug := flag.String("d", opt.LogLevel, "output level: debug, info, warn, error")
	flag.Parse()

	cfg, err := combat.LoadProfile(*prf)
	if err != nil {
		log.Fatal(err)
	}
	cfg.LogLevel = *debug
	cfg.LogFile = opt.LogFile

	lib, err := combat.LoadLibrary(*libPath)
	if err != nil {
		log.Fatal(err)
	}

	names := lib.Names()
	if *pool != "" {
		names = nil
		for _, v := range strings.Split(*pool, ",") {
			if v = strings.TrimSpace(v); v != "" {
				names = append(names, v)
			}
		}
	}

	start := time.Now()
	c, err := combat.New(cfg, lib)
	if err != nil {
		log.Fatal(err)
	}
	s, err := monte.New(c, lib, names)
	if err != nil {
		log.Fatal(err)
	}
	r, err := s.Search(*k, *n, *worker, *bin)
	if err != nil {
		log.Fatal(err)
	}
	elapsed := time.Since(start)
	fmt.Printf("Profile %v done in %s\n", *prf, elapsed)

	if err := report.Builds(os.Stdout, r); err != nil {
		log.Fatal(err)
	}

	graph, err := os.Create(*out)
	if err != nil {
		log.Fatal(err)
	}
	defer graph.Close()
	if err := report.Search(graph, *prf, r, *bin); err != nil {
		log.Fatal(err)
	}
}
