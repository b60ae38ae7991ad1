package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/srliao/wfcalc/internal/config"
	"github.com/srliao/wfcalc/internal/export"
	"github.com/srliao/wfcalc/pkg/combat"
)

func main() {
	opt, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	out := flag.String("o", opt.Library, "where to write the mod library")
	index := flag.String("index", opt.ExportURL, "public export index url")
	content := flag.String("content", opt.ContentURL, "public export manifest base url")
	limit := flag.Int("limit", 4, "manifests fetched at once")
	timeout := flag.Duration("t", 2*time.Minute, "give up after this long")
	debug := flag.String("d", opt.LogLevel, "output level: debug, info, warn, error")
	flag.Parse()

	logger, err := combat.NewLogger(combat.LogConfig{LogLevel: *debug, LogFile: opt.LogFile})
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	c := export.NewClient(*index, *content, logger)
	c.Limit = *limit

	start := time.Now()
	ups, err := c.Upgrades(ctx)
	if err != nil {
		log.Fatal(err)
	}
	mods := export.ToLibrary(ups, logger)

	//make sure the result loads back
	if _, err := combat.NewLibrary(mods); err != nil {
		log.Fatal(err)
	}

	f, err := os.Create(*out)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()
	if err := combat.WriteLibrary(f, mods); err != nil {
		log.Fatal(err)
	}
	logger.Infow("library written", "path", *out, "mods", len(mods), "elapsed", time.Since(start))
}
