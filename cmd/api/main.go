package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/srliao/wfcalc/internal/api"
	"github.com/srliao/wfcalc/internal/config"
	"github.com/srliao/wfcalc/pkg/combat"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	opt, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	addr := flag.String("addr", opt.APIAddr, "listen address")
	libPath := flag.String("l", opt.Library, "mod library, empty for inline mods only")
	debug := flag.String("d", opt.LogLevel, "output level: debug, info, warn, error")
	flag.Parse()

	logger, err := combat.NewLogger(combat.LogConfig{LogLevel: *debug, LogFile: opt.LogFile})
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Infow("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx, *addr, *libPath, logger); err != nil {
		logger.Errorw("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, addr, libPath string, logger *zap.SugaredLogger) error {
	var lib *combat.Library
	if libPath != "" {
		var err error
		lib, err = combat.LoadLibrary(libPath)
		if err != nil {
			return fmt.Errorf("loading mod library: %w", err)
		}
		logger.Infow("mod library loaded", "path", libPath, "mods", lib.Len())
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           api.New(lib, logger).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Infow("starting api server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("api server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdown)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
