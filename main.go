package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/soocke/steer-bot-go/app"
	"github.com/soocke/steer-bot-go/config"
	"github.com/soocke/steer-bot-go/debug"
)

func main() {
	cfgPath := flag.String("config", "steer.json", "path to JSON config file")
	debugFlag := flag.Bool("debug", false, "debug logging and runtime stats")
	source := flag.String("source", "", "frame source: camera or screen")
	headless := flag.Bool("headless", false, "run without a preview window")
	dryRun := flag.Bool("dry-run", false, "log key events instead of sending them")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		NewLogger(slog.LevelInfo).Error("load config", "path", *cfgPath, "error", err)
		os.Exit(1)
	}
	// Flags override file and environment when set explicitly.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "debug":
			cfg.Debug = *debugFlag
		case "source":
			cfg.Source = *source
		case "headless":
			cfg.Headless = *headless
		case "dry-run":
			cfg.DryRun = *dryRun
		}
	})
	if err := cfg.Validate(); err != nil {
		NewLogger(slog.LevelInfo).Error("invalid config", "error", err)
		os.Exit(1)
	}

	logger := NewLogger(levelFor(cfg.LogLevel, cfg.Debug))
	slog.SetDefault(logger)

	c, err := app.BuildContainer(cfg, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	if cfg.Debug {
		debug.StartLoopLogger(ctx, time.Second, logger, c.App.Frames)
		debug.StartMemLogger(ctx, 2*time.Second, logger)
	}

	logger.Info("steering started", "source", cfg.Source, "headless", cfg.Headless, "dry_run", cfg.DryRun)
	runErr := c.App.Run(ctx)
	stop()
	if err := c.App.Close(); err != nil {
		logger.Warn("close", "error", err)
	}
	if runErr != nil {
		if errors.Is(runErr, app.ErrCaptureFailed) {
			logger.Error("frame capture failed, exiting", "captures", c.Capture.Stats().Captures)
		} else {
			logger.Error("steering loop", "error", runErr)
		}
		os.Exit(1)
	}
}
