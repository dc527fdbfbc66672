// Package main is the entry point for the dispatch binary.
// Its sole responsibility is wiring dependencies together and starting the
// chosen front end. No business logic belongs here.
package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/pkordes/train-dispatch/internal/clock"
	"github.com/pkordes/train-dispatch/internal/config"
	"github.com/pkordes/train-dispatch/internal/domain"
	"github.com/pkordes/train-dispatch/internal/registry"
	"github.com/pkordes/train-dispatch/internal/seed"
	"github.com/pkordes/train-dispatch/internal/service"
)

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		// Use the default stderr logger before ours is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	if err := newApp(cfg).Run(os.Args); err != nil {
		slog.Error("dispatch failed", "error", err)
		os.Exit(1)
	}
}

// newApp builds the command tree. Flag defaults come from cfg, so flags
// override environment variables.
func newApp(cfg config.Config) *cli.App {
	return &cli.App{
		Name:  "dispatch",
		Usage: "Departure registry for a single train station",

		Commands: []*cli.Command{
			consoleCommand(cfg),
			serveCommand(cfg),
			boardCommand(cfg),
		},
	}
}

// registryFlags configure the registry and clock every command starts from.
func registryFlags(cfg config.Config) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "seed",
			Value: cfg.SeedFile,
			Usage: "YAML file of departures to load at start-up",
		},
		&cli.StringFlag{
			Name:  "start-time",
			Value: cfg.StartTime.String(),
			Usage: "initial clock time as hh:mm",
		},
		&cli.BoolFlag{
			Name:  "strict-tracks",
			Value: cfg.StrictTracks,
			Usage: "refuse to change a track once it has been assigned",
		},
	}
}

// newLogger returns a JSON logger at the named level, falling back to info.
func newLogger(w io.Writer, level string) *slog.Logger {
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(level)); err != nil {
		logLevel = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: logLevel}))
}

// newDispatch builds the registry, the clock and the service over them from
// the registry flags, then applies the seed file if one is named.
func newDispatch(c *cli.Context, log *slog.Logger) (*service.DispatchService, error) {
	start, err := domain.ParseClock(c.String("start-time"))
	if err != nil {
		return nil, err
	}

	var opts []registry.Option
	if c.Bool("strict-tracks") {
		opts = append(opts, registry.WithStrictTracks())
	}
	svc := service.NewDispatchService(registry.New(opts...), clock.New(start), log)

	path := c.String("seed")
	if path == "" {
		return svc, nil
	}
	f, err := seed.Load(path)
	if err != nil {
		return nil, err
	}
	if err := seed.Apply(c.Context, svc, f); err != nil {
		return nil, err
	}
	log.Info("seed loaded", "path", path, "departures", len(f.Departures))
	return svc, nil
}
