// Package main runs the RRT planning HTTP service.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/edaniels/golog"
	"github.com/paulmach/orb"
	"github.com/urfave/cli/v2"

	"rrt-motion-planner/internal/server"
	"rrt-motion-planner/world"
)

var logger = golog.NewDevelopmentLogger("rrtserver")

func main() {
	app := &cli.App{
		Name:  "rrtserver",
		Usage: "plan paths around no-fly zones with RRT-Connect and RRT*",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "path to a JSON config file"},
			&cli.StringFlag{Name: "addr", Usage: "listen address (overrides config)"},
			&cli.StringFlag{Name: "nfz-dir", Usage: "directory of *.geojson no-fly zone files (overrides config)"},
			&cli.Int64Flag{Name: "seed", Usage: "default random seed (overrides config)"},
			&cli.BoolFlag{Name: "debug", Usage: "log planner internals"},
		},
		Action: run,
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if err := app.RunContext(ctx, os.Args); err != nil {
		logger.Fatal(err)
	}
}

func run(c *cli.Context) error {
	if c.Bool("debug") {
		logger = golog.NewDebugLogger("rrtserver")
	}

	cfg := server.DefaultConfig()
	if path := c.String("config"); path != "" {
		loaded, err := server.LoadConfig(path)
		if err != nil {
			return err
		}
		cfg = *loaded
	}
	if c.IsSet("addr") {
		cfg.Addr = c.String("addr")
	}
	if c.IsSet("nfz-dir") {
		cfg.NoFlyZoneDir = c.String("nfz-dir")
	}
	if c.IsSet("seed") {
		cfg.Seed = c.Int64("seed")
	}

	s := server.New(cfg, loadZones(cfg.NoFlyZoneDir), logger)
	return s.ListenAndServe(c.Context)
}

// loadZones reads the no-fly zone directory. Files that fail to load are
// logged and skipped.
func loadZones(dir string) []orb.Polygon {
	if dir == "" {
		logger.Info("no no-fly zone directory configured, starting with an empty world")
		return nil
	}
	zones, err := world.LoadDir(dir, logger)
	if err != nil {
		logger.Warnw("some no-fly zone files failed to load", "error", err)
	}
	return zones
}
