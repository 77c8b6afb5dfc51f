package cmd

import (
	"fmt"

	"github.com/rahulnair/neuroplay/internal/app"
	"github.com/rahulnair/neuroplay/internal/config"
	"github.com/rahulnair/neuroplay/internal/levels"
	"github.com/rahulnair/neuroplay/internal/robux"
	"github.com/rahulnair/neuroplay/internal/sessionclock"
	"github.com/rahulnair/neuroplay/internal/stats"
	"github.com/rahulnair/neuroplay/internal/storage"
	"github.com/spf13/cobra"
)

// buildDeps opens the store and wires the shared services.
func buildDeps(cmd *cobra.Command) (app.Deps, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return app.Deps{}, nil, fmt.Errorf("load config: %w", err)
	}

	dbPath, err := resolveDBPath(cmd, cfg.DBPath)
	if err != nil {
		return app.Deps{}, nil, fmt.Errorf("resolve DB path: %w", err)
	}
	kv, err := storage.Open(dbPath)
	if err != nil {
		return app.Deps{}, nil, fmt.Errorf("open store: %w", err)
	}

	clock := sessionclock.New(kv, sessionclock.SystemSource{})

	timer := robux.NewTimer(kv, clock)
	timer.SetRate(cfg.RobuxPerMinute)

	statsSvc := stats.NewService(kv, sessionclock.SystemSource{}, levels.Names())
	statsSvc.SetBreakThreshold(cfg.BreakThreshold)

	deps := app.Deps{
		KV:     kv,
		Clock:  clock,
		Robux:  timer,
		Stats:  statsSvc,
		Config: cfg,
	}
	return deps, func() { kv.Close() }, nil
}

// runApp builds dependencies and launches the TUI. A non-empty game
// name skips the menu and opens that game directly.
func runApp(cmd *cobra.Command, game string) error {
	deps, cleanup, err := buildDeps(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	if game != "" {
		if levels.ByName(game) == nil {
			return fmt.Errorf("unknown game %q (have: %v)", game, levels.Names())
		}
		deps.StartGame = game
	}

	return app.Run(deps)
}
