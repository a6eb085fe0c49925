package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/starrypad/internal/broadcast"
	"github.com/vovakirdan/starrypad/internal/console"
	"github.com/vovakirdan/starrypad/internal/game"
	"github.com/vovakirdan/starrypad/internal/leaderboard"
	"github.com/vovakirdan/starrypad/internal/pad"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Play Simon Says with the terminal as the front end.

The game starts immediately. Watch the pads light up on the controller,
then repeat the sequence by pressing them. Stdin accepts:

  start      - Start a new game (also after game over)
  stop       - Stop the current game
  <name>     - Save a top-5 score under that name, when prompted
  Ctrl+C     - Quit

Examples:
  starrypad play
  starrypad play --port launchpad
  starrypad play --config ./starrypad.yaml`,
	Run: runPlay,
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "starrypad",
	})

	store, err := leaderboard.NewStore(cfg.Leaderboard.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening leaderboard: %v\n", err)
		os.Exit(1)
	}

	open := func() (pad.Device, error) {
		return pad.Open(cfg.MIDI.PortFilter, logger)
	}

	engine := game.New(open, store, cfg.Game.Timings(), logger)
	bus := broadcast.New(engine.Events(), func() game.Event {
		return game.LeaderboardUpdatedEvent{Board: store.Load()}
	}, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go engine.Run(ctx)
	go bus.Run(ctx)

	runner := console.NewRunner(engine.Commands(), bus.Subscribe(), os.Stdin, os.Stdout)
	runner.Run(ctx)
}
