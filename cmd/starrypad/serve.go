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
	"github.com/vovakirdan/starrypad/internal/game"
	"github.com/vovakirdan/starrypad/internal/leaderboard"
	"github.com/vovakirdan/starrypad/internal/pad"
	"github.com/vovakirdan/starrypad/internal/web"
)

var flagAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the browser front end",
	Long: `Run the game with a browser front end.

The server hosts a small web page showing the 4x4 grid and streams game
events to every connected browser over a WebSocket at /ws. Any browser
can start or stop the game and submit a top-5 name; the physical
controller stays the only input for playing.

Examples:
  starrypad serve                  # Listen on :8765
  starrypad serve --addr :9000
  starrypad serve --port launchpad`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "HTTP listen address (overrides config)")
}

func runServe(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if flagAddr != "" {
		cfg.Web.Address = flagAddr
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

	server := web.NewServer(cfg.Web.Address, bus, engine.Commands(), logger)

	fmt.Printf("Open http://localhost%s in a browser\n", cfg.Web.Address)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
