// starrypad is a Simon Says memory game for 16-pad MIDI controllers.
//
// Usage:
//
//	starrypad play            - Play in the terminal
//	starrypad serve           - Serve the browser front end over WebSocket
//	starrypad padtest         - Print raw pad presses (controller discovery)
//	starrypad board           - Show the saved leaderboard
//
// Global flags:
//
//	--config <path>  - Custom config YAML
//	--port <filter>  - MIDI port name filter (default: starry)
//	--board <path>   - Leaderboard file (default: ~/.starrypad/leaderboard.json)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/starrypad/internal/config"
)

var (
	// Global flags
	flagConfig    string
	flagPort      string
	flagBoardPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "starrypad",
	Short: "StarryPad - Simon Says on a 16-pad MIDI controller",
	Long: `StarryPad turns a 16-pad MIDI controller into a Simon Says memory game:
watch the pads light up, then repeat the sequence. Each round appends one
pad; one wrong press ends the run. Top 5 scores are kept on disk.

Available commands:
  play     - Play in the terminal
  serve    - Serve the browser front end over WebSocket
  padtest  - Print raw pad presses to verify the controller mapping
  board    - Show the saved leaderboard

Examples:
  starrypad play
  starrypad play --port launchpad
  starrypad serve --addr :8765
  starrypad padtest
  starrypad board`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagPort, "port", "", "MIDI port name filter (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagBoardPath, "board", "", "Path to leaderboard file (overrides config)")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(padtestCmd)
	rootCmd.AddCommand(boardCmd)
}

// loadConfig reads the configuration and applies flag overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	if flagPort != "" {
		cfg.MIDI.PortFilter = flagPort
	}
	if flagBoardPath != "" {
		cfg.Leaderboard.Path = flagBoardPath
	}
	return cfg, nil
}
