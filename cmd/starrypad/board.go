package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/starrypad/internal/leaderboard"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Show the saved leaderboard",
	Long: `Display the top 5 scores saved on this machine.

Examples:
  starrypad board
  starrypad board --board ./leaderboard.json`,
	Run: runBoard,
}

func runBoard(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	store, err := leaderboard.NewStore(cfg.Leaderboard.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening leaderboard: %v\n", err)
		os.Exit(1)
	}

	board := store.Load()

	fmt.Println("StarryPad Leaderboard")
	fmt.Println()

	if len(board) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'starrypad play' to set the first one!")
		return
	}

	fmt.Printf("  %-4s  %-20s  %s\n", "Rank", "Name", "Score")
	fmt.Printf("  %-4s  %-20s  %s\n", "----", "----", "-----")
	for i, entry := range board {
		fmt.Printf("  %-4d  %-20s  %d\n", i+1, entry.Name, entry.Score)
	}
}
