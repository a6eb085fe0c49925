package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/starrypad/internal/pad"
)

var padtestCmd = &cobra.Command{
	Use:   "padtest",
	Short: "Print raw pad presses",
	Long: `Open the controller and print every pad press as it arrives.

Use this to verify the controller is detected and its pads map to the
expected notes (31-46). Presses outside the pad range are shown too.

Examples:
  starrypad padtest
  starrypad padtest --port launchpad`,
	Run: runPadtest,
}

func runPadtest(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "starrypad",
	})

	ins, outs := pad.AvailablePorts()
	fmt.Println("MIDI inputs:")
	for _, name := range ins {
		fmt.Printf("  %s\n", name)
	}
	fmt.Println("MIDI outputs:")
	for _, name := range outs {
		fmt.Printf("  %s\n", name)
	}

	dev, err := pad.Open(cfg.MIDI.PortFilter, logger)
	if err != nil {
		if errors.Is(err, pad.ErrNoDevice) {
			fmt.Fprintf(os.Stderr, "No MIDI input matching %q found.\n", cfg.MIDI.PortFilter)
		} else {
			fmt.Fprintf(os.Stderr, "Error opening controller: %v\n", err)
		}
		os.Exit(1)
	}
	defer dev.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Println("Press pads on the controller. Ctrl+C to quit.")
	for {
		select {
		case <-ctx.Done():
			return
		case press, ok := <-dev.Presses():
			if !ok {
				return
			}
			if idx, mapped := pad.FromNote(press.Note); mapped {
				fmt.Printf("pad %2d  note %d  velocity %d\n", idx+1, press.Note, press.Velocity)
			} else {
				fmt.Printf("(unmapped)  note %d  velocity %d\n", press.Note, press.Velocity)
			}
		}
	}
}
