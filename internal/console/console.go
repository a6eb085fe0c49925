// Package console is the terminal front end: it renders the event
// stream as log lines and turns stdin lines into engine commands. It is
// an observer like any other; the web front end is interchangeable with
// it.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/starrypad/internal/broadcast"
	"github.com/vovakirdan/starrypad/internal/game"
)

var (
	phaseStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	padStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	goodStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	badStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	dimStyle   = lipgloss.NewStyle().Faint(true)
)

// Runner connects one terminal to the engine.
type Runner struct {
	commands chan<- game.Command
	sub      *broadcast.Subscriber
	in       io.Reader
	out      io.Writer

	// mu guards lastScore and awaitName, shared between the render loop
	// and the stdin reader.
	mu        sync.Mutex
	lastScore int
	awaitName bool
}

// NewRunner creates a console front end over the given subscription.
func NewRunner(commands chan<- game.Command, sub *broadcast.Subscriber, in io.Reader, out io.Writer) *Runner {
	return &Runner{commands: commands, sub: sub, in: in, out: out}
}

// Run renders events until ctx is cancelled or the subscription closes.
// The game starts immediately; stdin accepts "start", "stop", and a
// bare name to submit a top score.
func (r *Runner) Run(ctx context.Context) {
	fmt.Fprintln(r.out, phaseStyle.Render("StarryPad Simon Says (16 pads)"))
	fmt.Fprintln(r.out, dimStyle.Render("Commands: start, stop, or type your name after a top score. Ctrl+C quits."))

	go r.readInput(ctx)
	r.commands <- game.StartCommand{}

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-r.sub.Events():
			if !ok {
				return
			}
			r.render(ev)
		}
	}
}

// readInput forwards stdin lines as commands.
func (r *Runner) readInput(ctx context.Context) {
	scanner := bufio.NewScanner(r.in)
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "" || strings.EqualFold(line, "start"):
			r.commands <- game.StartCommand{}
		case strings.EqualFold(line, "stop"):
			r.commands <- game.StopCommand{}
		default:
			if name, score, ok := r.takePendingName(line); ok {
				r.commands <- game.SubmitScoreCommand{Name: name, Score: score}
			}
		}
	}
}

// takePendingName consumes the name prompt, if one is active.
func (r *Runner) takePendingName(line string) (string, int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.awaitName {
		return "", 0, false
	}
	r.awaitName = false
	return line, r.lastScore, true
}

func (r *Runner) score() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastScore
}

func (r *Runner) setScore(s int) {
	r.mu.Lock()
	r.lastScore = s
	r.mu.Unlock()
}

func (r *Runner) finishRound(score int, awaitName bool) {
	r.mu.Lock()
	r.lastScore = score
	r.awaitName = awaitName
	r.mu.Unlock()
}

func (r *Runner) render(ev game.Event) {
	switch ev := ev.(type) {
	case game.PhaseChangedEvent:
		switch ev.Phase {
		case game.PhasePlaying:
			fmt.Fprintln(r.out, phaseStyle.Render(fmt.Sprintf("--- Level %d ---", r.score()+1)))
			fmt.Fprintln(r.out, "Watch the sequence…")
		case game.PhaseInput:
			fmt.Fprintln(r.out, "Your turn – repeat the sequence.")
		case game.PhaseIdle:
			fmt.Fprintln(r.out, dimStyle.Render("Stopped. Press Enter to play again."))
		}
	case game.ScoreChangedEvent:
		r.setScore(ev.Score)
	case game.PadLitEvent:
		fmt.Fprintln(r.out, padStyle.Render(fmt.Sprintf("  Pad %d", ev.Pad+1)))
	case game.PressAcceptedEvent:
		fmt.Fprintln(r.out, goodStyle.Render(fmt.Sprintf("  Pad %d ✓", ev.Pad+1)))
	case game.PressRejectedEvent:
		fmt.Fprintln(r.out, badStyle.Render(fmt.Sprintf("  Pad %d ✗ Wrong!", ev.Pad+1)))
	case game.RoundOverEvent:
		r.finishRound(ev.Score, ev.IsTop)
		fmt.Fprintln(r.out, badStyle.Render("Game over."))
		fmt.Fprintf(r.out, "Score: %d\n", ev.Score)
		if ev.IsTop {
			fmt.Fprintln(r.out, goodStyle.Render("Top 5! Type your name to save it, or press Enter to play again."))
		} else {
			fmt.Fprintln(r.out, dimStyle.Render("Press Enter to play again."))
		}
	case game.LeaderboardUpdatedEvent:
		if len(ev.Board) == 0 {
			return
		}
		fmt.Fprintln(r.out, phaseStyle.Render("Leaderboard"))
		for i, e := range ev.Board {
			fmt.Fprintf(r.out, "  %d. %-20s %d\n", i+1, e.Name, e.Score)
		}
	case game.ErrorEvent:
		fmt.Fprintln(r.out, badStyle.Render(ev.Text))
	}
}
