package game

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/starrypad/internal/leaderboard"
	"github.com/vovakirdan/starrypad/internal/pad"
)

// Timings holds every fixed duration the engine sleeps on. Tests shrink
// them to keep runs fast.
type Timings struct {
	LightOn    time.Duration // how long a pad stays lit during playback
	LightGap   time.Duration // pause between playback pads
	AckBlink   time.Duration // acknowledgement blink on player input
	Debounce   time.Duration // same-pad chatter rejection window
	RoundPause time.Duration // pause between a completed round and the next
	Poll       time.Duration // idle poll interval
}

// DefaultTimings returns the stock StarryPad timings.
func DefaultTimings() Timings {
	return Timings{
		LightOn:    450 * time.Millisecond,
		LightGap:   250 * time.Millisecond,
		AckBlink:   150 * time.Millisecond,
		Debounce:   350 * time.Millisecond,
		RoundPause: 800 * time.Millisecond,
		Poll:       50 * time.Millisecond,
	}
}

// Opener lazily opens the pad controller. The engine calls it on the
// first Start and keeps the device for the rest of its life.
type Opener func() (pad.Device, error)

// Engine runs the full Simon Says state machine. It is the sole owner
// and mutator of all game state; front ends interact only through the
// Commands channel in and the Events channel out.
type Engine struct {
	timings Timings
	open    Opener
	board   *leaderboard.Store
	logger  *log.Logger
	rng     *rand.Rand

	commands chan Command
	events   chan Event

	ctx context.Context
	dev pad.Device

	phase    Phase
	sequence []pad.Index
	score    int
	expected int
	lastPad  pad.Index
	lastTime time.Time
}

// New creates an engine. Run must be called exactly once.
func New(open Opener, board *leaderboard.Store, t Timings, logger *log.Logger) *Engine {
	return &Engine{
		timings:  t,
		open:     open,
		board:    board,
		logger:   logger,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		commands: make(chan Command, 64),
		events:   make(chan Event, 256),
		lastPad:  -1,
	}
}

// Commands returns the channel front ends send commands on.
func (e *Engine) Commands() chan<- Command {
	return e.commands
}

// Events returns the engine's event stream. There is exactly one
// consumer, normally the broadcaster.
func (e *Engine) Events() <-chan Event {
	return e.events
}

// Run executes the state machine until ctx is cancelled; that is the
// only way the loop ends. No fault on the device or the leaderboard
// file terminates it.
func (e *Engine) Run(ctx context.Context) {
	e.ctx = ctx
	e.goIdle()

	for {
		select {
		case <-ctx.Done():
			e.closeDevice()
			return
		default:
		}

		start, stop, submits := e.drainCommands()
		for _, sub := range submits {
			e.submitScore(sub)
		}

		if stop && e.phase != PhaseIdle {
			e.goIdle()
			continue
		}
		if start && (e.phase == PhaseIdle || e.phase == PhaseGameOver) {
			e.startSession()
			continue
		}

		if e.phase == PhaseInput && e.dev != nil {
			e.drainPresses()
		}
		e.sleep(e.timings.Poll)
	}
}

// drainCommands empties the pending command backlog, coalescing to the
// most recent Start/Stop. Score submissions are returned in order; none
// is discardable.
func (e *Engine) drainCommands() (start, stop bool, submits []SubmitScoreCommand) {
	for {
		select {
		case c := <-e.commands:
			switch c := c.(type) {
			case StartCommand:
				start, stop = true, false
			case StopCommand:
				stop, start = true, false
			case SubmitScoreCommand:
				submits = append(submits, c)
			}
		default:
			return start, stop, submits
		}
	}
}

// goIdle resets all session state and announces the idle baseline:
// phase, zero score, current leaderboard.
func (e *Engine) goIdle() {
	e.phase = PhaseIdle
	e.sequence = e.sequence[:0]
	e.score = 0
	e.expected = 0
	e.emit(PhaseChangedEvent{Phase: PhaseIdle})
	e.emit(ScoreChangedEvent{Score: 0})
	e.emit(LeaderboardUpdatedEvent{Board: e.board.Load()})
}

// startSession opens the device if needed and begins round one. An
// unavailable controller is recoverable: report it, stay idle, let the
// next Start retry.
func (e *Engine) startSession() {
	if e.dev == nil {
		d, err := e.open()
		if err != nil {
			e.logger.Warn("pad controller unavailable", "err", err)
			e.emit(ErrorEvent{Text: "No StarryPad found. Connect it and try again."})
			e.goIdle()
			return
		}
		e.dev = d
	}
	e.sequence = e.sequence[:0]
	e.score = 0
	e.startRound()
}

// startRound grows the sequence by one random pad and replays it. Stop
// is honored at the checkpoint between pads, never mid pulse.
func (e *Engine) startRound() {
	e.sequence = append(e.sequence, pad.Index(e.rng.Intn(pad.Count)))
	e.score = len(e.sequence) - 1
	e.expected = 0
	e.phase = PhasePlaying
	e.emit(ScoreChangedEvent{Score: e.score})
	e.emit(PhaseChangedEvent{Phase: PhasePlaying})

	for _, p := range e.sequence {
		if e.stopPending() {
			e.goIdle()
			return
		}
		e.playPad(p)
	}
	if e.stopPending() {
		e.goIdle()
		return
	}

	// Presses made while the sequence was replaying are not player
	// answers; drop them before accepting input.
	e.flushPresses()

	e.phase = PhaseInput
	e.expected = 0
	e.emit(PhaseChangedEvent{Phase: PhaseInput})
}

// stopPending checks for a queued Stop (or shutdown) without blocking.
// Score submissions found along the way are applied, queued Starts are
// meaningless mid-session and dropped.
func (e *Engine) stopPending() bool {
	select {
	case <-e.ctx.Done():
		return true
	default:
	}
	_, stop, submits := e.drainCommands()
	for _, sub := range submits {
		e.submitScore(sub)
	}
	return stop
}

// playPad lights one pad for the playback on-duration. The light and
// unlight events bracket the physical signal.
func (e *Engine) playPad(p pad.Index) {
	e.emit(PadLitEvent{Pad: p})
	e.setPad(p, true)
	e.sleep(e.timings.LightOn)
	e.setPad(p, false)
	e.emit(PadUnlitEvent{Pad: p})
	e.sleep(e.timings.LightGap)
}

// drainPresses handles all pending device presses for this cycle.
func (e *Engine) drainPresses() {
	for {
		select {
		case pr, ok := <-e.dev.Presses():
			if !ok {
				return
			}
			e.handlePress(pr)
			if e.phase != PhaseInput {
				return
			}
		default:
			return
		}
	}
}

// flushPresses discards everything queued on the device channel.
func (e *Engine) flushPresses() {
	if e.dev == nil {
		return
	}
	for {
		select {
		case _, ok := <-e.dev.Presses():
			if !ok {
				return
			}
		default:
			return
		}
	}
}

// handlePress evaluates one press against the expected sequence
// position. Releases and unmapped notes never reach debounce.
func (e *Engine) handlePress(pr pad.Press) {
	if pr.Velocity == 0 {
		return
	}
	p, ok := pad.FromNote(pr.Note)
	if !ok {
		return
	}
	if e.phase != PhaseInput {
		return
	}

	now := time.Now()
	if p == e.lastPad && now.Sub(e.lastTime) < e.timings.Debounce {
		// Hardware chatter, not a player action.
		return
	}
	e.lastPad, e.lastTime = p, now

	// Acknowledgement blink, no events around it.
	e.setPad(p, true)
	e.sleep(e.timings.AckBlink)
	e.setPad(p, false)

	if p != e.sequence[e.expected] {
		e.emit(PressRejectedEvent{Pad: p})
		e.gameOver()
		return
	}

	e.emit(PressAcceptedEvent{Pad: p})
	e.expected++
	if e.expected >= len(e.sequence) {
		e.sleep(e.timings.RoundPause)
		e.startRound()
	}
}

// gameOver freezes the score and reports whether it would place on the
// board. The engine stays in GameOver until the next Start.
func (e *Engine) gameOver() {
	e.phase = PhaseGameOver
	e.emit(PhaseChangedEvent{Phase: PhaseGameOver})
	e.emit(RoundOverEvent{Score: e.score, IsTop: e.board.IsTop(e.score)})
}

// submitScore validates and persists a submission, then announces the
// new board to every observer. Persistence faults are logged, never
// surfaced as error events.
func (e *Engine) submitScore(cmd SubmitScoreCommand) {
	name := strings.TrimSpace(cmd.Name)
	if name == "" || cmd.Score <= 0 {
		return
	}
	if runes := []rune(name); len(runes) > leaderboard.MaxNameLen {
		name = string(runes[:leaderboard.MaxNameLen])
	}
	board, err := e.board.Add(name, cmd.Score)
	if err != nil {
		e.logger.Warn("could not persist leaderboard", "err", err)
		return
	}
	e.emit(LeaderboardUpdatedEvent{Board: board})
}

// setPad drives the device, swallowing I/O faults so a flaky hardware
// link never kills the loop.
func (e *Engine) setPad(p pad.Index, on bool) {
	if e.dev == nil {
		return
	}
	if err := e.dev.SetPad(p, on); err != nil {
		e.logger.Debug("pad output failed", "pad", int(p), "on", on, "err", err)
	}
}

func (e *Engine) closeDevice() {
	if e.dev == nil {
		return
	}
	if err := e.dev.Close(); err != nil {
		e.logger.Debug("device close failed", "err", err)
	}
	e.dev = nil
}

// sleep waits for d or shutdown, whichever comes first.
func (e *Engine) sleep(d time.Duration) {
	if d <= 0 {
		return
	}
	select {
	case <-e.ctx.Done():
	case <-time.After(d):
	}
}

// emit queues an event for the broadcaster. Shutdown wins over a full
// buffer: if the consumer is gone, the event is abandoned so the loop
// can reach its exit check.
func (e *Engine) emit(ev Event) {
	select {
	case e.events <- ev:
	case <-e.ctx.Done():
	}
}
