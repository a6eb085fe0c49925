package game

import (
	"github.com/vovakirdan/starrypad/internal/leaderboard"
	"github.com/vovakirdan/starrypad/internal/pad"
)

// Event is a state change announced by the engine. Every observable
// transition flows through the event stream; there is no side channel
// into engine state.
type Event interface {
	event()
}

// PhaseChangedEvent announces the new phase.
type PhaseChangedEvent struct {
	Phase Phase
}

func (PhaseChangedEvent) event() {}

// ScoreChangedEvent carries the current score. During playback it
// already reflects the level being played, not the last completed one.
type ScoreChangedEvent struct {
	Score int
}

func (ScoreChangedEvent) event() {}

// PadLitEvent is emitted just before a pad is physically lit.
type PadLitEvent struct {
	Pad pad.Index
}

func (PadLitEvent) event() {}

// PadUnlitEvent is emitted just after a pad is physically unlit.
type PadUnlitEvent struct {
	Pad pad.Index
}

func (PadUnlitEvent) event() {}

// PressAcceptedEvent reports a press matching the expected pad.
type PressAcceptedEvent struct {
	Pad pad.Index
}

func (PressAcceptedEvent) event() {}

// PressRejectedEvent reports a press that did not match and ended the
// round.
type PressRejectedEvent struct {
	Pad pad.Index
}

func (PressRejectedEvent) event() {}

// RoundOverEvent carries the final score and whether it would place on
// the leaderboard.
type RoundOverEvent struct {
	Score int
	IsTop bool
}

func (RoundOverEvent) event() {}

// LeaderboardUpdatedEvent carries the full current board. Sent on reset,
// after every accepted score submission, and as the first message to a
// new subscriber.
type LeaderboardUpdatedEvent struct {
	Board leaderboard.Board
}

func (LeaderboardUpdatedEvent) event() {}

// ErrorEvent reports a user-visible, recoverable failure such as a
// missing controller.
type ErrorEvent struct {
	Text string
}

func (ErrorEvent) event() {}
