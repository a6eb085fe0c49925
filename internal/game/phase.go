package game

// Phase is the engine's current mode. Exactly one phase is active at any
// instant and it is the sole gate for interpreting pad presses.
type Phase int

const (
	// PhaseIdle means no session is running; the engine waits for Start.
	PhaseIdle Phase = iota
	// PhasePlaying means the engine is replaying the sequence on the
	// pads; presses are ignored.
	PhasePlaying
	// PhaseInput means the player is reproducing the sequence; the only
	// phase in which presses are evaluated.
	PhaseInput
	// PhaseGameOver means the round ended on a wrong press; the engine
	// reports the final score until restarted.
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePlaying:
		return "playing"
	case PhaseInput:
		return "input"
	case PhaseGameOver:
		return "gameover"
	default:
		return "unknown"
	}
}
