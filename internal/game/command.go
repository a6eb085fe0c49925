package game

// Command is an instruction sent by a front end to the engine. Any
// number of producers may send commands; the engine is the single
// consumer and drains the backlog once per cycle, honoring only the most
// recent Start/Stop when several queue up.
type Command interface {
	command()
}

// StartCommand begins a new session from Idle or GameOver.
type StartCommand struct{}

func (StartCommand) command() {}

// StopCommand aborts the current session and returns to Idle. It is
// observed cooperatively, between playback steps and at the top of each
// poll cycle.
type StopCommand struct{}

func (StopCommand) command() {}

// SubmitScoreCommand records a finished score under a player name. The
// engine ignores it unless the trimmed name is non-empty and the score
// is positive.
type SubmitScoreCommand struct {
	Name  string
	Score int
}

func (SubmitScoreCommand) command() {}
