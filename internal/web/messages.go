package web

import (
	"encoding/json"
	"fmt"

	"github.com/vovakirdan/starrypad/internal/game"
	"github.com/vovakirdan/starrypad/internal/leaderboard"
)

// encodeEvent maps an engine event to its wire representation. The
// schema is shared with the browser client in static/main.js.
func encodeEvent(ev game.Event) ([]byte, error) {
	switch ev := ev.(type) {
	case game.PhaseChangedEvent:
		return json.Marshal(struct {
			Type  string `json:"type"`
			Phase string `json:"phase"`
		}{"phase", ev.Phase.String()})
	case game.ScoreChangedEvent:
		return json.Marshal(struct {
			Type  string `json:"type"`
			Score int    `json:"score"`
		}{"score", ev.Score})
	case game.PadLitEvent:
		return json.Marshal(struct {
			Type string `json:"type"`
			Pad  int    `json:"pad"`
		}{"light", int(ev.Pad)})
	case game.PadUnlitEvent:
		return json.Marshal(struct {
			Type string `json:"type"`
			Pad  int    `json:"pad"`
		}{"unlight", int(ev.Pad)})
	case game.PressAcceptedEvent:
		return json.Marshal(struct {
			Type string `json:"type"`
			Pad  int    `json:"pad"`
		}{"correct", int(ev.Pad)})
	case game.PressRejectedEvent:
		return json.Marshal(struct {
			Type string `json:"type"`
			Pad  int    `json:"pad"`
		}{"wrong", int(ev.Pad)})
	case game.RoundOverEvent:
		return json.Marshal(struct {
			Type  string `json:"type"`
			Score int    `json:"score"`
			IsTop bool   `json:"is_top5"`
		}{"gameover", ev.Score, ev.IsTop})
	case game.LeaderboardUpdatedEvent:
		board := ev.Board
		if board == nil {
			board = leaderboard.Board{}
		}
		return json.Marshal(struct {
			Type  string            `json:"type"`
			Board leaderboard.Board `json:"board"`
		}{"leaderboard", board})
	case game.ErrorEvent:
		return json.Marshal(struct {
			Type string `json:"type"`
			Text string `json:"text"`
		}{"error", ev.Text})
	default:
		return nil, fmt.Errorf("web: unknown event type %T", ev)
	}
}

// decodeCommand parses a client command. Malformed payloads report
// ok=false and are dropped by the caller; a bad message never affects
// the connection or the engine.
func decodeCommand(data []byte) (game.Command, bool) {
	var msg struct {
		Type  string `json:"type"`
		Name  string `json:"name"`
		Score int    `json:"score"`
	}
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, false
	}
	switch msg.Type {
	case "start":
		return game.StartCommand{}, true
	case "stop":
		return game.StopCommand{}, true
	case "submit_name":
		if msg.Score < 0 {
			return nil, false
		}
		return game.SubmitScoreCommand{Name: msg.Name, Score: msg.Score}, true
	default:
		return nil, false
	}
}
