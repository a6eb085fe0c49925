package config

import (
	_ "embed"
)

//go:embed defaults/starrypad.yaml
var defaultYAML []byte

// Default returns the stock configuration.
func Default() Config {
	return Config{
		MIDI: MIDIConfig{
			PortFilter: "starry",
		},
		Game: GameConfig{
			LightOnMs:    450,
			LightGapMs:   250,
			AckBlinkMs:   150,
			DebounceMs:   350,
			RoundPauseMs: 800,
			PollMs:       50,
		},
		Web: WebConfig{
			Address: ":8765",
		},
		Leaderboard: LeaderboardConfig{
			Path: "~/.starrypad/leaderboard.json",
		},
	}
}
