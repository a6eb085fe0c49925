// Package config provides YAML-based configuration for the StarryPad
// game: MIDI port selection, game timings, the web front end, and the
// leaderboard file location.
package config

import (
	"time"

	"github.com/vovakirdan/starrypad/internal/game"
)

// Config is the full runtime configuration.
type Config struct {
	MIDI        MIDIConfig        `yaml:"midi"`
	Game        GameConfig        `yaml:"game"`
	Web         WebConfig         `yaml:"web"`
	Leaderboard LeaderboardConfig `yaml:"leaderboard"`
}

// MIDIConfig selects the controller among enumerated MIDI ports.
type MIDIConfig struct {
	// PortFilter is a case-insensitive substring matched against port
	// names.
	PortFilter string `yaml:"port_filter"`
}

// GameConfig holds the engine timings, in milliseconds.
type GameConfig struct {
	LightOnMs    int `yaml:"light_on_ms"`
	LightGapMs   int `yaml:"light_gap_ms"`
	AckBlinkMs   int `yaml:"ack_blink_ms"`
	DebounceMs   int `yaml:"debounce_ms"`
	RoundPauseMs int `yaml:"round_pause_ms"`
	PollMs       int `yaml:"poll_ms"`
}

// Timings converts the configured milliseconds into engine timings.
func (g GameConfig) Timings() game.Timings {
	return game.Timings{
		LightOn:    time.Duration(g.LightOnMs) * time.Millisecond,
		LightGap:   time.Duration(g.LightGapMs) * time.Millisecond,
		AckBlink:   time.Duration(g.AckBlinkMs) * time.Millisecond,
		Debounce:   time.Duration(g.DebounceMs) * time.Millisecond,
		RoundPause: time.Duration(g.RoundPauseMs) * time.Millisecond,
		Poll:       time.Duration(g.PollMs) * time.Millisecond,
	}
}

// WebConfig configures the browser front end.
type WebConfig struct {
	// Address is the host:port the HTTP server listens on.
	Address string `yaml:"address"`
}

// LeaderboardConfig locates the persisted top scores.
type LeaderboardConfig struct {
	Path string `yaml:"path"`
}
