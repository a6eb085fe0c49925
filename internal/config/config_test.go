package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadEmbeddedDefault(t *testing.T) {
	// Run from a temp dir so no local config.yaml interferes.
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(wd)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.MIDI.PortFilter != "starry" {
		t.Errorf("port filter = %q, want starry", cfg.MIDI.PortFilter)
	}
	if cfg.Game.DebounceMs != 350 {
		t.Errorf("debounce = %d, want 350", cfg.Game.DebounceMs)
	}
	if cfg.Web.Address != ":8765" {
		t.Errorf("web address = %q, want :8765", cfg.Web.Address)
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
midi:
  port_filter: "launchpad"
game:
  light_on_ms: 100
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.MIDI.PortFilter != "launchpad" {
		t.Errorf("port filter = %q, want launchpad", cfg.MIDI.PortFilter)
	}
	if cfg.Game.LightOnMs != 100 {
		t.Errorf("light_on_ms = %d, want 100", cfg.Game.LightOnMs)
	}
}

func TestLoadMissingCustomPathFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load() with a missing explicit path should fail")
	}
}

func TestTimingsConversion(t *testing.T) {
	g := GameConfig{
		LightOnMs:    450,
		LightGapMs:   250,
		AckBlinkMs:   150,
		DebounceMs:   350,
		RoundPauseMs: 800,
		PollMs:       50,
	}
	timings := g.Timings()
	if timings.LightOn != 450*time.Millisecond {
		t.Errorf("LightOn = %v", timings.LightOn)
	}
	if timings.Debounce != 350*time.Millisecond {
		t.Errorf("Debounce = %v", timings.Debounce)
	}
	if timings.Poll != 50*time.Millisecond {
		t.Errorf("Poll = %v", timings.Poll)
	}
}
