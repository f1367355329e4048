package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultLightEmUpConfig(t *testing.T) {
	cfg := DefaultLightEmUpConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Competition.TimeLimit() != 180*time.Second {
		t.Errorf("Expected 180s time limit, got %v", cfg.Competition.TimeLimit())
	}
	if cfg.Feed.PollInterval() != 5*time.Second {
		t.Errorf("Expected 5s poll interval, got %v", cfg.Feed.PollInterval())
	}
	if cfg.Puzzle.ScrambleRatio != 0.65 {
		t.Errorf("Expected scramble ratio 0.65, got %v", cfg.Puzzle.ScrambleRatio)
	}
}

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := parseLightEmUp(defaultLightEmUpYAML)
	if err != nil {
		t.Fatalf("embedded config invalid: %v", err)
	}
	want := DefaultLightEmUpConfig()
	if cfg.Puzzle != want.Puzzle || cfg.Competition != want.Competition || cfg.Feed != want.Feed {
		t.Errorf("embedded %+v differs from hardcoded %+v", cfg, want)
	}
	for _, d := range []string{"easy", "medium", "hard"} {
		if cfg.Scoring.Multiplier(d) != want.Scoring.Multiplier(d) {
			t.Errorf("multiplier %s: embedded %d, hardcoded %d", d, cfg.Scoring.Multiplier(d), want.Scoring.Multiplier(d))
		}
	}
}

func TestMultiplier(t *testing.T) {
	s := DefaultLightEmUpConfig().Scoring
	tests := []struct {
		difficulty string
		want       int
	}{
		{"easy", 1},
		{"medium", 2},
		{"hard", 3},
		{"insane", 1},
	}
	for _, tt := range tests {
		if got := s.Multiplier(tt.difficulty); got != tt.want {
			t.Errorf("Multiplier(%q) = %d, want %d", tt.difficulty, got, tt.want)
		}
	}
}

func TestClampSize(t *testing.T) {
	p := DefaultLightEmUpConfig().Puzzle
	tests := []struct{ in, want int }{
		{1, 5},
		{5, 5},
		{42, 42},
		{100, 100},
		{500, 100},
	}
	for _, tt := range tests {
		if got := p.ClampSize(tt.in); got != tt.want {
			t.Errorf("ClampSize(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestLoadLightEmUpCustomPathOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("competition:\n  time_limit_sec: 60\nscoring:\n  multipliers:\n    hard: 5\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadLightEmUp(path)
	if err != nil {
		t.Fatalf("LoadLightEmUp() failed: %v", err)
	}
	if cfg.Competition.TimeLimitSec != 60 {
		t.Errorf("Expected overridden time limit 60, got %d", cfg.Competition.TimeLimitSec)
	}
	if cfg.Scoring.Multiplier("hard") != 5 {
		t.Errorf("Expected overridden hard multiplier 5, got %d", cfg.Scoring.Multiplier("hard"))
	}
	if cfg.Scoring.Multiplier("medium") != 2 {
		t.Errorf("Untouched multiplier should keep its default, got %d", cfg.Scoring.Multiplier("medium"))
	}
	if cfg.Puzzle.DefaultSize != 10 {
		t.Errorf("Untouched size should keep its default, got %d", cfg.Puzzle.DefaultSize)
	}
}

func TestLoadLightEmUpErrors(t *testing.T) {
	if _, err := LoadLightEmUp(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for missing custom config")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(path, []byte("puzzle:\n  scramble_ratio: 3\n"), 0644)
	if _, err := LoadLightEmUp(path); err == nil {
		t.Error("Expected validation error for scramble ratio above 1")
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := ExpandHome("~/x/y.db"); got != filepath.Join(home, "x", "y.db") {
		t.Errorf("ExpandHome = %q", got)
	}
	if got := ExpandHome("/abs/path"); got != "/abs/path" {
		t.Errorf("absolute path changed: %q", got)
	}
}
