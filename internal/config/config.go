// Package config provides YAML-based configuration loading for Light 'Em Up.
package config

import (
	"fmt"
	"time"
)

// LightEmUpConfig contains all configuration for the Light 'Em Up game.
type LightEmUpConfig struct {
	Puzzle      PuzzleConfig      `yaml:"puzzle"`
	Competition CompetitionConfig `yaml:"competition"`
	Scoring     ScoringConfig     `yaml:"scoring"`
	Feed        FeedConfig        `yaml:"feed"`
}

// PuzzleConfig defines board generation parameters.
type PuzzleConfig struct {
	DefaultSize       int     `yaml:"default_size"`
	DefaultDifficulty string  `yaml:"default_difficulty"`
	MinSize           int     `yaml:"min_size"`
	MaxSize           int     `yaml:"max_size"`
	ScrambleRatio     float64 `yaml:"scramble_ratio"`
	PoolPath          string  `yaml:"pool_path"`
}

// CompetitionConfig defines the timed run.
type CompetitionConfig struct {
	TimeLimitSec int `yaml:"time_limit_sec"`
}

// ScoringConfig defines how a solved board is turned into points.
type ScoringConfig struct {
	Multipliers map[string]int `yaml:"multipliers"`
	TimeOffset  int            `yaml:"time_offset"`
}

// FeedConfig defines announcement polling and the HTTP feed.
type FeedConfig struct {
	PollIntervalSec int    `yaml:"poll_interval_sec"`
	Addr            string `yaml:"addr"`
}

// TimeLimit returns the competition run length.
func (c CompetitionConfig) TimeLimit() time.Duration {
	return time.Duration(c.TimeLimitSec) * time.Second
}

// PollInterval returns how often clients check for announcements.
func (c FeedConfig) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalSec) * time.Second
}

// Multiplier returns the scoring multiplier for a difficulty name.
// Unknown names score as 1.
func (c ScoringConfig) Multiplier(difficulty string) int {
	if m, ok := c.Multipliers[difficulty]; ok && m > 0 {
		return m
	}
	return 1
}

// ClampSize restricts a board size to [MinSize, MaxSize].
func (c PuzzleConfig) ClampSize(size int) int {
	if size < c.MinSize {
		return c.MinSize
	}
	if c.MaxSize > 0 && size > c.MaxSize {
		return c.MaxSize
	}
	return size
}

// Validate reports the first setting that cannot be used.
func (c LightEmUpConfig) Validate() error {
	switch {
	case c.Puzzle.MinSize < 1:
		return fmt.Errorf("config: min_size must be positive, got %d", c.Puzzle.MinSize)
	case c.Puzzle.MaxSize < c.Puzzle.MinSize:
		return fmt.Errorf("config: max_size %d below min_size %d", c.Puzzle.MaxSize, c.Puzzle.MinSize)
	case c.Puzzle.ScrambleRatio < 0 || c.Puzzle.ScrambleRatio > 1:
		return fmt.Errorf("config: scramble_ratio must be within [0, 1], got %v", c.Puzzle.ScrambleRatio)
	case c.Competition.TimeLimitSec <= 0:
		return fmt.Errorf("config: time_limit_sec must be positive, got %d", c.Competition.TimeLimitSec)
	case c.Scoring.TimeOffset < 0:
		return fmt.Errorf("config: time_offset must not be negative, got %d", c.Scoring.TimeOffset)
	case c.Feed.PollIntervalSec <= 0:
		return fmt.Errorf("config: poll_interval_sec must be positive, got %d", c.Feed.PollIntervalSec)
	}
	return nil
}
