package config

import (
	_ "embed"
)

//go:embed defaults/lightemup.yaml
var defaultLightEmUpYAML []byte

// DefaultLightEmUpConfig returns the default Light 'Em Up configuration.
func DefaultLightEmUpConfig() LightEmUpConfig {
	return LightEmUpConfig{
		Puzzle: PuzzleConfig{
			DefaultSize:       10,
			DefaultDifficulty: "easy",
			MinSize:           5,
			MaxSize:           100,
			ScrambleRatio:     0.65,
			PoolPath:          "~/.lightemup/puzzles.yaml",
		},
		Competition: CompetitionConfig{
			TimeLimitSec: 180,
		},
		Scoring: ScoringConfig{
			Multipliers: map[string]int{
				"easy":   1,
				"medium": 2,
				"hard":   3,
			},
			TimeOffset: 10,
		},
		Feed: FeedConfig{
			PollIntervalSec: 5,
			Addr:            ":8080",
		},
	}
}
