package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size, the chosen puzzle and the player.
type RuntimeConfig struct {
	ScreenW    int    // Screen width in characters
	ScreenH    int    // Screen height in characters
	TickRate   int    // Update ticks per second (default 30)
	Seed       int64  // RNG seed for puzzle generation
	Player     string // Nickname results are recorded under
	Difficulty string // "easy", "medium" or "hard"
	Size       int    // Puzzle side length N
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:    80,
		ScreenH:    24,
		TickRate:   30,
		Seed:       0, // 0 means use current time in platform layer
		Player:     "player",
		Difficulty: "easy",
		Size:       10,
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Points earned in the current run
	GameOver bool // Whether the run has ended
	Paused   bool // Whether the game is paused
}

// StepResult is returned by Game.Step() after each tick.
type StepResult struct {
	State GameState
}
