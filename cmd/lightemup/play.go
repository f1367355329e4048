package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/lightemup/internal/config"
	"github.com/vovakirdan/lightemup/internal/core"
	"github.com/vovakirdan/lightemup/internal/games/lightemup"
	"github.com/vovakirdan/lightemup/internal/games/lightemup/levels"
	"github.com/vovakirdan/lightemup/internal/leaderboard"
	"github.com/vovakirdan/lightemup/internal/platform/tui"
	"github.com/vovakirdan/lightemup/internal/registry"
)

var (
	flagMode       string
	flagDifficulty string
	flagSize       int
	flagPuzzle     string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a board",
	Long: `Start a board directly, without the setup menu.

Controls:
  Arrows/WASD/HJKL - Move cursor
  Space/Enter      - Rotate block under cursor
  Mouse click      - Rotate clicked block
  P                - Pause timer display
  R                - New puzzle
  Esc/B            - Leave
  Q/Ctrl+C         - Quit
  Ctrl+S           - Save a screenshot

Modes:
  training     - One board at a time, no time limit
  competition  - Solve as many boards as you can in the time limit

Examples:
  lightemup play
  lightemup play --difficulty hard --size 8
  lightemup play --mode competition --name ann
  lightemup play --puzzle medium-8-003`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagMode, "mode", "training", "Play mode: training, competition")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty: easy, medium, hard (default from config)")
	playCmd.Flags().IntVar(&flagSize, "size", 0, "Board side length (default from config)")
	playCmd.Flags().StringVar(&flagPuzzle, "puzzle", "", "Start with a stored puzzle by ID (see 'lightemup list --puzzles')")
}

// terminalConfig builds the runtime config from the terminal size and flags.
func terminalConfig(a *app) core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	cfg := core.DefaultConfig()
	cfg.ScreenW = width
	cfg.ScreenH = height
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	cfg.Player = playerName()
	cfg.Difficulty = a.cfg.Puzzle.DefaultDifficulty
	cfg.Size = a.cfg.Puzzle.DefaultSize
	if flagDifficulty != "" {
		cfg.Difficulty = flagDifficulty
	}
	if flagSize > 0 {
		cfg.Size = flagSize
	}
	return cfg
}

func runPlay(_ *cobra.Command, _ []string) error {
	mode, err := leaderboard.ParseMode(flagMode)
	if err != nil {
		return err
	}

	a, err := openApp("lightemup", io.Discard)
	if err != nil {
		return err
	}
	defer a.Close()

	cfg := terminalConfig(a)
	if flagPuzzle != "" {
		if err := usePuzzle(a, &cfg, flagPuzzle); err != nil {
			return err
		}
	}

	game, err := registry.Create(mode.GameID())
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	if _, err := tui.Run(game, a.services, a.store, cfg); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// usePuzzle makes the stored puzzle id the first board of the run.
// Later boards come from the generator.
func usePuzzle(a *app, cfg *core.RuntimeConfig, id string) error {
	p, err := levels.NewLoader(config.ExpandHome(a.cfg.Puzzle.PoolPath)).LoadByID(id)
	if err != nil {
		return err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	pool := levels.NewPool(seed, a.cfg.Puzzle.ScrambleRatio)
	pool.Add(p)
	lightemup.SetPool(pool)

	cfg.Difficulty = p.Difficulty.String()
	cfg.Size = p.Size
	a.logger.Info("playing stored puzzle", "id", p.ID, "path", p.FilePath)
	return nil
}
