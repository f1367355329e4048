package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lightemup/internal/config"
	"github.com/vovakirdan/lightemup/internal/games/lightemup/core"
	"github.com/vovakirdan/lightemup/internal/games/lightemup/levels"
)

var (
	flagGenDifficulty string
	flagGenSizes      []int
	flagGenCount      int
	flagGenOut        string
	flagGenFresh      bool
)

var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate puzzles into the pool file",
	Long: `Generate scrambled puzzles and store them in the pool file. Games take
stored puzzles first and only generate new ones when a bucket runs dry.

Existing puzzles in the file are kept unless --fresh is given.

Examples:
  lightemup gen
  lightemup gen --difficulty hard --sizes 8,16 --count 50
  lightemup gen --out ./puzzles.yaml --fresh --seed 42`,
	Args: cobra.NoArgs,
	RunE: runGen,
}

func init() {
	genCmd.Flags().StringVar(&flagGenDifficulty, "difficulty", "easy", "Difficulty: easy, medium, hard")
	genCmd.Flags().IntSliceVar(&flagGenSizes, "sizes", []int{5, 10}, "Board sizes to generate")
	genCmd.Flags().IntVar(&flagGenCount, "count", 10, "Puzzles per size")
	genCmd.Flags().StringVar(&flagGenOut, "out", "", "Pool file (default from config)")
	genCmd.Flags().BoolVar(&flagGenFresh, "fresh", false, "Discard puzzles already in the file")
}

func runGen(_ *cobra.Command, _ []string) error {
	logger := newLogger("lightemup-gen", os.Stderr)

	cfg, err := config.LoadLightEmUp(flagConfig)
	if err != nil {
		return err
	}
	d, err := core.ParseDifficulty(flagGenDifficulty)
	if err != nil {
		return err
	}
	for _, size := range flagGenSizes {
		if size < cfg.Puzzle.MinSize || size > cfg.Puzzle.MaxSize {
			return fmt.Errorf("size %d outside %d..%d", size, cfg.Puzzle.MinSize, cfg.Puzzle.MaxSize)
		}
	}
	if flagGenCount < 1 {
		return fmt.Errorf("count must be positive, got %d", flagGenCount)
	}

	out := flagGenOut
	if out == "" {
		out = cfg.Puzzle.PoolPath
	}
	out = config.ExpandHome(out)

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	pool := levels.NewPool(seed, cfg.Puzzle.ScrambleRatio)

	if !flagGenFresh {
		if _, statErr := os.Stat(out); statErr == nil {
			n, loadErr := pool.LoadFrom(levels.NewLoader(out))
			if loadErr != nil {
				return loadErr
			}
			logger.Info("kept existing puzzles", "path", out, "puzzles", n)
		}
	}

	start := time.Now()
	if err := pool.Fill(d, flagGenSizes, flagGenCount); err != nil {
		return err
	}
	if err := pool.Save(out); err != nil {
		return err
	}

	logger.Info("generated puzzles",
		"difficulty", d,
		"sizes", flagGenSizes,
		"count", pool.Generated(),
		"path", out,
		"took", time.Since(start).Round(time.Millisecond),
	)
	return nil
}
