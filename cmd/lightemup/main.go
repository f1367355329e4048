// lightemup is a terminal pipe-rotation puzzle: turn the blocks until the
// current from the top-left corner lights every cell.
//
// Usage:
//
//	lightemup play           - Play a board directly
//	lightemup menu           - Pick mode, difficulty and size interactively
//	lightemup serve          - Start the SSH server and announcement feed
//	lightemup scores [mode]  - Show leaders or the top results of a mode
//	lightemup list           - List play modes
//	lightemup gen            - Generate puzzles into the pool file
//
// Global flags:
//
//	--fps <rate>       - Set tick rate (default: 30)
//	--seed <value>     - Set RNG seed for reproducible puzzles
//	--db <path>        - Set database path (default: ~/.lightemup/scores.db)
//	--config <path>    - Use a custom config YAML
//	--log-file <path>  - Write logs to a rotating file instead of stderr
//	--name <nickname>  - Record results under this nickname
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/vovakirdan/lightemup/internal/config"
	"github.com/vovakirdan/lightemup/internal/core"
	"github.com/vovakirdan/lightemup/internal/games/lightemup"
	"github.com/vovakirdan/lightemup/internal/games/lightemup/levels"
	"github.com/vovakirdan/lightemup/internal/leaderboard"
	"github.com/vovakirdan/lightemup/internal/registry"
	"github.com/vovakirdan/lightemup/internal/storage"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagConfig  string
	flagLogFile string
	flagName    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "lightemup",
	Short: "Light 'Em Up - rotate the pipes until every cell is lit",
	Long: `Light 'Em Up is a pipe-rotation puzzle for the terminal.

Current enters the board at the top-left cell. Rotate blocks a quarter turn
at a time until the connected pipes light every cell of the grid.

Available commands:
  play     - Play a board directly
  menu     - Interactive setup menu
  serve    - Start SSH server and announcement feed
  scores   - View leaders and top results
  list     - Show play modes
  gen      - Generate puzzles into the pool file

Examples:
  lightemup play --difficulty hard --size 8
  lightemup play --mode competition
  lightemup menu --name ann
  lightemup serve --ssh :2222 --http :8080
  lightemup gen --difficulty medium --sizes 5,10 --count 20`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.lightemup/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this rotating file")
	rootCmd.PersistentFlags().StringVar(&flagName, "name", "", "Nickname results are recorded under (default: $USER)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(genCmd)
}

// newLogger writes to stderr, or to a rotating file when --log-file is set.
func newLogger(prefix string, fallback io.Writer) *log.Logger {
	w := fallback
	if flagLogFile != "" {
		w = &lumberjack.Logger{
			Filename:   config.ExpandHome(flagLogFile),
			MaxSize:    10, // MB
			MaxBackups: 3,
			MaxAge:     7, // days
		}
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
}

// app bundles what every command shares.
type app struct {
	cfg      config.LightEmUpConfig
	store    *storage.Store
	services registry.Services
	pool     *levels.Pool
	logger   *log.Logger
}

// openApp loads config, opens the store and installs the shared puzzle pool.
// Interactive commands log to io.Discard unless --log-file is set, so the
// alternate screen stays clean.
func openApp(prefix string, logOut io.Writer) (*app, error) {
	logger := newLogger(prefix, logOut)

	cfg, err := config.LoadLightEmUp(flagConfig)
	if err != nil {
		return nil, err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return nil, err
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	pool := levels.NewPool(seed, cfg.Puzzle.ScrambleRatio)
	if path := config.ExpandHome(cfg.Puzzle.PoolPath); path != "" {
		if _, statErr := os.Stat(path); statErr == nil {
			n, loadErr := pool.LoadFrom(levels.NewLoader(path))
			if loadErr != nil {
				logger.Warn("could not load puzzle pool", "path", path, "error", loadErr)
			} else {
				logger.Info("loaded puzzle pool", "path", path, "puzzles", n)
			}
		}
	}
	lightemup.SetPool(pool)

	board := leaderboard.NewService(store, cfg.Scoring)
	return &app{
		cfg:   cfg,
		store: store,
		services: registry.Services{
			Leaderboard: board,
			Config:      cfg,
			Logger:      logger,
		},
		pool:   pool,
		logger: logger,
	}, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.logger.Error("closing store", "error", err)
	}
}

// playerName resolves the nickname from --name, then $USER.
func playerName() string {
	if flagName != "" {
		return flagName
	}
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return core.DefaultConfig().Player
}
