package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lightemup/internal/platform/tui"
	"github.com/vovakirdan/lightemup/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with the setup menu",
	Long: `Start in interactive menu mode.

Choose the mode, difficulty and board size, then start. Leaving a board
with Esc returns to the menu.

Controls:
  Up/Down/j/k     - Navigate menu
  Left/Right/h/l  - Change the option
  Enter/Space     - Select
  Tab             - Scores
  Q               - Quit

Examples:
  lightemup menu
  lightemup menu --name ann
  lightemup menu --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	a, err := openApp("lightemup", io.Discard)
	if err != nil {
		return err
	}
	defer a.Close()

	cfg := terminalConfig(a)

	for {
		menuResult, err := tui.RunMenu(a.cfg, cfg)
		if err != nil {
			return err
		}

		// Keep size changes and the last choice
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(a.store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				return sbErr
			}
			if goBack {
				continue
			}
			return nil
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			return fmt.Errorf("creating game: %w", err)
		}

		backToMenu, err := tui.Run(game, a.services, a.store, cfg)
		if err != nil {
			return fmt.Errorf("running game: %w", err)
		}
		if !backToMenu {
			return nil
		}
	}
}
