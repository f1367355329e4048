package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lightemup/internal/config"
	"github.com/vovakirdan/lightemup/internal/games/lightemup/levels"
	"github.com/vovakirdan/lightemup/internal/registry"
)

var flagListPuzzles bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List play modes",
	Long: `Shows the registered play modes and the game IDs their scores are stored under.
With --puzzles, lists the IDs of the puzzles stored in the pool file instead.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVar(&flagListPuzzles, "puzzles", false, "List stored puzzle IDs")
}

func runList(_ *cobra.Command, _ []string) error {
	if flagListPuzzles {
		return listPuzzles()
	}

	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No modes available.")
		return nil
	}

	fmt.Println("Available modes:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, g := range games {
		if len(g.ID) > maxIDLen {
			maxIDLen = len(g.ID)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, g := range games {
		fmt.Printf("  %-*s  %s\n", maxIDLen, g.ID, g.Title)
	}

	fmt.Println()
	fmt.Println("Run 'lightemup play --mode <training|competition>' to play.")
	return nil
}

func listPuzzles() error {
	cfg, err := config.LoadLightEmUp(flagConfig)
	if err != nil {
		return err
	}
	path := config.ExpandHome(cfg.Puzzle.PoolPath)

	ids, err := levels.NewLoader(path).ListIDs()
	if err != nil {
		fmt.Printf("No stored puzzles in %s. Run 'lightemup gen' first.\n", path)
		return nil
	}

	fmt.Printf("Stored puzzles (%s):\n", path)
	fmt.Println()
	for _, id := range ids {
		fmt.Printf("  %s\n", id)
	}
	fmt.Println()
	fmt.Println("Run 'lightemup play --puzzle <id>' to play one.")
	return nil
}
