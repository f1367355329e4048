package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lightemup/internal/leaderboard"
)

var (
	flagLimit int
	flagClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show leaders or the top results of a mode",
	Long: `Without a mode, list players by best score. With a mode, list the top
results recorded in that mode.

Examples:
  lightemup scores
  lightemup scores training
  lightemup scores competition --limit 20
  lightemup scores training --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of rows to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the recorded results of the mode")
}

func runScores(cmd *cobra.Command, args []string) error {
	a, err := openApp("lightemup", io.Discard)
	if err != nil {
		return err
	}
	defer a.Close()

	if len(args) == 0 {
		if flagClear {
			return fmt.Errorf("--clear needs a mode")
		}
		return printLeaders(cmd.Context(), a)
	}

	mode, err := leaderboard.ParseMode(args[0])
	if err != nil {
		return err
	}

	if flagClear {
		if err := a.store.ClearScores(mode.GameID()); err != nil {
			return fmt.Errorf("clearing scores: %w", err)
		}
		fmt.Printf("Cleared %s results.\n", mode)
		return nil
	}

	scores, err := a.store.TopScores(mode.GameID(), flagLimit)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", mode)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'lightemup play --mode %s' to set the first high score!\n", mode)
		return nil
	}

	if mode == leaderboard.ModeTraining {
		fmt.Printf("  %-4s  %-16s  %-6s  %-6s  %-7s  %s\n", "Rank", "Player", "Points", "Level", "Size", "Time")
		fmt.Printf("  %-4s  %-16s  %-6s  %-6s  %-7s  %s\n", "----", "------", "------", "-----", "----", "----")
		for i, e := range scores {
			size := fmt.Sprintf("%dx%d", e.Size, e.Size)
			fmt.Printf("  %-4d  %-16s  %-6d  %-6s  %-7s  %ds\n", i+1, e.Nickname, e.Score, e.Difficulty, size, e.ElapsedSecs)
		}
	} else {
		fmt.Printf("  %-4s  %-16s  %-6s  %s\n", "Rank", "Player", "Score", "Date")
		fmt.Printf("  %-4s  %-16s  %-6s  %s\n", "----", "------", "-----", "----")
		for i, e := range scores {
			fmt.Printf("  %-4d  %-16s  %-6d  %s\n", i+1, e.Nickname, e.Score, e.CreatedAt.Format("2006-01-02 15:04"))
		}
	}

	fmt.Println()
	if high, err := a.store.HighScore(mode.GameID()); err == nil {
		fmt.Printf("Best: %d\n", high)
	}
	if stats, err := a.store.GetGameStats(mode.GameID()); err == nil {
		fmt.Printf("Average: %.1f  Recorded: %d  Last played: %s\n",
			stats.AvgScore, stats.GamesCount, stats.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}

func printLeaders(ctx context.Context, a *app) error {
	players, err := a.services.Leaderboard.TopPlayers(ctx, flagLimit)
	if err != nil {
		return fmt.Errorf("retrieving leaders: %w", err)
	}

	fmt.Println("Leaders")
	fmt.Println()
	if len(players) == 0 {
		fmt.Println("No players yet.")
		return nil
	}

	fmt.Printf("  %-4s  %-16s  %s\n", "Rank", "Player", "Best")
	fmt.Printf("  %-4s  %-16s  %s\n", "----", "------", "----")
	for i, p := range players {
		fmt.Printf("  %-4d  %-16s  %d\n", i+1, p.Nickname, p.BestScore)
	}
	return nil
}
