package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/nebula-forge/internal/games/nebula"
	"github.com/vovakirdan/nebula-forge/internal/platform/tui"
	"github.com/vovakirdan/nebula-forge/internal/storage"
)

var (
	flagLimit       int
	flagInteractive bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the Nebula Forge leaderboard",
	Long: `Display the best runs and overall statistics.

Examples:
  nebula scores
  nebula scores --limit 20
  nebula scores --interactive`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", storage.DefaultLimit, "Number of runs to show")
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse the leaderboard full-screen")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagInteractive {
		cfg := runtimeConfig()
		if err := tui.RunScoreboard(store, nebula.ID, "Nebula Forge", cfg.ScreenW, cfg.ScreenH); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	scores, err := store.TopScores(ctx, nebula.ID, flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	fmt.Println("High Scores - Nebula Forge")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'nebula play' to set the first high score!")
		return
	}

	columns := tui.ScoreColumns()
	header := make([]string, len(columns))
	rule := make([]string, len(columns))
	for i, c := range columns {
		header[i] = fmt.Sprintf("%-*s", c.Width, c.Title)
		rule[i] = fmt.Sprintf("%-*s", c.Width, strings.Repeat("-", len(c.Title)))
	}
	fmt.Println("  " + strings.TrimRight(strings.Join(header, " "), " "))
	fmt.Println("  " + strings.TrimRight(strings.Join(rule, " "), " "))

	for _, row := range tui.ScoreRows(scores) {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = fmt.Sprintf("%-*s", columns[i].Width, cell)
		}
		fmt.Println("  " + strings.TrimRight(strings.Join(cells, " "), " "))
	}

	fmt.Println()
	stats, err := store.Stats(ctx, nebula.ID)
	if err == nil {
		fmt.Println(tui.FormatStats(stats))
	}
}
