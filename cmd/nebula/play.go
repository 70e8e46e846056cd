package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/nebula-forge/internal/games/nebula"
	"github.com/vovakirdan/nebula-forge/internal/platform/tui"
	"github.com/vovakirdan/nebula-forge/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play Nebula Forge full-screen",
	Long: `Start a game of Nebula Forge in the terminal.

Controls:
  Arrows/WASD  - Move
  1            - Craft Shield (2 Quark + 1 Plasma)
  2            - Craft Pulse (2 Plasma + 1 Neutrino)
  Space/E      - Fire a Pulse
  P            - Pause
  R            - Restart (after game over)
  Q/Ctrl+C     - Quit

Examples:
  nebula play
  nebula play --seed 42
  nebula play --config ./my-rules.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := nebula.ID
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'nebula list' to see available games.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	store := openStore()

	// Keep log lines off the alt screen while the game is running.
	logger.SetLevel(max(logger.GetLevel(), log.WarnLevel))

	runErr := tui.Run(game, store, runtimeConfig(), playerName(), logger)
	closeStore(store)

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
