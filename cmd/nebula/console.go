package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/nebula-forge/internal/console"
	"github.com/vovakirdan/nebula-forge/internal/session"
)

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Play with typed commands",
	Long: `Play Nebula Forge one typed command at a time. The board is printed
after every command, so this also works over pipes.

Small typos are forgiven: "crfat sheild" crafts a shield.

Examples:
  nebula console
  echo "right\nright\ncraft shield" | nebula console --seed 7`,
	Args: cobra.NoArgs,
	Run:  runConsole,
}

func runConsole(_ *cobra.Command, _ []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := openStore()
	defer closeStore(store)

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	var saver session.ScoreSaver
	if store != nil {
		saver = store
	}
	sess := session.New(session.ID(uuid.NewString()), playerName(), seed, loadRules(), saver, logger)

	if term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Println("Welcome to Nebula Forge. Type 'help' for commands.")
		fmt.Println()
	}

	if err := console.Run(ctx, os.Stdin, os.Stdout, sess); err != nil && ctx.Err() == nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
