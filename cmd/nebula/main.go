// nebula is Nebula Forge: collect resources, craft tools and survive the
// hazards of a 10x10 nebula.
//
// Usage:
//
//	nebula play              - Play full-screen in the terminal
//	nebula menu              - Title menu with game and leaderboard
//	nebula console           - Plain text REPL on stdin/stdout
//	nebula serve             - SSH server, one game per session
//	nebula web               - HTTP/websocket server
//	nebula scores            - Show the leaderboard
//	nebula list              - List registered games
//	nebula config            - Print the effective rules
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible boards
//	--db <path|dsn>     - Scores database (default: ~/.arcade/nebula.db)
//	--config <path>     - Rules YAML
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/nebula-forge/internal/core"
	"github.com/vovakirdan/nebula-forge/internal/games/nebula"
	"github.com/vovakirdan/nebula-forge/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
	flagPlayer   string

	logger *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "nebula",
	Short: "Nebula Forge - a crafting survival game for the terminal",
	Long: `Nebula Forge is a turn-based game on a 10x10 grid. Walk the nebula,
collect Quark, Plasma and Neutrino, craft Shields and Pulses, and keep
clear of the hazards.

Available commands:
  play     - Play full-screen
  menu     - Title menu with the leaderboard
  console  - Text commands on stdin/stdout
  serve    - Start SSH server for remote play
  web      - Start HTTP/websocket server
  scores   - View high scores
  list     - Show registered games
  config   - Print the effective rules

Examples:
  nebula play
  nebula play --seed 42
  nebula console
  nebula serve --ssh :2222
  nebula web --addr :8080
  nebula scores --limit 5`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		level, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return fmt.Errorf("invalid --log-level %q", flagLogLevel)
		}
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "nebula",
			Level:           level,
		})
		nebula.SetConfigPath(flagConfig, func(err error) {
			logger.Warn("using default rules", "err", err)
		})
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/nebula.db", "Scores database path or postgres:// DSN")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom rules YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagPlayer, "player", "", "Player name recorded with scores (default: $USER)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(consoleCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(configCmd)
}

// openStore opens the scores database. A failure is logged and returns nil:
// the game still runs without a leaderboard.
func openStore() storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database, scores will not be saved", "db", flagDBPath, "err", err)
		return nil
	}
	return store
}

func closeStore(store storage.Store) {
	if store == nil {
		return
	}
	if err := store.Close(); err != nil {
		logger.Warn("closing scores database", "err", err)
	}
}

// loadRules resolves the rules, falling back to the defaults on a bad config.
func loadRules() nebula.Rules {
	rules, err := nebula.LoadRules()
	if err != nil {
		logger.Warn("using default rules", "err", err)
	}
	return rules
}

func playerName() string {
	if name := strings.TrimSpace(flagPlayer); name != "" {
		return name
	}
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	return "player"
}

// runtimeConfig sizes the screen from the terminal, defaulting to 80x24.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}
