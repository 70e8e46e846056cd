package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/nebula-forge/internal/platform/web"
	"github.com/vovakirdan/nebula-forge/internal/session"
)

var (
	flagWebAddr        string
	flagSessionTimeout int
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the Nebula Forge HTTP server",
	Long: `Start an HTTP server with a JSON API and a websocket snapshot stream.

Endpoints:
  POST   /api/sessions               Start a game ({"player","seed"} optional)
  GET    /api/sessions/{id}          Current snapshot
  POST   /api/sessions/{id}/move     {"direction":"up"} or {"dx":0,"dy":-1}
  POST   /api/sessions/{id}/craft    {"tool":"shield"}
  POST   /api/sessions/{id}/use      {"tool":"pulse"}
  POST   /api/sessions/{id}/reset
  DELETE /api/sessions/{id}
  GET    /api/sessions/{id}/ws       Websocket; send console commands as text
  GET    /api/scores?limit=N
  GET    /api/health

Examples:
  nebula web
  nebula web --addr 127.0.0.1:9000 --session-timeout 10`,
	Args: cobra.NoArgs,
	Run:  runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagWebAddr, "addr", ":8080", "HTTP listen address (host:port)")
	webCmd.Flags().IntVar(&flagSessionTimeout, "session-timeout", 30, "Minutes of inactivity before a session is removed")
}

func runWeb(_ *cobra.Command, _ []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := openStore()
	defer closeStore(store)

	webLogger := logger.WithPrefix("nebula-web")
	var saver session.ScoreSaver
	if store != nil {
		saver = store
	}
	manager := session.NewManager(loadRules(), saver, webLogger)

	cfg := web.DefaultConfig()
	cfg.Address = flagWebAddr
	cfg.IdleTimeout = time.Duration(flagSessionTimeout) * time.Minute

	server := web.NewServer(cfg, manager, store, webLogger)
	if err := server.ListenAndServe(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
