package tui

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/nebula-forge/internal/core"
	"github.com/vovakirdan/nebula-forge/internal/games/nebula"
	"github.com/vovakirdan/nebula-forge/internal/storage"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestKeyMapActions(t *testing.T) {
	keys := DefaultKeyMap()
	tests := []struct {
		key  string
		want core.Action
	}{
		{"up", core.ActionUp},
		{"w", core.ActionUp},
		{"a", core.ActionLeft},
		{"d", core.ActionRight},
		{"1", core.ActionCraftShield},
		{"2", core.ActionCraftPulse},
		{" ", core.ActionUsePulse},
		{"p", core.ActionPause},
		{"r", core.ActionRestart},
		{"esc", core.ActionBack},
		{"q", core.ActionQuit},
		{"z", core.ActionNone},
	}

	for _, tt := range tests {
		if got := keys.Action(keyMsg(tt.key)); got != tt.want {
			t.Errorf("Action(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(12, 2)
	s.DrawTextColored(0, 0, "hazard", core.ColorBrightRed)
	s.DrawText(0, 1, "plain")

	out := RenderScreen(s)
	if !strings.Contains(out, "hazard") || !strings.Contains(out, "plain") {
		t.Errorf("rendered output lost text: %q", out)
	}
	if got := strings.Count(out, "\n"); got != 1 {
		t.Errorf("expected 2 lines, got %d newlines", got)
	}
}

func newTestModel(t *testing.T, store storage.Store) GameModel {
	t.Helper()
	game := nebula.NewWithRules(nebula.DefaultRules())
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 9}
	m := NewGameModel(game, store, cfg, "tester", log.New(io.Discard))
	m.Init()
	return m
}

func step(t *testing.T, m GameModel, msgs ...tea.Msg) GameModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(GameModel)
	}
	return m
}

func TestGameModelAppliesKeysOnTick(t *testing.T) {
	m := newTestModel(t, nil)
	m = step(t, m, keyMsg("p"), TickMsg{})

	if !m.gameState.Paused {
		t.Error("p followed by a tick should pause")
	}
	if !strings.Contains(m.View(), "Paused") {
		t.Error("view should show the pause overlay")
	}
}

func TestGameModelQueuesKeysAcrossTicks(t *testing.T) {
	rules := nebula.DefaultRules()
	rules.SpawnBatch = 0
	rules.RefillBelow = 0
	game := nebula.NewWithRules(rules)
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 9}
	m := NewGameModel(game, nil, cfg, "tester", log.New(io.Discard))
	m.Init()

	// Craft then move, both pressed before the next tick.
	m = step(t, m, keyMsg("1"), keyMsg("d"), TickMsg{})
	if last := game.Snapshot().Last; last.Command != nebula.CommandCraft {
		t.Fatalf("first tick ran %v, want craft", last.Command)
	}

	m = step(t, m, TickMsg{})
	snap := game.Snapshot()
	if snap.Last.Command != nebula.CommandMove || snap.Player.X != 6 {
		t.Errorf("second tick: last = %v, player = %v", snap.Last.Command, snap.Player)
	}

	m = step(t, m, TickMsg{})
	if game.Snapshot().Moves != 1 {
		t.Error("an empty queue should not act")
	}

	for range maxPending + 4 {
		m = step(t, m, keyMsg("a"))
	}
	if len(m.pending) != maxPending {
		t.Errorf("pending = %d, want %d", len(m.pending), maxPending)
	}
}

func TestGameModelQuit(t *testing.T) {
	m := newTestModel(t, nil)
	next, cmd := m.Update(keyMsg("q"))
	if !next.(GameModel).IsQuitting() {
		t.Error("q should quit")
	}
	if cmd == nil {
		t.Error("quitting should return tea.Quit")
	}
}

func TestGameModelBackOnlyWhenAllowed(t *testing.T) {
	m := newTestModel(t, nil)
	m = step(t, m, keyMsg("p"), TickMsg{}, keyMsg("esc"))
	if m.BackToMenu() {
		t.Error("local play has no menu to return to")
	}

	m.allowBack = true
	m = step(t, m, keyMsg("esc"))
	if !m.BackToMenu() {
		t.Error("esc while paused should return to the menu")
	}
}

func TestGameModelSavesScoreOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// A board made only of hazards ends the run on the first move.
	rules := nebula.DefaultRules()
	rules.SpawnBatch = 99
	rules.ResourceChance = 0
	game := nebula.NewWithRules(rules)
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 9}
	m := NewGameModel(game, store, cfg, "tester", log.New(io.Discard))
	m.Init()

	m = step(t, m, keyMsg("d"), TickMsg{})
	if !m.gameState.GameOver {
		t.Fatal("moving into a hazard should end the run")
	}
	m = step(t, m, TickMsg{}, TickMsg{}, keyMsg("d"), TickMsg{})

	stats, err := store.Stats(context.Background(), nebula.ID)
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Runs != 1 {
		t.Errorf("runs = %d, want 1", stats.Runs)
	}

	// Restarting begins a new run that is saved separately.
	m = step(t, m, keyMsg("r"), TickMsg{}, keyMsg("d"), TickMsg{})
	if !m.gameState.GameOver {
		t.Fatal("second run should also end on the first move")
	}
	stats, err = store.Stats(context.Background(), nebula.ID)
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Runs != 2 {
		t.Errorf("runs after restart = %d, want 2", stats.Runs)
	}
	top, err := store.TopScores(context.Background(), nebula.ID, 1)
	if err != nil || len(top) != 1 || top[0].Player != "tester" {
		t.Errorf("TopScores = %+v, %v", top, err)
	}
}

func TestMenuChoices(t *testing.T) {
	m := NewMenuModel(nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24}, "ada")
	if !strings.Contains(m.View(), "Welcome, ada") {
		t.Error("menu should greet the player")
	}

	next, _ := m.Update(keyMsg("enter"))
	if got := next.(MenuModel).Chosen(); got != ChoicePlay {
		t.Errorf("first entry = %v, want play", got)
	}

	next, _ = m.Update(keyMsg("j"))
	next, _ = next.(MenuModel).Update(keyMsg("enter"))
	if got := next.(MenuModel).Chosen(); got != ChoiceScores {
		t.Errorf("second entry = %v, want scores", got)
	}
}

func TestScoreboardEmpty(t *testing.T) {
	m := NewScoreboardModel(nil, nebula.ID, "Nebula Forge", 80, 24)
	view := m.View()
	if !strings.Contains(view, "No scores recorded yet") {
		t.Error("empty scoreboard should say so")
	}
	if !strings.Contains(view, "disabled") {
		t.Error("scoreboard without a store should say saving is disabled")
	}
}

func TestScoreRows(t *testing.T) {
	rows := ScoreRows([]storage.Score{
		{Score: 120, Player: "ada", Moves: 9, Crafted: 1, HazardsCleared: 2},
		{Score: 80},
	})
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0][0] != "#1" || rows[0][1] != "120" || rows[0][2] != "ada" {
		t.Errorf("unexpected first row: %v", rows[0])
	}
	if rows[1][2] != "-" || rows[1][6] != "-" {
		t.Errorf("missing player and date should render as '-': %v", rows[1])
	}
	if len(rows[0]) != len(ScoreColumns()) {
		t.Error("row width should match the columns")
	}
}

func TestSessionModelFlow(t *testing.T) {
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 3}
	var m tea.Model = NewSessionModel(nil, cfg, "ada", log.New(io.Discard))

	m, cmd := m.Update(keyMsg("enter"))
	if m.(SessionModel).screen != screenGame {
		t.Fatal("Play should open the game")
	}
	if cmd == nil {
		t.Error("starting a game should schedule a tick")
	}

	// Back only works once the game is paused.
	m, _ = m.Update(keyMsg("esc"))
	if m.(SessionModel).screen != screenGame {
		t.Fatal("back should be ignored while playing")
	}
	m, _ = m.Update(keyMsg("p"))
	m, _ = m.Update(TickMsg{})
	m, _ = m.Update(keyMsg("esc"))
	if m.(SessionModel).screen != screenMenu {
		t.Fatal("back from a paused game should return to the menu")
	}

	m, _ = m.Update(keyMsg("j"))
	m, _ = m.Update(keyMsg("enter"))
	if m.(SessionModel).screen != screenScores {
		t.Fatal("High Scores should open the scoreboard")
	}
	m, _ = m.Update(keyMsg("esc"))
	if m.(SessionModel).screen != screenMenu {
		t.Fatal("back from the scoreboard should return to the menu")
	}
}

func TestNewSSHServer(t *testing.T) {
	cfg := DefaultSSHServerConfig()
	cfg.Address = "127.0.0.1:0"
	cfg.HostKeyPath = filepath.Join(t.TempDir(), "keys", "host_key")

	srv, err := NewSSHServer(cfg, nil, log.New(io.Discard))
	if err != nil {
		t.Fatalf("NewSSHServer() failed: %v", err)
	}
	if srv.Addr() != "127.0.0.1:0" {
		t.Errorf("Addr() = %q", srv.Addr())
	}
}
