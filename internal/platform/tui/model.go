package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/nebula-forge/internal/core"
	"github.com/vovakirdan/nebula-forge/internal/games/nebula"
	"github.com/vovakirdan/nebula-forge/internal/registry"
	"github.com/vovakirdan/nebula-forge/internal/storage"
)

const (
	saveTimeout = 3 * time.Second
	// maxPending bounds the key presses held for later ticks.
	maxPending = 8
)

// snapshotter is implemented by games that expose run statistics.
type snapshotter interface {
	Snapshot() nebula.Snapshot
}

// GameModel is the Bubble Tea model that runs one game.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	store      storage.Store
	logger     *log.Logger
	player     string
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	pending    []core.Action
	gameState  core.GameState
	keys       KeyMap
	help       help.Model
	runID      string
	scoreSaved bool
	allowBack  bool
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a model for game. store may be nil.
func NewGameModel(game registry.Game, store storage.Store, cfg core.RuntimeConfig, player string, logger *log.Logger) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.Default()
	}

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-1, 1)),
		store:      store,
		logger:     logger,
		player:     player,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keys:       DefaultKeyMap(),
		help:       help.New(),
		runID:      uuid.NewString(),
	}
}

// Init starts the game and the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// Resizing keeps the game; the board is redrawn centered.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, max(msg.Height-1, 1))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	switch action := m.keys.Action(msg); action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionBack:
		if m.allowBack && (m.gameState.GameOver || m.gameState.Paused) {
			m.backToMenu = true
		}
	case core.ActionNone:
	default:
		// Each tick runs one action, so presses between ticks wait in order.
		if len(m.pending) < maxPending {
			m.pending = append(m.pending, action)
		}
	}
	return m, nil
}

func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	wasOver := m.gameState.GameOver

	m.inputFrame.Clear()
	if len(m.pending) > 0 {
		m.inputFrame.Set(m.pending[0])
		m.pending = m.pending[1:]
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if wasOver && !m.gameState.GameOver {
		m.runID = uuid.NewString()
		m.scoreSaved = false
	}
	if m.gameState.GameOver && !m.scoreSaved {
		m.scoreSaved = true
		m.saveScore()
	}

	return m, tickCmd(m.config.TickRate)
}

// saveScore records the finished run. Failures are logged and play goes on.
func (m GameModel) saveScore() {
	if m.store == nil {
		return
	}

	score := storage.Score{
		RunID:  m.runID,
		GameID: m.game.ID(),
		Player: m.player,
		Score:  m.gameState.Score,
	}
	if s, ok := m.game.(snapshotter); ok {
		snap := s.Snapshot()
		score.Moves = snap.Moves
		score.Crafted = snap.Crafted
		score.HazardsCleared = snap.HazardsCleared
	}

	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	if err := m.store.SaveScore(ctx, score); err != nil {
		m.logger.Error("failed to save score", "game", score.GameID, "err", err)
	}
}

// View renders the game and the help bar.
func (m GameModel) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// IsQuitting reports whether the player asked to quit.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu reports whether the player asked to return to the menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays game full-screen until the player quits.
func Run(game registry.Game, store storage.Store, cfg core.RuntimeConfig, player string, logger *log.Logger) error {
	model := NewGameModel(game, store, cfg, player, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
