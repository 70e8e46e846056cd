package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/nebula-forge/internal/core"
	"github.com/vovakirdan/nebula-forge/internal/games/nebula"
	"github.com/vovakirdan/nebula-forge/internal/storage"
)

// MenuChoice is an entry of the title menu.
type MenuChoice int

const (
	ChoiceNone MenuChoice = iota
	ChoicePlay
	ChoiceScores
	ChoiceQuit
)

var menuItems = []struct {
	choice MenuChoice
	label  string
}{
	{ChoicePlay, "Play"},
	{ChoiceScores, "High Scores"},
	{ChoiceQuit, "Quit"},
}

// MenuModel is the title screen shown to SSH players.
type MenuModel struct {
	cursor    int
	width     int
	height    int
	player    string
	highScore int
	keys      MenuKeyMap
	help      help.Model
	chosen    MenuChoice
}

// NewMenuModel creates a title menu. store may be nil.
func NewMenuModel(store storage.Store, cfg core.RuntimeConfig, player string) MenuModel {
	m := MenuModel{
		width:  cfg.ScreenW,
		height: cfg.ScreenH,
		player: player,
		keys:   DefaultMenuKeyMap(),
		help:   help.New(),
	}
	if store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		if high, err := store.HighScore(ctx, nebula.ID); err == nil {
			m.highScore = high
		}
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.chosen = ChoiceQuit
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(menuItems)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Select):
			m.chosen = menuItems[m.cursor].choice
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	}
	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("N E B U L A   F O R G E"), m.width))
	b.WriteString("\n\n")

	sub := "Collect. Craft. Survive."
	if m.player != "" {
		sub = fmt.Sprintf("Welcome, %s. Collect. Craft. Survive.", m.player)
	}
	b.WriteString(centerText(dimStyle.Render(sub), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(dimStyle.Render(fmt.Sprintf("Best score: %d", m.highScore)), m.width))
	b.WriteString("\n\n")

	for i, item := range menuItems {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(cursor+item.label, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(helpStyle.Render(m.help.View(m.keys)), m.width))
	b.WriteString("\n")
	return b.String()
}

// Chosen returns the selected entry, or ChoiceNone.
func (m MenuModel) Chosen() MenuChoice {
	return m.chosen
}

// RunMenu runs the title menu locally. Players get the same flow as over SSH.
func RunMenu(store storage.Store, cfg core.RuntimeConfig, player string, logger *log.Logger) error {
	p := tea.NewProgram(
		NewSessionModel(store, cfg, player, logger),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
