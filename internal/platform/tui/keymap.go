package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/nebula-forge/internal/core"
)

// KeyMap holds the in-game key bindings.
type KeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding
	Right       key.Binding
	CraftShield key.Binding
	CraftPulse  key.Binding
	Pulse       key.Binding
	Pause       key.Binding
	Restart     key.Binding
	Back        key.Binding
	Help        key.Binding
	Quit        key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.CraftShield, k.CraftPulse, k.Pulse, k.Restart, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.CraftShield, k.CraftPulse, k.Pulse},
		{k.Pause, k.Restart, k.Back},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w", "k"),
			key.WithHelp("↑/w", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s", "j"),
			key.WithHelp("↓/s", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "a", "h"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d", "l"),
			key.WithHelp("→/d", "right"),
		),
		CraftShield: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "craft shield"),
		),
		CraftPulse: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "craft pulse"),
		),
		Pulse: key.NewBinding(
			key.WithKeys(" ", "e"),
			key.WithHelp("space", "pulse"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "menu"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

var actionBindings = []struct {
	binding func(KeyMap) key.Binding
	action  core.Action
}{
	{func(k KeyMap) key.Binding { return k.Up }, core.ActionUp},
	{func(k KeyMap) key.Binding { return k.Down }, core.ActionDown},
	{func(k KeyMap) key.Binding { return k.Left }, core.ActionLeft},
	{func(k KeyMap) key.Binding { return k.Right }, core.ActionRight},
	{func(k KeyMap) key.Binding { return k.CraftShield }, core.ActionCraftShield},
	{func(k KeyMap) key.Binding { return k.CraftPulse }, core.ActionCraftPulse},
	{func(k KeyMap) key.Binding { return k.Pulse }, core.ActionUsePulse},
	{func(k KeyMap) key.Binding { return k.Pause }, core.ActionPause},
	{func(k KeyMap) key.Binding { return k.Restart }, core.ActionRestart},
	{func(k KeyMap) key.Binding { return k.Back }, core.ActionBack},
	{func(k KeyMap) key.Binding { return k.Quit }, core.ActionQuit},
}

// Action translates a key press to a game action, or ActionNone.
func (k KeyMap) Action(msg tea.KeyMsg) core.Action {
	for _, ab := range actionBindings {
		if key.Matches(msg, ab.binding(k)) {
			return ab.action
		}
	}
	return core.ActionNone
}

// MenuKeyMap holds the title menu bindings.
type MenuKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k MenuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k MenuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultMenuKeyMap returns the default menu bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w", "k"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s", "j"),
			key.WithHelp("↓", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "select"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
