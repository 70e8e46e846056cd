package nebula

import (
	"math/rand"

	"github.com/vovakirdan/nebula-forge/internal/config"
	"github.com/vovakirdan/nebula-forge/internal/core"
	"github.com/vovakirdan/nebula-forge/internal/registry"
)

// ID is the registry and score-table identifier of the game.
const ID = "nebula"

var (
	configPath    string
	configErrorFn func(error)
)

// SetConfigPath sets the rules file used by games created afterwards.
// An empty path uses the default search order. onError, when set, receives
// the load error of every game that falls back to the default rules.
func SetConfigPath(path string, onError func(error)) {
	configPath = path
	configErrorFn = onError
}

// LoadRules resolves the rules for new games. A broken explicit config
// falls back to the defaults and reports the error.
func LoadRules() (Rules, error) {
	cfg, err := config.LoadNebula(configPath)
	return RulesFromConfig(cfg), err
}

func init() {
	registry.Register(ID, func() registry.Game {
		return New()
	})
}

// Game adapts State to the tick-driven registry.Game interface.
// Each tick applies at most one command.
type Game struct {
	rules    Rules
	hasRules bool

	rng   *rand.Rand
	state *State

	paused  bool
	screenW int
	screenH int
}

// New creates a game that loads its rules on the first Reset.
func New() *Game {
	return &Game{}
}

// NewWithRules creates a game with fixed rules.
func NewWithRules(rules Rules) *Game {
	return &Game{rules: rules, hasRules: true}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Nebula Forge"
}

// Reset starts a new run seeded from cfg.Seed.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	if !g.hasRules {
		rules, err := LoadRules()
		if err != nil && configErrorFn != nil {
			configErrorFn(err)
		}
		g.rules = rules
		g.hasRules = true
	}
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.state = NewState(g.rng, g.rules)
	g.paused = false
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
}

// Step applies the highest priority action in the frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.state == nil {
		g.Reset(core.DefaultConfig())
	}

	if in.Has(core.ActionRestart) && g.state.GameOver() {
		g.Reset(core.RuntimeConfig{
			Seed:    g.rng.Int63(),
			ScreenW: g.screenW,
			ScreenH: g.screenH,
		})
		return core.StepResult{State: g.State(), Acted: true}
	}

	if in.Has(core.ActionPause) && !g.state.GameOver() {
		g.paused = !g.paused
		return core.StepResult{State: g.State()}
	}

	if g.paused || g.state.GameOver() {
		return core.StepResult{State: g.State()}
	}

	acted := true
	switch {
	case in.Has(core.ActionUp):
		g.state.Move(0, -1)
	case in.Has(core.ActionDown):
		g.state.Move(0, 1)
	case in.Has(core.ActionLeft):
		g.state.Move(-1, 0)
	case in.Has(core.ActionRight):
		g.state.Move(1, 0)
	case in.Has(core.ActionCraftShield):
		g.state.CraftTool(Shield)
	case in.Has(core.ActionCraftPulse):
		g.state.CraftTool(Pulse)
	case in.Has(core.ActionUsePulse):
		g.state.UseTool(Pulse)
	default:
		acted = false
	}

	return core.StepResult{State: g.State(), Acted: acted}
}

// State returns the coarse game status.
func (g *Game) State() core.GameState {
	if g.state == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.state.Score(),
		GameOver: g.state.GameOver(),
		Paused:   g.paused,
	}
}

// Snapshot returns a copy of the underlying game.
func (g *Game) Snapshot() Snapshot {
	if g.state == nil {
		return Snapshot{}
	}
	return g.state.Snapshot()
}

// Rules returns the rules of the current run.
func (g *Game) Rules() Rules {
	return g.rules
}

// Controls returns the key hint line shown under the board.
func (g *Game) Controls() string {
	return "Arrows/WASD: Move  1: Craft Shield  2: Craft Pulse  Space: Pulse  P: Pause  R: Restart  Q: Quit"
}
