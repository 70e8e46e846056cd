package nebula

// State is the authoritative model of one Nebula Forge game.
//
// Every command runs to completion before returning and State does no
// locking; hosts that share a State between goroutines must serialize calls.
// Commands issued after game over are no-ops that report failure.
type State struct {
	rules     Rules
	rng       Rand
	populator *Populator

	grid      Grid
	player    Position
	resources ResourceCounts
	tools     ToolCounts
	score     int
	gameOver  bool

	moves          int
	crafted        int
	hazardsCleared int
	last           Event
}

// NewState creates a game using rng for all random choices and immediately
// resets it to a freshly populated board.
func NewState(rng Rand, rules Rules) *State {
	s := &State{
		rules:     rules,
		rng:       rng,
		populator: NewPopulator(rng, rules.SpawnBatch, rules.ResourceChance),
	}
	s.Reset()
	return s
}

// Reset discards the current game and starts a new one.
func (s *State) Reset() {
	s.grid = Grid{}
	s.player = Center()
	s.grid.Set(s.player, CellPlayer)
	s.resources = ResourceCounts{}
	s.tools = ToolCounts{}
	s.score = 0
	s.gameOver = false
	s.moves = 0
	s.crafted = 0
	s.hazardsCleared = 0

	placed := s.populator.Populate(&s.grid, s.player)
	s.last = Event{Command: CommandReset, Outcome: OutcomeNone, Refilled: placed}
}

// Move steps the player by (dx, dy); exactly one of them must be ±1.
func (s *State) Move(dx, dy int) Outcome {
	ev := Event{Command: CommandMove}

	if s.gameOver {
		ev.Outcome = OutcomeIgnored
		return s.record(ev)
	}
	if !isStep(dx, dy) {
		ev.Outcome = OutcomeInvalid
		return s.record(ev)
	}

	target := s.player.Add(dx, dy)
	if !InBounds(target) {
		ev.Outcome = OutcomeBlocked
		return s.record(ev)
	}

	switch s.grid.At(target) {
	case CellResource:
		kind := ResourceKinds[s.rng.Intn(numResources)]
		s.resources[kind]++
		ev.Outcome = OutcomeCollected
		ev.Resource = kind
		ev.Points = s.rules.CollectPoints

	case CellHazard:
		if s.tools[Shield] == 0 {
			s.gameOver = true
			ev.Outcome = OutcomeGameOver
			return s.record(ev)
		}
		s.tools[Shield]--
		s.hazardsCleared++
		ev.Outcome = OutcomeAbsorbed
		ev.Tool = Shield
		ev.Points = s.rules.AbsorbPoints

	default:
		ev.Outcome = OutcomeMoved
	}

	s.score += ev.Points
	s.grid.Set(s.player, CellEmpty)
	s.player = target
	s.grid.Set(s.player, CellPlayer)
	s.moves++

	if s.grid.ItemCount() < s.rules.RefillBelow {
		ev.Refilled = s.populator.Populate(&s.grid, s.player)
	}
	return s.record(ev)
}

// CraftTool converts resources into one tool. It either pays the full
// recipe and returns true, or changes nothing and returns false.
func (s *State) CraftTool(kind ToolKind) bool {
	ev := Event{Command: CommandCraft, Tool: kind, Outcome: OutcomeRejected}

	switch {
	case s.gameOver:
		ev.Outcome = OutcomeIgnored
	case !kind.valid():
	case s.resources.Covers(s.rules.Recipe(kind)):
		cost := s.rules.Recipe(kind)
		for i := range s.resources {
			s.resources[i] -= cost[i]
		}
		s.tools[kind]++
		s.crafted++
		s.score += s.rules.CraftPoints
		ev.Outcome = OutcomeCrafted
		ev.Points = s.rules.CraftPoints
	}

	return s.record(ev) == OutcomeCrafted
}

// UseTool spends one tool. A Pulse clears every hazard in the 3x3 block
// around the player. Shields only work passively and are rejected here.
func (s *State) UseTool(kind ToolKind) bool {
	ev := Event{Command: CommandUse, Tool: kind, Outcome: OutcomeRejected}

	switch {
	case s.gameOver:
		ev.Outcome = OutcomeIgnored
	case kind != Pulse:
	case s.tools[Pulse] == 0:
	default:
		s.tools[Pulse]--
		for _, p := range Neighborhood(s.player) {
			if s.grid.At(p) == CellHazard {
				s.grid.Set(p, CellEmpty)
				ev.Cleared++
			}
		}
		ev.Points = ev.Cleared * s.rules.PulseHazardPoints
		s.score += ev.Points
		s.hazardsCleared += ev.Cleared
		ev.Outcome = OutcomeUsed
	}

	return s.record(ev) == OutcomeUsed
}

func (s *State) record(ev Event) Outcome {
	s.last = ev
	return ev.Outcome
}

// isStep reports whether (dx, dy) is a single orthogonal step.
func isStep(dx, dy int) bool {
	return (dx == 0) != (dy == 0) && dx >= -1 && dx <= 1 && dy >= -1 && dy <= 1
}

// GameOver reports whether the player has walked into an unshielded hazard.
func (s *State) GameOver() bool {
	return s.gameOver
}

// Score returns the current score.
func (s *State) Score() int {
	return s.score
}

// Player returns the player's position.
func (s *State) Player() Position {
	return s.player
}

// Rules returns the rules this game was created with.
func (s *State) Rules() Rules {
	return s.rules
}
