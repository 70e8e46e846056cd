package nebula

// Snapshot is an immutable copy of a game, safe to hold across commands.
type Snapshot struct {
	Grid      Grid
	Player    Position
	Resources ResourceCounts
	Tools     ToolCounts
	Score     int
	GameOver  bool

	Moves          int
	Crafted        int
	HazardsCleared int
	Last           Event
}

// Snapshot returns a copy of the current game.
func (s *State) Snapshot() Snapshot {
	return Snapshot{
		Grid:           s.grid,
		Player:         s.player,
		Resources:      s.resources,
		Tools:          s.tools,
		Score:          s.score,
		GameOver:       s.gameOver,
		Moves:          s.moves,
		Crafted:        s.crafted,
		HazardsCleared: s.hazardsCleared,
		Last:           s.last,
	}
}

// Items returns the number of resource and hazard cells on the board.
func (s Snapshot) Items() int {
	return s.Grid.ItemCount()
}

// CanCraft reports whether the snapshot's resources cover kind under rules.
func (s Snapshot) CanCraft(rules Rules, kind ToolKind) bool {
	return kind.valid() && s.Resources.Covers(rules.Recipe(kind))
}
