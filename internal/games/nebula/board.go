// Package nebula implements Nebula Forge: a turn-based grid game where the
// player collects resources, crafts tools and survives hazards on a 10x10 board.
//
// State is the authoritative game model and is driven by commands
// (Move, CraftTool, UseTool, Reset). Game adapts it to the arcade's
// tick-driven registry.Game interface.
package nebula

// GridSize is the board dimension.
const GridSize = 10

// Cell is the content of one board square.
type Cell uint8

const (
	CellEmpty Cell = iota
	CellPlayer
	CellResource
	CellHazard
)

// String returns the cell name.
func (c Cell) String() string {
	switch c {
	case CellEmpty:
		return "empty"
	case CellPlayer:
		return "player"
	case CellResource:
		return "resource"
	case CellHazard:
		return "hazard"
	default:
		return "unknown"
	}
}

// IsItem reports whether the cell holds something the populator places.
func (c Cell) IsItem() bool {
	return c == CellResource || c == CellHazard
}

// Position is a board coordinate. X grows right, Y grows down.
type Position struct {
	X, Y int
}

// Add returns the position offset by (dx, dy).
func (p Position) Add(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// InBounds reports whether p lies on the board.
func InBounds(p Position) bool {
	return p.X >= 0 && p.X < GridSize && p.Y >= 0 && p.Y < GridSize
}

// Center is the player's starting square.
func Center() Position {
	return Position{X: GridSize / 2, Y: GridSize / 2}
}

// Grid is the board, indexed [y][x]. It is a value type: copying a Grid
// copies every cell.
type Grid [GridSize][GridSize]Cell

// At returns the cell at p. Out-of-bounds positions read as empty.
func (g *Grid) At(p Position) Cell {
	if !InBounds(p) {
		return CellEmpty
	}
	return g[p.Y][p.X]
}

// Set writes the cell at p. Out-of-bounds positions are ignored.
func (g *Grid) Set(p Position, c Cell) {
	if InBounds(p) {
		g[p.Y][p.X] = c
	}
}

// Count returns how many cells hold c.
func (g *Grid) Count(c Cell) int {
	n := 0
	for y := range GridSize {
		for x := range GridSize {
			if g[y][x] == c {
				n++
			}
		}
	}
	return n
}

// ItemCount returns the combined number of resource and hazard cells.
func (g *Grid) ItemCount() int {
	return g.Count(CellResource) + g.Count(CellHazard)
}

// Find returns every position holding c, in row-major order.
func (g *Grid) Find(c Cell) []Position {
	var out []Position
	for y := range GridSize {
		for x := range GridSize {
			if g[y][x] == c {
				out = append(out, Position{X: x, Y: y})
			}
		}
	}
	return out
}

// EmptyCells returns every empty position in row-major order.
func (g *Grid) EmptyCells() []Position {
	return g.Find(CellEmpty)
}

// Neighborhood returns the in-bounds positions of the 3x3 block centered on p,
// including p itself.
func Neighborhood(p Position) []Position {
	out := make([]Position, 0, 9)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			n := p.Add(dx, dy)
			if InBounds(n) {
				out = append(out, n)
			}
		}
	}
	return out
}
