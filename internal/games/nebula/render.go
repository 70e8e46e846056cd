package nebula

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/nebula-forge/internal/core"
)

const (
	hudHeight = 2
	cellWidth = 2
	boardW    = GridSize*cellWidth + 3 // Box border plus one column padding
	boardH    = GridSize + 2
	infoRows  = 4 // Resources, tools, status, controls

	minScreenW = boardW + 8
	minScreenH = hudHeight + boardH + infoRows - 1
)

// Glyph returns the rune and color a cell is drawn with.
func Glyph(c Cell) (rune, core.Color) {
	switch c {
	case CellPlayer:
		return '@', core.ColorBrightCyan
	case CellResource:
		return '*', core.ColorYellow
	case CellHazard:
		return 'X', core.ColorBrightRed
	default:
		return '.', core.ColorGray
	}
}

// Render draws the HUD, board and inventory.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.state == nil {
		return
	}

	w, h := dst.Width(), dst.Height()
	if w < minScreenW || h < minScreenH {
		dst.DrawTextCentered(h/2-1, "Window too small")
		dst.DrawTextCentered(h/2, fmt.Sprintf("Need %dx%d", minScreenW, minScreenH))
		return
	}

	snap := g.state.Snapshot()

	hud := fmt.Sprintf(" Nebula Forge  Score: %d  Moves: %d  Hazards cleared: %d",
		snap.Score, snap.Moves, snap.HazardsCleared)
	dst.DrawTextColored(0, 0, hud, core.ColorWhite)
	dst.DrawHLine(0, 1, w, '─')

	board := dst.Bounds().Centered(boardW, boardH)
	board.Y = hudHeight
	renderBoard(dst, board, snap.Grid)

	y := board.Bottom()
	dst.DrawTextColored(board.X, y, resourceLine(snap.Resources), core.ColorYellow)
	dst.DrawTextColored(board.X, y+1, g.toolLine(snap), core.ColorCyan)

	status := snap.Last.Describe()
	statusColor := core.ColorDefault
	switch snap.Last.Outcome {
	case OutcomeGameOver, OutcomeRejected, OutcomeIgnored:
		statusColor = core.ColorOrange
	case OutcomeCrafted, OutcomeUsed, OutcomeAbsorbed:
		statusColor = core.ColorGreen
	}
	dst.DrawTextColored(1, y+2, status, statusColor)
	if y+3 < h {
		dst.DrawTextColored(1, y+3, g.Controls(), core.ColorGray)
	}

	switch {
	case snap.GameOver:
		renderOverlay(dst, "Game Over", fmt.Sprintf("Score: %d", snap.Score), "Press R to restart")
	case g.paused:
		renderOverlay(dst, "Paused", "Press P to continue", "")
	}
}

func renderBoard(dst *core.Screen, r core.Rect, grid Grid) {
	dst.DrawBox(r)
	for y := range GridSize {
		for x := range GridSize {
			ch, col := Glyph(grid[y][x])
			dst.SetColored(r.X+2+x*cellWidth, r.Y+1+y, ch, col)
		}
	}
}

func resourceLine(res ResourceCounts) string {
	parts := make([]string, 0, numResources)
	for _, k := range ResourceKinds {
		parts = append(parts, fmt.Sprintf("%s %d", k, res.Of(k)))
	}
	return strings.Join(parts, "  ")
}

func (g *Game) toolLine(snap Snapshot) string {
	parts := make([]string, 0, numTools)
	for _, k := range ToolKinds {
		mark := ""
		if snap.CanCraft(g.rules, k) {
			mark = "+"
		}
		parts = append(parts, fmt.Sprintf("%s %d%s", k, snap.Tools.Of(k), mark))
	}
	return strings.Join(parts, "  ")
}

func renderOverlay(dst *core.Screen, title, line1, line2 string) {
	width := max(len(title), len(line1), len(line2)) + 6
	height := 5
	if line2 != "" {
		height = 6
	}
	box := dst.Bounds().Centered(width, height)
	dst.FillRect(box, ' ')
	dst.DrawBox(box)
	dst.DrawTextColored(box.X+(width-len(title))/2, box.Y+1, title, core.ColorBrightMagenta)
	dst.DrawText(box.X+(width-len(line1))/2, box.Y+3, line1)
	if line2 != "" {
		dst.DrawText(box.X+(width-len(line2))/2, box.Y+4, line2)
	}
}
