package console

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/nebula-forge/internal/games/nebula"
)

// FormatBoard renders a snapshot as plain text: the grid, the inventory and
// the result of the last command.
func FormatBoard(snap nebula.Snapshot) string {
	var sb strings.Builder

	sb.WriteString("   ")
	for x := range nebula.GridSize {
		fmt.Fprintf(&sb, "%d ", x)
	}
	sb.WriteByte('\n')

	for y := range nebula.GridSize {
		fmt.Fprintf(&sb, "%d  ", y)
		for x := range nebula.GridSize {
			r, _ := nebula.Glyph(snap.Grid[y][x])
			sb.WriteRune(r)
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}

	fmt.Fprintf(&sb, "Score %d  Moves %d\n", snap.Score, snap.Moves)
	for i, k := range nebula.ResourceKinds {
		if i > 0 {
			sb.WriteString("  ")
		}
		fmt.Fprintf(&sb, "%s %d", k, snap.Resources.Of(k))
	}
	sb.WriteByte('\n')
	for i, k := range nebula.ToolKinds {
		if i > 0 {
			sb.WriteString("  ")
		}
		fmt.Fprintf(&sb, "%s %d", k, snap.Tools.Of(k))
	}
	sb.WriteByte('\n')

	if msg := snap.Last.Describe(); msg != "" {
		sb.WriteString(msg)
		sb.WriteByte('\n')
	}
	if snap.GameOver {
		fmt.Fprintf(&sb, "GAME OVER. Final score %d. Type reset to play again.\n", snap.Score)
	}
	return sb.String()
}
