package web

import (
	"strings"

	"github.com/vovakirdan/nebula-forge/internal/games/nebula"
	"github.com/vovakirdan/nebula-forge/internal/session"
	"github.com/vovakirdan/nebula-forge/internal/storage"
)

// PositionDTO is a board coordinate.
type PositionDTO struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// EventDTO describes the last command applied to a game.
type EventDTO struct {
	Command  string `json:"command"`
	Outcome  string `json:"outcome"`
	Message  string `json:"message"`
	Tool     string `json:"tool,omitempty"`
	Resource string `json:"resource,omitempty"`
	Cleared  int    `json:"cleared,omitempty"`
	Refilled int    `json:"refilled,omitempty"`
	Points   int    `json:"points,omitempty"`
}

// SnapshotDTO is the JSON form of nebula.Snapshot. Board rows use the
// console glyphs: '.' empty, '@' player, '*' resource, 'X' hazard.
type SnapshotDTO struct {
	Board          []string       `json:"board"`
	Player         PositionDTO    `json:"player"`
	Resources      map[string]int `json:"resources"`
	Tools          map[string]int `json:"tools"`
	Score          int            `json:"score"`
	GameOver       bool           `json:"game_over"`
	Moves          int            `json:"moves"`
	Crafted        int            `json:"crafted"`
	HazardsCleared int            `json:"hazards_cleared"`
	Last           EventDTO       `json:"last"`
}

// CommandResponse is returned by every command endpoint.
type CommandResponse struct {
	OK       bool        `json:"ok"`
	Outcome  string      `json:"outcome"`
	Message  string      `json:"message"`
	Snapshot SnapshotDTO `json:"snapshot"`
}

// SessionResponse is returned when a session is created or fetched.
type SessionResponse struct {
	ID       string      `json:"id"`
	Player   string      `json:"player,omitempty"`
	Snapshot SnapshotDTO `json:"snapshot"`
}

// ScoreDTO is one leaderboard row.
type ScoreDTO struct {
	Rank           int    `json:"rank"`
	Player         string `json:"player"`
	Score          int    `json:"score"`
	Moves          int    `json:"moves"`
	Crafted        int    `json:"crafted"`
	HazardsCleared int    `json:"hazards_cleared"`
	CreatedAt      string `json:"created_at"`
}

// StatsDTO aggregates every recorded run.
type StatsDTO struct {
	Runs           int     `json:"runs"`
	HighScore      int     `json:"high_score"`
	AvgScore       float64 `json:"avg_score"`
	TotalMoves     int64   `json:"total_moves"`
	ToolsCrafted   int64   `json:"tools_crafted"`
	HazardsCleared int64   `json:"hazards_cleared"`
}

// ScoresResponse is returned by GET /api/scores.
type ScoresResponse struct {
	Enabled bool       `json:"enabled"`
	Scores  []ScoreDTO `json:"scores"`
	Stats   *StatsDTO  `json:"stats,omitempty"`
}

var cellGlyphs = map[nebula.Cell]byte{
	nebula.CellEmpty:    '.',
	nebula.CellPlayer:   '@',
	nebula.CellResource: '*',
	nebula.CellHazard:   'X',
}

func newSnapshotDTO(s nebula.Snapshot) SnapshotDTO {
	board := make([]string, nebula.GridSize)
	for y := 0; y < nebula.GridSize; y++ {
		var row strings.Builder
		for x := 0; x < nebula.GridSize; x++ {
			row.WriteByte(cellGlyphs[s.Grid[y][x]])
		}
		board[y] = row.String()
	}

	resources := make(map[string]int, len(nebula.ResourceKinds))
	for _, k := range nebula.ResourceKinds {
		resources[strings.ToLower(k.String())] = s.Resources.Of(k)
	}
	tools := make(map[string]int, len(nebula.ToolKinds))
	for _, k := range nebula.ToolKinds {
		tools[strings.ToLower(k.String())] = s.Tools.Of(k)
	}

	return SnapshotDTO{
		Board:          board,
		Player:         PositionDTO{X: s.Player.X, Y: s.Player.Y},
		Resources:      resources,
		Tools:          tools,
		Score:          s.Score,
		GameOver:       s.GameOver,
		Moves:          s.Moves,
		Crafted:        s.Crafted,
		HazardsCleared: s.HazardsCleared,
		Last:           newEventDTO(s.Last),
	}
}

func newEventDTO(e nebula.Event) EventDTO {
	dto := EventDTO{
		Command:  e.Command.String(),
		Outcome:  e.Outcome.String(),
		Message:  e.Describe(),
		Cleared:  e.Cleared,
		Refilled: e.Refilled,
		Points:   e.Points,
	}
	if e.Command == nebula.CommandCraft || e.Command == nebula.CommandUse {
		dto.Tool = strings.ToLower(e.Tool.String())
	}
	if e.Outcome == nebula.OutcomeCollected {
		dto.Resource = strings.ToLower(e.Resource.String())
	}
	return dto
}

func newCommandResponse(r session.Result) CommandResponse {
	return CommandResponse{
		OK:       r.OK,
		Outcome:  r.Outcome.String(),
		Message:  r.Snapshot.Last.Describe(),
		Snapshot: newSnapshotDTO(r.Snapshot),
	}
}

func newScoreDTOs(scores []storage.Score) []ScoreDTO {
	out := make([]ScoreDTO, len(scores))
	for i, s := range scores {
		out[i] = ScoreDTO{
			Rank:           i + 1,
			Player:         s.Player,
			Score:          s.Score,
			Moves:          s.Moves,
			Crafted:        s.Crafted,
			HazardsCleared: s.HazardsCleared,
			CreatedAt:      s.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		}
	}
	return out
}

func newStatsDTO(s storage.Stats) *StatsDTO {
	return &StatsDTO{
		Runs:           s.Runs,
		HighScore:      s.HighScore,
		AvgScore:       s.AvgScore,
		TotalMoves:     s.TotalMoves,
		ToolsCrafted:   s.ToolsCrafted,
		HazardsCleared: s.HazardsCleared,
	}
}
