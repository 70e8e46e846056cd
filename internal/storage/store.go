// Package storage persists the score leaderboard.
//
// Two backends share one implementation: SQLite via the pure-Go
// modernc.org/sqlite driver (the default, no CGO) and PostgreSQL via lib/pq.
// Open picks the backend from the DSN.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultLimit is the number of rows TopScores returns when limit <= 0.
const DefaultLimit = 10

// Score is one finished run.
type Score struct {
	ID             int64
	RunID          string // uuid of the run
	GameID         string
	Player         string
	Score          int
	Moves          int
	Crafted        int
	HazardsCleared int
	CreatedAt      time.Time
}

// Stats contains aggregated statistics for a game.
type Stats struct {
	GameID         string
	Runs           int
	HighScore      int
	AvgScore       float64
	TotalScore     int64
	TotalMoves     int64
	ToolsCrafted   int64
	HazardsCleared int64
	LastPlayed     time.Time
}

// Store is a score leaderboard.
type Store interface {
	// SaveScore records a finished run. A run id that was already saved is
	// ignored, so a run is never counted twice.
	SaveScore(ctx context.Context, s Score) error

	// TopScores returns the best runs for gameID, highest score first.
	TopScores(ctx context.Context, gameID string, limit int) ([]Score, error)

	// HighScore returns the best score for gameID, or 0 when none exist.
	HighScore(ctx context.Context, gameID string) (int, error)

	// Stats returns aggregates over every run of gameID.
	Stats(ctx context.Context, gameID string) (Stats, error)

	Close() error
}

// Open connects to the leaderboard at dsn. postgres:// and postgresql://
// DSNs select PostgreSQL; anything else is a SQLite file path.
func Open(dsn string) (Store, error) {
	if IsPostgresDSN(dsn) {
		return OpenPostgres(dsn)
	}
	return OpenSQLite(dsn)
}

// IsPostgresDSN reports whether dsn names a PostgreSQL server.
func IsPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// expandPath resolves a leading ~ and creates the parent directory.
func expandPath(dbPath string) (string, error) {
	if dbPath == "" {
		return "", fmt.Errorf("storage: empty database path")
	}
	if dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}
	return dbPath, nil
}

var timeLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999 -0700 MST",
}

// parseTime handles the shapes drivers return for timestamp columns.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case []byte:
		return parseTime(string(t))
	case string:
		for _, layout := range timeLayouts {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}
