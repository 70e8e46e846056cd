package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// dialect holds what differs between the SQL backends.
type dialect struct {
	name   string
	schema string

	// insertIgnore is the INSERT statement that skips duplicate run ids.
	insertIgnore string

	// numbered placeholders ($1, $2) instead of ?
	numbered bool
}

// sqlStore implements Store over database/sql.
type sqlStore struct {
	db *sql.DB
	d  dialect
}

func openSQL(driver, dsn string, d dialect) (*sqlStore, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open %s database: %w", d.name, err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to %s database: %w", d.name, err)
	}

	s := &sqlStore{db: db, d: d}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return s, nil
}

func (s *sqlStore) migrate() error {
	_, err := s.db.Exec(s.d.schema)
	return err
}

// rebind rewrites ? placeholders for dialects that number them.
func (s *sqlStore) rebind(query string) string {
	if !s.d.numbered {
		return query
	}
	return rebindNumbered(query)
}

func rebindNumbered(query string) string {
	var sb strings.Builder
	sb.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// Close closes the database connection.
func (s *sqlStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *sqlStore) SaveScore(ctx context.Context, sc Score) error {
	if sc.GameID == "" {
		return fmt.Errorf("storage: cannot save score: empty game id")
	}
	if sc.RunID == "" {
		sc.RunID = uuid.NewString()
	}

	_, err := s.db.ExecContext(ctx, s.rebind(s.d.insertIgnore),
		sc.RunID, sc.GameID, sc.Player, sc.Score, sc.Moves, sc.Crafted, sc.HazardsCleared,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save score: %w", err)
	}
	return nil
}

func (s *sqlStore) TopScores(ctx context.Context, gameID string, limit int) ([]Score, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	rows, err := s.db.QueryContext(ctx, s.rebind(
		`SELECT id, run_id, game_id, player, score, moves, crafted, hazards_cleared, created_at
		 FROM scores
		 WHERE game_id = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`),
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []Score
	for rows.Next() {
		var e Score
		var createdAt any
		if err := rows.Scan(&e.ID, &e.RunID, &e.GameID, &e.Player, &e.Score,
			&e.Moves, &e.Crafted, &e.HazardsCleared, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

func (s *sqlStore) HighScore(ctx context.Context, gameID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRowContext(ctx, s.rebind(
		"SELECT MAX(score) FROM scores WHERE game_id = ?"),
		gameID,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

func (s *sqlStore) Stats(ctx context.Context, gameID string) (Stats, error) {
	stats := Stats{GameID: gameID}

	var lastPlayed any
	err := s.db.QueryRowContext(ctx, s.rebind(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), COALESCE(SUM(score), 0),
		        COALESCE(SUM(moves), 0), COALESCE(SUM(crafted), 0), COALESCE(SUM(hazards_cleared), 0),
		        MAX(created_at)
		 FROM scores WHERE game_id = ?`),
		gameID,
	).Scan(&stats.Runs, &stats.HighScore, &stats.AvgScore, &stats.TotalScore,
		&stats.TotalMoves, &stats.ToolsCrafted, &stats.HazardsCleared, &lastPlayed)
	if err != nil {
		return Stats{GameID: gameID}, fmt.Errorf("storage: cannot get game stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)
	return stats, nil
}
