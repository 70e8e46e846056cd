package storage

import (
	_ "github.com/lib/pq" // PostgreSQL driver
)

var postgresDialect = dialect{
	name: "postgres",
	schema: `
		CREATE TABLE IF NOT EXISTS scores (
			id BIGSERIAL PRIMARY KEY,
			run_id TEXT NOT NULL UNIQUE,
			game_id TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			score INTEGER NOT NULL,
			moves INTEGER NOT NULL DEFAULT 0,
			crafted INTEGER NOT NULL DEFAULT 0,
			hazards_cleared INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(game_id, score DESC);
	`,
	insertIgnore: `INSERT INTO scores
		(run_id, game_id, player, score, moves, crafted, hazards_cleared)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (run_id) DO NOTHING`,
	numbered: true,
}

// OpenPostgres connects to a PostgreSQL leaderboard and creates the schema.
func OpenPostgres(dsn string) (Store, error) {
	s, err := openSQL("postgres", dsn, postgresDialect)
	if err != nil {
		return nil, err
	}
	return s, nil
}
