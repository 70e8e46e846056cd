package storage

import (
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

var sqliteDialect = dialect{
	name: "sqlite",
	schema: `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			game_id TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			score INTEGER NOT NULL,
			moves INTEGER NOT NULL DEFAULT 0,
			crafted INTEGER NOT NULL DEFAULT 0,
			hazards_cleared INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(game_id, score DESC);
	`,
	insertIgnore: `INSERT OR IGNORE INTO scores
		(run_id, game_id, player, score, moves, crafted, hazards_cleared)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
}

// OpenSQLite creates or opens a SQLite leaderboard at dbPath.
// A leading ~ is expanded and missing parent directories are created.
func OpenSQLite(dbPath string) (Store, error) {
	path, err := expandPath(dbPath)
	if err != nil {
		return nil, err
	}
	s, err := openSQL("sqlite", path, sqliteDialect)
	if err != nil {
		return nil, err
	}
	return s, nil
}
