// Package storage provides SQLite-based persistence for simulation runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for run persistence.
type Store struct {
	db *sql.DB
}

// Run is the outcome of one autoplayed session.
type Run struct {
	ID         int64
	LevelID    string
	Strategy   string
	Seed       int64
	Score      int
	Moves      int // Moves made
	MaxChain   int
	Reshuffles int
	Cleared    bool // Target reached within the move limit
	CreatedAt  time.Time
}

// LevelStats contains aggregated statistics for one level.
type LevelStats struct {
	LevelID   string
	Runs      int
	Cleared   int
	BestScore int
	AvgScore  float64
	AvgMoves  float64
	MaxChain  int
	LastRun   time.Time
}

// ClearRate returns the share of runs that cleared the level.
func (s LevelStats) ClearRate() float64 {
	if s.Runs == 0 {
		return 0
	}
	return float64(s.Cleared) / float64(s.Runs)
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level_id TEXT NOT NULL,
			strategy TEXT NOT NULL,
			seed INTEGER NOT NULL,
			score INTEGER NOT NULL,
			moves INTEGER NOT NULL DEFAULT 0,
			max_chain INTEGER NOT NULL DEFAULT 0,
			reshuffles INTEGER NOT NULL DEFAULT 0,
			cleared INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_level_id ON runs(level_id);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(level_id, score DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a finished run.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(r Run) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs (level_id, strategy, seed, score, moves, max_chain, reshuffles, cleared)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.LevelID, r.Strategy, r.Seed, r.Score, r.Moves, r.MaxChain, r.Reshuffles, r.Cleared,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RunsForLevel retrieves the best N runs for the given level.
// Results are ordered by score descending.
func (s *Store) RunsForLevel(levelID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, level_id, strategy, seed, score, moves, max_chain, reshuffles, cleared, created_at
		 FROM runs
		 WHERE level_id = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		levelID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt any
		if err := rows.Scan(
			&r.ID,
			&r.LevelID,
			&r.Strategy,
			&r.Seed,
			&r.Score,
			&r.Moves,
			&r.MaxChain,
			&r.Reshuffles,
			&r.Cleared,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTimestamp(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// ClearRuns deletes all runs for the given level.
func (s *Store) ClearRuns(levelID string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE level_id = ?", levelID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// LevelStats retrieves aggregated statistics for a specific level.
// A level without runs yields zero statistics.
func (s *Store) LevelStats(levelID string) (*LevelStats, error) {
	stats := &LevelStats{LevelID: levelID}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(cleared), 0), COALESCE(MAX(score), 0),
		        COALESCE(AVG(score), 0), COALESCE(AVG(moves), 0), COALESCE(MAX(max_chain), 0)
		 FROM runs WHERE level_id = ?`,
		levelID,
	).Scan(&stats.Runs, &stats.Cleared, &stats.BestScore, &stats.AvgScore, &stats.AvgMoves, &stats.MaxChain)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}

	var lastRun any
	err = s.db.QueryRow(
		`SELECT created_at FROM runs WHERE level_id = ? ORDER BY created_at DESC LIMIT 1`,
		levelID,
	).Scan(&lastRun)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last run: %w", err)
	}
	if err == nil {
		stats.LastRun = parseTimestamp(lastRun)
	}

	return stats, nil
}

// AllLevelStats retrieves statistics for every level that has runs.
func (s *Store) AllLevelStats() (map[string]*LevelStats, error) {
	rows, err := s.db.Query(
		`SELECT level_id, COUNT(*), SUM(cleared), MAX(score), AVG(score), AVG(moves), MAX(max_chain), MAX(created_at)
		 FROM runs
		 GROUP BY level_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all level stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*LevelStats)
	for rows.Next() {
		var st LevelStats
		var lastRun any
		if err := rows.Scan(
			&st.LevelID,
			&st.Runs,
			&st.Cleared,
			&st.BestScore,
			&st.AvgScore,
			&st.AvgMoves,
			&st.MaxChain,
			&lastRun,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastRun = parseTimestamp(lastRun)
		stats[st.LevelID] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// parseTimestamp handles both time.Time and string datetimes from the driver.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
