// Package storage provides SQLite-based persistence for finished runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Run outcomes.
const (
	OutcomeFinished = "finished"
	OutcomeCrashed  = "crashed"
	OutcomeAborted  = "aborted"
)

// Store manages the SQLite database connection for run persistence.
type Store struct {
	db *sql.DB
}

// RunRecord is the stored result of one simulator run.
type RunRecord struct {
	ID                int64
	MazeID            string
	Outcome           string
	Distance          int // cells traveled in total
	Turns             int
	EffectiveDistance float64
	Score             float64 // -1 if the simulator reported none
	Duration          time.Duration
	CreatedAt         time.Time
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

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
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
			maze_id TEXT NOT NULL,
			outcome TEXT NOT NULL,
			distance INTEGER NOT NULL,
			turns INTEGER NOT NULL,
			effective_distance REAL NOT NULL,
			score REAL NOT NULL DEFAULT -1,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_maze_id ON runs(maze_id);
		CREATE INDEX IF NOT EXISTS idx_runs_best ON runs(maze_id, distance ASC, turns ASC);
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
func (s *Store) SaveRun(r RunRecord) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs (maze_id, outcome, distance, turns, effective_distance, score, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.MazeID, r.Outcome, r.Distance, r.Turns, r.EffectiveDistance, r.Score,
		r.Duration.Milliseconds(),
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

// BestRuns retrieves the top N runs for the given maze, shortest distance
// first with turns breaking ties.
func (s *Store) BestRuns(mazeID string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	return s.queryRuns(
		`SELECT id, maze_id, outcome, distance, turns, effective_distance, score, duration_ms, created_at
		 FROM runs
		 WHERE maze_id = ?
		 ORDER BY distance ASC, turns ASC
		 LIMIT ?`,
		mazeID, limit,
	)
}

// AllRuns retrieves every run for the given maze, newest first.
func (s *Store) AllRuns(mazeID string) ([]RunRecord, error) {
	return s.queryRuns(
		`SELECT id, maze_id, outcome, distance, turns, effective_distance, score, duration_ms, created_at
		 FROM runs
		 WHERE maze_id = ?
		 ORDER BY created_at DESC, id DESC`,
		mazeID,
	)
}

// ShortestDistance returns the shortest recorded distance for the given
// maze. Returns 0 if no runs exist.
func (s *Store) ShortestDistance(mazeID string) (int, error) {
	var distance sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MIN(distance) FROM runs WHERE maze_id = ?",
		mazeID,
	).Scan(&distance)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query shortest distance: %w", err)
	}

	if !distance.Valid {
		return 0, nil
	}

	return int(distance.Int64), nil
}

// ClearRuns deletes all runs for the given maze.
func (s *Store) ClearRuns(mazeID string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE maze_id = ?", mazeID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

func (s *Store) queryRuns(query string, args ...any) ([]RunRecord, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var r RunRecord
		var durationMS int64
		var createdAt any
		if err := rows.Scan(&r.ID, &r.MazeID, &r.Outcome, &r.Distance, &r.Turns,
			&r.EffectiveDistance, &r.Score, &durationMS, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Duration = time.Duration(durationMS) * time.Millisecond

		// Parse the datetime - handle both time.Time and string
		switch v := createdAt.(type) {
		case time.Time:
			r.CreatedAt = v
		case string:
			if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
				r.CreatedAt = parsed
			}
		}
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}
