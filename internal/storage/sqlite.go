// Package storage provides SQLite-based persistence for solved levels.
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

	"github.com/vovakirdan/storekeeper/internal/core"
)

// Store manages the SQLite database connection for result persistence.
type Store struct {
	db *sql.DB
}

// ResultEntry represents a single solved-level record.
type ResultEntry struct {
	ID        int64
	PackID    string
	Level     int
	Moves     int
	Pushes    int
	CreatedAt time.Time
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
		CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			pack_id TEXT NOT NULL,
			level INTEGER NOT NULL,
			moves INTEGER NOT NULL,
			pushes INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_results_pack_level ON results(pack_id, level);
		CREATE INDEX IF NOT EXISTS idx_results_best ON results(pack_id, level, moves, pushes);
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

// SaveResult records a solved level.
// Returns the ID of the inserted record.
func (s *Store) SaveResult(r core.LevelResult) (int64, error) {
	if r.PackID == "" || r.Level < 1 {
		return 0, fmt.Errorf("storage: invalid result %+v", r)
	}

	result, err := s.db.Exec(
		"INSERT INTO results (pack_id, level, moves, pushes) VALUES (?, ?, ?, ?)",
		r.PackID, r.Level, r.Moves, r.Pushes,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save result: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// BestResult returns the result with the fewest moves, then fewest pushes,
// for one level. Returns nil if the level was never solved.
func (s *Store) BestResult(packID string, level int) (*ResultEntry, error) {
	var e ResultEntry
	var createdAt any

	err := s.db.QueryRow(
		`SELECT id, pack_id, level, moves, pushes, created_at
		 FROM results
		 WHERE pack_id = ? AND level = ?
		 ORDER BY moves ASC, pushes ASC, id ASC
		 LIMIT 1`,
		packID, level,
	).Scan(&e.ID, &e.PackID, &e.Level, &e.Moves, &e.Pushes, &createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query best result: %w", err)
	}

	e.CreatedAt = parseTime(createdAt)
	return &e, nil
}

// PackResults returns the best result of every solved level of a pack,
// ordered by level.
func (s *Store) PackResults(packID string) ([]ResultEntry, error) {
	rows, err := s.db.Query(
		`SELECT id, pack_id, level, moves, pushes, created_at
		 FROM (
			SELECT *, ROW_NUMBER() OVER (
				PARTITION BY level ORDER BY moves ASC, pushes ASC, id ASC
			) AS rn
			FROM results
			WHERE pack_id = ?
		 )
		 WHERE rn = 1
		 ORDER BY level ASC`,
		packID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query pack results: %w", err)
	}
	defer rows.Close()

	var entries []ResultEntry
	for rows.Next() {
		var e ResultEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.PackID, &e.Level, &e.Moves, &e.Pushes, &createdAt); err != nil {
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

// SolvedLevels returns the set of 1-based level numbers solved in a pack.
func (s *Store) SolvedLevels(packID string) (map[int]bool, error) {
	rows, err := s.db.Query(
		"SELECT DISTINCT level FROM results WHERE pack_id = ?",
		packID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query solved levels: %w", err)
	}
	defer rows.Close()

	solved := make(map[int]bool)
	for rows.Next() {
		var level int
		if err := rows.Scan(&level); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		solved[level] = true
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return solved, nil
}

// ClearResults deletes all results for the given pack.
func (s *Store) ClearResults(packID string) error {
	_, err := s.db.Exec("DELETE FROM results WHERE pack_id = ?", packID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear results: %w", err)
	}
	return nil
}

// PackStats contains aggregated statistics for a pack.
type PackStats struct {
	PackID       string
	Solves       int // Number of recorded solves, repeats included
	LevelsSolved int // Number of distinct levels solved
	TotalMoves   int64
	TotalPushes  int64
	LastPlayed   time.Time
}

// PackStats retrieves aggregated statistics for a specific pack.
func (s *Store) PackStats(packID string) (*PackStats, error) {
	stats := &PackStats{PackID: packID}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COUNT(DISTINCT level), COALESCE(SUM(moves), 0), COALESCE(SUM(pushes), 0), MAX(created_at)
		 FROM results WHERE pack_id = ?`,
		packID,
	).Scan(&stats.Solves, &stats.LevelsSolved, &stats.TotalMoves, &stats.TotalPushes, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get pack stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// AllPackStats retrieves statistics for all packs that have been played.
func (s *Store) AllPackStats() (map[string]*PackStats, error) {
	rows, err := s.db.Query(
		`SELECT pack_id, COUNT(*), COUNT(DISTINCT level), SUM(moves), SUM(pushes), MAX(created_at)
		 FROM results
		 GROUP BY pack_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all pack stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*PackStats)
	for rows.Next() {
		var ps PackStats
		var lastPlayed any
		if err := rows.Scan(&ps.PackID, &ps.Solves, &ps.LevelsSolved, &ps.TotalMoves, &ps.TotalPushes, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		ps.LastPlayed = parseTime(lastPlayed)
		stats[ps.PackID] = &ps
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// parseTime handles the driver returning DATETIME columns either as
// time.Time or as text.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339Nano} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed
			}
		}
	}
	return time.Time{}
}
