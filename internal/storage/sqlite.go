// Package storage provides SQLite-based persistence for finished matches.
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

	"github.com/vovakirdan/tui-battleship/internal/config"
	"github.com/vovakirdan/tui-battleship/internal/multiplayer"
)

// Store manages the SQLite database connection for match history.
type Store struct {
	db *sql.DB
}

// MatchRecord is one finished or abandoned match.
type MatchRecord struct {
	ID        int64
	MatchID   string
	Host      string // SSH user or "local"
	Winner    int    // 1 or 2; 0 when the match was abandoned
	EndReason string // "completed", "abandoned", "expired"
	Shots1    int
	Hits1     int
	Shots2    int
	Hits2     int
	Duration  int // Duration in seconds
	CreatedAt time.Time
}

// Stats aggregates the recorded matches.
type Stats struct {
	Matches    int
	Completed  int
	WinsP1     int
	WinsP2     int
	Abandoned  int
	LastPlayed time.Time
}

const timeLayout = "2006-01-02 15:04:05"

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	dbPath, err := config.ExpandHome(dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
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
		CREATE TABLE IF NOT EXISTS matches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			match_id TEXT NOT NULL UNIQUE,
			host TEXT NOT NULL,
			winner INTEGER NOT NULL DEFAULT 0,
			end_reason TEXT NOT NULL,
			shots1 INTEGER NOT NULL DEFAULT 0,
			hits1 INTEGER NOT NULL DEFAULT 0,
			shots2 INTEGER NOT NULL DEFAULT 0,
			hits2 INTEGER NOT NULL DEFAULT 0,
			duration_secs INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_matches_host ON matches(host);
		CREATE INDEX IF NOT EXISTS idx_matches_created ON matches(created_at DESC);
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

// SaveMatch records a match. Returns the ID of the inserted record.
func (s *Store) SaveMatch(r MatchRecord) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO matches
		 (match_id, host, winner, end_reason, shots1, hits1, shots2, hits2, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.MatchID, r.Host, r.Winner, r.EndReason,
		r.Shots1, r.Hits1, r.Shots2, r.Hits2, r.Duration,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save match: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

const matchColumns = `id, match_id, host, winner, end_reason,
	shots1, hits1, shots2, hits2, duration_secs, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanMatch(row scanner) (MatchRecord, error) {
	var r MatchRecord
	var createdAt any
	err := row.Scan(
		&r.ID, &r.MatchID, &r.Host, &r.Winner, &r.EndReason,
		&r.Shots1, &r.Hits1, &r.Shots2, &r.Hits2, &r.Duration, &createdAt,
	)
	if err != nil {
		return r, err
	}
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// parseTime handles the driver returning either time.Time or text.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(timeLayout, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// MatchByID retrieves a match by its match ID. Returns nil if it is unknown.
func (s *Store) MatchByID(matchID string) (*MatchRecord, error) {
	row := s.db.QueryRow(
		`SELECT `+matchColumns+` FROM matches WHERE match_id = ?`,
		matchID,
	)
	r, err := scanMatch(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query match: %w", err)
	}
	return &r, nil
}

// RecentMatches retrieves the most recent matches, newest first.
// A non-empty host restricts results to that host.
func (s *Store) RecentMatches(host string, limit int) ([]MatchRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+matchColumns+`
		 FROM matches
		 WHERE ? = '' OR host = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		host, host, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query matches: %w", err)
	}
	defer rows.Close()

	var records []MatchRecord
	for rows.Next() {
		r, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return records, nil
}

// Stats returns aggregate counts over all recorded matches.
func (s *Store) Stats() (*Stats, error) {
	st := &Stats{}
	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(end_reason = 'completed'), 0),
		        COALESCE(SUM(winner = 1), 0),
		        COALESCE(SUM(winner = 2), 0),
		        COALESCE(SUM(end_reason <> 'completed'), 0),
		        MAX(created_at)
		 FROM matches`,
	).Scan(&st.Matches, &st.Completed, &st.WinsP1, &st.WinsP2, &st.Abandoned, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	st.LastPlayed = parseTime(lastPlayed)
	return st, nil
}

// SaveMatchResult implements multiplayer.MatchResultSaver.
func (s *Store) SaveMatchResult(data multiplayer.MatchResultData) error {
	_, err := s.SaveMatch(MatchRecord{
		MatchID:   data.MatchID,
		Host:      data.Host,
		Winner:    data.Winner,
		EndReason: data.EndReason,
		Shots1:    data.Shots1,
		Hits1:     data.Hits1,
		Shots2:    data.Shots2,
		Hits2:     data.Hits2,
		Duration:  data.DurationSecs,
	})
	return err
}

// Ensure Store implements MatchResultSaver
var _ multiplayer.MatchResultSaver = (*Store)(nil)
