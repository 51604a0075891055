// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/tapmorse/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for keying sessions.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			profile TEXT NOT NULL,
			mode TEXT NOT NULL,
			target TEXT NOT NULL,
			transcript TEXT NOT NULL,
			correct INTEGER NOT NULL,
			incorrect INTEGER NOT NULL,
			unmatched INTEGER NOT NULL,
			dots INTEGER NOT NULL,
			dashes INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS session_char_stats (
			session_id INTEGER NOT NULL,
			char TEXT NOT NULL,
			correct INTEGER NOT NULL,
			incorrect INTEGER NOT NULL,
			latency_sum_ms INTEGER NOT NULL,
			latency_count INTEGER NOT NULL,
			PRIMARY KEY (session_id, char)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_ended_at ON sessions(ended_at);`,
		`CREATE INDEX IF NOT EXISTS idx_session_char_stats_char ON session_char_stats(char);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// InsertSession stores a finished session and its per-character stats.
func (s *Store) InsertSession(ctx context.Context, stats model.SessionStats, chars []model.CharStats) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO sessions (started_at, ended_at, profile, mode, target, transcript, correct, incorrect, unmatched, dots, dashes, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		stats.StartedAt.Format(time.RFC3339Nano),
		stats.EndedAt.Format(time.RFC3339Nano),
		stats.Profile,
		stats.Mode,
		stats.Target,
		stats.Transcript,
		stats.Correct,
		stats.Incorrect,
		stats.Unmatched,
		stats.Dots,
		stats.Dashes,
		stats.DurationMs,
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if len(chars) > 0 {
		var stmt *sql.Stmt
		stmt, err = tx.PrepareContext(ctx,
			`INSERT INTO session_char_stats (session_id, char, correct, incorrect, latency_sum_ms, latency_count)
			 VALUES (?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return 0, err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for _, cs := range chars {
			if _, err = stmt.ExecContext(ctx, id, cs.Char, cs.Correct, cs.Incorrect, cs.LatencySumMs, cs.LatencyCount); err != nil {
				return 0, err
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// GetWeakChars aggregates character stats over the most recent drill sessions.
func (s *Store) GetWeakChars(ctx context.Context, window int, profile string) ([]model.CharAggregate, error) {
	if window <= 0 {
		return nil, nil
	}
	query := `WITH recent_sessions AS (
		SELECT id FROM sessions
		WHERE mode = ? AND (? = '' OR profile = ?)
		ORDER BY ended_at DESC
		LIMIT ?
	)
	SELECT cs.char, SUM(cs.correct) AS correct, SUM(cs.incorrect) AS incorrect,
		SUM(cs.latency_sum_ms) AS latency_sum_ms, SUM(cs.latency_count) AS latency_count
	FROM session_char_stats cs
	JOIN recent_sessions r ON r.id = cs.session_id
	GROUP BY cs.char`

	rows, err := s.db.QueryContext(ctx, query, model.ModeDrill, profile, profile, window)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()
	return scanCharAggregates(rows)
}

// ListSessions returns session aggregates filtered by stats config.
func (s *Store) ListSessions(ctx context.Context, cfg model.StatsConfig) ([]model.SessionAggregate, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Profile != "" {
		clauses = append(clauses, "profile = ?")
		args = append(args, cfg.Profile)
	}
	if cfg.Since != nil {
		clauses = append(clauses, "ended_at >= ?")
		args = append(args, cfg.Since.Format(time.RFC3339Nano))
	}
	query := fmt.Sprintf(`SELECT id, ended_at, mode, correct, incorrect, unmatched, duration_ms
		FROM sessions
		WHERE %s
		ORDER BY ended_at ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var sessions []model.SessionAggregate
	for rows.Next() {
		var agg model.SessionAggregate
		var endedAt string
		if err := rows.Scan(&agg.SessionID, &endedAt, &agg.Mode, &agg.Correct, &agg.Incorrect, &agg.Unmatched, &agg.DurationMs); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, endedAt)
		if err != nil {
			return nil, err
		}
		agg.EndedAt = parsed
		sessions = append(sessions, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}

// ListCharAggregatesForSessions aggregates per-character stats across sessions.
func (s *Store) ListCharAggregatesForSessions(ctx context.Context, sessionIDs []int64) ([]model.CharAggregate, error) {
	if len(sessionIDs) == 0 {
		return nil, nil
	}
	placeholders := make([]string, len(sessionIDs))
	args := make([]any, len(sessionIDs))
	for i, id := range sessionIDs {
		placeholders[i] = "?"
		args[i] = id
	}
	query := fmt.Sprintf(`SELECT char, SUM(correct) AS correct, SUM(incorrect) AS incorrect,
		SUM(latency_sum_ms) AS latency_sum_ms, SUM(latency_count) AS latency_count
		FROM session_char_stats
		WHERE session_id IN (%s)
		GROUP BY char`, strings.Join(placeholders, ","))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()
	return scanCharAggregates(rows)
}

func scanCharAggregates(rows *sql.Rows) ([]model.CharAggregate, error) {
	var result []model.CharAggregate
	for rows.Next() {
		var agg model.CharAggregate
		if err := rows.Scan(&agg.Char, &agg.Correct, &agg.Incorrect, &agg.LatencySumMs, &agg.LatencyCount); err != nil {
			return nil, err
		}
		result = append(result, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
