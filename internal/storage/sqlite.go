package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hammamikhairi/souschef/internal/domain"
	"github.com/hammamikhairi/souschef/internal/logger"
)

// Compile-time interface check.
var _ domain.SessionArchive = (*SQLiteArchive)(nil)

// SQLiteArchive appends a summary row for every completed session that is
// removed from the in-memory store. The live state machine never reads
// from it; it exists so finished cooks survive a restart.
type SQLiteArchive struct {
	db  *sql.DB
	log *logger.Logger
}

// NewSQLiteArchive opens (or creates) the archive database at path.
func NewSQLiteArchive(path string, log *logger.Logger) (*SQLiteArchive, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening archive db: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS completed_sessions (
		id TEXT PRIMARY KEY,
		recipe_name TEXT NOT NULL,
		step_count INTEGER NOT NULL,
		started_at DATETIME NOT NULL,
		ended_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_completed_ended_at ON completed_sessions(ended_at);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating archive schema: %w", err)
	}

	return &SQLiteArchive{db: db, log: log}, nil
}

// Archive writes one completed-session row.
func (a *SQLiteArchive) Archive(ctx context.Context, record domain.ArchivedSession) error {
	query := `
		INSERT OR REPLACE INTO completed_sessions (id, recipe_name, step_count, started_at, ended_at)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err := a.db.ExecContext(ctx, query,
		record.ID,
		record.RecipeName,
		record.StepCount,
		record.StartedAt,
		record.EndedAt,
	)
	if err != nil {
		return fmt.Errorf("archiving session %s: %w", record.ID, err)
	}

	a.log.Debug("archived session %s (recipe=%q)", record.ID, record.RecipeName)
	return nil
}

// Recent returns up to limit archived sessions, newest first.
func (a *SQLiteArchive) Recent(ctx context.Context, limit int) ([]domain.ArchivedSession, error) {
	query := `
		SELECT id, recipe_name, step_count, started_at, ended_at
		FROM completed_sessions
		ORDER BY ended_at DESC
		LIMIT ?
	`
	rows, err := a.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing archived sessions: %w", err)
	}
	defer rows.Close()

	var out []domain.ArchivedSession
	for rows.Next() {
		var rec domain.ArchivedSession
		if err := rows.Scan(&rec.ID, &rec.RecipeName, &rec.StepCount, &rec.StartedAt, &rec.EndedAt); err != nil {
			return nil, fmt.Errorf("scanning archived session: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Close releases the underlying database handle.
func (a *SQLiteArchive) Close() error {
	return a.db.Close()
}
