package session

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Record is one row of the session-history index.
type Record struct {
	ID        string
	Command   string
	Project   string
	Profile   string
	Branch    string
	Summary   string
	StartedAt time.Time
}

// History is the sqlite-backed session index behind `devflow history`.
// It supplements, never replaces, the plain-text session log.
type History struct {
	db *sql.DB
}

// OpenHistory opens (creating if needed) the history database in dataDir.
func OpenHistory(dataDir string) (*History, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, "history.db")
	db, err := sql.Open("sqlite3", dbPath+"?_journal=WAL&_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}

	h := &History{db: db}
	if err := h.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return h, nil
}

func (h *History) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		command TEXT NOT NULL,
		project TEXT NOT NULL,
		profile TEXT NOT NULL,
		branch TEXT NOT NULL,
		summary TEXT NOT NULL,
		started_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_started ON sessions(started_at DESC);
	CREATE INDEX IF NOT EXISTS idx_sessions_project ON sessions(project);
	`
	_, err := h.db.Exec(schema)
	return err
}

// Close releases the database handle.
func (h *History) Close() error {
	return h.db.Close()
}

// Add inserts one session record.
func (h *History) Add(ctx context.Context, rec Record) error {
	_, err := h.db.ExecContext(ctx, `
		INSERT INTO sessions (id, command, project, profile, branch, summary, started_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.Command, rec.Project, rec.Profile, rec.Branch, rec.Summary, rec.StartedAt)
	return err
}

// Recent returns the newest records, most recent first.
func (h *History) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := h.db.QueryContext(ctx, `
		SELECT id, command, project, profile, branch, summary, started_at
		FROM sessions ORDER BY started_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.Command, &rec.Project, &rec.Profile,
			&rec.Branch, &rec.Summary, &rec.StartedAt); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
