// Package ledger keeps a catalog of resolved staging directories in a
// local SQLite database. It exists so a later run can re-validate a
// previously chosen path (temp directories vanish between sessions) and
// so stale staging areas can be pruned.
package ledger

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/danweiss/femstage/internal/core/workdir"
)

// DB wraps the SQLite catalog.
type DB struct {
	conn *sql.DB
}

// New opens (and if needed creates) the catalog at dbPath.
func New(dbPath string) (*DB, error) {
	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create ledger directory: %w", err)
	}

	// WAL for concurrent readers; a single writer is enough
	dsn := dbPath + "?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger: %w", err)
	}
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(time.Hour)

	db := &DB{conn: conn}
	if err := db.initSchema(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to initialize ledger schema: %w", err)
	}
	return db, nil
}

// Close closes the catalog.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS staging_runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		document TEXT NOT NULL,
		solver_label TEXT NOT NULL,
		mode TEXT NOT NULL,
		path TEXT NOT NULL,
		created BOOLEAN NOT NULL DEFAULT 0,
		resolved_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(document, solver_label, path)
	);

	CREATE INDEX IF NOT EXISTS idx_staging_runs_document ON staging_runs(document);
	CREATE INDEX IF NOT EXISTS idx_staging_runs_resolved_at ON staging_runs(resolved_at);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// Run is one cataloged staging resolution.
type Run struct {
	ID         int64
	Document   string
	Label      string
	Mode       workdir.Mode
	Path       string
	Created    bool
	ResolvedAt time.Time
	// Exists is filled by List from a live directory check, not stored.
	Exists bool
}

// Record stores a resolution. Re-resolving the same solver to the same
// path refreshes the timestamp instead of inserting a duplicate.
func (db *DB) Record(document, label string, mode workdir.Mode, res workdir.Resolved) error {
	if res.Path == "" {
		return nil // nothing resolved, nothing to catalog
	}
	_, err := db.conn.Exec(`
		INSERT INTO staging_runs (document, solver_label, mode, path, created)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(document, solver_label, path)
		DO UPDATE SET resolved_at = CURRENT_TIMESTAMP, mode = excluded.mode
	`, document, label, mode.String(), res.Path, res.Created)
	if err != nil {
		return fmt.Errorf("failed to record staging run: %w", err)
	}
	return nil
}

// List returns cataloged runs, newest first, optionally filtered by
// document name. Each run carries a live existence check of its path.
func (db *DB) List(document string) ([]Run, error) {
	query := `
		SELECT id, document, solver_label, mode, path, created, resolved_at
		FROM staging_runs
	`
	var args []interface{}
	if document != "" {
		query += " WHERE document = ?"
		args = append(args, document)
	}
	query += " ORDER BY resolved_at DESC"

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list staging runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []Run
	for rows.Next() {
		var r Run
		var mode string
		var resolvedAt sql.NullString
		if err := rows.Scan(&r.ID, &r.Document, &r.Label, &mode, &r.Path, &r.Created, &resolvedAt); err != nil {
			return nil, err
		}
		r.Mode = workdir.ParseMode(mode)
		if resolvedAt.Valid {
			r.ResolvedAt = parseTimestamp(resolvedAt.String)
		}
		r.Exists = workdir.DirectoryExists(r.Path)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// DeleteBefore removes catalog entries resolved before cutoff and
// returns the removed runs. When purge is set the staging directories
// themselves are deleted too; directories already gone are fine.
func (db *DB) DeleteBefore(cutoff time.Time, purge bool) ([]Run, error) {
	rows, err := db.conn.Query(`
		SELECT id, document, solver_label, mode, path, created, resolved_at
		FROM staging_runs
		WHERE resolved_at < ?
	`, cutoff.UTC().Format("2006-01-02 15:04:05"))
	if err != nil {
		return nil, fmt.Errorf("failed to query stale runs: %w", err)
	}
	var stale []Run
	for rows.Next() {
		var r Run
		var mode string
		var resolvedAt sql.NullString
		if err := rows.Scan(&r.ID, &r.Document, &r.Label, &mode, &r.Path, &r.Created, &resolvedAt); err != nil {
			_ = rows.Close()
			return nil, err
		}
		r.Mode = workdir.ParseMode(mode)
		if resolvedAt.Valid {
			r.ResolvedAt = parseTimestamp(resolvedAt.String)
		}
		stale = append(stale, r)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	_ = rows.Close()

	for _, r := range stale {
		if purge {
			if err := os.RemoveAll(r.Path); err != nil {
				return nil, fmt.Errorf("failed to remove %s: %w", r.Path, err)
			}
		}
		if _, err := db.conn.Exec("DELETE FROM staging_runs WHERE id = ?", r.ID); err != nil {
			return nil, fmt.Errorf("failed to delete run %d: %w", r.ID, err)
		}
	}
	return stale, nil
}

func parseTimestamp(s string) time.Time {
	formats := []string{
		"2006-01-02 15:04:05",
		time.RFC3339,
		time.RFC3339Nano,
	}
	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
