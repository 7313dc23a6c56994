// Package journal keeps a SQLite record of every frame a playback run
// rendered, exported or skipped.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/olivierh59500/particle-replay-go/internal/playback"
)

// Journal appends frame records for one run to a SQLite database.
type Journal struct {
	db    *sql.DB
	runID string
}

// Row is a stored frame record.
type Row struct {
	RunID     string
	Index     int
	Snapshot  string
	Status    string
	Particles int
	Image     string
	Error     string
}

// Open opens (or creates) the database at path and starts a new run
// over root.
func Open(ctx context.Context, path, root string) (*Journal, error) {
	if path == "" {
		return nil, fmt.Errorf("journal: empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	j := &Journal{db: db, runID: uuid.NewString()}
	_, err = db.ExecContext(ctx,
		`INSERT INTO runs(run_id, root, started_at) VALUES(?, ?, ?)`,
		j.runID, root, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("journal: start run: %w", err)
	}
	return j, nil
}

func initSchema(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		`CREATE TABLE IF NOT EXISTS runs (
			run_id      TEXT PRIMARY KEY,
			root        TEXT NOT NULL,
			started_at  TEXT NOT NULL,
			finished_at TEXT,
			error       TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS frames (
			run_id      TEXT NOT NULL,
			idx         INTEGER NOT NULL,
			snapshot    TEXT NOT NULL,
			status      TEXT NOT NULL,
			particles   INTEGER NOT NULL,
			image       TEXT NOT NULL DEFAULT '',
			error       TEXT NOT NULL DEFAULT '',
			recorded_at TEXT NOT NULL,
			PRIMARY KEY (run_id, idx)
		);`,
	}
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return fmt.Errorf("journal: schema: %w", err)
		}
	}
	return nil
}

// RunID identifies the current run.
func (j *Journal) RunID() string { return j.runID }

// Record stores one frame record.
func (j *Journal) Record(r playback.FrameRecord) error {
	var msg string
	if r.Err != nil {
		msg = r.Err.Error()
	}
	_, err := j.db.Exec(
		`INSERT OR REPLACE INTO frames(run_id, idx, snapshot, status, particles, image, error, recorded_at)
		 VALUES(?, ?, ?, ?, ?, ?, ?, ?)`,
		j.runID, r.Index, r.ID, string(r.Status), r.Particles, r.Image, msg,
		time.Now().UTC().Format(time.RFC3339Nano))
	return err
}

// Finish marks the run as finished, with the error that stopped it if any.
func (j *Journal) Finish(ctx context.Context, runErr error) error {
	var msg sql.NullString
	if runErr != nil {
		msg = sql.NullString{String: runErr.Error(), Valid: true}
	}
	_, err := j.db.ExecContext(ctx,
		`UPDATE runs SET finished_at = ?, error = ? WHERE run_id = ?`,
		time.Now().UTC().Format(time.RFC3339Nano), msg, j.runID)
	return err
}

// Frames returns the records of the current run in frame order.
func (j *Journal) Frames(ctx context.Context) ([]Row, error) {
	rows, err := j.db.QueryContext(ctx,
		`SELECT run_id, idx, snapshot, status, particles, image, error
		 FROM frames WHERE run_id = ? ORDER BY idx`, j.runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Row
	for rows.Next() {
		var r Row
		if err := rows.Scan(&r.RunID, &r.Index, &r.Snapshot, &r.Status, &r.Particles, &r.Image, &r.Error); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Close closes the database.
func (j *Journal) Close() error {
	return j.db.Close()
}
