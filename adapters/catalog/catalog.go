// Package catalog provides a SQLite-backed index of emitted specs and run
// history, serving the CLI listing commands and the read-only HTTP API.
package catalog

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/artpar/specforge/domain/summary"
	"github.com/artpar/specforge/ports"
)

// DB is the SQLite spec catalog.
type DB struct {
	db *sql.DB
}

// Open creates or opens a catalog database.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}

	c := &DB{db: db}
	if err := c.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return c, nil
}

func (c *DB) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS specs (
			name        TEXT PRIMARY KEY,
			schema_id   TEXT NOT NULL,
			fingerprint TEXT NOT NULL,
			parent      TEXT NOT NULL DEFAULT '',
			emitted_at  DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS runs (
			id                   INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at           DATETIME NOT NULL,
			finished_at          DATETIME NOT NULL,
			schemas_attempted    INTEGER NOT NULL,
			specs_emitted        INTEGER NOT NULL,
			translation_failures INTEGER NOT NULL,
			emission_failures    INTEGER NOT NULL,
			warnings             INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_specs_schema_id ON specs(schema_id)`,
	}
	for _, stmt := range stmts {
		if _, err := c.db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate catalog: %w", err)
		}
	}
	return nil
}

// UpsertSpecs replaces catalog entries for the given specs in one
// transaction.
func (c *DB) UpsertSpecs(ctx context.Context, entries []ports.CatalogEntry) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO specs (name, schema_id, fingerprint, parent, emitted_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			schema_id = excluded.schema_id,
			fingerprint = excluded.fingerprint,
			parent = excluded.parent,
			emitted_at = excluded.emitted_at
	`)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx, e.Name, e.SchemaID, e.Fingerprint, e.Parent, e.EmittedAt); err != nil {
			return fmt.Errorf("upsert spec %s: %w", e.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// ListSpecs returns all catalog entries ordered by name.
func (c *DB) ListSpecs(ctx context.Context) ([]ports.CatalogEntry, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT name, schema_id, fingerprint, parent, emitted_at
		FROM specs ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("list specs: %w", err)
	}
	defer rows.Close()

	var out []ports.CatalogEntry
	for rows.Next() {
		var e ports.CatalogEntry
		if err := rows.Scan(&e.Name, &e.SchemaID, &e.Fingerprint, &e.Parent, &e.EmittedAt); err != nil {
			return nil, fmt.Errorf("scan spec: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// GetSpec returns one catalog entry by name.
func (c *DB) GetSpec(ctx context.Context, name string) (ports.CatalogEntry, error) {
	var e ports.CatalogEntry
	err := c.db.QueryRowContext(ctx, `
		SELECT name, schema_id, fingerprint, parent, emitted_at
		FROM specs WHERE name = ?
	`, name).Scan(&e.Name, &e.SchemaID, &e.Fingerprint, &e.Parent, &e.EmittedAt)
	if err == sql.ErrNoRows {
		return ports.CatalogEntry{}, fmt.Errorf("spec %q not found", name)
	}
	if err != nil {
		return ports.CatalogEntry{}, fmt.Errorf("get spec %s: %w", name, err)
	}
	return e, nil
}

// RecordRun appends a run history row.
func (c *DB) RecordRun(ctx context.Context, run summary.Run) error {
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO runs (started_at, finished_at, schemas_attempted, specs_emitted,
			translation_failures, emission_failures, warnings)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		run.StartedAt, run.FinishedAt, run.SchemasAttempted, run.SpecsEmitted,
		len(run.TranslationFailures), len(run.EmissionFailures), len(run.Warnings),
	)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (c *DB) ListRuns(ctx context.Context, limit int) ([]ports.RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := c.db.QueryContext(ctx, `
		SELECT id, started_at, finished_at, schemas_attempted, specs_emitted,
			translation_failures, emission_failures, warnings
		FROM runs ORDER BY id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var out []ports.RunRecord
	for rows.Next() {
		var r ports.RunRecord
		if err := rows.Scan(&r.ID, &r.StartedAt, &r.FinishedAt, &r.SchemasAttempted,
			&r.SpecsEmitted, &r.TranslationFailures, &r.EmissionFailures, &r.Warnings); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Close releases the database.
func (c *DB) Close() error {
	return c.db.Close()
}

// Ensure interface compliance.
var _ ports.Catalog = (*DB)(nil)
