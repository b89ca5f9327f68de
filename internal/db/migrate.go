package db

import (
	"context"
	"fmt"
)

var schema = map[Dialect][]string{
	Postgres: {
		`CREATE TABLE IF NOT EXISTS notes (
			id         BIGSERIAL PRIMARY KEY,
			title      TEXT   NOT NULL,
			content    TEXT   NOT NULL,
			created_at BIGINT NOT NULL,
			updated_at BIGINT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_notes_updated_at ON notes (updated_at DESC, id DESC)`,
		`CREATE TABLE IF NOT EXISTS notes_audit (
			id      BIGSERIAL PRIMARY KEY,
			note_id BIGINT NOT NULL,
			action  TEXT   NOT NULL,
			at      BIGINT NOT NULL
		)`,
	},
	SQLite: {
		`CREATE TABLE IF NOT EXISTS notes (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			title      TEXT    NOT NULL,
			content    TEXT    NOT NULL,
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_notes_updated_at ON notes (updated_at DESC, id DESC)`,
		`CREATE TABLE IF NOT EXISTS notes_audit (
			id      INTEGER PRIMARY KEY AUTOINCREMENT,
			note_id INTEGER NOT NULL,
			action  TEXT    NOT NULL,
			at      INTEGER NOT NULL
		)`,
	},
}

// Migrate creates the notes tables if they do not exist. Ids come from
// BIGSERIAL / AUTOINCREMENT so a deleted id is never handed out again.
func (d *DB) Migrate(ctx context.Context) error {
	stmts, ok := schema[d.Dialect]
	if !ok {
		return fmt.Errorf("no schema for dialect %q", d.Dialect)
	}
	for _, s := range stmts {
		if _, err := d.SQL.ExecContext(ctx, s); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
