package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

const schemaVersion = 1

// schemaStatements are executed in order to create the database schema.
// All use IF NOT EXISTS for idempotent re-application.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS contacts (
		user_id      INTEGER NOT NULL,
		username     TEXT    NOT NULL DEFAULT '',
		phone        TEXT    NOT NULL DEFAULT '',
		first_name   TEXT    NOT NULL DEFAULT '',
		last_name    TEXT    NOT NULL DEFAULT '',
		group_target TEXT    NOT NULL,
		captured_at  TEXT    NOT NULL,
		PRIMARY KEY (user_id, group_target)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_contacts_group ON contacts(group_target)`,

	`CREATE TABLE IF NOT EXISTS runs (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		groups        INTEGER NOT NULL,
		contacts      INTEGER NOT NULL,
		with_username INTEGER NOT NULL,
		with_phone    INTEGER NOT NULL,
		errors        INTEGER NOT NULL,
		duration_sec  INTEGER NOT NULL,
		created_at    TEXT    NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
	)`,

	`CREATE TABLE IF NOT EXISTS log (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		level      TEXT NOT NULL,
		message    TEXT NOT NULL,
		created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
	)`,
}

// migrate creates or updates the database schema to the latest version.
// All DDL uses IF NOT EXISTS, making migration idempotent.
func migrate(db *sql.DB) error {
	ctx := context.TODO()

	if _, err := db.ExecContext(ctx, "CREATE TABLE IF NOT EXISTS schema_version (version INTEGER PRIMARY KEY)"); err != nil {
		return fmt.Errorf("sqlite: create schema_version: %w", err)
	}

	var current int
	if err := db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&current); err != nil {
		return fmt.Errorf("sqlite: read schema version: %w", err)
	}

	if current >= schemaVersion {
		return nil
	}

	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("sqlite: migrate: %w\nstatement: %s", err, stmt)
		}
	}

	if _, err := db.ExecContext(ctx, "INSERT OR REPLACE INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("sqlite: record schema version: %w", err)
	}

	return nil
}
