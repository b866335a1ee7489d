package db

import (
	"database/sql"
	"fmt"
)

// Migrate applies the schema. Every statement is idempotent so the whole
// list is re-run on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id           TEXT PRIMARY KEY,
		name         TEXT NOT NULL,
		color        TEXT NOT NULL DEFAULT '',
		border_color TEXT NOT NULL DEFAULT '',
		start_date   TEXT,
		end_date     TEXT,
		sort_order   INTEGER,
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id         TEXT PRIMARY KEY,
		project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		text       TEXT NOT NULL DEFAULT '',
		start_date TEXT,
		end_date   TEXT,
		color      TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id)`,

	`CREATE TABLE IF NOT EXISTS workers (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		name_kana  TEXT NOT NULL DEFAULT '',
		birth_date TEXT,
		sort_order INTEGER,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS assignments (
		cell_key   TEXT PRIMARY KEY,
		worker_id  TEXT NOT NULL REFERENCES workers(id) ON DELETE CASCADE,
		day        TEXT NOT NULL,
		entries    TEXT NOT NULL DEFAULT '[]',
		updated_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_assignments_day ON assignments(day)`,
	`CREATE INDEX IF NOT EXISTS idx_assignments_worker ON assignments(worker_id)`,
}
