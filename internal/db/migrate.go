package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Every statement is idempotent so the
// full list is replayed on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS constructions (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		address     TEXT NOT NULL DEFAULT '',
		postal_code TEXT NOT NULL DEFAULT '',
		city        TEXT NOT NULL DEFAULT '',
		district    TEXT NOT NULL DEFAULT '',
		owner_id    TEXT NOT NULL DEFAULT '',
		progress    REAL NOT NULL DEFAULT 0
		            CHECK(progress >= 0 AND progress <= 100),
		version     INTEGER NOT NULL DEFAULT 1,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS phases (
		id              TEXT PRIMARY KEY,
		construction_id TEXT NOT NULL REFERENCES constructions(id) ON DELETE CASCADE,
		name            TEXT NOT NULL,
		progress        REAL NOT NULL DEFAULT 0
		                CHECK(progress >= 0 AND progress <= 100),
		version         INTEGER NOT NULL DEFAULT 1,
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_phases_construction ON phases(construction_id)`,

	`CREATE TABLE IF NOT EXISTS stages (
		id         TEXT PRIMARY KEY,
		phase_id   TEXT NOT NULL REFERENCES phases(id) ON DELETE CASCADE,
		name       TEXT NOT NULL,
		progress   REAL NOT NULL DEFAULT 0
		           CHECK(progress >= 0 AND progress <= 100),
		is_skipped INTEGER NOT NULL DEFAULT 0,
		version    INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_stages_phase ON stages(phase_id)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id            TEXT PRIMARY KEY,
		stage_id      TEXT NOT NULL REFERENCES stages(id) ON DELETE CASCADE,
		name          TEXT NOT NULL,
		budgeted_cost REAL NOT NULL DEFAULT 0 CHECK(budgeted_cost >= 0),
		status        TEXT NOT NULL DEFAULT 'NOT_STARTED'
		              CHECK(status IN ('NOT_STARTED','IN_PROGRESS','COMPLETED')),
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tasks_stage ON tasks(stage_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status)`,
}
