package db

import (
	"database/sql"
	"fmt"
)

// migrations are idempotent schema statements, re-run on every open.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS review_drafts (
		package_id    TEXT PRIMARY KEY,
		subject       TEXT NOT NULL DEFAULT '',
		unit          TEXT NOT NULL DEFAULT '',
		target_status TEXT NOT NULL DEFAULT '',
		notes         TEXT NOT NULL DEFAULT '',
		updated_at    TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS package_cache (
		package_id TEXT PRIMARY KEY,
		subject    TEXT NOT NULL DEFAULT '',
		unit       TEXT NOT NULL DEFAULT '',
		status     TEXT NOT NULL DEFAULT '',
		payload    TEXT NOT NULL,
		fetched_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_package_cache_status ON package_cache(status)`,
	`CREATE INDEX IF NOT EXISTS idx_package_cache_subject ON package_cache(subject, unit)`,

	`CREATE TABLE IF NOT EXISTS review_actions (
		id          TEXT PRIMARY KEY,
		package_id  TEXT NOT NULL,
		action      TEXT NOT NULL,
		old_status  TEXT NOT NULL DEFAULT '',
		new_status  TEXT NOT NULL DEFAULT '',
		reviewer_id TEXT NOT NULL DEFAULT '',
		notes       TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_review_actions_package ON review_actions(package_id)`,
	`CREATE INDEX IF NOT EXISTS idx_review_actions_created ON review_actions(created_at)`,
}

// Migrate runs all schema migrations.
func Migrate(database *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := database.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
