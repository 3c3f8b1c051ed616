package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
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
	`CREATE TABLE IF NOT EXISTS user_preferences (
		id                         TEXT PRIMARY KEY DEFAULT 'default',
		optimal_time_of_day        TEXT NOT NULL DEFAULT 'morning'
		                           CHECK(optimal_time_of_day IN ('morning','afternoon','evening')),
		recommended_session_length REAL NOT NULL DEFAULT 2.0,
		prefers_short_sessions     INTEGER NOT NULL DEFAULT 0,
		estimation_bias            REAL NOT NULL DEFAULT 1.0,
		updated_at                 TEXT NOT NULL DEFAULT ''
	)`,

	// Seed the singleton row so reads never miss
	`INSERT OR IGNORE INTO user_preferences (id) VALUES ('default')`,

	`CREATE TABLE IF NOT EXISTS completions (
		id              TEXT PRIMARY KEY,
		task_title      TEXT NOT NULL,
		task_type       TEXT NOT NULL DEFAULT 'assignment',
		estimated_hours REAL NOT NULL DEFAULT 0,
		actual_hours    REAL NOT NULL CHECK(actual_hours > 0),
		session_hours   REAL NOT NULL DEFAULT 0,
		completed_at    TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_completions_type ON completions(task_type)`,
	`CREATE INDEX IF NOT EXISTS idx_completions_completed ON completions(completed_at)`,

	`CREATE TABLE IF NOT EXISTS plans (
		id                     TEXT PRIMARY KEY,
		created_at             TEXT NOT NULL,
		hours_per_day          INTEGER NOT NULL,
		total_hours            REAL NOT NULL,
		days_planned           INTEGER NOT NULL,
		needs_more_hours       INTEGER NOT NULL DEFAULT 0,
		adjusted_hours_per_day INTEGER NOT NULL DEFAULT 0,
		warning                TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE TABLE IF NOT EXISTS plan_sessions (
		id             TEXT PRIMARY KEY,
		plan_id        TEXT NOT NULL REFERENCES plans(id) ON DELETE CASCADE,
		task_id        TEXT NOT NULL,
		task_title     TEXT NOT NULL DEFAULT '',
		day            TEXT NOT NULL,
		priority       REAL NOT NULL DEFAULT 0,
		hours          REAL NOT NULL,
		order_index    INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE INDEX IF NOT EXISTS idx_plan_sessions_plan ON plan_sessions(plan_id)`,
	`CREATE INDEX IF NOT EXISTS idx_plan_sessions_day ON plan_sessions(day)`,

	// Add label column to plans so saved plans can be named
	`ALTER TABLE plans ADD COLUMN label TEXT NOT NULL DEFAULT ''`,
}
