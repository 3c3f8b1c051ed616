package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMigrate_UpgradePath_LegacySchema simulates upgrading a database
// created before the plans.label column existed. Verifies that data
// inserted under the old schema survives migration and that the new
// column arrives with its default.
func TestMigrate_UpgradePath_LegacySchema(t *testing.T) {
	// Create a raw DB without using OpenDB (to manually control schema).
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`PRAGMA foreign_keys = ON`)
	require.NoError(t, err)

	legacyStatements := []string{
		`CREATE TABLE IF NOT EXISTS user_preferences (
			id                         TEXT PRIMARY KEY DEFAULT 'default',
			optimal_time_of_day        TEXT NOT NULL DEFAULT 'morning'
			                           CHECK(optimal_time_of_day IN ('morning','afternoon','evening')),
			recommended_session_length REAL NOT NULL DEFAULT 2.0,
			prefers_short_sessions     INTEGER NOT NULL DEFAULT 0,
			estimation_bias            REAL NOT NULL DEFAULT 1.0,
			updated_at                 TEXT NOT NULL DEFAULT ''
		)`,
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
	}
	for i, stmt := range legacyStatements {
		_, err := db.Exec(stmt)
		require.NoError(t, err, "legacy statement %d failed", i)
	}

	// Insert legacy data BEFORE running migrations.
	_, err = db.Exec(`INSERT INTO completions (id, task_title, task_type, estimated_hours, actual_hours, completed_at)
		VALUES ('c1', 'Essay draft', 'assignment', 3.0, 4.5, '2025-01-10T20:00:00Z')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO plans (id, created_at, hours_per_day, total_hours, days_planned)
		VALUES ('p1', '2025-01-01T00:00:00Z', 4, 6.0, 2)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO plan_sessions (id, plan_id, task_id, day, hours, order_index)
		VALUES ('s1', 'p1', 't1', '2025-01-02', 2.0, 0)`)
	require.NoError(t, err)

	require.NoError(t, Migrate(db), "migration on legacy schema should succeed")

	// Data survived.
	var actual float64
	err = db.QueryRow(`SELECT actual_hours FROM completions WHERE id = 'c1'`).Scan(&actual)
	require.NoError(t, err)
	assert.Equal(t, 4.5, actual)

	var hours float64
	err = db.QueryRow(`SELECT hours FROM plan_sessions WHERE id = 's1'`).Scan(&hours)
	require.NoError(t, err)
	assert.Equal(t, 2.0, hours)

	// New column arrived with its default.
	var label string
	err = db.QueryRow(`SELECT label FROM plans WHERE id = 'p1'`).Scan(&label)
	require.NoError(t, err)
	assert.Equal(t, "", label, "legacy plan should get default empty label")

	// Indexes created.
	var name string
	err = db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name='idx_plan_sessions_plan'`).Scan(&name)
	require.NoError(t, err)

	// Idempotent on re-run.
	require.NoError(t, Migrate(db))
	var labelAfter string
	err = db.QueryRow(`SELECT label FROM plans WHERE id = 'p1'`).Scan(&labelAfter)
	require.NoError(t, err)
	assert.Equal(t, "", labelAfter)
}
