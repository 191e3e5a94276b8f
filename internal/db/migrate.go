package db

import (
	"database/sql"
	"fmt"
)

// migrations are idempotent schema statements, applied in order on every
// open. The events table is append-only: nothing in the codebase updates or
// deletes rows, and the AUTOINCREMENT primary key is the monotonic sequence
// id the reconstruction order relies on.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS events (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		operator_code TEXT NOT NULL,
		launch_code TEXT NOT NULL,
		kind TEXT NOT NULL CHECK (kind IN ('START', 'PAUSE', 'RESUME', 'FINISH')),
		event_date TEXT NOT NULL,
		time_of_day TEXT,
		created_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_events_group ON events(launch_code, operator_code)`,
	`CREATE INDEX IF NOT EXISTS idx_events_date ON events(event_date)`,
	`CREATE TABLE IF NOT EXISTS session_summaries (
		id TEXT PRIMARY KEY,
		operator_code TEXT NOT NULL,
		launch_code TEXT NOT NULL,
		session_date TEXT NOT NULL,
		start_time TEXT,
		end_time TEXT,
		total_min INTEGER,
		pause_min INTEGER NOT NULL DEFAULT 0,
		productive_min INTEGER,
		event_count INTEGER NOT NULL,
		created_at TEXT NOT NULL,
		UNIQUE (operator_code, launch_code)
	)`,
}

// Migrate applies all schema migrations.
func Migrate(database *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := database.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
