package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_CreatesSchema(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	for _, table := range []string{"events", "session_summaries"} {
		var name string
		err := database.QueryRow(
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table,
		).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	assert.NoError(t, Migrate(database))
	assert.NoError(t, Migrate(database))
}

func TestMigrate_EventKindCheckConstraint(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	_, err = database.Exec(`INSERT INTO events (operator_code, launch_code, kind, event_date, created_at)
		VALUES ('101', 'LT001', 'RESTART', '2025-03-10', '2025-03-10T08:00:00Z')`)
	assert.Error(t, err, "unknown kinds are rejected by the schema")
}
