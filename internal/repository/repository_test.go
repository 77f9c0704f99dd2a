package repository

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/routinely/routinely/internal/db"
	"github.com/routinely/routinely/internal/model"
	"github.com/stretchr/testify/require"
)

// newTestDB opens a fresh sqlite database in a temp dir and applies all
// migrations.
func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "routinely.db") + "?_pragma=foreign_keys(1)"
	database, err := db.Init("sqlite", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	require.NoError(t, db.RunMigrations(database.DB, "sqlite"))

	return database
}

// createTestActivity inserts an owning activity and returns its id.
func createTestActivity(t *testing.T, database *sqlx.DB) string {
	t.Helper()

	activity := &model.Activity{
		ID:        uuid.New().String(),
		Name:      "morning run",
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, NewActivityRepository(database).Create(activity))

	return activity.ID
}

// countRows returns the number of rows in table referencing the goal.
func countRows(t *testing.T, database *sqlx.DB, table, goalID string) int {
	t.Helper()

	var count int
	err := database.Get(&count, `SELECT COUNT(*) FROM `+table+` WHERE goal_id = $1`, goalID)
	require.NoError(t, err)
	return count
}
