package service

import (
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/routinely/routinely/internal/db"
	"github.com/routinely/routinely/internal/model"
	"github.com/routinely/routinely/internal/repository"
	"github.com/stretchr/testify/require"
)

// newTestServices wires repositories and services over a fresh sqlite
// database with a Monday week start.
func newTestServices(t *testing.T) (*ActivityService, *GoalService, *sqlx.DB) {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "routinely.db") + "?_pragma=foreign_keys(1)"
	database, err := db.Init("sqlite", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	require.NoError(t, db.RunMigrations(database.DB, "sqlite"))

	activityRepo := repository.NewActivityRepository(database)
	goalRepo := repository.NewGoalRepository(database)
	goalService := NewGoalService(goalRepo, activityRepo, model.Monday)
	activityService := NewActivityService(activityRepo, goalService)

	return activityService, goalService, database
}
