package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/routinely/routinely/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivityRoundTrip(t *testing.T) {
	database := newTestDB(t)
	repo := NewActivityRepository(database)

	activity := &model.Activity{
		ID:        uuid.New().String(),
		Name:      "read",
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, repo.Create(activity))

	fetched, err := repo.ByID(activity.ID)
	require.NoError(t, err)
	assert.Equal(t, activity.ID, fetched.ID)
	assert.Equal(t, "read", fetched.Name)

	activities, err := repo.Activities()
	require.NoError(t, err)
	assert.Len(t, activities, 1)
}

func TestActivityByIDNotFound(t *testing.T) {
	database := newTestDB(t)
	repo := NewActivityRepository(database)

	_, err := repo.ByID("no-such-activity")
	assert.ErrorIs(t, err, ErrActivityNotFound)
}

func TestActivityDelete(t *testing.T) {
	database := newTestDB(t)
	repo := NewActivityRepository(database)

	activity := &model.Activity{
		ID:        uuid.New().String(),
		Name:      "stretch",
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, repo.Create(activity))

	require.NoError(t, repo.Delete(activity.ID))
	assert.ErrorIs(t, repo.Delete(activity.ID), ErrActivityNotFound)
}
