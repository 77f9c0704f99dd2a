package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/routinely/routinely/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGoal(activityID string, variant model.GoalVariant) *model.Goal {
	return &model.Goal{
		ID:            uuid.New().String(),
		ActivityID:    activityID,
		Type:          variant.Type(),
		EffectiveDate: model.NewCalendarDate(2025, time.June, 2),
		CreatedAt:     time.Now().UTC(),
		Variant:       variant,
	}
}

func TestGoalRoundTripDaysOfWeek(t *testing.T) {
	database := newTestDB(t)
	repo := NewGoalRepository(database)
	activityID := createTestActivity(t, database)

	variant, err := model.NewDaysOfWeekVariant(2, []model.DayTarget{
		{Day: model.Monday, TargetID: "target-a"},
		{Day: model.Wednesday, TargetID: "target-b"},
	})
	require.NoError(t, err)

	goal := newTestGoal(activityID, variant)
	require.NoError(t, repo.Create(goal))

	// Exactly one mapping row per weekday in the set.
	assert.Equal(t, 2, countRows(t, database, "goal_day_targets", goal.ID))

	fetched, err := repo.ByActivity(activityID)
	require.NoError(t, err)

	assert.Equal(t, goal.ID, fetched.ID)
	assert.Equal(t, goal.ActivityID, fetched.ActivityID)
	assert.Equal(t, model.GoalTypeDaysOfWeek, fetched.Type)
	assert.Equal(t, goal.EffectiveDate, fetched.EffectiveDate)
	assert.WithinDuration(t, goal.CreatedAt, fetched.CreatedAt, time.Second)

	got, ok := fetched.Variant.(model.DaysOfWeekVariant)
	require.True(t, ok, "variant type survives the round trip")
	assert.Equal(t, 2, got.WeeksInterval)
	assert.Equal(t, variant.DayTargets, got.DayTargets)
}

func TestGoalRoundTripEveryXDays(t *testing.T) {
	database := newTestDB(t)
	repo := NewGoalRepository(database)
	activityID := createTestActivity(t, database)

	goal := newTestGoal(activityID, model.EveryXDaysVariant{DaysInterval: 3, TargetID: "target-a"})
	require.NoError(t, repo.Create(goal))

	fetched, err := repo.ByID(goal.ID)
	require.NoError(t, err)

	assert.Equal(t, model.GoalTypeEveryXDays, fetched.Type)
	assert.Equal(t, model.EveryXDaysVariant{DaysInterval: 3, TargetID: "target-a"}, fetched.Variant)
}

func TestGoalRoundTripWeeksPeriod(t *testing.T) {
	database := newTestDB(t)
	repo := NewGoalRepository(database)
	activityID := createTestActivity(t, database)

	goal := newTestGoal(activityID, model.WeeksPeriodVariant{TargetID: "target-a"})
	require.NoError(t, repo.Create(goal))

	fetched, err := repo.ByActivity(activityID)
	require.NoError(t, err)

	assert.Equal(t, model.GoalTypeWeeksPeriod, fetched.Type)
	assert.Equal(t, model.WeeksPeriodVariant{TargetID: "target-a"}, fetched.Variant)
}

func TestGoalCreateRejectsInvalidVariantBeforeWriting(t *testing.T) {
	database := newTestDB(t)
	repo := NewGoalRepository(database)
	activityID := createTestActivity(t, database)

	goal := newTestGoal(activityID, model.EveryXDaysVariant{DaysInterval: 0, TargetID: "target-a"})
	err := repo.Create(goal)
	assert.ErrorIs(t, err, model.ErrNonPositiveInterval)

	// No partial state: no base row either.
	var count int
	require.NoError(t, database.Get(&count, `SELECT COUNT(*) FROM goals`))
	assert.Equal(t, 0, count)
}

func TestGoalCreateRejectsTagMismatch(t *testing.T) {
	database := newTestDB(t)
	repo := NewGoalRepository(database)
	activityID := createTestActivity(t, database)

	goal := newTestGoal(activityID, model.WeeksPeriodVariant{TargetID: "target-a"})
	goal.Type = model.GoalTypeEveryXDays

	err := repo.Create(goal)
	assert.ErrorIs(t, err, model.ErrVariantMismatch)
}

func TestGoalUniquePerActivity(t *testing.T) {
	database := newTestDB(t)
	repo := NewGoalRepository(database)
	activityID := createTestActivity(t, database)

	first := newTestGoal(activityID, model.WeeksPeriodVariant{TargetID: "target-a"})
	require.NoError(t, repo.Create(first))

	second := newTestGoal(activityID, model.EveryXDaysVariant{DaysInterval: 2, TargetID: "target-b"})
	err := repo.Create(second)
	assert.Error(t, err, "unique activity_id constraint rejects a second goal")

	// The failed create leaves no variant rows behind.
	assert.Equal(t, 0, countRows(t, database, "goal_every_x_days", second.ID))
}

func TestGoalDeleteLeavesNoResidualRows(t *testing.T) {
	database := newTestDB(t)
	repo := NewGoalRepository(database)
	activityID := createTestActivity(t, database)

	variant, err := model.NewDaysOfWeekVariant(1, []model.DayTarget{
		{Day: model.Monday, TargetID: "target-a"},
		{Day: model.Friday, TargetID: "target-b"},
	})
	require.NoError(t, err)

	goal := newTestGoal(activityID, variant)
	require.NoError(t, repo.Create(goal))

	require.NoError(t, repo.Delete(goal.ID))

	for _, table := range []string{"goal_days_of_week", "goal_day_targets", "goal_every_x_days", "goal_weeks_period"} {
		assert.Equal(t, 0, countRows(t, database, table, goal.ID), table)
	}

	_, err = repo.ByID(goal.ID)
	assert.ErrorIs(t, err, ErrGoalNotFound)
}

func TestGoalDeleteMissing(t *testing.T) {
	database := newTestDB(t)
	repo := NewGoalRepository(database)

	assert.ErrorIs(t, repo.Delete("no-such-goal"), ErrGoalNotFound)
}

func TestGoalDeleteByActivity(t *testing.T) {
	database := newTestDB(t)
	repo := NewGoalRepository(database)
	activityID := createTestActivity(t, database)

	goal := newTestGoal(activityID, model.WeeksPeriodVariant{TargetID: "target-a"})
	require.NoError(t, repo.Create(goal))

	require.NoError(t, repo.DeleteByActivity(activityID))
	_, err := repo.ByActivity(activityID)
	assert.ErrorIs(t, err, ErrGoalNotFound)

	assert.ErrorIs(t, repo.DeleteByActivity(activityID), ErrGoalNotFound)
}

func TestGoalMissingVariantRowIsIntegrityError(t *testing.T) {
	database := newTestDB(t)
	repo := NewGoalRepository(database)
	activityID := createTestActivity(t, database)

	goal := newTestGoal(activityID, model.EveryXDaysVariant{DaysInterval: 3, TargetID: "target-a"})
	require.NoError(t, repo.Create(goal))

	// Simulate a corrupted write by removing the variant row directly.
	_, err := database.Exec(`DELETE FROM goal_every_x_days WHERE goal_id = $1`, goal.ID)
	require.NoError(t, err)

	_, err = repo.ByActivity(activityID)
	assert.ErrorIs(t, err, ErrGoalCorrupted)
}

func TestGoalEmptyDayTargetSetIsIntegrityError(t *testing.T) {
	database := newTestDB(t)
	repo := NewGoalRepository(database)
	activityID := createTestActivity(t, database)

	variant, err := model.NewDaysOfWeekVariant(1, []model.DayTarget{
		{Day: model.Monday, TargetID: "target-a"},
	})
	require.NoError(t, err)

	goal := newTestGoal(activityID, variant)
	require.NoError(t, repo.Create(goal))

	_, err = database.Exec(`DELETE FROM goal_day_targets WHERE goal_id = $1`, goal.ID)
	require.NoError(t, err)

	_, err = repo.ByID(goal.ID)
	assert.ErrorIs(t, err, ErrGoalCorrupted)
}

func TestGoalByActivityNotFound(t *testing.T) {
	database := newTestDB(t)
	repo := NewGoalRepository(database)
	activityID := createTestActivity(t, database)

	_, err := repo.ByActivity(activityID)
	assert.ErrorIs(t, err, ErrGoalNotFound)
}
