package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/routinely/routinely/internal/model"
	"github.com/routinely/routinely/internal/repository"
	"github.com/routinely/routinely/internal/schedule"
)

var (
	ErrGoalExists = errors.New("activity already has a goal")
)

// GoalService owns the goal lifecycle: resolving the effective date,
// creating the goal aggregate, fetching it back and cascading deletes.
type GoalService struct {
	repo         repository.GoalRepository
	activityRepo repository.ActivityRepository
	weekStart    model.DayOfWeek
}

func NewGoalService(
	repo repository.GoalRepository,
	activityRepo repository.ActivityRepository,
	weekStart model.DayOfWeek,
) *GoalService {
	return &GoalService{
		repo:         repo,
		activityRepo: activityRepo,
		weekStart:    weekStart,
	}
}

// EffectiveDate resolves the date a goal of the given type should be
// anchored to. A zero today defaults to the current date; an invalid
// weekStart defaults to the configured week-start day.
func (s *GoalService) EffectiveDate(goalType model.GoalType, today model.CalendarDate, weekStart model.DayOfWeek) model.CalendarDate {
	if today.IsZero() {
		today = model.Today()
	}
	if !weekStart.Valid() {
		weekStart = s.weekStart
	}
	return schedule.EffectiveDate(goalType, today, weekStart)
}

// Create writes a new goal for the activity. The variant is validated and
// written together with the base record as one unit; no partial goal is
// ever visible.
func (s *GoalService) Create(activityID string, variant model.GoalVariant, effectiveDate model.CalendarDate) (*model.Goal, error) {
	if variant == nil {
		return nil, errors.New("goal variant is required")
	}
	if err := variant.Validate(); err != nil {
		return nil, err
	}

	_, err := s.activityRepo.ByID(activityID)
	if err != nil {
		return nil, err
	}

	// One goal per activity. The unique constraint on activity_id backs
	// this up against concurrent creates.
	_, err = s.repo.ByActivity(activityID)
	if err == nil {
		return nil, ErrGoalExists
	}
	if !errors.Is(err, repository.ErrGoalNotFound) {
		return nil, err
	}

	goal := &model.Goal{
		ID:            uuid.New().String(),
		ActivityID:    activityID,
		Type:          variant.Type(),
		EffectiveDate: effectiveDate,
		CreatedAt:     time.Now().UTC(),
		Variant:       variant,
	}

	err = s.repo.Create(goal)
	if err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	return goal, nil
}

// ByActivity returns the activity's goal, or repository.ErrGoalNotFound
// when none is configured.
func (s *GoalService) ByActivity(activityID string) (*model.Goal, error) {
	_, err := s.activityRepo.ByID(activityID)
	if err != nil {
		return nil, err
	}
	return s.repo.ByActivity(activityID)
}

// Replace swaps the activity's goal for a new one. Goals are immutable;
// editing a recurrence rule means deleting the old goal and creating a
// fresh one with a newly resolved effective date.
func (s *GoalService) Replace(activityID string, variant model.GoalVariant, effectiveDate model.CalendarDate) (*model.Goal, error) {
	err := s.repo.DeleteByActivity(activityID)
	if err != nil && !errors.Is(err, repository.ErrGoalNotFound) {
		return nil, fmt.Errorf("failed to delete previous goal: %w", err)
	}

	return s.Create(activityID, variant, effectiveDate)
}

// Delete removes the goal and all of its variant rows.
func (s *GoalService) Delete(goalID string) error {
	return s.repo.Delete(goalID)
}

// DeleteForActivity removes the activity's goal if one exists. Used when
// the owning activity goes away; works even when the goal's variant rows
// are corrupted.
func (s *GoalService) DeleteForActivity(activityID string) error {
	err := s.repo.DeleteByActivity(activityID)
	if errors.Is(err, repository.ErrGoalNotFound) {
		return nil
	}
	return err
}
