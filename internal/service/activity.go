package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/routinely/routinely/internal/model"
	"github.com/routinely/routinely/internal/repository"
	"github.com/routinely/routinely/internal/validation"
)

// ActivityService owns the activity lifecycle. Deleting an activity also
// deletes its goal, so no goal rows outlive their owner.
type ActivityService struct {
	repo        repository.ActivityRepository
	goalService *GoalService
}

func NewActivityService(repo repository.ActivityRepository, goalService *GoalService) *ActivityService {
	return &ActivityService{
		repo:        repo,
		goalService: goalService,
	}
}

func (s *ActivityService) Create(name string) (*model.Activity, error) {
	if err := validation.ValidateActivityName(name); err != nil {
		return nil, err
	}

	activity := &model.Activity{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}

	err := s.repo.Create(activity)
	if err != nil {
		return nil, fmt.Errorf("failed to create activity: %w", err)
	}

	return activity, nil
}

func (s *ActivityService) ByID(id string) (*model.Activity, error) {
	return s.repo.ByID(id)
}

func (s *ActivityService) Activities() ([]*model.Activity, error) {
	return s.repo.Activities()
}

// Delete removes the activity and cascades to its goal first, so the goal
// aggregate never loses its owner while its rows remain.
func (s *ActivityService) Delete(id string) error {
	_, err := s.repo.ByID(id)
	if err != nil {
		return err
	}

	err = s.goalService.DeleteForActivity(id)
	if err != nil {
		return fmt.Errorf("failed to delete activity goal: %w", err)
	}

	return s.repo.Delete(id)
}
