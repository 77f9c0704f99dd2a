package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/routinely/routinely/internal/model"
)

var (
	ErrActivityNotFound = errors.New("activity not found")
)

type ActivityRepository interface {
	Create(activity *model.Activity) error
	ByID(id string) (*model.Activity, error)
	Activities() ([]*model.Activity, error)
	Delete(id string) error
}

type activityRepository struct {
	db *sqlx.DB
}

func NewActivityRepository(db *sqlx.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Create(activity *model.Activity) error {
	query := `INSERT INTO activities (id, name, created_at) VALUES ($1, $2, $3)`

	_, err := r.db.Exec(query, activity.ID, activity.Name, activity.CreatedAt)

	return err
}

func (r *activityRepository) ByID(id string) (*model.Activity, error) {
	activity := &model.Activity{}
	query := `SELECT * FROM activities WHERE id = $1`

	err := r.db.Get(activity, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrActivityNotFound
	}

	return activity, err
}

func (r *activityRepository) Activities() ([]*model.Activity, error) {
	var activities []*model.Activity
	query := `SELECT * FROM activities ORDER BY created_at DESC`

	err := r.db.Select(&activities, query)
	if err != nil {
		return nil, err
	}

	return activities, nil
}

func (r *activityRepository) Delete(id string) error {
	query := `DELETE FROM activities WHERE id = $1`
	result, err := r.db.Exec(query, id)

	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrActivityNotFound
	}

	return nil
}
