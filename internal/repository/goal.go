package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/routinely/routinely/internal/model"
)

var (
	ErrGoalNotFound = errors.New("goal not found")

	// ErrGoalCorrupted means a base goal row exists without its variant
	// row(s). That only happens when the write aggregate was violated
	// outside this repository; retrying cannot fix it.
	ErrGoalCorrupted = errors.New("goal variant rows missing or inconsistent")
)

// GoalRepository persists goals as a write aggregate: one base row plus
// the variant row(s) for its recurrence shape, written and deleted as a
// single transaction. Callers never see a base row without its payload.
type GoalRepository interface {
	Create(goal *model.Goal) error
	ByID(goalID string) (*model.Goal, error)
	ByActivity(activityID string) (*model.Goal, error)
	Delete(goalID string) error
	DeleteByActivity(activityID string) error
}

type goalRepository struct {
	db *sqlx.DB
}

func NewGoalRepository(db *sqlx.DB) GoalRepository {
	return &goalRepository{db: db}
}

// goalRow is the base table shape. The variant payload lives in one of
// goal_days_of_week (+ goal_day_targets), goal_every_x_days or
// goal_weeks_period, keyed by the goal id.
type goalRow struct {
	ID            string             `db:"id"`
	ActivityID    string             `db:"activity_id"`
	GoalType      string             `db:"goal_type"`
	EffectiveDate model.CalendarDate `db:"effective_date"`
	CreatedAt     time.Time          `db:"created_at"`
}

type dayTargetRow struct {
	ID        string `db:"id"`
	GoalID    string `db:"goal_id"`
	DayOfWeek int    `db:"day_of_week"`
	TargetID  string `db:"target_id"`
}

func (r *goalRepository) Create(goal *model.Goal) error {
	// Validation (including the tag/variant pairing) happens before any
	// row is written.
	if err := goal.Validate(); err != nil {
		return err
	}

	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO goals (id, activity_id, goal_type, effective_date, created_at)
	          VALUES ($1, $2, $3, $4, $5)`

	_, err = tx.Exec(query,
		goal.ID,
		goal.ActivityID,
		string(goal.Type),
		goal.EffectiveDate,
		goal.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create goal: %w", err)
	}

	err = insertVariant(tx, goal)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func insertVariant(tx *sqlx.Tx, goal *model.Goal) error {
	switch v := goal.Variant.(type) {
	case model.DaysOfWeekVariant:
		query := `INSERT INTO goal_days_of_week (goal_id, weeks_interval) VALUES ($1, $2)`
		_, err := tx.Exec(query, goal.ID, v.WeeksInterval)
		if err != nil {
			return fmt.Errorf("failed to create days-of-week variant: %w", err)
		}

		query = `INSERT INTO goal_day_targets (id, goal_id, day_of_week, target_id)
		         VALUES ($1, $2, $3, $4)`
		for _, t := range v.SortedDayTargets() {
			_, err := tx.Exec(query, uuid.New().String(), goal.ID, int(t.Day), t.TargetID)
			if err != nil {
				return fmt.Errorf("failed to create day target for %s: %w", t.Day, err)
			}
		}
		return nil

	case model.EveryXDaysVariant:
		query := `INSERT INTO goal_every_x_days (goal_id, days_interval, target_id)
		          VALUES ($1, $2, $3)`
		_, err := tx.Exec(query, goal.ID, v.DaysInterval, v.TargetID)
		if err != nil {
			return fmt.Errorf("failed to create every-x-days variant: %w", err)
		}
		return nil

	case model.WeeksPeriodVariant:
		query := `INSERT INTO goal_weeks_period (goal_id, target_id) VALUES ($1, $2)`
		_, err := tx.Exec(query, goal.ID, v.TargetID)
		if err != nil {
			return fmt.Errorf("failed to create weeks-period variant: %w", err)
		}
		return nil
	}

	panic(fmt.Sprintf("unhandled goal variant %T", goal.Variant))
}

func (r *goalRepository) ByID(goalID string) (*model.Goal, error) {
	row := goalRow{}
	query := `SELECT * FROM goals WHERE id = $1`

	err := r.db.Get(&row, query, goalID)
	if err == sql.ErrNoRows {
		return nil, ErrGoalNotFound
	}
	if err != nil {
		return nil, err
	}

	return r.assemble(row)
}

func (r *goalRepository) ByActivity(activityID string) (*model.Goal, error) {
	row := goalRow{}
	query := `SELECT * FROM goals WHERE activity_id = $1`

	err := r.db.Get(&row, query, activityID)
	if err == sql.ErrNoRows {
		return nil, ErrGoalNotFound
	}
	if err != nil {
		return nil, err
	}

	return r.assemble(row)
}

// assemble dispatches on the base row's type tag, loads the variant
// row(s) and rebuilds the tagged-union goal value.
func (r *goalRepository) assemble(row goalRow) (*model.Goal, error) {
	goalType, err := model.ParseGoalType(row.GoalType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGoalCorrupted, err)
	}

	variant, err := r.loadVariant(row.ID, goalType)
	if err != nil {
		return nil, err
	}

	return &model.Goal{
		ID:            row.ID,
		ActivityID:    row.ActivityID,
		Type:          goalType,
		EffectiveDate: row.EffectiveDate,
		CreatedAt:     row.CreatedAt,
		Variant:       variant,
	}, nil
}

func (r *goalRepository) loadVariant(goalID string, goalType model.GoalType) (model.GoalVariant, error) {
	switch goalType {
	case model.GoalTypeDaysOfWeek:
		var weeksInterval int
		query := `SELECT weeks_interval FROM goal_days_of_week WHERE goal_id = $1`
		err := r.db.Get(&weeksInterval, query, goalID)
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: no days-of-week row for goal %s", ErrGoalCorrupted, goalID)
		}
		if err != nil {
			return nil, err
		}

		var rows []dayTargetRow
		query = `SELECT * FROM goal_day_targets WHERE goal_id = $1 ORDER BY day_of_week ASC`
		err = r.db.Select(&rows, query, goalID)
		if err != nil {
			return nil, err
		}
		if len(rows) == 0 {
			return nil, fmt.Errorf("%w: no day targets for goal %s", ErrGoalCorrupted, goalID)
		}

		targets := make(map[model.DayOfWeek]string, len(rows))
		for _, row := range rows {
			targets[model.DayOfWeek(row.DayOfWeek)] = row.TargetID
		}
		return model.DaysOfWeekVariant{WeeksInterval: weeksInterval, DayTargets: targets}, nil

	case model.GoalTypeEveryXDays:
		var row struct {
			DaysInterval int    `db:"days_interval"`
			TargetID     string `db:"target_id"`
		}
		query := `SELECT days_interval, target_id FROM goal_every_x_days WHERE goal_id = $1`
		err := r.db.Get(&row, query, goalID)
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: no every-x-days row for goal %s", ErrGoalCorrupted, goalID)
		}
		if err != nil {
			return nil, err
		}
		return model.EveryXDaysVariant{DaysInterval: row.DaysInterval, TargetID: row.TargetID}, nil

	case model.GoalTypeWeeksPeriod:
		var targetID string
		query := `SELECT target_id FROM goal_weeks_period WHERE goal_id = $1`
		err := r.db.Get(&targetID, query, goalID)
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: no weeks-period row for goal %s", ErrGoalCorrupted, goalID)
		}
		if err != nil {
			return nil, err
		}
		return model.WeeksPeriodVariant{TargetID: targetID}, nil
	}

	panic(fmt.Sprintf("unhandled goal type %q", goalType))
}

// Delete removes the goal and every variant and day-target row in one
// transaction. No orphaned variant rows may remain.
func (r *goalRepository) Delete(goalID string) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	cascades := []string{
		`DELETE FROM goal_day_targets WHERE goal_id = $1`,
		`DELETE FROM goal_days_of_week WHERE goal_id = $1`,
		`DELETE FROM goal_every_x_days WHERE goal_id = $1`,
		`DELETE FROM goal_weeks_period WHERE goal_id = $1`,
	}
	for _, query := range cascades {
		_, err := tx.Exec(query, goalID)
		if err != nil {
			return err
		}
	}

	result, err := tx.Exec(`DELETE FROM goals WHERE id = $1`, goalID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrGoalNotFound
	}

	return tx.Commit()
}

// DeleteByActivity removes the activity's goal without assembling it
// first, so a goal whose variant rows went missing can still be cleaned
// up when its activity is deleted.
func (r *goalRepository) DeleteByActivity(activityID string) error {
	var goalID string
	err := r.db.Get(&goalID, `SELECT id FROM goals WHERE activity_id = $1`, activityID)
	if err == sql.ErrNoRows {
		return ErrGoalNotFound
	}
	if err != nil {
		return err
	}

	return r.Delete(goalID)
}
