package model

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// GoalType tags the recurrence rule shape of a goal. The set is closed:
// every switch over it in the resolver and the repositories handles all
// three cases and panics on anything else rather than falling through.
type GoalType string

const (
	GoalTypeDaysOfWeek  GoalType = "days_of_week"
	GoalTypeEveryXDays  GoalType = "every_x_days"
	GoalTypeWeeksPeriod GoalType = "weeks_period"
)

// ParseGoalType parses a goal type tag.
func ParseGoalType(s string) (GoalType, error) {
	switch GoalType(s) {
	case GoalTypeDaysOfWeek, GoalTypeEveryXDays, GoalTypeWeeksPeriod:
		return GoalType(s), nil
	}
	return "", fmt.Errorf("invalid goal type %q", s)
}

var (
	ErrNoDayTargets        = errors.New("days-of-week goal needs at least one day target")
	ErrDuplicateDayOfWeek  = errors.New("duplicate weekday in day targets")
	ErrInvalidDayOfWeek    = errors.New("invalid weekday in day targets")
	ErrNonPositiveInterval = errors.New("interval must be a positive number")
	ErrMissingTarget       = errors.New("goal target is required")
	ErrVariantMismatch     = errors.New("goal type does not match variant payload")
)

// GoalVariant is the payload of exactly one recurrence rule shape.
// Implemented by DaysOfWeekVariant, EveryXDaysVariant and WeeksPeriodVariant.
type GoalVariant interface {
	// Type returns the tag this payload belongs to.
	Type() GoalType
	// Validate checks the payload's structural invariants.
	Validate() error
}

// Goal is the recurrence configuration of one activity. A goal and its
// variant payload are created together and never partially updated;
// changing the recurrence rule means replacing the whole goal.
type Goal struct {
	ID            string
	ActivityID    string
	Type          GoalType
	EffectiveDate CalendarDate
	CreatedAt     time.Time
	Variant       GoalVariant
}

// Validate checks the goal and its variant, including the tag/payload
// pairing, which is enforced here rather than trusted from callers.
func (g *Goal) Validate() error {
	if g.ActivityID == "" {
		return errors.New("goal activity id is required")
	}
	if g.Variant == nil {
		return errors.New("goal variant is required")
	}
	if g.Type != g.Variant.Type() {
		return fmt.Errorf("%w: base %q, variant %q", ErrVariantMismatch, g.Type, g.Variant.Type())
	}
	return g.Variant.Validate()
}

// DayTarget pairs a weekday with the target it counts toward. It is the
// boundary representation; inside the model day targets live in a
// weekday-keyed map so distinctness is structural.
type DayTarget struct {
	Day      DayOfWeek `json:"day"`
	TargetID string    `json:"target_id"`
}

// DaysOfWeekVariant recurs on specific weekdays every WeeksInterval weeks.
type DaysOfWeekVariant struct {
	WeeksInterval int
	DayTargets    map[DayOfWeek]string
}

// NewDaysOfWeekVariant folds (day, target) pairs into the weekday-keyed
// set, rejecting duplicate weekdays.
func NewDaysOfWeekVariant(weeksInterval int, targets []DayTarget) (DaysOfWeekVariant, error) {
	set := make(map[DayOfWeek]string, len(targets))
	for _, t := range targets {
		if !t.Day.Valid() {
			return DaysOfWeekVariant{}, fmt.Errorf("%w: %d", ErrInvalidDayOfWeek, int(t.Day))
		}
		if _, exists := set[t.Day]; exists {
			return DaysOfWeekVariant{}, fmt.Errorf("%w: %s", ErrDuplicateDayOfWeek, t.Day)
		}
		set[t.Day] = t.TargetID
	}
	v := DaysOfWeekVariant{WeeksInterval: weeksInterval, DayTargets: set}
	if err := v.Validate(); err != nil {
		return DaysOfWeekVariant{}, err
	}
	return v, nil
}

func (v DaysOfWeekVariant) Type() GoalType {
	return GoalTypeDaysOfWeek
}

func (v DaysOfWeekVariant) Validate() error {
	if v.WeeksInterval <= 0 {
		return fmt.Errorf("%w: weeks interval %d", ErrNonPositiveInterval, v.WeeksInterval)
	}
	if len(v.DayTargets) == 0 {
		return ErrNoDayTargets
	}
	for day, targetID := range v.DayTargets {
		if !day.Valid() {
			return fmt.Errorf("%w: %d", ErrInvalidDayOfWeek, int(day))
		}
		if targetID == "" {
			return fmt.Errorf("%w: no target for %s", ErrMissingTarget, day)
		}
	}
	return nil
}

// SortedDayTargets returns the day targets as pairs ordered by weekday
// ordinal, for deterministic persistence and JSON output.
func (v DaysOfWeekVariant) SortedDayTargets() []DayTarget {
	targets := make([]DayTarget, 0, len(v.DayTargets))
	for day, targetID := range v.DayTargets {
		targets = append(targets, DayTarget{Day: day, TargetID: targetID})
	}
	sort.Slice(targets, func(i, j int) bool { return targets[i].Day < targets[j].Day })
	return targets
}

// EveryXDaysVariant recurs every DaysInterval calendar days.
type EveryXDaysVariant struct {
	DaysInterval int
	TargetID     string
}

func (v EveryXDaysVariant) Type() GoalType {
	return GoalTypeEveryXDays
}

func (v EveryXDaysVariant) Validate() error {
	if v.DaysInterval <= 0 {
		return fmt.Errorf("%w: days interval %d", ErrNonPositiveInterval, v.DaysInterval)
	}
	if v.TargetID == "" {
		return ErrMissingTarget
	}
	return nil
}

// WeeksPeriodVariant recurs once per week period. The period length is
// owned elsewhere; the payload only names the target.
type WeeksPeriodVariant struct {
	TargetID string
}

func (v WeeksPeriodVariant) Type() GoalType {
	return GoalTypeWeeksPeriod
}

func (v WeeksPeriodVariant) Validate() error {
	if v.TargetID == "" {
		return ErrMissingTarget
	}
	return nil
}
