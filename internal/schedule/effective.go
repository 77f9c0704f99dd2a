// Package schedule computes the calendar date a goal's recurrence rule is
// anchored to. It is pure: no clock access, no storage, safe to call from
// any number of goroutines.
package schedule

import (
	"fmt"

	"github.com/routinely/routinely/internal/model"
)

// EffectiveDate returns the date a new goal of the given type should start
// counting from.
//
// every_x_days and days_of_week goals count from the creation date itself.
// weeks_period goals are pulled back to the most recent occurrence of the
// configured week-start day so week-period counting aligns to week
// boundaries instead of an arbitrary mid-week creation date. The asymmetry
// is deliberate and is the precedent for any future goal type.
func EffectiveDate(goalType model.GoalType, today model.CalendarDate, weekStart model.DayOfWeek) model.CalendarDate {
	switch goalType {
	case model.GoalTypeEveryXDays:
		return today
	case model.GoalTypeDaysOfWeek:
		return today
	case model.GoalTypeWeeksPeriod:
		return today.CurrentOrPrevious(weekStart)
	}
	panic(fmt.Sprintf("unhandled goal type %q", goalType))
}
