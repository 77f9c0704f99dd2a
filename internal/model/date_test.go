package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayOfWeekKnownDates(t *testing.T) {
	tests := []struct {
		date string
		want DayOfWeek
	}{
		{"2025-01-01", Wednesday},
		{"2025-06-02", Monday},
		{"2025-06-08", Sunday},
		{"2024-02-29", Thursday},
		{"2024-03-01", Friday},
		{"2000-01-01", Saturday},
	}

	for _, tt := range tests {
		d, err := ParseCalendarDate(tt.date)
		require.NoError(t, err)
		assert.Equal(t, tt.want, d.DayOfWeek(), tt.date)
	}
}

func TestCurrentOrPreviousProperties(t *testing.T) {
	// Sweep two weeks of dates against every weekday.
	start := NewCalendarDate(2025, time.June, 1)

	for offset := 0; offset < 14; offset++ {
		d := start.AddDays(offset)
		for w := Sunday; w <= Saturday; w++ {
			got := d.CurrentOrPrevious(w)

			assert.Equal(t, w, got.DayOfWeek(), "%s/%s lands on the requested weekday", d, w)
			assert.False(t, got.After(d), "%s/%s never looks forward", d, w)
			assert.Less(t, got.DaysUntil(d), 7, "%s/%s walks less than a week", d, w)
		}
	}
}

func TestCurrentOrPreviousFixedPoint(t *testing.T) {
	d := NewCalendarDate(2025, time.June, 2) // a Monday
	assert.Equal(t, d, d.CurrentOrPrevious(Monday))
}

func TestCurrentOrPreviousWalksBack(t *testing.T) {
	wednesday := NewCalendarDate(2025, time.June, 4)
	monday := NewCalendarDate(2025, time.June, 2)

	assert.Equal(t, monday, wednesday.CurrentOrPrevious(Monday))
	// Thursday is 6 days back from Wednesday, the longest possible walk.
	assert.Equal(t, NewCalendarDate(2025, time.May, 29), wednesday.CurrentOrPrevious(Thursday))
}

func TestAddDaysAndOrdering(t *testing.T) {
	d := NewCalendarDate(2024, time.February, 28)

	assert.Equal(t, NewCalendarDate(2024, time.February, 29), d.AddDays(1), "leap day")
	assert.Equal(t, NewCalendarDate(2024, time.March, 1), d.AddDays(2))
	assert.Equal(t, d, d.AddDays(5).AddDays(-5))

	assert.True(t, d.Before(d.AddDays(1)))
	assert.True(t, d.AddDays(1).After(d))
	assert.Equal(t, 2, d.DaysUntil(d.AddDays(2)))
	assert.Equal(t, -2, d.AddDays(2).DaysUntil(d))
}

func TestYearBoundary(t *testing.T) {
	d := NewCalendarDate(2025, time.December, 31) // a Wednesday
	assert.Equal(t, NewCalendarDate(2026, time.January, 1), d.AddDays(1))
	assert.Equal(t, Wednesday, d.DayOfWeek())
}

func TestCalendarDateStringAndParse(t *testing.T) {
	d := NewCalendarDate(2025, time.June, 2)
	assert.Equal(t, "2025-06-02", d.String())

	parsed, err := ParseCalendarDate("2025-06-02")
	require.NoError(t, err)
	assert.Equal(t, d, parsed)

	_, err = ParseCalendarDate("not-a-date")
	assert.Error(t, err)
}

func TestCalendarDateJSON(t *testing.T) {
	d := NewCalendarDate(2025, time.June, 2)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2025-06-02"`, string(data))

	var back CalendarDate
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, d, back)
}

func TestCalendarDateScan(t *testing.T) {
	var d CalendarDate

	require.NoError(t, d.Scan("2025-06-02"))
	assert.Equal(t, NewCalendarDate(2025, time.June, 2), d)

	require.NoError(t, d.Scan([]byte("2024-02-29")))
	assert.Equal(t, NewCalendarDate(2024, time.February, 29), d)

	require.NoError(t, d.Scan(time.Date(2000, time.January, 1, 15, 4, 5, 0, time.UTC)))
	assert.Equal(t, NewCalendarDate(2000, time.January, 1), d)

	assert.Error(t, d.Scan(42))
}

func TestDayOfWeekParseAndString(t *testing.T) {
	for w := Sunday; w <= Saturday; w++ {
		parsed, err := ParseDayOfWeek(w.String())
		require.NoError(t, err)
		assert.Equal(t, w, parsed)
	}

	parsed, err := ParseDayOfWeek("  MONDAY ")
	require.NoError(t, err)
	assert.Equal(t, Monday, parsed)

	_, err = ParseDayOfWeek("someday")
	assert.Error(t, err)
}

func TestDayOfWeekOrdinalsAreStable(t *testing.T) {
	// 1 = Sunday .. 7 = Saturday is the persisted representation.
	assert.Equal(t, 1, int(Sunday))
	assert.Equal(t, 2, int(Monday))
	assert.Equal(t, 7, int(Saturday))

	assert.Equal(t, time.Sunday, Sunday.Weekday())
	assert.Equal(t, Saturday, FromWeekday(time.Saturday))
}
