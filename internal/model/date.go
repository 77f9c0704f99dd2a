package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// dateLayout is the canonical wire and storage format for calendar dates.
const dateLayout = "2006-01-02"

// CalendarDate is a civil date with day granularity. It carries no
// time-of-day and no timezone; two CalendarDates are equal when they name
// the same calendar day. The zero value is the zero date (year 0).
type CalendarDate struct {
	Year  int
	Month time.Month
	Day   int
}

// NewCalendarDate builds a CalendarDate, normalizing out-of-range
// components the same way time.Date does (e.g. January 32 -> February 1).
func NewCalendarDate(year int, month time.Month, day int) CalendarDate {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) CalendarDate {
	year, month, day := t.Date()
	return CalendarDate{Year: year, Month: month, Day: day}
}

// Today returns the current calendar date in UTC.
func Today() CalendarDate {
	return DateOf(time.Now().UTC())
}

// ParseCalendarDate parses a YYYY-MM-DD string.
func ParseCalendarDate(s string) (CalendarDate, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return CalendarDate{}, fmt.Errorf("invalid calendar date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// Time returns the date as midnight UTC.
func (d CalendarDate) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// AddDays returns the date n days after d (n may be negative).
func (d CalendarDate) AddDays(n int) CalendarDate {
	return DateOf(d.Time().AddDate(0, 0, n))
}

// DaysUntil returns the number of days from d to o (negative when o is
// earlier than d).
func (d CalendarDate) DaysUntil(o CalendarDate) int {
	return int(o.Time().Sub(d.Time()) / (24 * time.Hour))
}

// Before reports whether d is strictly earlier than o.
func (d CalendarDate) Before(o CalendarDate) bool {
	return d.Time().Before(o.Time())
}

// After reports whether d is strictly later than o.
func (d CalendarDate) After(o CalendarDate) bool {
	return d.Time().After(o.Time())
}

// DayOfWeek returns the weekday of d.
func (d CalendarDate) DayOfWeek() DayOfWeek {
	return FromWeekday(d.Time().Weekday())
}

// CurrentOrPrevious returns d when d already falls on w, otherwise the
// nearest earlier date that does. It only ever looks backward, and the
// 7-day cycle bounds the walk at six steps.
func (d CalendarDate) CurrentOrPrevious(w DayOfWeek) CalendarDate {
	cur := d
	for cur.DayOfWeek() != w {
		cur = cur.AddDays(-1)
	}
	return cur
}

// IsZero reports whether d is the zero date.
func (d CalendarDate) IsZero() bool {
	return d == CalendarDate{}
}

func (d CalendarDate) String() string {
	return d.Time().Format(dateLayout)
}

// MarshalJSON encodes the date as a YYYY-MM-DD string.
func (d CalendarDate) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes a YYYY-MM-DD string.
func (d *CalendarDate) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseCalendarDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value stores the date as its YYYY-MM-DD string so it sorts and compares
// correctly in SQL.
func (d CalendarDate) Value() (driver.Value, error) {
	return d.String(), nil
}

// Scan accepts TEXT (sqlite) and time.Time (pgx) column representations.
func (d *CalendarDate) Scan(src any) error {
	switch v := src.(type) {
	case string:
		parsed, err := ParseCalendarDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case []byte:
		parsed, err := ParseCalendarDate(string(v))
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case time.Time:
		*d = DateOf(v)
		return nil
	default:
		return fmt.Errorf("cannot scan %T into CalendarDate", src)
	}
}
