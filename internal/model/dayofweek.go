package model

import (
	"fmt"
	"strings"
	"time"
)

// DayOfWeek identifies a weekday. The ordinals 1-7 (1 = Sunday) are the
// persisted representation and must stay stable.
type DayOfWeek int

const (
	Sunday DayOfWeek = iota + 1
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

var dayNames = map[DayOfWeek]string{
	Sunday:    "sunday",
	Monday:    "monday",
	Tuesday:   "tuesday",
	Wednesday: "wednesday",
	Thursday:  "thursday",
	Friday:    "friday",
	Saturday:  "saturday",
}

// FromWeekday converts a time.Weekday (0 = Sunday) to a DayOfWeek.
func FromWeekday(w time.Weekday) DayOfWeek {
	return DayOfWeek(int(w) + 1)
}

// ParseDayOfWeek parses a weekday name such as "monday" (case-insensitive).
func ParseDayOfWeek(s string) (DayOfWeek, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for day, n := range dayNames {
		if n == name {
			return day, nil
		}
	}
	return 0, fmt.Errorf("invalid day of week %q", s)
}

// Weekday converts back to time.Weekday.
func (d DayOfWeek) Weekday() time.Weekday {
	return time.Weekday(int(d) - 1)
}

// Valid reports whether d is one of the seven weekdays.
func (d DayOfWeek) Valid() bool {
	return d >= Sunday && d <= Saturday
}

func (d DayOfWeek) String() string {
	if name, ok := dayNames[d]; ok {
		return name
	}
	return fmt.Sprintf("DayOfWeek(%d)", int(d))
}

// MarshalJSON encodes the weekday as its lowercase name.
func (d DayOfWeek) MarshalJSON() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("invalid day of week %d", int(d))
	}
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON decodes a weekday name.
func (d *DayOfWeek) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := ParseDayOfWeek(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
