package domain

import (
	"fmt"
	"time"
)

// TimeOfDay is a wall-clock time without a date.
type TimeOfDay struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	t := TimeOfDay{Hour: hour, Minute: minute}
	if err := t.Validate(); err != nil {
		return TimeOfDay{}, err
	}
	return t, nil
}

func (t TimeOfDay) Validate() error {
	if t.Hour < 0 || t.Hour > 23 {
		return fmt.Errorf("%w: hour %d out of range", ErrInvalidFrequency, t.Hour)
	}
	if t.Minute < 0 || t.Minute > 59 {
		return fmt.Errorf("%w: minute %d out of range", ErrInvalidFrequency, t.Minute)
	}
	return nil
}

// On anchors the time of day to the calendar date of d, in d's location.
func (t TimeOfDay) On(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour, t.Minute, 0, 0, d.Location())
}

// Before reports whether t is earlier in the day than other.
func (t TimeOfDay) Before(other TimeOfDay) bool {
	if t.Hour != other.Hour {
		return t.Hour < other.Hour
	}
	return t.Minute < other.Minute
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// TimeOfDayFrom extracts the wall-clock component of an instant.
func TimeOfDayFrom(instant time.Time) TimeOfDay {
	return TimeOfDay{Hour: instant.Hour(), Minute: instant.Minute()}
}

// Weekday is a calendar weekday numbered Sunday=1 through Saturday=7.
type Weekday int

const (
	Sunday Weekday = iota + 1
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

func (w Weekday) Validate() error {
	if w < Sunday || w > Saturday {
		return fmt.Errorf("%w: weekday %d out of range", ErrInvalidFrequency, w)
	}
	return nil
}

// FromGoWeekday converts a time.Weekday (Sunday=0) to the Sunday=1 numbering.
func FromGoWeekday(w time.Weekday) Weekday {
	return Weekday(int(w) + 1)
}

func (w Weekday) String() string {
	names := [...]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}
	if w < Sunday || w > Saturday {
		return fmt.Sprintf("Weekday(%d)", int(w))
	}
	return names[w-1]
}

// DayKey renders an instant's calendar date as a storage key.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

func ParseDayKey(key string) (time.Time, error) {
	return time.Parse("2006-01-02", key)
}
