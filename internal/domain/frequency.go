package domain

import (
	"fmt"
	"time"
)

// FrequencyKind discriminates the FrequencyRule variants.
type FrequencyKind string

const (
	FrequencyDaily     FrequencyKind = "daily"
	FrequencyHourly    FrequencyKind = "hourly"
	FrequencyWeekly    FrequencyKind = "weekly"
	FrequencyBiweekly  FrequencyKind = "biweekly"
	FrequencyMonthly   FrequencyKind = "monthly"
	FrequencyMealBased FrequencyKind = "meal_based"
)

// FrequencyRule is the recurrence specification for a medication. It is a
// closed sum: every consumer switches exhaustively over the variants below,
// and a missed variant surfaces as an explicit error rather than silence.
type FrequencyRule interface {
	Kind() FrequencyKind
	Validate() error

	isFrequencyRule()
}

// DailyRule fires at each listed time of day, every day.
type DailyRule struct {
	Times []TimeOfDay
}

func (r DailyRule) Kind() FrequencyKind { return FrequencyDaily }
func (r DailyRule) isFrequencyRule()    {}

func (r DailyRule) Validate() error {
	if len(r.Times) == 0 {
		return fmt.Errorf("%w: daily rule has no times", ErrInvalidFrequency)
	}
	for _, t := range r.Times {
		if err := t.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// DefaultHourlyStart is used when an hourly rule has no explicit start.
var DefaultHourlyStart = TimeOfDay{Hour: 8}

// HourlyRule fires every IntervalHours starting at StartTime (08:00 when
// nil), stopping at the end of the daytime generation window.
type HourlyRule struct {
	IntervalHours int
	StartTime     *TimeOfDay
}

func (r HourlyRule) Kind() FrequencyKind { return FrequencyHourly }
func (r HourlyRule) isFrequencyRule()    {}

func (r HourlyRule) Validate() error {
	if r.IntervalHours < 1 || r.IntervalHours > 24 {
		return fmt.Errorf("%w: hourly interval %d out of range", ErrInvalidFrequency, r.IntervalHours)
	}
	if r.StartTime != nil {
		return r.StartTime.Validate()
	}
	return nil
}

// Start returns the effective first time of day for the rule.
func (r HourlyRule) Start() TimeOfDay {
	if r.StartTime != nil {
		return *r.StartTime
	}
	return DefaultHourlyStart
}

// WeeklyRule fires once a week on Weekday at Time.
type WeeklyRule struct {
	Weekday Weekday
	Time    TimeOfDay
}

func (r WeeklyRule) Kind() FrequencyKind { return FrequencyWeekly }
func (r WeeklyRule) isFrequencyRule()    {}

func (r WeeklyRule) Validate() error {
	if err := r.Weekday.Validate(); err != nil {
		return err
	}
	return r.Time.Validate()
}

// BiweeklyRule fires every second week on Weekday at Time. Week parity is
// anchored to AnchorDate (the prescription start): the anchor's week fires,
// the following week does not. A zero anchor falls back to even ISO week
// numbers, matching data created before anchors existed.
type BiweeklyRule struct {
	Weekday    Weekday
	Time       TimeOfDay
	AnchorDate time.Time
}

func (r BiweeklyRule) Kind() FrequencyKind { return FrequencyBiweekly }
func (r BiweeklyRule) isFrequencyRule()    {}

func (r BiweeklyRule) Validate() error {
	if err := r.Weekday.Validate(); err != nil {
		return err
	}
	return r.Time.Validate()
}

// MatchesWeek reports whether date falls in a firing week for the rule.
func (r BiweeklyRule) MatchesWeek(date time.Time) bool {
	if r.AnchorDate.IsZero() {
		_, week := date.ISOWeek()
		return week%2 == 0
	}
	// Calendar days, not elapsed duration: a DST transition makes a week
	// 167 or 169 hours long and would flip the parity.
	days := int(utcMidnight(startOfWeek(date)).Sub(utcMidnight(startOfWeek(r.AnchorDate))).Hours() / 24)
	return (days/7)%2 == 0
}

// utcMidnight re-anchors a calendar date in UTC, where every day is
// exactly 24 hours.
func utcMidnight(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// startOfWeek returns midnight of the Sunday beginning date's week,
// consistent with the Sunday=1 weekday numbering.
func startOfWeek(date time.Time) time.Time {
	d := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return d.AddDate(0, 0, -int(d.Weekday()))
}

// MonthlyRule fires once a month on DayOfMonth at Time. In months shorter
// than DayOfMonth the dose fires on the month's last day.
type MonthlyRule struct {
	DayOfMonth int
	Time       TimeOfDay
}

func (r MonthlyRule) Kind() FrequencyKind { return FrequencyMonthly }
func (r MonthlyRule) isFrequencyRule()    {}

func (r MonthlyRule) Validate() error {
	if r.DayOfMonth < 1 || r.DayOfMonth > 31 {
		return fmt.Errorf("%w: day of month %d out of range", ErrInvalidFrequency, r.DayOfMonth)
	}
	return r.Time.Validate()
}

// EffectiveDay clamps the rule's day to the length of date's month.
func (r MonthlyRule) EffectiveDay(date time.Time) int {
	last := daysInMonth(date.Year(), date.Month())
	if r.DayOfMonth > last {
		return last
	}
	return r.DayOfMonth
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MealBasedRule fires relative to a configured meal. A nil Timing means the
// dose is taken with the meal, no offset.
type MealBasedRule struct {
	Meal   MealTime
	Timing *MealTiming
}

func (r MealBasedRule) Kind() FrequencyKind { return FrequencyMealBased }
func (r MealBasedRule) isFrequencyRule()    {}

func (r MealBasedRule) Validate() error {
	if err := r.Meal.Validate(); err != nil {
		return err
	}
	if r.Timing != nil {
		return r.Timing.Validate()
	}
	return nil
}
