// Package nextoccur computes the next future firing instant for a frequency
// rule. It is the forward-looking companion of dose generation: both share
// the same biweekly parity anchoring and monthly day clamping, so for any
// rule the first date on which generation would fire after a reference
// instant equals the calculator's answer.
package nextoccur

import (
	"context"
	"fmt"
	"time"

	"github.com/KasumiMercury/primind-dose-scheduling/internal/domain"
)

// searchHorizonDays bounds calendar walks. Biweekly needs at most 21 days,
// monthly at most two month rolls; anything beyond that is a logic error.
const searchHorizonDays = 62

type Calculator struct {
	mealTimes domain.MealTimeSource
}

func NewCalculator(mealTimes domain.MealTimeSource) *Calculator {
	return &Calculator{mealTimes: mealTimes}
}

// NextOccurrence returns the earliest instant strictly after from at which
// the rule fires. Total over valid rules: it never returns a past instant,
// and ill-formed rules fail with ErrInvalidFrequency.
func (c *Calculator) NextOccurrence(ctx context.Context, userID string, rule domain.FrequencyRule, from time.Time) (time.Time, error) {
	if err := rule.Validate(); err != nil {
		return time.Time{}, err
	}

	switch r := rule.(type) {
	case domain.DailyRule:
		return c.nextDaily(r, from), nil
	case domain.HourlyRule:
		return from.Add(time.Duration(r.IntervalHours) * time.Hour), nil
	case domain.WeeklyRule:
		return c.nextWeekly(r, from)
	case domain.BiweeklyRule:
		return c.nextBiweekly(r, from)
	case domain.MonthlyRule:
		return c.nextMonthly(r, from)
	case domain.MealBasedRule:
		return c.nextMealBased(ctx, userID, r, from)
	default:
		return time.Time{}, fmt.Errorf("%w: unhandled frequency kind %q", domain.ErrSchedulingFailed, rule.Kind())
	}
}

func (c *Calculator) nextDaily(rule domain.DailyRule, from time.Time) time.Time {
	earliest := rule.Times[0]
	for _, t := range rule.Times[1:] {
		if t.Before(earliest) {
			earliest = t
		}
	}

	// Smallest configured time strictly after from, today.
	var best time.Time
	for _, t := range rule.Times {
		candidate := t.On(from)
		if candidate.After(from) && (best.IsZero() || candidate.Before(best)) {
			best = candidate
		}
	}
	if !best.IsZero() {
		return best
	}

	return earliest.On(from.AddDate(0, 0, 1))
}

func (c *Calculator) nextWeekly(rule domain.WeeklyRule, from time.Time) (time.Time, error) {
	for offset := 0; offset <= searchHorizonDays; offset++ {
		day := from.AddDate(0, 0, offset)
		if domain.FromGoWeekday(day.Weekday()) != rule.Weekday {
			continue
		}
		candidate := rule.Time.On(day)
		if candidate.After(from) {
			return candidate, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: no weekly occurrence within horizon", domain.ErrSchedulingFailed)
}

func (c *Calculator) nextBiweekly(rule domain.BiweeklyRule, from time.Time) (time.Time, error) {
	for offset := 0; offset <= searchHorizonDays; offset++ {
		day := from.AddDate(0, 0, offset)
		if domain.FromGoWeekday(day.Weekday()) != rule.Weekday {
			continue
		}
		if !rule.MatchesWeek(day) {
			continue
		}
		candidate := rule.Time.On(day)
		if candidate.After(from) {
			return candidate, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: no biweekly occurrence within horizon", domain.ErrSchedulingFailed)
}

func (c *Calculator) nextMonthly(rule domain.MonthlyRule, from time.Time) (time.Time, error) {
	month := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, from.Location())

	for i := 0; i < 3; i++ {
		day := time.Date(month.Year(), month.Month(), rule.EffectiveDay(month), 0, 0, 0, 0, from.Location())
		candidate := rule.Time.On(day)
		if candidate.After(from) {
			return candidate, nil
		}
		month = month.AddDate(0, 1, 0)
	}
	return time.Time{}, fmt.Errorf("%w: no monthly occurrence within horizon", domain.ErrSchedulingFailed)
}

func (c *Calculator) nextMealBased(ctx context.Context, userID string, rule domain.MealBasedRule, from time.Time) (time.Time, error) {
	offset := time.Duration(domain.MealOffsetMinutes(rule.Timing)) * time.Minute

	mealTime, err := c.mealTimes.ResolvedTime(ctx, userID, rule.Meal, from)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: resolving %s time: %w", domain.ErrSchedulingFailed, rule.Meal, err)
	}

	candidate := mealTime.On(from).Add(offset)
	if candidate.After(from) {
		return candidate, nil
	}

	tomorrow := from.AddDate(0, 0, 1)
	mealTime, err = c.mealTimes.ResolvedTime(ctx, userID, rule.Meal, tomorrow)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: resolving %s time: %w", domain.ErrSchedulingFailed, rule.Meal, err)
	}
	return mealTime.On(tomorrow).Add(offset), nil
}
