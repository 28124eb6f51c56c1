package trigger

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/KasumiMercury/primind-dose-scheduling/internal/domain"
)

type Deriver struct {
	mealTimes domain.MealTimeSource
	strategy  Strategy
	clock     domain.Clock
}

func NewDeriver(mealTimes domain.MealTimeSource, strategy Strategy, clock domain.Clock) *Deriver {
	if clock == nil {
		clock = domain.SystemClock()
	}
	return &Deriver{
		mealTimes: mealTimes,
		strategy:  strategy,
		clock:     clock,
	}
}

// DeriveTriggers reduces a frequency rule to the repeating triggers the
// delivery layer registers with the OS. One rule may expand to several
// triggers; hourly rules additionally pass through the redistribution
// strategy.
func (d *Deriver) DeriveTriggers(ctx context.Context, userID string, rule domain.FrequencyRule) ([]domain.NotificationSchedule, error) {
	if err := rule.Validate(); err != nil {
		return nil, err
	}

	switch r := rule.(type) {
	case domain.DailyRule:
		schedules := make([]domain.NotificationSchedule, 0, len(r.Times))
		for _, t := range r.Times {
			schedules = append(schedules, domain.DailyTrigger{Hour: t.Hour, Minute: t.Minute})
		}
		return schedules, nil

	case domain.HourlyRule:
		return d.deriveHourly(ctx, r), nil

	case domain.WeeklyRule:
		return []domain.NotificationSchedule{
			domain.WeeklyTrigger{Weekday: r.Weekday, Hour: r.Time.Hour, Minute: r.Time.Minute},
		}, nil

	case domain.BiweeklyRule:
		return []domain.NotificationSchedule{
			domain.BiweeklyTrigger{Weekday: r.Weekday, Hour: r.Time.Hour, Minute: r.Time.Minute},
		}, nil

	case domain.MonthlyRule:
		return []domain.NotificationSchedule{
			domain.MonthlyTrigger{Day: r.DayOfMonth, Hour: r.Time.Hour, Minute: r.Time.Minute},
		}, nil

	case domain.MealBasedRule:
		return d.deriveMealBased(ctx, userID, r)

	default:
		return nil, fmt.Errorf("%w: unhandled frequency kind %q", domain.ErrSchedulingFailed, rule.Kind())
	}
}

// deriveHourly enumerates hours around the clock from the rule's start until
// a full day is covered, dedupes, sorts, and hands the result to the
// redistribution strategy.
func (d *Deriver) deriveHourly(ctx context.Context, rule domain.HourlyRule) []domain.NotificationSchedule {
	start := rule.Start()

	seen := make(map[int]bool)
	var triggers []domain.DailyTrigger

	for covered := 0; covered < 24; covered += rule.IntervalHours {
		hour := (start.Hour + covered) % 24
		if seen[hour] {
			continue
		}
		seen[hour] = true
		triggers = append(triggers, domain.DailyTrigger{Hour: hour, Minute: start.Minute})
	}

	sort.Slice(triggers, func(i, j int) bool {
		if triggers[i].Hour != triggers[j].Hour {
			return triggers[i].Hour < triggers[j].Hour
		}
		return triggers[i].Minute < triggers[j].Minute
	})

	triggers = d.strategy.Redistribute(ctx, triggers)

	schedules := make([]domain.NotificationSchedule, len(triggers))
	for i, t := range triggers {
		schedules[i] = t
	}
	return schedules
}

func (d *Deriver) deriveMealBased(ctx context.Context, userID string, rule domain.MealBasedRule) ([]domain.NotificationSchedule, error) {
	mealTime, err := d.mealTimes.ResolvedTime(ctx, userID, rule.Meal, d.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("%w: resolving %s time: %w", domain.ErrSchedulingFailed, rule.Meal, err)
	}

	offset := domain.MealOffsetMinutes(rule.Timing)
	instant := mealTime.On(d.clock.Now()).Add(time.Duration(offset) * time.Minute)

	return []domain.NotificationSchedule{
		domain.DailyTrigger{Hour: instant.Hour(), Minute: instant.Minute()},
	}, nil
}
