package generate

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/KasumiMercury/primind-dose-scheduling/internal/domain"
	"github.com/KasumiMercury/primind-dose-scheduling/internal/service/mealrel"
	"github.com/KasumiMercury/primind-dose-scheduling/internal/service/slot"
)

// DefaultHourlyEndHour caps daytime hourly expansion: once a stepped time
// passes 22:00 no further doses are generated for the date. Notification
// triggers use sleep-aware redistribution instead; this bound only shapes
// the day's dose list.
const DefaultHourlyEndHour = 22

type Generator struct {
	mealTimes  domain.MealTimeSource
	classifier *slot.Classifier
	resolver   *mealrel.Resolver
	endHour    int
}

func NewGenerator(mealTimes domain.MealTimeSource, classifier *slot.Classifier, resolver *mealrel.Resolver, hourlyEndHour int) *Generator {
	if hourlyEndHour <= 0 || hourlyEndHour > 23 {
		hourlyEndHour = DefaultHourlyEndHour
	}
	return &Generator{
		mealTimes:  mealTimes,
		classifier: classifier,
		resolver:   resolver,
		endHour:    hourlyEndHour,
	}
}

// Generate expands one frequency rule into the medication's dose occurrences
// on targetDate. Deterministic for fixed inputs; rules that do not fire on
// the date yield an empty slice and no error.
func (g *Generator) Generate(ctx context.Context, userID string, med domain.Medication, rule domain.FrequencyRule, targetDate time.Time) ([]domain.ScheduledDose, error) {
	if err := rule.Validate(); err != nil {
		return nil, err
	}

	switch r := rule.(type) {
	case domain.DailyRule:
		return g.generateDaily(med, r, targetDate), nil
	case domain.HourlyRule:
		return g.generateHourly(med, r, targetDate), nil
	case domain.WeeklyRule:
		return g.generateWeekly(med, r, targetDate), nil
	case domain.BiweeklyRule:
		return g.generateBiweekly(med, r, targetDate), nil
	case domain.MonthlyRule:
		return g.generateMonthly(med, r, targetDate), nil
	case domain.MealBasedRule:
		return g.generateMealBased(ctx, userID, med, r, targetDate)
	default:
		return nil, fmt.Errorf("%w: unhandled frequency kind %q", domain.ErrSchedulingFailed, rule.Kind())
	}
}

// GenerateAll expands every rule of the medication for the date. Individual
// rule failures after batch validation are logged and skipped so one broken
// rule cannot silence its siblings.
func (g *Generator) GenerateAll(ctx context.Context, userID string, med domain.Medication, targetDate time.Time) []domain.ScheduledDose {
	var doses []domain.ScheduledDose

	for _, rule := range med.Rules {
		generated, err := g.Generate(ctx, userID, med, rule, targetDate)
		if err != nil {
			slog.WarnContext(ctx, "rule expansion failed, skipping rule",
				slog.String("medication_id", med.ID),
				slog.String("frequency_kind", string(rule.Kind())),
				slog.String("error", err.Error()),
			)
			continue
		}
		doses = append(doses, generated...)
	}

	return doses
}

func (g *Generator) generateDaily(med domain.Medication, rule domain.DailyRule, date time.Time) []domain.ScheduledDose {
	doses := make([]domain.ScheduledDose, 0, len(rule.Times))
	for _, tod := range rule.Times {
		doses = append(doses, g.newDose(med, tod.On(date)))
	}
	return doses
}

func (g *Generator) generateHourly(med domain.Medication, rule domain.HourlyRule, date time.Time) []domain.ScheduledDose {
	var doses []domain.ScheduledDose

	cutoff := domain.TimeOfDay{Hour: g.endHour}.On(date)
	step := time.Duration(rule.IntervalHours) * time.Hour

	for t := rule.Start().On(date); !t.After(cutoff); t = t.Add(step) {
		doses = append(doses, g.newDose(med, t))
	}
	return doses
}

func (g *Generator) generateWeekly(med domain.Medication, rule domain.WeeklyRule, date time.Time) []domain.ScheduledDose {
	if domain.FromGoWeekday(date.Weekday()) != rule.Weekday {
		return nil
	}
	return []domain.ScheduledDose{g.newDose(med, rule.Time.On(date))}
}

func (g *Generator) generateBiweekly(med domain.Medication, rule domain.BiweeklyRule, date time.Time) []domain.ScheduledDose {
	if domain.FromGoWeekday(date.Weekday()) != rule.Weekday {
		return nil
	}
	if !rule.MatchesWeek(date) {
		return nil
	}
	return []domain.ScheduledDose{g.newDose(med, rule.Time.On(date))}
}

func (g *Generator) generateMonthly(med domain.Medication, rule domain.MonthlyRule, date time.Time) []domain.ScheduledDose {
	if date.Day() != rule.EffectiveDay(date) {
		return nil
	}
	return []domain.ScheduledDose{g.newDose(med, rule.Time.On(date))}
}

func (g *Generator) generateMealBased(ctx context.Context, userID string, med domain.Medication, rule domain.MealBasedRule, date time.Time) ([]domain.ScheduledDose, error) {
	mealTime, err := g.mealTimes.ResolvedTime(ctx, userID, rule.Meal, date)
	if err != nil {
		return nil, fmt.Errorf("%w: resolving %s time: %w", domain.ErrSchedulingFailed, rule.Meal, err)
	}

	offset := domain.MealOffsetMinutes(rule.Timing)
	scheduledTime := mealTime.On(date).Add(time.Duration(offset) * time.Minute)

	relation := &domain.MealRelation{
		Meal:          rule.Meal,
		Timing:        rule.Timing,
		OffsetMinutes: offset,
	}

	dose := domain.NewScheduledDose(med, scheduledTime, g.classifier.Classify(scheduledTime), relation)
	return []domain.ScheduledDose{dose}, nil
}

// newDose builds a non-meal-based dose: slot from the classifier, meal
// relation inferred from instruction text when present.
func (g *Generator) newDose(med domain.Medication, scheduledTime time.Time) domain.ScheduledDose {
	timeSlot := g.classifier.Classify(scheduledTime)
	relation := g.resolver.Infer(med.Instructions, timeSlot)
	return domain.NewScheduledDose(med, scheduledTime, timeSlot, relation)
}
