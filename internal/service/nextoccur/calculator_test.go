package nextoccur

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/KasumiMercury/primind-dose-scheduling/internal/domain"
)

type mockMealTimes struct {
	times map[domain.MealTime]domain.TimeOfDay
}

func newMockMealTimes() *mockMealTimes {
	return &mockMealTimes{
		times: map[domain.MealTime]domain.TimeOfDay{
			domain.MealBreakfast: {Hour: 8},
			domain.MealLunch:     {Hour: 13},
			domain.MealDinner:    {Hour: 19},
			domain.MealBedtime:   {Hour: 22},
		},
	}
}

func (m *mockMealTimes) ResolvedTime(_ context.Context, _ string, meal domain.MealTime, _ time.Time) (domain.TimeOfDay, error) {
	return m.times[meal], nil
}

func instant(y int, mo time.Month, d, h, mi int) time.Time {
	return time.Date(y, mo, d, h, mi, 0, 0, time.UTC)
}

func TestCalculator_Daily_LaterToday(t *testing.T) {
	calc := NewCalculator(newMockMealTimes())

	rule := domain.DailyRule{Times: []domain.TimeOfDay{{Hour: 8}, {Hour: 20}}}
	from := instant(2024, time.January, 15, 10, 0)

	got, err := calc.NextOccurrence(context.Background(), "user-1", rule, from)
	if err != nil {
		t.Fatalf("NextOccurrence() error = %v", err)
	}

	want := instant(2024, time.January, 15, 20, 0)
	if !got.Equal(want) {
		t.Errorf("NextOccurrence() = %v, want %v", got, want)
	}
}

func TestCalculator_Daily_RollsToTomorrow(t *testing.T) {
	calc := NewCalculator(newMockMealTimes())

	rule := domain.DailyRule{Times: []domain.TimeOfDay{{Hour: 8}, {Hour: 20}}}
	from := instant(2024, time.January, 15, 21, 0)

	got, err := calc.NextOccurrence(context.Background(), "user-1", rule, from)
	if err != nil {
		t.Fatalf("NextOccurrence() error = %v", err)
	}

	want := instant(2024, time.January, 16, 8, 0)
	if !got.Equal(want) {
		t.Errorf("NextOccurrence() = %v, want %v", got, want)
	}
}

func TestCalculator_Daily_ExactMatchRolls(t *testing.T) {
	calc := NewCalculator(newMockMealTimes())

	rule := domain.DailyRule{Times: []domain.TimeOfDay{{Hour: 8}}}
	from := instant(2024, time.January, 15, 8, 0)

	got, err := calc.NextOccurrence(context.Background(), "user-1", rule, from)
	if err != nil {
		t.Fatalf("NextOccurrence() error = %v", err)
	}

	// Strictly after: 08:00 itself does not count.
	want := instant(2024, time.January, 16, 8, 0)
	if !got.Equal(want) {
		t.Errorf("NextOccurrence() = %v, want %v", got, want)
	}
}

func TestCalculator_Hourly(t *testing.T) {
	calc := NewCalculator(newMockMealTimes())

	from := instant(2024, time.January, 15, 10, 30)

	got, err := calc.NextOccurrence(context.Background(), "user-1", domain.HourlyRule{IntervalHours: 6}, from)
	if err != nil {
		t.Fatalf("NextOccurrence() error = %v", err)
	}

	want := instant(2024, time.January, 15, 16, 30)
	if !got.Equal(want) {
		t.Errorf("NextOccurrence() = %v, want %v", got, want)
	}
}

func TestCalculator_Hourly_InvalidInterval(t *testing.T) {
	calc := NewCalculator(newMockMealTimes())

	_, err := calc.NextOccurrence(context.Background(), "user-1", domain.HourlyRule{IntervalHours: 0}, instant(2024, time.January, 15, 10, 0))
	if !errors.Is(err, domain.ErrInvalidFrequency) {
		t.Fatalf("NextOccurrence() error = %v, want ErrInvalidFrequency", err)
	}
}

func TestCalculator_Weekly(t *testing.T) {
	calc := NewCalculator(newMockMealTimes())

	rule := domain.WeeklyRule{Weekday: domain.Monday, Time: domain.TimeOfDay{Hour: 9}}

	// From a Monday after the rule time: rolls a full week.
	from := instant(2024, time.January, 15, 12, 0) // Monday
	got, err := calc.NextOccurrence(context.Background(), "user-1", rule, from)
	if err != nil {
		t.Fatalf("NextOccurrence() error = %v", err)
	}
	want := instant(2024, time.January, 22, 9, 0)
	if !got.Equal(want) {
		t.Errorf("NextOccurrence() = %v, want %v", got, want)
	}

	// From a Saturday: lands on the coming Monday.
	from = instant(2024, time.January, 13, 12, 0)
	got, err = calc.NextOccurrence(context.Background(), "user-1", rule, from)
	if err != nil {
		t.Fatalf("NextOccurrence() error = %v", err)
	}
	want = instant(2024, time.January, 15, 9, 0)
	if !got.Equal(want) {
		t.Errorf("NextOccurrence() = %v, want %v", got, want)
	}
}

func TestCalculator_Biweekly_SkipsOffWeek(t *testing.T) {
	calc := NewCalculator(newMockMealTimes())

	rule := domain.BiweeklyRule{
		Weekday:    domain.Monday,
		Time:       domain.TimeOfDay{Hour: 9},
		AnchorDate: instant(2024, time.January, 1, 0, 0),
	}

	// Tuesday of the anchor week: next firing Monday is two weeks out,
	// because Jan 8 falls in the off week.
	from := instant(2024, time.January, 2, 12, 0)

	got, err := calc.NextOccurrence(context.Background(), "user-1", rule, from)
	if err != nil {
		t.Fatalf("NextOccurrence() error = %v", err)
	}

	want := instant(2024, time.January, 15, 9, 0)
	if !got.Equal(want) {
		t.Errorf("NextOccurrence() = %v, want %v", got, want)
	}
}

func TestCalculator_Monthly_RollsAndClamps(t *testing.T) {
	calc := NewCalculator(newMockMealTimes())

	rule := domain.MonthlyRule{DayOfMonth: 31, Time: domain.TimeOfDay{Hour: 9}}

	// Past January's 31st: February clamps to the 29th (2024 is a leap year).
	from := instant(2024, time.January, 31, 10, 0)

	got, err := calc.NextOccurrence(context.Background(), "user-1", rule, from)
	if err != nil {
		t.Fatalf("NextOccurrence() error = %v", err)
	}

	want := instant(2024, time.February, 29, 9, 0)
	if !got.Equal(want) {
		t.Errorf("NextOccurrence() = %v, want %v", got, want)
	}
}

func TestCalculator_MealBased_RollsToTomorrow(t *testing.T) {
	calc := NewCalculator(newMockMealTimes())

	after := domain.TimingAfter
	rule := domain.MealBasedRule{Meal: domain.MealLunch, Timing: &after}

	// Lunch 13:00 + 30min = 13:30; from 14:00 rolls to tomorrow.
	from := instant(2024, time.January, 15, 14, 0)

	got, err := calc.NextOccurrence(context.Background(), "user-1", rule, from)
	if err != nil {
		t.Fatalf("NextOccurrence() error = %v", err)
	}

	want := instant(2024, time.January, 16, 13, 30)
	if !got.Equal(want) {
		t.Errorf("NextOccurrence() = %v, want %v", got, want)
	}
}

func TestCalculator_NeverReturnsPastInstant(t *testing.T) {
	calc := NewCalculator(newMockMealTimes())

	from := instant(2024, time.January, 15, 23, 59)

	rules := []domain.FrequencyRule{
		domain.DailyRule{Times: []domain.TimeOfDay{{Hour: 8}}},
		domain.HourlyRule{IntervalHours: 4},
		domain.WeeklyRule{Weekday: domain.Monday, Time: domain.TimeOfDay{Hour: 9}},
		domain.BiweeklyRule{Weekday: domain.Monday, Time: domain.TimeOfDay{Hour: 9}, AnchorDate: instant(2024, time.January, 1, 0, 0)},
		domain.MonthlyRule{DayOfMonth: 15, Time: domain.TimeOfDay{Hour: 9}},
		domain.MealBasedRule{Meal: domain.MealDinner},
	}

	for _, rule := range rules {
		got, err := calc.NextOccurrence(context.Background(), "user-1", rule, from)
		if err != nil {
			t.Fatalf("NextOccurrence(%s) error = %v", rule.Kind(), err)
		}
		if !got.After(from) {
			t.Errorf("NextOccurrence(%s) = %v, not after %v", rule.Kind(), got, from)
		}
	}
}

// deriveTriggers and nextOccurrence must agree on weekday and time for
// weekly rules.
func TestCalculator_WeeklyAgreesWithTriggerDerivation(t *testing.T) {
	calc := NewCalculator(newMockMealTimes())

	rule := domain.WeeklyRule{Weekday: domain.Thursday, Time: domain.TimeOfDay{Hour: 16, Minute: 45}}
	from := instant(2024, time.January, 15, 0, 0)

	got, err := calc.NextOccurrence(context.Background(), "user-1", rule, from)
	if err != nil {
		t.Fatalf("NextOccurrence() error = %v", err)
	}

	if domain.FromGoWeekday(got.Weekday()) != rule.Weekday {
		t.Errorf("occurrence weekday = %v, want %v", got.Weekday(), rule.Weekday)
	}
	if got.Hour() != rule.Time.Hour || got.Minute() != rule.Time.Minute {
		t.Errorf("occurrence time = %02d:%02d, want %v", got.Hour(), got.Minute(), rule.Time)
	}
}
