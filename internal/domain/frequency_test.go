package domain

import (
	"errors"
	"testing"
	"time"
)

func TestFrequencyRuleValidate(t *testing.T) {
	timing := TimingBefore
	badTiming := MealTiming("during")

	tests := []struct {
		name    string
		rule    FrequencyRule
		wantErr bool
	}{
		{name: "daily with times", rule: DailyRule{Times: []TimeOfDay{{Hour: 8}, {Hour: 20}}}},
		{name: "daily without times", rule: DailyRule{}, wantErr: true},
		{name: "daily with out-of-range hour", rule: DailyRule{Times: []TimeOfDay{{Hour: 24}}}, wantErr: true},
		{name: "daily with out-of-range minute", rule: DailyRule{Times: []TimeOfDay{{Hour: 8, Minute: 60}}}, wantErr: true},
		{name: "hourly interval 1", rule: HourlyRule{IntervalHours: 1}},
		{name: "hourly interval 24", rule: HourlyRule{IntervalHours: 24}},
		{name: "hourly interval 0", rule: HourlyRule{}, wantErr: true},
		{name: "hourly interval 25", rule: HourlyRule{IntervalHours: 25}, wantErr: true},
		{name: "weekly on monday", rule: WeeklyRule{Weekday: Monday, Time: TimeOfDay{Hour: 9}}},
		{name: "weekly weekday 0", rule: WeeklyRule{Time: TimeOfDay{Hour: 9}}, wantErr: true},
		{name: "weekly weekday 8", rule: WeeklyRule{Weekday: Weekday(8), Time: TimeOfDay{Hour: 9}}, wantErr: true},
		{name: "biweekly on friday", rule: BiweeklyRule{Weekday: Friday, Time: TimeOfDay{Hour: 18}}},
		{name: "monthly day 1", rule: MonthlyRule{DayOfMonth: 1, Time: TimeOfDay{Hour: 8}}},
		{name: "monthly day 31", rule: MonthlyRule{DayOfMonth: 31, Time: TimeOfDay{Hour: 8}}},
		{name: "monthly day 0", rule: MonthlyRule{Time: TimeOfDay{Hour: 8}}, wantErr: true},
		{name: "monthly day 32", rule: MonthlyRule{DayOfMonth: 32, Time: TimeOfDay{Hour: 8}}, wantErr: true},
		{name: "meal based with timing", rule: MealBasedRule{Meal: MealBreakfast, Timing: &timing}},
		{name: "meal based without timing", rule: MealBasedRule{Meal: MealDinner}},
		{name: "meal based unknown meal", rule: MealBasedRule{Meal: MealTime("brunch")}, wantErr: true},
		{name: "meal based unknown timing", rule: MealBasedRule{Meal: MealLunch, Timing: &badTiming}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rule.Validate()

			if tt.wantErr {
				if !errors.Is(err, ErrInvalidFrequency) {
					t.Errorf("Validate() = %v, want ErrInvalidFrequency", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
		})
	}
}

func TestHourlyRuleStart(t *testing.T) {
	implicit := HourlyRule{IntervalHours: 4}
	if got := implicit.Start(); got != DefaultHourlyStart {
		t.Errorf("Start() = %v, want default %v", got, DefaultHourlyStart)
	}

	explicit := HourlyRule{IntervalHours: 4, StartTime: &TimeOfDay{Hour: 6, Minute: 30}}
	if got := explicit.Start(); got != (TimeOfDay{Hour: 6, Minute: 30}) {
		t.Errorf("Start() = %v, want 06:30", got)
	}
}

func TestBiweeklyRuleMatchesWeek(t *testing.T) {
	// Monday 2024-01-01 anchors the rule; its week fires.
	anchor := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rule := BiweeklyRule{Weekday: Monday, Time: TimeOfDay{Hour: 9}, AnchorDate: anchor}

	tests := []struct {
		name string
		date time.Time
		want bool
	}{
		{name: "anchor day itself", date: anchor, want: true},
		{name: "saturday of anchor week", date: time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC), want: true},
		{name: "following week", date: time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC), want: false},
		{name: "two weeks after anchor", date: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), want: true},
		{name: "three weeks after anchor", date: time.Date(2024, 1, 22, 0, 0, 0, 0, time.UTC), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rule.MatchesWeek(tt.date); got != tt.want {
				t.Errorf("MatchesWeek(%v) = %v, want %v", tt.date, got, tt.want)
			}
		})
	}
}

// A spring-forward transition between anchor and target makes the elapsed
// week 167 hours; parity must still follow calendar weeks.
func TestBiweeklyRuleMatchesWeekAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	// US DST starts 2024-03-10. Anchor the week before the transition.
	anchor := time.Date(2024, 3, 4, 9, 0, 0, 0, loc)
	rule := BiweeklyRule{Weekday: Monday, Time: TimeOfDay{Hour: 9}, AnchorDate: anchor}

	if rule.MatchesWeek(time.Date(2024, 3, 11, 9, 0, 0, 0, loc)) {
		t.Error("MatchesWeek(week after anchor, across DST) = true, want false")
	}
	if !rule.MatchesWeek(time.Date(2024, 3, 18, 9, 0, 0, 0, loc)) {
		t.Error("MatchesWeek(two weeks after anchor, across DST) = false, want true")
	}
}

func TestBiweeklyRuleMatchesWeekZeroAnchor(t *testing.T) {
	rule := BiweeklyRule{Weekday: Monday, Time: TimeOfDay{Hour: 9}}

	// 2024-01-08 is ISO week 2, 2024-01-15 is ISO week 3.
	if !rule.MatchesWeek(time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)) {
		t.Error("MatchesWeek(ISO week 2) = false, want true")
	}
	if rule.MatchesWeek(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)) {
		t.Error("MatchesWeek(ISO week 3) = true, want false")
	}
}

func TestMonthlyRuleEffectiveDay(t *testing.T) {
	rule := MonthlyRule{DayOfMonth: 31, Time: TimeOfDay{Hour: 8}}

	tests := []struct {
		name string
		date time.Time
		want int
	}{
		{name: "january keeps day 31", date: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), want: 31},
		{name: "leap february clamps to 29", date: time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), want: 29},
		{name: "non-leap february clamps to 28", date: time.Date(2023, 2, 10, 0, 0, 0, 0, time.UTC), want: 28},
		{name: "april clamps to 30", date: time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC), want: 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rule.EffectiveDay(tt.date); got != tt.want {
				t.Errorf("EffectiveDay(%v) = %d, want %d", tt.date, got, tt.want)
			}
		})
	}
}

func TestMealOffsetMinutes(t *testing.T) {
	before := TimingBefore
	after := TimingAfter

	if got := MealOffsetMinutes(nil); got != 0 {
		t.Errorf("MealOffsetMinutes(nil) = %d, want 0", got)
	}
	if got := MealOffsetMinutes(&before); got != BeforeMealOffsetMinutes {
		t.Errorf("MealOffsetMinutes(before) = %d, want %d", got, BeforeMealOffsetMinutes)
	}
	if got := MealOffsetMinutes(&after); got != AfterMealOffsetMinutes {
		t.Errorf("MealOffsetMinutes(after) = %d, want %d", got, AfterMealOffsetMinutes)
	}
}
