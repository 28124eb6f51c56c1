package client

import (
	"errors"
	"testing"
	"time"

	"github.com/KasumiMercury/primind-dose-scheduling/internal/domain"
)

func TestMedicationResponseToDomain(t *testing.T) {
	anchor := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	resp := MedicationResponse{
		ID:           "med-1",
		Name:         "Metformin",
		Dosage:       "500mg",
		Instructions: "with food",
		Frequencies: []FrequencyResponse{
			{
				Type: "daily",
				Times: []ClockTimeResponse{
					{Hour: 8, Minute: 0},
					{Hour: 20, Minute: 30},
				},
			},
			{
				Type:          "hourly",
				IntervalHours: 6,
				StartTime:     &ClockTimeResponse{Hour: 9, Minute: 0},
			},
			{
				Type:    "weekly",
				Weekday: 2,
				Time:    &ClockTimeResponse{Hour: 10, Minute: 0},
			},
			{
				Type:       "biweekly",
				Weekday:    5,
				Time:       &ClockTimeResponse{Hour: 18, Minute: 0},
				AnchorDate: &anchor,
			},
			{
				Type:       "monthly",
				DayOfMonth: 31,
				Time:       &ClockTimeResponse{Hour: 7, Minute: 15},
			},
			{
				Type:   "meal_based",
				Meal:   "breakfast",
				Timing: "before",
			},
		},
	}

	med, err := resp.ToDomain()
	if err != nil {
		t.Fatalf("ToDomain() error = %v", err)
	}

	if med.ID != "med-1" || med.Name != "Metformin" {
		t.Errorf("ToDomain() identity = (%q, %q), want (med-1, Metformin)", med.ID, med.Name)
	}
	if len(med.Rules) != 6 {
		t.Fatalf("ToDomain() rules = %d, want 6", len(med.Rules))
	}

	daily, ok := med.Rules[0].(domain.DailyRule)
	if !ok {
		t.Fatalf("rules[0] type = %T, want DailyRule", med.Rules[0])
	}
	if len(daily.Times) != 2 || daily.Times[1] != (domain.TimeOfDay{Hour: 20, Minute: 30}) {
		t.Errorf("daily times = %v", daily.Times)
	}

	hourly, ok := med.Rules[1].(domain.HourlyRule)
	if !ok {
		t.Fatalf("rules[1] type = %T, want HourlyRule", med.Rules[1])
	}
	if hourly.IntervalHours != 6 || hourly.StartTime == nil || hourly.StartTime.Hour != 9 {
		t.Errorf("hourly rule = %+v", hourly)
	}

	weekly, ok := med.Rules[2].(domain.WeeklyRule)
	if !ok {
		t.Fatalf("rules[2] type = %T, want WeeklyRule", med.Rules[2])
	}
	if weekly.Weekday != domain.Weekday(2) {
		t.Errorf("weekly weekday = %d, want 2", weekly.Weekday)
	}

	biweekly, ok := med.Rules[3].(domain.BiweeklyRule)
	if !ok {
		t.Fatalf("rules[3] type = %T, want BiweeklyRule", med.Rules[3])
	}
	if !biweekly.AnchorDate.Equal(anchor) {
		t.Errorf("biweekly anchor = %v, want %v", biweekly.AnchorDate, anchor)
	}

	monthly, ok := med.Rules[4].(domain.MonthlyRule)
	if !ok {
		t.Fatalf("rules[4] type = %T, want MonthlyRule", med.Rules[4])
	}
	if monthly.DayOfMonth != 31 {
		t.Errorf("monthly day = %d, want 31", monthly.DayOfMonth)
	}

	mealBased, ok := med.Rules[5].(domain.MealBasedRule)
	if !ok {
		t.Fatalf("rules[5] type = %T, want MealBasedRule", med.Rules[5])
	}
	if mealBased.Meal != domain.MealBreakfast || mealBased.Timing == nil || *mealBased.Timing != domain.TimingBefore {
		t.Errorf("meal-based rule = %+v", mealBased)
	}
}

func TestMedicationResponseToDomainUnknownType(t *testing.T) {
	resp := MedicationResponse{
		ID:   "med-2",
		Name: "Mystery",
		Frequencies: []FrequencyResponse{
			{Type: "daily", Times: []ClockTimeResponse{{Hour: 8}}},
			{Type: "fortnightly"},
		},
	}

	_, err := resp.ToDomain()
	if !errors.Is(err, domain.ErrInvalidFrequency) {
		t.Errorf("ToDomain() error = %v, want ErrInvalidFrequency", err)
	}
}

func TestMedicationResponseToDomainNoTiming(t *testing.T) {
	resp := MedicationResponse{
		ID:   "med-3",
		Name: "Vitamin",
		Frequencies: []FrequencyResponse{
			{Type: "meal_based", Meal: "dinner"},
		},
	}

	med, err := resp.ToDomain()
	if err != nil {
		t.Fatalf("ToDomain() error = %v", err)
	}

	rule := med.Rules[0].(domain.MealBasedRule)
	if rule.Timing != nil {
		t.Errorf("timing = %v, want nil", *rule.Timing)
	}
}
