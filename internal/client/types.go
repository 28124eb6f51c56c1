package client

import (
	"fmt"
	"time"

	"github.com/KasumiMercury/primind-dose-scheduling/internal/domain"
)

type MedicationResponse struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	Dosage       string              `json:"dosage,omitempty"`
	Instructions string              `json:"instructions,omitempty"`
	Frequencies  []FrequencyResponse `json:"frequencies"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

type MedicationsResponse struct {
	Medications []MedicationResponse `json:"medications"`
	Count       int                  `json:"count"`
}

// FrequencyResponse is the store's wire form of a frequency rule,
// discriminated by Type.
type FrequencyResponse struct {
	Type string `json:"type"`

	Times         []ClockTimeResponse `json:"times,omitempty"`
	IntervalHours int                 `json:"interval_hours,omitempty"`
	StartTime     *ClockTimeResponse  `json:"start_time,omitempty"`
	Weekday       int                 `json:"weekday,omitempty"`
	DayOfMonth    int                 `json:"day_of_month,omitempty"`
	Time          *ClockTimeResponse  `json:"time,omitempty"`
	AnchorDate    *time.Time          `json:"anchor_date,omitempty"`
	Meal          string              `json:"meal,omitempty"`
	Timing        string              `json:"timing,omitempty"`
}

type ClockTimeResponse struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

func (c ClockTimeResponse) toDomain() domain.TimeOfDay {
	return domain.TimeOfDay{Hour: c.Hour, Minute: c.Minute}
}

// ToDomain converts the wire medication into the engine's entity. Unknown
// frequency types fail with ErrInvalidFrequency so batch validation rejects
// the whole update instead of silently dropping a rule.
func (m MedicationResponse) ToDomain() (domain.Medication, error) {
	med := domain.Medication{
		ID:           m.ID,
		Name:         m.Name,
		Dosage:       m.Dosage,
		Instructions: m.Instructions,
	}

	for _, f := range m.Frequencies {
		rule, err := f.toDomain()
		if err != nil {
			return domain.Medication{}, fmt.Errorf("medication %q: %w", m.Name, err)
		}
		med.Rules = append(med.Rules, rule)
	}

	return med, nil
}

func (f FrequencyResponse) toDomain() (domain.FrequencyRule, error) {
	switch domain.FrequencyKind(f.Type) {
	case domain.FrequencyDaily:
		times := make([]domain.TimeOfDay, len(f.Times))
		for i, t := range f.Times {
			times[i] = t.toDomain()
		}
		return domain.DailyRule{Times: times}, nil

	case domain.FrequencyHourly:
		rule := domain.HourlyRule{IntervalHours: f.IntervalHours}
		if f.StartTime != nil {
			start := f.StartTime.toDomain()
			rule.StartTime = &start
		}
		return rule, nil

	case domain.FrequencyWeekly:
		return domain.WeeklyRule{Weekday: domain.Weekday(f.Weekday), Time: ruleTime(f)}, nil

	case domain.FrequencyBiweekly:
		rule := domain.BiweeklyRule{Weekday: domain.Weekday(f.Weekday), Time: ruleTime(f)}
		if f.AnchorDate != nil {
			rule.AnchorDate = *f.AnchorDate
		}
		return rule, nil

	case domain.FrequencyMonthly:
		return domain.MonthlyRule{DayOfMonth: f.DayOfMonth, Time: ruleTime(f)}, nil

	case domain.FrequencyMealBased:
		rule := domain.MealBasedRule{Meal: domain.MealTime(f.Meal)}
		if f.Timing != "" {
			timing := domain.MealTiming(f.Timing)
			rule.Timing = &timing
		}
		return rule, nil

	default:
		return nil, fmt.Errorf("%w: unknown frequency type %q", domain.ErrInvalidFrequency, f.Type)
	}
}

func ruleTime(f FrequencyResponse) domain.TimeOfDay {
	if f.Time == nil {
		return domain.TimeOfDay{}
	}
	return f.Time.toDomain()
}
