package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/KasumiMercury/primind-dose-scheduling/internal/domain"
)

const (
	mealBreakfastEnv = "MEAL_TIME_BREAKFAST"
	mealLunchEnv     = "MEAL_TIME_LUNCH"
	mealDinnerEnv    = "MEAL_TIME_DINNER"
	mealBedtimeEnv   = "MEAL_TIME_BEDTIME"
)

// MealTimeConfig carries the service-wide default meal times. Per-user
// overrides layer on top of these in the meal-time source.
type MealTimeConfig struct {
	Breakfast domain.TimeOfDay
	Lunch     domain.TimeOfDay
	Dinner    domain.TimeOfDay
	Bedtime   domain.TimeOfDay
}

func DefaultMealTimes() *MealTimeConfig {
	return &MealTimeConfig{
		Breakfast: domain.TimeOfDay{Hour: 8},
		Lunch:     domain.TimeOfDay{Hour: 13},
		Dinner:    domain.TimeOfDay{Hour: 19},
		Bedtime:   domain.TimeOfDay{Hour: 22},
	}
}

func LoadMealTimeConfig() (*MealTimeConfig, error) {
	cfg := DefaultMealTimes()

	entries := []struct {
		env    string
		target *domain.TimeOfDay
	}{
		{mealBreakfastEnv, &cfg.Breakfast},
		{mealLunchEnv, &cfg.Lunch},
		{mealDinnerEnv, &cfg.Dinner},
		{mealBedtimeEnv, &cfg.Bedtime},
	}

	for _, e := range entries {
		raw := os.Getenv(e.env)
		if raw == "" {
			continue
		}
		parsed, err := ParseClockTime(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.env, err)
		}
		*e.target = parsed
	}

	return cfg, nil
}

// Time returns the configured default for a meal.
func (c *MealTimeConfig) Time(meal domain.MealTime) domain.TimeOfDay {
	switch meal {
	case domain.MealBreakfast:
		return c.Breakfast
	case domain.MealLunch:
		return c.Lunch
	case domain.MealDinner:
		return c.Dinner
	default:
		return c.Bedtime
	}
}

// ParseClockTime parses "HH:MM" into a TimeOfDay.
func ParseClockTime(raw string) (domain.TimeOfDay, error) {
	parts := strings.SplitN(raw, ":", 2)
	if len(parts) != 2 {
		return domain.TimeOfDay{}, ErrInvalidMealTime
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return domain.TimeOfDay{}, ErrInvalidMealTime
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return domain.TimeOfDay{}, ErrInvalidMealTime
	}

	tod, err := domain.NewTimeOfDay(hour, minute)
	if err != nil {
		return domain.TimeOfDay{}, ErrInvalidMealTime
	}
	return tod, nil
}
