package domain

import (
	"context"
	"fmt"
	"time"
)

// MealTime identifies one of the user's configured daily meals.
type MealTime string

const (
	MealBreakfast MealTime = "breakfast"
	MealLunch     MealTime = "lunch"
	MealDinner    MealTime = "dinner"
	MealBedtime   MealTime = "bedtime"
)

func (m MealTime) String() string {
	return string(m)
}

func (m MealTime) Validate() error {
	switch m {
	case MealBreakfast, MealLunch, MealDinner, MealBedtime:
		return nil
	}
	return fmt.Errorf("%w: unknown meal %q", ErrInvalidFrequency, string(m))
}

// MealTiming places a dose before or after a meal. The zero-value absence
// (nil pointer) means the dose is taken with the meal.
type MealTiming string

const (
	TimingBefore MealTiming = "before"
	TimingAfter  MealTiming = "after"
)

func (t MealTiming) Validate() error {
	switch t {
	case TimingBefore, TimingAfter:
		return nil
	}
	return fmt.Errorf("%w: unknown meal timing %q", ErrInvalidFrequency, string(t))
}

// Offsets applied to a resolved meal time when a MealBased rule is expanded.
const (
	BeforeMealOffsetMinutes = -15
	AfterMealOffsetMinutes  = 30
)

// MealRelation annotates a dose with its position relative to a meal.
type MealRelation struct {
	Meal          MealTime    `json:"meal"`
	Timing        *MealTiming `json:"timing,omitempty"`
	OffsetMinutes int         `json:"offset_minutes"`
}

// MealOffsetMinutes returns the expansion offset for a timing, zero when the
// dose is taken with the meal.
func MealOffsetMinutes(timing *MealTiming) int {
	if timing == nil {
		return 0
	}
	switch *timing {
	case TimingBefore:
		return BeforeMealOffsetMinutes
	case TimingAfter:
		return AfterMealOffsetMinutes
	}
	return 0
}

//go:generate mockgen -source=meal.go -destination=meal_mock.go -package=domain

// MealTimeSource resolves a meal to a clock time for a user and date.
// Implementations overlay per-user preferences on service-wide defaults;
// the scheduling engine only ever reads from it.
type MealTimeSource interface {
	ResolvedTime(ctx context.Context, userID string, meal MealTime, date time.Time) (TimeOfDay, error)
}
