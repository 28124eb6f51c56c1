// Package mealrel infers a dose's meal relation from free-text medication
// instructions. The inference is a heuristic kept behind this package's
// Resolver so it can be swapped for a structured field later without
// touching dose generation; it never overrides the relation carried by an
// explicit meal-based frequency rule.
package mealrel

import (
	"strings"

	"github.com/KasumiMercury/primind-dose-scheduling/internal/domain"
)

// Offset applied when instructions ask for an empty stomach. Distinct from
// the meal-based expansion offsets: inferred relations annotate an already
// scheduled dose, they do not shift it.
const inferredBeforeOffsetMinutes = -30

var afterMarkers = []string{"with food", "after meal"}

var beforeMarkers = []string{"before meal", "on empty stomach"}

type Resolver struct{}

func NewResolver() *Resolver {
	return &Resolver{}
}

// Infer matches instruction text against the marker phrases,
// case-insensitively, and maps the dose's slot to the nearest meal. Night
// doses get no relation regardless of text, and unknown text yields nil.
func (r *Resolver) Infer(instructions string, slot domain.TimeSlot) *domain.MealRelation {
	if instructions == "" {
		return nil
	}

	meal, ok := slotMeal(slot)
	if !ok {
		return nil
	}

	text := strings.ToLower(instructions)

	if containsAny(text, afterMarkers) {
		timing := domain.TimingAfter
		return &domain.MealRelation{Meal: meal, Timing: &timing, OffsetMinutes: 0}
	}

	if containsAny(text, beforeMarkers) {
		timing := domain.TimingBefore
		return &domain.MealRelation{Meal: meal, Timing: &timing, OffsetMinutes: inferredBeforeOffsetMinutes}
	}

	return nil
}

func slotMeal(slot domain.TimeSlot) (domain.MealTime, bool) {
	switch slot {
	case domain.SlotMorning:
		return domain.MealBreakfast, true
	case domain.SlotMidday:
		return domain.MealLunch, true
	case domain.SlotAfternoon, domain.SlotEvening:
		return domain.MealDinner, true
	default:
		return "", false
	}
}

func containsAny(text string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(text, m) {
			return true
		}
	}
	return false
}
