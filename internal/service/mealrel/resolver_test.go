package mealrel

import (
	"testing"

	"github.com/KasumiMercury/primind-dose-scheduling/internal/domain"
)

func TestResolver_Infer(t *testing.T) {
	resolver := NewResolver()

	after := domain.TimingAfter
	before := domain.TimingBefore

	tests := []struct {
		name         string
		instructions string
		slot         domain.TimeSlot
		want         *domain.MealRelation
	}{
		{
			name:         "with food in the morning maps to after breakfast",
			instructions: "Take with food",
			slot:         domain.SlotMorning,
			want:         &domain.MealRelation{Meal: domain.MealBreakfast, Timing: &after, OffsetMinutes: 0},
		},
		{
			name:         "after meal at midday maps to after lunch",
			instructions: "take AFTER MEAL with a full glass of water",
			slot:         domain.SlotMidday,
			want:         &domain.MealRelation{Meal: domain.MealLunch, Timing: &after, OffsetMinutes: 0},
		},
		{
			name:         "before meal in the evening maps to before dinner",
			instructions: "Before meal",
			slot:         domain.SlotEvening,
			want:         &domain.MealRelation{Meal: domain.MealDinner, Timing: &before, OffsetMinutes: -30},
		},
		{
			name:         "empty stomach in the afternoon maps to before dinner",
			instructions: "on empty stomach only",
			slot:         domain.SlotAfternoon,
			want:         &domain.MealRelation{Meal: domain.MealDinner, Timing: &before, OffsetMinutes: -30},
		},
		{
			name:         "night slot never emits a relation",
			instructions: "take with food",
			slot:         domain.SlotNight,
			want:         nil,
		},
		{
			name:         "unrelated text yields nothing",
			instructions: "may cause drowsiness",
			slot:         domain.SlotMorning,
			want:         nil,
		},
		{
			name:         "empty instructions yield nothing",
			instructions: "",
			slot:         domain.SlotMidday,
			want:         nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolver.Infer(tt.instructions, tt.slot)

			if tt.want == nil {
				if got != nil {
					t.Fatalf("Infer() = %+v, want nil", got)
				}
				return
			}

			if got == nil {
				t.Fatalf("Infer() = nil, want %+v", tt.want)
			}
			if got.Meal != tt.want.Meal {
				t.Errorf("Infer() meal = %v, want %v", got.Meal, tt.want.Meal)
			}
			if got.Timing == nil || *got.Timing != *tt.want.Timing {
				t.Errorf("Infer() timing = %v, want %v", got.Timing, tt.want.Timing)
			}
			if got.OffsetMinutes != tt.want.OffsetMinutes {
				t.Errorf("Infer() offset = %d, want %d", got.OffsetMinutes, tt.want.OffsetMinutes)
			}
		})
	}
}
