package trigger

import (
	"context"
	"testing"

	"github.com/KasumiMercury/primind-dose-scheduling/internal/domain"
)

func TestSleepAwareStrategy_Redistribute(t *testing.T) {
	// Sleep window [22, 7) leaves awake hours [7..21], 15 in total.
	strategy := NewSleepAwareStrategy(22, 7)

	schedules := []domain.DailyTrigger{
		{Hour: 0, Minute: 15},
		{Hour: 4, Minute: 15},
		{Hour: 8, Minute: 15},
		{Hour: 12, Minute: 15},
		{Hour: 16, Minute: 15},
		{Hour: 20, Minute: 15},
	}

	got := strategy.Redistribute(context.Background(), schedules)

	// 6 triggers over 15 awake hours land on indices 0,2,5,7,10,12.
	wantHours := []int{7, 9, 12, 14, 17, 19}

	if len(got) != len(wantHours) {
		t.Fatalf("Redistribute() returned %d schedules, want %d", len(got), len(wantHours))
	}
	for i, sched := range got {
		if sched.Hour != wantHours[i] {
			t.Errorf("schedule[%d] hour = %d, want %d", i, sched.Hour, wantHours[i])
		}
		if sched.Minute != 15 {
			t.Errorf("schedule[%d] minute = %d, want preserved 15", i, sched.Minute)
		}
	}
}

func TestSleepAwareStrategy_NeverFiresDuringSleep(t *testing.T) {
	strategy := NewSleepAwareStrategy(23, 6)

	schedules := []domain.DailyTrigger{
		{Hour: 0}, {Hour: 3}, {Hour: 6}, {Hour: 9}, {Hour: 12}, {Hour: 15}, {Hour: 18}, {Hour: 21},
	}

	got := strategy.Redistribute(context.Background(), schedules)

	for _, sched := range got {
		if sched.Hour >= 23 || sched.Hour < 6 {
			t.Errorf("redistributed trigger at %02d:00 falls inside sleep window [23, 6)", sched.Hour)
		}
	}
}

func TestSleepAwareStrategy_SingleTriggerUnchanged(t *testing.T) {
	strategy := NewSleepAwareStrategy(22, 7)

	schedules := []domain.DailyTrigger{{Hour: 3, Minute: 30}}

	got := strategy.Redistribute(context.Background(), schedules)

	if len(got) != 1 || got[0].Hour != 3 || got[0].Minute != 30 {
		t.Errorf("single trigger changed: %+v", got)
	}
}

func TestSleepAwareStrategy_TooManyTriggersUnchanged(t *testing.T) {
	// Awake window of 3 hours cannot hold 4 triggers.
	strategy := NewSleepAwareStrategy(10, 7)

	schedules := []domain.DailyTrigger{{Hour: 0}, {Hour: 6}, {Hour: 12}, {Hour: 18}}

	got := strategy.Redistribute(context.Background(), schedules)

	for i := range schedules {
		if got[i] != schedules[i] {
			t.Errorf("schedule[%d] = %+v, want unchanged %+v", i, got[i], schedules[i])
		}
	}
}

func TestPassthroughStrategy_NeverShifts(t *testing.T) {
	strategy := NewPassthroughStrategy()

	schedules := []domain.DailyTrigger{{Hour: 2, Minute: 10}, {Hour: 23, Minute: 45}}

	got := strategy.Redistribute(context.Background(), schedules)

	for i := range schedules {
		if got[i] != schedules[i] {
			t.Errorf("schedule[%d] = %+v, want unchanged %+v", i, got[i], schedules[i])
		}
	}
}
