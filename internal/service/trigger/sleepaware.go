package trigger

import (
	"context"
	"log/slog"

	"github.com/KasumiMercury/primind-dose-scheduling/internal/domain"
)

var _ Strategy = (*SleepAwareStrategy)(nil)

// SleepAwareStrategy spreads hourly triggers across the awake window so no
// reminder fires while the user sleeps. The sleep window wraps midnight:
// sleepStartHour is the evening boundary, sleepEndHour the morning one.
type SleepAwareStrategy struct {
	sleepStartHour int
	sleepEndHour   int
}

func NewSleepAwareStrategy(sleepStartHour, sleepEndHour int) *SleepAwareStrategy {
	return &SleepAwareStrategy{
		sleepStartHour: sleepStartHour,
		sleepEndHour:   sleepEndHour,
	}
}

// Redistribute maps trigger i of N onto awake hour floor(i*len(awake)/N),
// clamped to the window's end. Minutes are preserved. A single trigger, or
// more triggers than awake hours, is returned unchanged.
func (s *SleepAwareStrategy) Redistribute(ctx context.Context, schedules []domain.DailyTrigger) []domain.DailyTrigger {
	if len(schedules) <= 1 {
		return schedules
	}

	awake := s.awakeHours()
	if len(awake) < len(schedules) {
		slog.DebugContext(ctx, "awake window too small for redistribution",
			slog.Int("awake_hours", len(awake)),
			slog.Int("schedules", len(schedules)),
		)
		return schedules
	}

	redistributed := make([]domain.DailyTrigger, len(schedules))
	for i, sched := range schedules {
		target := i * len(awake) / len(schedules)
		if target > len(awake)-1 {
			target = len(awake) - 1
		}
		redistributed[i] = domain.DailyTrigger{Hour: awake[target], Minute: sched.Minute}
	}

	slog.DebugContext(ctx, "hourly triggers redistributed across awake window",
		slog.Int("count", len(redistributed)),
		slog.Int("sleep_start_hour", s.sleepStartHour),
		slog.Int("sleep_end_hour", s.sleepEndHour),
	)

	return redistributed
}

// awakeHours walks forward from the end of sleep to its start, so a window
// of [22, 7) yields [7..21].
func (s *SleepAwareStrategy) awakeHours() []int {
	var hours []int
	for h := s.sleepEndHour; h != s.sleepStartHour; h = (h + 1) % 24 {
		hours = append(hours, h)
		if len(hours) >= 24 {
			break
		}
	}
	return hours
}
