package schedule

import (
	"sort"
	"time"

	"github.com/KasumiMercury/primind-dose-scheduling/internal/domain"
)

// newDaySchedule sorts the doses chronologically and buckets them by time
// slot. Ties on scheduled time break by medication ID, then dose ID, so the
// order is total and stable across regenerations.
func newDaySchedule(userID string, date time.Time, doses []domain.ScheduledDose, generatedAt time.Time) *DaySchedule {
	sortDoses(doses)

	byTimeSlot := make(map[domain.TimeSlot][]domain.ScheduledDose)
	for _, dose := range doses {
		byTimeSlot[dose.TimeSlot] = append(byTimeSlot[dose.TimeSlot], dose)
	}

	return &DaySchedule{
		UserID:      userID,
		Date:        domain.DayKey(date),
		GeneratedAt: generatedAt,
		Doses:       doses,
		ByTimeSlot:  byTimeSlot,
	}
}

func sortDoses(doses []domain.ScheduledDose) {
	sort.Slice(doses, func(i, j int) bool {
		if !doses[i].ScheduledTime.Equal(doses[j].ScheduledTime) {
			return doses[i].ScheduledTime.Before(doses[j].ScheduledTime)
		}
		if doses[i].MedicationID != doses[j].MedicationID {
			return doses[i].MedicationID < doses[j].MedicationID
		}
		return doses[i].ID < doses[j].ID
	})
}

// summarize counts the day's statuses at a single observation instant.
// window bounds the upcoming count to [now, now+window].
func summarize(s *DaySchedule, now time.Time, window time.Duration) Summary {
	summary := Summary{
		Date:       s.Date,
		TotalDoses: len(s.Doses),
	}

	windowEnd := now.Add(window)
	for _, dose := range s.Doses {
		switch dose.Status {
		case domain.StatusTaken:
			summary.TakenCount++
		case domain.StatusMissed:
			summary.MissedCount++
		case domain.StatusSkipped:
			summary.SkippedCount++
		case domain.StatusScheduled:
			summary.ScheduledCount++
			if !dose.ScheduledTime.Before(now) && !dose.ScheduledTime.After(windowEnd) {
				summary.UpcomingCount++
			}
		}
		if dose.IsOverdue(now) {
			summary.OverdueCount++
		}
	}

	resolved := summary.TakenCount + summary.MissedCount + summary.SkippedCount
	if resolved > 0 {
		summary.AdherenceRate = float64(summary.TakenCount) / float64(resolved)
	}

	return summary
}
