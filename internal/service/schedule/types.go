package schedule

import (
	"time"

	"github.com/KasumiMercury/primind-dose-scheduling/internal/domain"
)

// DaySchedule is the aggregated view of one user's doses for one calendar
// date. Doses holds every occurrence in chronological order; ByTimeSlot
// groups the same doses by period of day, preserving that order within
// each slot.
type DaySchedule struct {
	UserID      string                                     `json:"user_id"`
	Date        string                                     `json:"date"`
	GeneratedAt time.Time                                  `json:"generated_at"`
	Doses       []domain.ScheduledDose                     `json:"doses"`
	ByTimeSlot  map[domain.TimeSlot][]domain.ScheduledDose `json:"by_time_slot"`
}

// Chronological returns a copy of the full dose list so callers can mutate
// their view without racing the cached aggregate.
func (s *DaySchedule) Chronological() []domain.ScheduledDose {
	doses := make([]domain.ScheduledDose, len(s.Doses))
	copy(doses, s.Doses)
	return doses
}

type OverdueResult struct {
	AsOf  time.Time              `json:"as_of"`
	Doses []domain.ScheduledDose `json:"doses"`
}

type UpcomingResult struct {
	AsOf        time.Time              `json:"as_of"`
	WindowHours int                    `json:"window_hours"`
	Doses       []domain.ScheduledDose `json:"doses"`
}

// Summary carries the day's adherence counters. AdherenceRate is
// taken over taken+missed+skipped; a day with no resolved doses
// reports a rate of zero. UpcomingCount uses the service's configured
// window at the same sampled instant.
type Summary struct {
	Date           string  `json:"date"`
	TotalDoses     int     `json:"total_doses"`
	TakenCount     int     `json:"taken_count"`
	MissedCount    int     `json:"missed_count"`
	SkippedCount   int     `json:"skipped_count"`
	ScheduledCount int     `json:"scheduled_count"`
	OverdueCount   int     `json:"overdue_count"`
	UpcomingCount  int     `json:"upcoming_count"`
	AdherenceRate  float64 `json:"adherence_rate"`
}

// TriggerRegistration reports one trigger handed to the delivery queue.
type TriggerRegistration struct {
	MedicationID string             `json:"medication_id"`
	Kind         domain.TriggerKind `json:"kind"`
	Hour         int                `json:"hour"`
	Minute       int                `json:"minute"`
	Registered   bool               `json:"registered"`
	TaskName     string             `json:"task_name,omitempty"`
	Error        string             `json:"error,omitempty"`
}

// NextDoseResult is the earliest future occurrence for one medication.
type NextDoseResult struct {
	MedicationID   string               `json:"medication_id"`
	MedicationName string               `json:"medication_name"`
	Time           time.Time            `json:"time"`
	FrequencyKind  domain.FrequencyKind `json:"frequency_kind"`
}

type TriggerResult struct {
	UserID   string                `json:"user_id"`
	Triggers []TriggerRegistration `json:"triggers"`
}
