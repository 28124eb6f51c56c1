package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TimeSlot is the coarse period-of-day bucket used to group doses.
type TimeSlot string

const (
	SlotMorning   TimeSlot = "morning"   // [06:00, 11:00)
	SlotMidday    TimeSlot = "midday"    // [11:00, 14:00)
	SlotAfternoon TimeSlot = "afternoon" // [14:00, 17:00)
	SlotEvening   TimeSlot = "evening"   // [17:00, 21:00)
	SlotNight     TimeSlot = "night"     // [21:00, 06:00), wraps midnight
)

func (s TimeSlot) String() string {
	return string(s)
}

// TimeSlots lists all slots in day order, Morning first.
func TimeSlots() []TimeSlot {
	return []TimeSlot{SlotMorning, SlotMidday, SlotAfternoon, SlotEvening, SlotNight}
}

// DoseStatus is the state of a single dose occurrence.
type DoseStatus string

const (
	StatusScheduled DoseStatus = "scheduled"
	StatusTaken     DoseStatus = "taken"
	StatusMissed    DoseStatus = "missed"
	StatusSkipped   DoseStatus = "skipped"
)

func (s DoseStatus) String() string {
	return string(s)
}

func (s DoseStatus) Validate() error {
	switch s {
	case StatusScheduled, StatusTaken, StatusMissed, StatusSkipped:
		return nil
	}
	return fmt.Errorf("unknown dose status %q", string(s))
}

// ScheduledDose is one concrete, dated occurrence of a medication. It is
// immutable after generation except Status and ActualTakenTime, which only
// the schedule service's state machine touches.
type ScheduledDose struct {
	ID              string        `json:"id"`
	MedicationID    string        `json:"medication_id"`
	MedicationName  string        `json:"medication_name"`
	Dosage          string        `json:"dosage,omitempty"`
	ScheduledTime   time.Time     `json:"scheduled_time"`
	TimeSlot        TimeSlot      `json:"time_slot"`
	MealRelation    *MealRelation `json:"meal_relation,omitempty"`
	Status          DoseStatus    `json:"status"`
	ActualTakenTime *time.Time    `json:"actual_taken_time,omitempty"`
}

// doseNamespace seeds deterministic dose IDs. Regenerating the same
// medication for the same instant yields the same ID, which is what lets
// persisted statuses rehydrate into a regenerated schedule.
var doseNamespace = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

// DoseID derives the deterministic occurrence ID for a medication instant.
func DoseID(medicationID string, scheduledTime time.Time) string {
	return uuid.NewSHA1(doseNamespace, []byte(medicationID+"|"+scheduledTime.UTC().Format(time.RFC3339))).String()
}

func NewScheduledDose(med Medication, scheduledTime time.Time, slot TimeSlot, relation *MealRelation) ScheduledDose {
	return ScheduledDose{
		ID:             DoseID(med.ID, scheduledTime),
		MedicationID:   med.ID,
		MedicationName: med.Name,
		Dosage:         med.Dosage,
		ScheduledTime:  scheduledTime,
		TimeSlot:       slot,
		MealRelation:   relation,
		Status:         StatusScheduled,
	}
}

// IsOverdue is derived, never stored: only a still-scheduled dose whose time
// has passed counts as overdue.
func (d ScheduledDose) IsOverdue(now time.Time) bool {
	return d.Status == StatusScheduled && d.ScheduledTime.Before(now)
}

// CanTransitionTo reports whether the state machine permits moving to next.
// Scheduled may move anywhere; a terminal status may only be corrected to
// Taken.
func (d ScheduledDose) CanTransitionTo(next DoseStatus) bool {
	if d.Status == StatusScheduled {
		return next != StatusScheduled
	}
	return next == StatusTaken
}
