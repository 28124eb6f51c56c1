package domain

import (
	"testing"
	"time"
)

func TestDoseIDDeterministic(t *testing.T) {
	instant := time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)

	first := DoseID("med-1", instant)
	second := DoseID("med-1", instant)
	if first != second {
		t.Errorf("DoseID not stable: %q != %q", first, second)
	}

	if other := DoseID("med-2", instant); other == first {
		t.Error("different medications produced the same dose ID")
	}
	if other := DoseID("med-1", instant.Add(time.Minute)); other == first {
		t.Error("different instants produced the same dose ID")
	}
}

func TestDoseIDNormalizesLocation(t *testing.T) {
	utc := time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)
	tokyo := utc.In(time.FixedZone("JST", 9*60*60))

	if DoseID("med-1", utc) != DoseID("med-1", tokyo) {
		t.Error("dose ID differs for the same instant in different locations")
	}
}

func TestScheduledDoseIsOverdue(t *testing.T) {
	now := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		status DoseStatus
		at     time.Time
		want   bool
	}{
		{name: "scheduled in the past", status: StatusScheduled, at: now.Add(-time.Hour), want: true},
		{name: "scheduled exactly now", status: StatusScheduled, at: now, want: false},
		{name: "scheduled in the future", status: StatusScheduled, at: now.Add(time.Hour), want: false},
		{name: "taken in the past", status: StatusTaken, at: now.Add(-time.Hour), want: false},
		{name: "missed in the past", status: StatusMissed, at: now.Add(-time.Hour), want: false},
		{name: "skipped in the past", status: StatusSkipped, at: now.Add(-time.Hour), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dose := ScheduledDose{Status: tt.status, ScheduledTime: tt.at}

			if got := dose.IsOverdue(now); got != tt.want {
				t.Errorf("IsOverdue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScheduledDoseCanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from DoseStatus
		to   DoseStatus
		want bool
	}{
		{name: "scheduled to taken", from: StatusScheduled, to: StatusTaken, want: true},
		{name: "scheduled to missed", from: StatusScheduled, to: StatusMissed, want: true},
		{name: "scheduled to skipped", from: StatusScheduled, to: StatusSkipped, want: true},
		{name: "scheduled to scheduled", from: StatusScheduled, to: StatusScheduled, want: false},
		{name: "missed corrected to taken", from: StatusMissed, to: StatusTaken, want: true},
		{name: "skipped corrected to taken", from: StatusSkipped, to: StatusTaken, want: true},
		{name: "taken stays taken", from: StatusTaken, to: StatusTaken, want: true},
		{name: "taken to missed", from: StatusTaken, to: StatusMissed, want: false},
		{name: "taken to skipped", from: StatusTaken, to: StatusSkipped, want: false},
		{name: "missed to skipped", from: StatusMissed, to: StatusSkipped, want: false},
		{name: "taken back to scheduled", from: StatusTaken, to: StatusScheduled, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dose := ScheduledDose{Status: tt.from}

			if got := dose.CanTransitionTo(tt.to); got != tt.want {
				t.Errorf("CanTransitionTo(%v) from %v = %v, want %v", tt.to, tt.from, got, tt.want)
			}
		})
	}
}

func TestNewScheduledDose(t *testing.T) {
	med := Medication{ID: "med-1", Name: "Aspirin", Dosage: "100mg"}
	instant := time.Date(2024, 1, 15, 8, 0, 0, 0, time.UTC)

	dose := NewScheduledDose(med, instant, SlotMorning, nil)

	if dose.ID != DoseID("med-1", instant) {
		t.Errorf("ID = %q, want deterministic ID", dose.ID)
	}
	if dose.Status != StatusScheduled {
		t.Errorf("Status = %v, want scheduled", dose.Status)
	}
	if dose.MedicationName != "Aspirin" || dose.Dosage != "100mg" {
		t.Errorf("medication fields not carried: %+v", dose)
	}
}

func TestWeekdayFromGoWeekday(t *testing.T) {
	if got := FromGoWeekday(time.Sunday); got != Sunday {
		t.Errorf("FromGoWeekday(Sunday) = %v, want %v", got, Sunday)
	}
	if got := FromGoWeekday(time.Saturday); got != Saturday {
		t.Errorf("FromGoWeekday(Saturday) = %v, want %v", got, Saturday)
	}
}

func TestTimeOfDayOn(t *testing.T) {
	date := time.Date(2024, 1, 15, 23, 45, 0, 0, time.UTC)
	tod := TimeOfDay{Hour: 8, Minute: 30}

	got := tod.On(date)
	want := time.Date(2024, 1, 15, 8, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("On() = %v, want %v", got, want)
	}
}

func TestDayKeyRoundTrip(t *testing.T) {
	instant := time.Date(2024, 1, 15, 18, 0, 0, 0, time.UTC)

	key := DayKey(instant)
	if key != "2024-01-15" {
		t.Errorf("DayKey() = %q, want 2024-01-15", key)
	}

	parsed, err := ParseDayKey(key)
	if err != nil {
		t.Fatalf("ParseDayKey() error = %v", err)
	}
	if DayKey(parsed) != key {
		t.Errorf("round trip changed key: %q", DayKey(parsed))
	}
}
