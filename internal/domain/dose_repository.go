package domain

import (
	"context"
	"time"
)

//go:generate mockgen -source=dose_repository.go -destination=dose_repository_mock.go -package=domain

// DoseStatusRecord is the persisted slice of a dose's mutable state. The
// full dose is regenerated from rules; only status survives regeneration.
type DoseStatusRecord struct {
	DoseID          string     `json:"dose_id"`
	MedicationID    string     `json:"medication_id"`
	ScheduledTime   time.Time  `json:"scheduled_time"`
	Status          DoseStatus `json:"status"`
	ActualTakenTime *time.Time `json:"actual_taken_time,omitempty"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// DoseStatusRepository stores per-user, per-day dose status snapshots so a
// regenerated schedule can rehydrate statuses recorded earlier in the day.
type DoseStatusRepository interface {
	SaveStatuses(ctx context.Context, userID, dayKey string, records []DoseStatusRecord) error
	SaveStatus(ctx context.Context, userID, dayKey string, record DoseStatusRecord) error
	GetStatuses(ctx context.Context, userID, dayKey string) (map[string]DoseStatusRecord, error)
	DeleteDay(ctx context.Context, userID, dayKey string) error
}
