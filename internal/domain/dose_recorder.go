package domain

import (
	"context"
	"time"
)

// DoseHistoryRecord captures one status transition for external analytics.
// Recording is fire-and-forget: a failed write never fails the transition.
type DoseHistoryRecord struct {
	UserID         string
	DoseID         string
	MedicationID   string
	MedicationName string
	FromStatus     DoseStatus
	ToStatus       DoseStatus
	ScheduledTime  time.Time
	TakenTime      *time.Time
	RecordedAt     time.Time
}

type DoseHistoryRecorder interface {
	RecordTransition(ctx context.Context, record DoseHistoryRecord) error
	Flush(ctx context.Context) error
	Close() error
}
