package doserecorder

import (
	"context"

	"github.com/KasumiMercury/primind-dose-scheduling/internal/domain"
)

type noopRecorder struct{}

func NewNoopRecorder() domain.DoseHistoryRecorder {
	return &noopRecorder{}
}

func (n *noopRecorder) RecordTransition(_ context.Context, _ domain.DoseHistoryRecord) error {
	return nil
}

func (n *noopRecorder) Flush(_ context.Context) error {
	return nil
}

func (n *noopRecorder) Close() error {
	return nil
}
