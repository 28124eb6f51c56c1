//go:build gcloud

package doserecorder

import (
	"context"
	"log/slog"
	"time"

	"cloud.google.com/go/bigquery"

	"github.com/KasumiMercury/primind-dose-scheduling/internal/domain"
)

type bigQueryRecord struct {
	RecordedAt     time.Time              `bigquery:"recorded_at"`
	UserID         string                 `bigquery:"user_id"`
	DoseID         string                 `bigquery:"dose_id"`
	MedicationID   string                 `bigquery:"medication_id"`
	MedicationName string                 `bigquery:"medication_name"`
	FromStatus     string                 `bigquery:"from_status"`
	ToStatus       string                 `bigquery:"to_status"`
	ScheduledTime  time.Time              `bigquery:"scheduled_time"`
	TakenTime      bigquery.NullTimestamp `bigquery:"taken_time"`
}

type bigQueryRecorder struct {
	client   *bigquery.Client
	inserter *bigquery.Inserter
	dataset  string
	table    string
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.DoseHistoryRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "dose history recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.BigQueryProjectID == "" {
		slog.WarnContext(ctx, "BigQuery project ID not configured, dose history recording disabled")
		return NewNoopRecorder(), nil
	}

	client, err := bigquery.NewClient(ctx, cfg.BigQueryProjectID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create BigQuery client, dose history recording disabled",
			slog.String("error", err.Error()),
			slog.String("project_id", cfg.BigQueryProjectID),
		)
		return NewNoopRecorder(), nil
	}

	table := client.Dataset(cfg.BigQueryDataset).Table(cfg.BigQueryTable)
	inserter := table.Inserter()

	slog.InfoContext(ctx, "dose history recorder initialized",
		slog.String("type", "bigquery"),
		slog.String("project_id", cfg.BigQueryProjectID),
		slog.String("dataset", cfg.BigQueryDataset),
		slog.String("table", cfg.BigQueryTable),
	)

	return &bigQueryRecorder{
		client:   client,
		inserter: inserter,
		dataset:  cfg.BigQueryDataset,
		table:    cfg.BigQueryTable,
	}, nil
}

func (r *bigQueryRecorder) RecordTransition(ctx context.Context, record domain.DoseHistoryRecord) error {
	recordedAt := record.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = time.Now()
	}

	bqRecord := &bigQueryRecord{
		RecordedAt:     recordedAt,
		UserID:         record.UserID,
		DoseID:         record.DoseID,
		MedicationID:   record.MedicationID,
		MedicationName: record.MedicationName,
		FromStatus:     record.FromStatus.String(),
		ToStatus:       record.ToStatus.String(),
		ScheduledTime:  record.ScheduledTime,
	}
	if record.TakenTime != nil {
		bqRecord.TakenTime = bigquery.NullTimestamp{Timestamp: *record.TakenTime, Valid: true}
	}

	if err := r.inserter.Put(ctx, bqRecord); err != nil {
		slog.WarnContext(ctx, "failed to insert dose transition to BigQuery",
			slog.String("error", err.Error()),
			slog.String("dose_id", record.DoseID),
		)
		return err
	}

	return nil
}

func (r *bigQueryRecorder) Flush(ctx context.Context) error {
	return nil
}

func (r *bigQueryRecorder) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}
