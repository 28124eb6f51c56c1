//go:build !gcloud

package doserecorder

import (
	"context"
	"log/slog"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"

	"github.com/KasumiMercury/primind-dose-scheduling/internal/domain"
)

type influxDBRecorder struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	bucket   string
	org      string
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.DoseHistoryRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "dose history recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.InfluxDBToken == "" || cfg.InfluxDBOrg == "" {
		slog.WarnContext(ctx, "InfluxDB token or org not configured, dose history recording disabled",
			slog.String("url", cfg.InfluxDBURL),
		)
		return NewNoopRecorder(), nil
	}

	client := influxdb2.NewClient(cfg.InfluxDBURL, cfg.InfluxDBToken)
	writeAPI := client.WriteAPIBlocking(cfg.InfluxDBOrg, cfg.InfluxDBBucket)

	slog.InfoContext(ctx, "dose history recorder initialized",
		slog.String("type", "influxdb"),
		slog.String("url", cfg.InfluxDBURL),
		slog.String("bucket", cfg.InfluxDBBucket),
	)

	return &influxDBRecorder{
		client:   client,
		writeAPI: writeAPI,
		bucket:   cfg.InfluxDBBucket,
		org:      cfg.InfluxDBOrg,
	}, nil
}

func (r *influxDBRecorder) RecordTransition(ctx context.Context, record domain.DoseHistoryRecord) error {
	tags := map[string]string{
		"user_id":       record.UserID,
		"medication_id": record.MedicationID,
		"from_status":   record.FromStatus.String(),
		"to_status":     record.ToStatus.String(),
	}

	fields := map[string]any{
		"dose_id":         record.DoseID,
		"medication_name": record.MedicationName,
		"scheduled_unix":  record.ScheduledTime.Unix(),
	}
	if record.TakenTime != nil {
		fields["taken_unix"] = record.TakenTime.Unix()
		fields["delay_seconds"] = int64(record.TakenTime.Sub(record.ScheduledTime).Seconds())
	}

	recordedAt := record.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = time.Now()
	}

	point := influxdb2.NewPoint("dose_transition", tags, fields, recordedAt)

	if err := r.writeAPI.WritePoint(ctx, point); err != nil {
		slog.WarnContext(ctx, "failed to write dose transition to InfluxDB",
			slog.String("error", err.Error()),
			slog.String("dose_id", record.DoseID),
			slog.String("to_status", record.ToStatus.String()),
		)
		return err
	}

	return nil
}

func (r *influxDBRecorder) Flush(ctx context.Context) error {
	return nil
}

func (r *influxDBRecorder) Close() error {
	if r.client != nil {
		r.client.Close()
	}
	return nil
}
