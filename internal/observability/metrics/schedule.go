package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	scheduleMeterName = "schedule.service"
)

type ScheduleMetrics struct {
	dosesGenerated      metric.Int64Counter
	doseTransitions     metric.Int64Counter
	overdueDoses        metric.Int64Counter
	triggersRegistered  metric.Int64Counter
	computationDuration metric.Float64Histogram
}

func NewScheduleMetrics() (*ScheduleMetrics, error) {
	meter := otel.Meter(scheduleMeterName)

	dosesGenerated, err := meter.Int64Counter(
		"schedule_doses_generated_total",
		metric.WithDescription("Total number of dose occurrences generated"),
		metric.WithUnit("{dose}"),
	)
	if err != nil {
		return nil, err
	}

	doseTransitions, err := meter.Int64Counter(
		"schedule_dose_transitions_total",
		metric.WithDescription("Total number of dose status transitions"),
		metric.WithUnit("{transition}"),
	)
	if err != nil {
		return nil, err
	}

	overdueDoses, err := meter.Int64Counter(
		"schedule_overdue_doses_total",
		metric.WithDescription("Overdue doses observed at query time"),
		metric.WithUnit("{dose}"),
	)
	if err != nil {
		return nil, err
	}

	triggersRegistered, err := meter.Int64Counter(
		"schedule_triggers_registered_total",
		metric.WithDescription("Notification triggers registered with the delivery queue"),
		metric.WithUnit("{trigger}"),
	)
	if err != nil {
		return nil, err
	}

	computationDuration, err := meter.Float64Histogram(
		"schedule_computation_duration_seconds",
		metric.WithDescription("Time spent computing a full day schedule"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5,
		),
	)
	if err != nil {
		return nil, err
	}

	return &ScheduleMetrics{
		dosesGenerated:      dosesGenerated,
		doseTransitions:     doseTransitions,
		overdueDoses:        overdueDoses,
		triggersRegistered:  triggersRegistered,
		computationDuration: computationDuration,
	}, nil
}

func (m *ScheduleMetrics) RecordDosesGenerated(ctx context.Context, timeSlot string, count int) {
	m.dosesGenerated.Add(ctx, int64(count), metric.WithAttributes(
		attribute.String("time_slot", timeSlot),
	))
}

func (m *ScheduleMetrics) RecordDoseTransition(ctx context.Context, from, to string) {
	m.doseTransitions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("from_status", from),
		attribute.String("to_status", to),
	))
}

func (m *ScheduleMetrics) RecordOverdueDoses(ctx context.Context, count int) {
	m.overdueDoses.Add(ctx, int64(count))
}

func (m *ScheduleMetrics) RecordTriggerRegistered(ctx context.Context, kind, outcome string) {
	m.triggersRegistered.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.String("outcome", outcome),
	))
}

func (m *ScheduleMetrics) RecordComputationDuration(ctx context.Context, duration time.Duration) {
	m.computationDuration.Record(ctx, duration.Seconds())
}
