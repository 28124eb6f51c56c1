package tracing

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const scheduleTracerName = "github.com/KasumiMercury/primind-dose-scheduling/internal/service/schedule"

func ScheduleTracer() trace.Tracer {
	return otel.Tracer(scheduleTracerName)
}

func StartScheduleComputationSpan(ctx context.Context, userID string, targetDate time.Time) (context.Context, trace.Span) {
	return ScheduleTracer().Start(ctx, "schedule.compute_day",
		trace.WithAttributes(
			attribute.String("user_id", userID),
			attribute.String("target_date", targetDate.Format("2006-01-02")),
		),
	)
}

func StartDoseTransitionSpan(ctx context.Context, doseID, toStatus string) (context.Context, trace.Span) {
	return ScheduleTracer().Start(ctx, "schedule.dose_transition",
		trace.WithAttributes(
			attribute.String("dose_id", doseID),
			attribute.String("to_status", toStatus),
		),
	)
}

func StartExternalAPISpan(ctx context.Context, operation, url string) (context.Context, trace.Span) {
	return ScheduleTracer().Start(ctx, "schedule.external_api."+operation,
		trace.WithAttributes(
			attribute.String("url", url),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

func StartRedisOperationSpan(ctx context.Context, operation, key string) (context.Context, trace.Span) {
	return ScheduleTracer().Start(ctx, "schedule.redis."+operation,
		trace.WithAttributes(
			attribute.String("db.system", "redis"),
			attribute.String("db.operation", operation),
			attribute.String("db.key", key),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

func RecordScheduleComputationResult(span trace.Span, medicationCount, doseCount int, err error) {
	span.SetAttributes(
		attribute.Int("schedule.medication_count", medicationCount),
		attribute.Int("schedule.dose_count", doseCount),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
}

func RecordDoseTransitionResult(span trace.Span, fromStatus, toStatus string, err error) {
	span.SetAttributes(
		attribute.String("transition.from_status", fromStatus),
		attribute.String("transition.to_status", toStatus),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
}
