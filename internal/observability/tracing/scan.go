package tracing

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const scanTracerName = "github.com/KasumiMercury/primind-reminder-scan/internal/service/scan"

func ScanTracer() trace.Tracer {
	return otel.Tracer(scanTracerName)
}

func StartScanSpan(ctx context.Context, from, to time.Time) (context.Context, trace.Span) {
	return ScanTracer().Start(ctx, "reminder.scan",
		trace.WithAttributes(
			attribute.String("scan.from", from.Format(time.RFC3339)),
			attribute.String("scan.to", to.Format(time.RFC3339)),
			attribute.Int64("scan.horizon_hours", int64(to.Sub(from).Hours())),
		),
	)
}

func StartTaskEvaluationSpan(ctx context.Context, taskID, tier string) (context.Context, trace.Span) {
	return ScanTracer().Start(ctx, "reminder.evaluate_task",
		trace.WithAttributes(
			attribute.String("task_id", taskID),
			attribute.String("priority_tier", tier),
		),
	)
}

func RecordScanResult(span trace.Span, tasksScanned, eventsFired, writeFailures int, err error) {
	span.SetAttributes(
		attribute.Int("scan.tasks_scanned", tasksScanned),
		attribute.Int("scan.events_fired", eventsFired),
		attribute.Int("scan.writeback_failures", writeFailures),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
}
