package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	scanMeterName = "reminder.scan"
)

type ScanMetrics struct {
	tasksScanned      metric.Int64Counter
	eventsFired       metric.Int64Counter
	writebackFailures metric.Int64Counter
	scanDuration      metric.Float64Histogram
}

func NewScanMetrics() (*ScanMetrics, error) {
	meter := otel.Meter(scanMeterName)

	tasksScanned, err := meter.Int64Counter(
		"reminder_scan_tasks_total",
		metric.WithDescription("Total number of tasks evaluated by scans"),
		metric.WithUnit("{task}"),
	)
	if err != nil {
		return nil, err
	}

	eventsFired, err := meter.Int64Counter(
		"reminder_events_fired_total",
		metric.WithDescription("Total number of reminder events fired, by window"),
		metric.WithUnit("{event}"),
	)
	if err != nil {
		return nil, err
	}

	writebackFailures, err := meter.Int64Counter(
		"reminder_writeback_failures_total",
		metric.WithDescription("Total number of per-task reminded_windows write-back failures"),
		metric.WithUnit("{task}"),
	)
	if err != nil {
		return nil, err
	}

	scanDuration, err := meter.Float64Histogram(
		"reminder_scan_duration_seconds",
		metric.WithDescription("Complete scan duration"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30,
		),
	)
	if err != nil {
		return nil, err
	}

	return &ScanMetrics{
		tasksScanned:      tasksScanned,
		eventsFired:       eventsFired,
		writebackFailures: writebackFailures,
		scanDuration:      scanDuration,
	}, nil
}

func (m *ScanMetrics) RecordTasksScanned(ctx context.Context, count int) {
	if m == nil {
		return
	}
	m.tasksScanned.Add(ctx, int64(count))
}

func (m *ScanMetrics) RecordEventFired(ctx context.Context, window string) {
	if m == nil {
		return
	}
	m.eventsFired.Add(ctx, 1,
		metric.WithAttributes(attribute.String("window", window)),
	)
}

func (m *ScanMetrics) RecordWritebackFailure(ctx context.Context) {
	if m == nil {
		return
	}
	m.writebackFailures.Add(ctx, 1)
}

func (m *ScanMetrics) RecordScanDuration(ctx context.Context, d time.Duration) {
	if m == nil {
		return
	}
	m.scanDuration.Record(ctx, d.Seconds())
}
