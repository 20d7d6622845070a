package domain

import (
	"context"
	"time"
)

// ScanResultRecord is one per-window aggregate for a completed scan.
type ScanResultRecord struct {
	RunID        string
	CheckedAt    time.Time
	Window       string
	FiredCount   int
	FailedCount  int
	TasksScanned int
}

// ScanRecorder ships scan outcomes to an analytics sink. Recording is
// best-effort; a sink failure must never affect the scan result.
type ScanRecorder interface {
	RecordScanResults(ctx context.Context, records []ScanResultRecord) error
	Flush(ctx context.Context) error
	Close() error
}
