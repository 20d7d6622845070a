package scanrecorder

import (
	"context"

	"github.com/KasumiMercury/primind-reminder-scan/internal/domain"
)

type noopRecorder struct{}

func NewNoopRecorder() domain.ScanRecorder {
	return &noopRecorder{}
}

func (n *noopRecorder) RecordScanResults(_ context.Context, _ []domain.ScanResultRecord) error {
	return nil
}

func (n *noopRecorder) Flush(_ context.Context) error {
	return nil
}

func (n *noopRecorder) Close() error {
	return nil
}
