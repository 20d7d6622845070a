package domain

import "errors"

var (
	ErrTaskNotFound   = errors.New("task not found")
	ErrUnknownWindow  = errors.New("unknown reminder window")
	ErrScanInProgress = errors.New("another scan is in progress")
	ErrSchemaMissing  = errors.New("reminded_windows column missing; apply the tasks table migration before running the scan")
)
