package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/KasumiMercury/primind-reminder-scan/internal/domain"
	"github.com/KasumiMercury/primind-reminder-scan/internal/infra/scanlock"
	"github.com/KasumiMercury/primind-reminder-scan/internal/service/scan"
)

type ScanHandler struct {
	scanService    *scan.Service
	lock           *scanlock.Lock
	resultRecorder domain.ScanRecorder
}

func NewScanHandler(
	scanService *scan.Service,
	lock *scanlock.Lock,
	resultRecorder domain.ScanRecorder,
) *ScanHandler {
	return &ScanHandler{
		scanService:    scanService,
		lock:           lock,
		resultRecorder: resultRecorder,
	}
}

type reminderItem struct {
	ID       string            `json:"id"`
	Title    string            `json:"title"`
	DueDate  time.Time         `json:"due_date"`
	Priority string            `json:"priority"`
	Status   string            `json:"status"`
	Window   string            `json:"window"`
	Assignee *domain.Recipient `json:"assignee"`
}

type scanResponse struct {
	Reminders    []reminderItem `json:"reminders"`
	Count        int            `json:"count"`
	CheckedAt    time.Time      `json:"checked_at"`
	TasksChecked int            `json:"tasks_checked"`
	Window       scanRange      `json:"window"`
}

type scanRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

func (h *ScanHandler) HandleCheck(c *gin.Context) {
	ctx := c.Request.Context()

	now := time.Now()
	if nowStr := c.Query("now"); nowStr != "" {
		parsed, err := time.Parse(time.RFC3339, nowStr)
		if err != nil {
			respondError(c, http.StatusBadRequest, "validation_error", "invalid now time format, expected RFC3339")
			return
		}
		now = parsed
		slog.InfoContext(ctx, "using virtual time",
			slog.Time("virtual_now", now),
		)
	}

	runID := uuid.New().String()

	if h.lock != nil {
		if err := h.lock.Acquire(ctx, runID); err != nil {
			if errors.Is(err, domain.ErrScanInProgress) {
				slog.InfoContext(ctx, "scan already in progress, rejecting request",
					slog.String("run_id", runID),
				)
				respondError(c, http.StatusConflict, "scan_in_progress", "another scan is already running")
				return
			}
			slog.ErrorContext(ctx, "failed to acquire scan lock",
				slog.String("error", err.Error()),
			)
			respondError(c, http.StatusInternalServerError, "processing_error", "failed to acquire scan lock")
			return
		}
		defer func() {
			if err := h.lock.Release(ctx, runID); err != nil {
				slog.WarnContext(ctx, "failed to release scan lock",
					slog.String("error", err.Error()),
					slog.String("run_id", runID),
				)
			}
		}()
	}

	slog.InfoContext(ctx, "starting reminder scan",
		slog.String("run_id", runID),
		slog.Time("now", now),
	)

	result, err := h.scanService.Scan(ctx, now)
	if err != nil {
		slog.ErrorContext(ctx, "reminder scan failed",
			slog.String("run_id", runID),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "processing_error", err.Error())
		return
	}

	slog.InfoContext(ctx, "reminder scan completed",
		slog.String("run_id", runID),
		slog.Int("tasks_scanned", result.TasksScanned),
		slog.Int("events_fired", len(result.Events)),
		slog.Int("writeback_failures", result.WritebackFailures),
	)

	if h.resultRecorder != nil {
		records := buildScanResultRecords(runID, now, result)
		if len(records) > 0 {
			if err := h.resultRecorder.RecordScanResults(ctx, records); err != nil {
				slog.WarnContext(ctx, "failed to record scan results",
					slog.String("error", err.Error()),
				)
			}
		}
	}

	c.JSON(http.StatusOK, buildScanResponse(now, result))
}

func buildScanResponse(now time.Time, result *scan.Result) scanResponse {
	items := make([]reminderItem, 0, len(result.Events))
	for _, event := range result.Events {
		items = append(items, reminderItem{
			ID:       event.TaskID,
			Title:    event.Title,
			DueDate:  event.DueDate,
			Priority: event.Priority.String(),
			Status:   string(event.Status),
			Window:   event.Window.String(),
			Assignee: event.Assignee,
		})
	}

	return scanResponse{
		Reminders:    items,
		Count:        len(items),
		CheckedAt:    now,
		TasksChecked: result.TasksScanned,
		Window: scanRange{
			From: result.From,
			To:   result.To,
		},
	}
}

// buildScanResultRecords aggregates fired events per window. Write-back
// failures are task-level, so they are reported once under an empty
// window tag rather than attributed to a specific window.
func buildScanResultRecords(runID string, now time.Time, result *scan.Result) []domain.ScanResultRecord {
	firedByWindow := make(map[domain.Window]int)
	for _, event := range result.Events {
		firedByWindow[event.Window]++
	}

	records := make([]domain.ScanResultRecord, 0, len(firedByWindow)+1)
	for _, w := range domain.AllWindows {
		fired, ok := firedByWindow[w]
		if !ok {
			continue
		}
		records = append(records, domain.ScanResultRecord{
			RunID:        runID,
			CheckedAt:    now,
			Window:       w.String(),
			FiredCount:   fired,
			TasksScanned: result.TasksScanned,
		})
	}

	if result.WritebackFailures > 0 {
		records = append(records, domain.ScanResultRecord{
			RunID:        runID,
			CheckedAt:    now,
			FailedCount:  result.WritebackFailures,
			TasksScanned: result.TasksScanned,
		})
	}

	return records
}

func respondError(c *gin.Context, status int, errType, message string) {
	c.JSON(status, gin.H{
		"error":   errType,
		"message": message,
	})
}
