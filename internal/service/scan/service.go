package scan

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/KasumiMercury/primind-reminder-scan/internal/domain"
	"github.com/KasumiMercury/primind-reminder-scan/internal/infra/taskqueue"
	"github.com/KasumiMercury/primind-reminder-scan/internal/observability/metrics"
	"github.com/KasumiMercury/primind-reminder-scan/internal/observability/tracing"
	"github.com/KasumiMercury/primind-reminder-scan/internal/service/policy"
	"github.com/KasumiMercury/primind-reminder-scan/internal/service/window"
)

// DefaultHorizon is a safe superset of the longest lookback plus
// buffer plus scan-interval slack; no task outside it can have an
// eligible window yet.
const DefaultHorizon = 48 * time.Hour

type Service struct {
	taskRepo    domain.TaskRepository
	userRepo    domain.UserRepository
	taskQueue   taskqueue.TaskQueue
	policy      *policy.Policy
	evaluator   *window.Evaluator
	scanMetrics *metrics.ScanMetrics
	horizon     time.Duration
}

func NewService(
	taskRepo domain.TaskRepository,
	userRepo domain.UserRepository,
	taskQueue taskqueue.TaskQueue,
	windowPolicy *policy.Policy,
	evaluator *window.Evaluator,
	scanMetrics *metrics.ScanMetrics,
	horizon time.Duration,
) *Service {
	if horizon <= 0 {
		horizon = DefaultHorizon
	}
	return &Service{
		taskRepo:    taskRepo,
		userRepo:    userRepo,
		taskQueue:   taskQueue,
		policy:      windowPolicy,
		evaluator:   evaluator,
		scanMetrics: scanMetrics,
		horizon:     horizon,
	}
}

// Scan runs one complete evaluation pass at the given instant. A query
// failure aborts the whole scan; a write-back failure is isolated to
// its task, and the unmarked windows naturally retry on the next run.
func (s *Service) Scan(ctx context.Context, now time.Time) (*Result, error) {
	from, to := now, now.Add(s.horizon)

	ctx, span := tracing.StartScanSpan(ctx, from, to)
	defer span.End()

	started := time.Now()
	defer func() {
		s.scanMetrics.RecordScanDuration(ctx, time.Since(started))
	}()

	tasks, err := s.taskRepo.FindDueSoon(ctx, from, to)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load due-soon tasks",
			slog.Time("from", from),
			slog.Time("to", to),
			slog.String("error", err.Error()),
		)
		tracing.RecordScanResult(span, 0, 0, 0, err)
		return nil, fmt.Errorf("failed to load due-soon tasks: %w", err)
	}

	users, err := s.loadAssignees(ctx, tasks)
	if err != nil {
		tracing.RecordScanResult(span, 0, 0, 0, err)
		return nil, err
	}

	slog.DebugContext(ctx, "scanning tasks",
		slog.Int("task_count", len(tasks)),
		slog.Int("assignee_count", len(users)),
	)

	result := &Result{
		Events: make([]domain.ReminderEvent, 0),
		From:   from,
		To:     to,
	}

	for _, task := range tasks {
		if task.DueDate == nil || task.Status == domain.StatusDone {
			continue
		}
		result.TasksScanned++

		var settings domain.ReminderSettings
		var recipient *domain.Recipient
		if task.AssigneeID != nil {
			if u, ok := users[*task.AssigneeID]; ok {
				settings = u.ReminderSettings()
				recipient = &domain.Recipient{ID: u.ID, Email: u.Email, Name: u.Name}
			}
		}

		fired := s.evaluateTask(ctx, task, settings, now)
		if len(fired) == 0 {
			continue
		}

		for _, w := range fired {
			event := domain.ReminderEvent{
				TaskID:   task.ID,
				Title:    task.Title,
				DueDate:  *task.DueDate,
				Priority: task.Priority,
				Status:   task.Status,
				Window:   w,
				FiredAt:  now,
				Assignee: recipient,
			}
			result.Events = append(result.Events, event)
			s.scanMetrics.RecordEventFired(ctx, w.String())
			s.registerNotification(ctx, &event)
		}

		// Mark the windows sent even if queue registration failed:
		// once a window is recorded it is never attempted again
		// (at-most-once marking).
		if err := s.taskRepo.AppendRemindedWindows(ctx, task.ID, fired); err != nil {
			slog.ErrorContext(ctx, "failed to persist reminded windows",
				slog.String("task_id", task.ID),
				slog.Any("windows", fired),
				slog.String("error", err.Error()),
			)
			s.scanMetrics.RecordWritebackFailure(ctx)
			result.WritebackFailures++
			continue
		}
	}

	s.scanMetrics.RecordTasksScanned(ctx, result.TasksScanned)
	tracing.RecordScanResult(span, result.TasksScanned, len(result.Events), result.WritebackFailures, nil)

	slog.InfoContext(ctx, "scan completed",
		slog.Int("tasks_scanned", result.TasksScanned),
		slog.Int("events_fired", len(result.Events)),
		slog.Int("writeback_failures", result.WritebackFailures),
	)

	return result, nil
}

func (s *Service) evaluateTask(ctx context.Context, task *domain.Task, settings domain.ReminderSettings, now time.Time) []domain.Window {
	tier := task.Priority.Normalize()

	_, span := tracing.StartTaskEvaluationSpan(ctx, task.ID, tier.String())
	defer span.End()

	candidates := s.policy.Applicable(task.Priority, settings)

	// Fixed-window overlap is resolved against the candidate set: a
	// user who disables the shorter windows keeps the longer one open
	// up to the due date.
	return s.evaluator.Eligible(*task.DueDate, candidates, now, task.SentWindows())
}

func (s *Service) loadAssignees(ctx context.Context, tasks []*domain.Task) (map[string]*domain.User, error) {
	seen := make(map[string]struct{})
	ids := make([]string, 0)
	for _, task := range tasks {
		if task.AssigneeID == nil {
			continue
		}
		if _, ok := seen[*task.AssigneeID]; ok {
			continue
		}
		seen[*task.AssigneeID] = struct{}{}
		ids = append(ids, *task.AssigneeID)
	}

	if len(ids) == 0 {
		return map[string]*domain.User{}, nil
	}

	users, err := s.userRepo.FindByIDs(ctx, ids)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load assignees",
			slog.Int("assignee_count", len(ids)),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to load assignees: %w", err)
	}

	return users, nil
}

// registerNotification hands one event to the delivery queue. Delivery
// is outside the scan's guarantee; failures are logged and the event is
// still returned to the caller.
func (s *Service) registerNotification(ctx context.Context, event *domain.ReminderEvent) {
	if s.taskQueue == nil {
		return
	}

	task := &taskqueue.NotificationTask{
		EventID:  uuid.NewString(),
		TaskID:   event.TaskID,
		Title:    event.Title,
		Window:   event.Window.String(),
		DueDate:  event.DueDate,
		Priority: event.Priority.String(),
	}
	if event.Assignee != nil {
		task.Recipient = event.Assignee.ID
	}

	if _, err := s.taskQueue.RegisterNotification(ctx, task); err != nil {
		slog.WarnContext(ctx, "failed to register notification",
			slog.String("task_id", event.TaskID),
			slog.String("window", event.Window.String()),
			slog.String("error", err.Error()),
		)
	}
}

// Reset clears reminded state so the named windows become eligible
// again on the next scan.
func (s *Service) Reset(ctx context.Context, req ResetRequest) (int64, error) {
	count, err := s.taskRepo.ResetRemindedWindows(ctx, req.TaskIDs, req.All, req.Window)
	if err != nil {
		slog.ErrorContext(ctx, "failed to reset reminded windows",
			slog.Bool("all", req.All),
			slog.Int("task_id_count", len(req.TaskIDs)),
			slog.String("error", err.Error()),
		)
		return 0, fmt.Errorf("failed to reset reminded windows: %w", err)
	}

	slog.InfoContext(ctx, "reminded windows reset",
		slog.Bool("all", req.All),
		slog.Int("task_id_count", len(req.TaskIDs)),
		slog.Int64("reset_count", count),
	)

	return count, nil
}
