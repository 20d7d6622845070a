package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"

	"github.com/KasumiMercury/primind-reminder-scan/internal/domain"
	"github.com/KasumiMercury/primind-reminder-scan/internal/infra/taskqueue"
	"github.com/KasumiMercury/primind-reminder-scan/internal/service/policy"
	"github.com/KasumiMercury/primind-reminder-scan/internal/service/scan"
	"github.com/KasumiMercury/primind-reminder-scan/internal/service/window"
)

func setupTestRouter(t *testing.T, taskRepo domain.TaskRepository, userRepo domain.UserRepository, queue taskqueue.TaskQueue) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := scan.NewService(
		taskRepo,
		userRepo,
		queue,
		policy.New(nil),
		window.NewEvaluator(time.UTC, 0),
		nil,
		scan.DefaultHorizon,
	)

	router := gin.New()
	scanHandler := NewScanHandler(svc, nil, nil)
	resetHandler := NewResetHandler(svc)
	router.POST("/api/v1/reminders/check", scanHandler.HandleCheck)
	router.POST("/api/v1/reminders/reset", resetHandler.HandleReset)
	return router
}

func TestHandleCheck_ReturnsFiredReminders(t *testing.T) {
	ctrl := gomock.NewController(t)
	taskRepo := domain.NewMockTaskRepository(ctrl)
	userRepo := domain.NewMockUserRepository(ctrl)
	queue := taskqueue.NewMockTaskQueue(ctrl)

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	due := now.Add(5 * time.Hour)

	taskRepo.EXPECT().
		FindDueSoon(gomock.Any(), now, now.Add(scan.DefaultHorizon)).
		Return([]*domain.Task{
			{
				ID:       "task-1",
				Title:    "Ship release notes",
				DueDate:  &due,
				Priority: domain.PriorityHigh,
				Status:   domain.StatusTodo,
			},
		}, nil)
	taskRepo.EXPECT().
		AppendRemindedWindows(gomock.Any(), "task-1", []domain.Window{domain.Window6h}).
		Return(nil)
	queue.EXPECT().
		RegisterNotification(gomock.Any(), gomock.Any()).
		Return(&taskqueue.TaskResponse{}, nil)

	router := setupTestRouter(t, taskRepo, userRepo, queue)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reminders/check?now="+now.Format(time.RFC3339), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Reminders []struct {
			ID       string `json:"id"`
			Window   string `json:"window"`
			Priority string `json:"priority"`
			Assignee *struct {
				ID string `json:"id"`
			} `json:"assignee"`
		} `json:"reminders"`
		Count        int `json:"count"`
		TasksChecked int `json:"tasks_checked"`
		Window       struct {
			From time.Time `json:"from"`
			To   time.Time `json:"to"`
		} `json:"window"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Count != 1 || len(resp.Reminders) != 1 {
		t.Fatalf("expected one reminder, got count=%d len=%d", resp.Count, len(resp.Reminders))
	}
	if resp.Reminders[0].ID != "task-1" || resp.Reminders[0].Window != "6h" {
		t.Errorf("unexpected reminder: %+v", resp.Reminders[0])
	}
	if resp.Reminders[0].Assignee != nil {
		t.Errorf("expected null assignee, got %+v", resp.Reminders[0].Assignee)
	}
	if resp.TasksChecked != 1 {
		t.Errorf("expected tasks_checked 1, got %d", resp.TasksChecked)
	}
	if !resp.Window.From.Equal(now) || !resp.Window.To.Equal(now.Add(scan.DefaultHorizon)) {
		t.Errorf("unexpected scan window: %v - %v", resp.Window.From, resp.Window.To)
	}
}

func TestHandleCheck_InvalidNowParam(t *testing.T) {
	ctrl := gomock.NewController(t)
	router := setupTestRouter(t,
		domain.NewMockTaskRepository(ctrl),
		domain.NewMockUserRepository(ctrl),
		taskqueue.NewMockTaskQueue(ctrl),
	)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/reminders/check?now=yesterday", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandleReset_ByTaskIDs(t *testing.T) {
	ctrl := gomock.NewController(t)
	taskRepo := domain.NewMockTaskRepository(ctrl)

	taskRepo.EXPECT().
		ResetRemindedWindows(gomock.Any(), []string{"task-1", "task-2"}, false, nil).
		Return(int64(2), nil)

	router := setupTestRouter(t, taskRepo,
		domain.NewMockUserRepository(ctrl),
		taskqueue.NewMockTaskQueue(ctrl),
	)

	body := bytes.NewBufferString(`{"task_ids":["task-1","task-2"]}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reminders/reset", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		ResetCount int64 `json:"reset_count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ResetCount != 2 {
		t.Errorf("expected reset_count 2, got %d", resp.ResetCount)
	}
}

func TestHandleReset_AllWithWindow(t *testing.T) {
	ctrl := gomock.NewController(t)
	taskRepo := domain.NewMockTaskRepository(ctrl)

	taskRepo.EXPECT().
		ResetRemindedWindows(gomock.Any(), gomock.Nil(), true, gomock.Any()).
		DoAndReturn(func(_ any, _ []string, _ bool, w *domain.Window) (int64, error) {
			if w == nil || *w != domain.Window24h {
				t.Errorf("expected 24h window, got %v", w)
			}
			return int64(5), nil
		})

	router := setupTestRouter(t, taskRepo,
		domain.NewMockUserRepository(ctrl),
		taskqueue.NewMockTaskQueue(ctrl),
	)

	body := bytes.NewBufferString(`{"reset_all":true,"window":"24h"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reminders/reset", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHandleReset_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "no selector", body: `{}`},
		{name: "both selectors", body: `{"reset_all":true,"task_ids":["task-1"]}`},
		{name: "unknown window", body: `{"reset_all":true,"window":"12h"}`},
		{name: "malformed json", body: `{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			router := setupTestRouter(t,
				domain.NewMockTaskRepository(ctrl),
				domain.NewMockUserRepository(ctrl),
				taskqueue.NewMockTaskQueue(ctrl),
			)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/reminders/reset", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", rec.Code)
			}
		})
	}
}
