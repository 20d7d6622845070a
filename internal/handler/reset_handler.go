package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-reminder-scan/internal/domain"
	"github.com/KasumiMercury/primind-reminder-scan/internal/service/scan"
)

type ResetHandler struct {
	scanService *scan.Service
}

func NewResetHandler(scanService *scan.Service) *ResetHandler {
	return &ResetHandler{
		scanService: scanService,
	}
}

type resetRequest struct {
	TaskIDs  []string `json:"task_ids"`
	ResetAll bool     `json:"reset_all"`
	Window   string   `json:"window"`
}

type resetResponse struct {
	ResetCount int64 `json:"reset_count"`
}

func (h *ResetHandler) HandleReset(c *gin.Context) {
	ctx := c.Request.Context()

	var req resetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.WarnContext(ctx, "reset request unmarshal failed",
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	if req.ResetAll == (len(req.TaskIDs) > 0) {
		respondError(c, http.StatusBadRequest, "validation_error", "specify exactly one of task_ids or reset_all")
		return
	}

	var window *domain.Window
	if req.Window != "" {
		w, err := domain.ParseWindow(req.Window)
		if err != nil {
			respondError(c, http.StatusBadRequest, "validation_error", err.Error())
			return
		}
		window = &w
	}

	slog.InfoContext(ctx, "processing reminder reset",
		slog.Bool("reset_all", req.ResetAll),
		slog.Int("task_count", len(req.TaskIDs)),
		slog.String("window", req.Window),
	)

	count, err := h.scanService.Reset(ctx, scan.ResetRequest{
		TaskIDs: req.TaskIDs,
		All:     req.ResetAll,
		Window:  window,
	})
	if err != nil {
		slog.ErrorContext(ctx, "reminder reset failed",
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "processing_error", "failed to reset reminders")
		return
	}

	slog.InfoContext(ctx, "reminder reset completed",
		slog.Int64("reset_count", count),
	)

	c.JSON(http.StatusOK, resetResponse{ResetCount: count})
}
