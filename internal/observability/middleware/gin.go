package middleware

import (
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-reminder-scan/internal/observability/logging"
	"github.com/KasumiMercury/primind-reminder-scan/internal/observability/metrics"
)

type GinConfig struct {
	SkipPaths   []string
	Module      logging.Module
	HTTPMetrics *metrics.HTTPMetrics
}

// Gin returns the request middleware: request-id propagation, access
// logging, and HTTP metrics. Paths in SkipPaths (health probes) are
// passed through untouched.
func Gin(cfg GinConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if slices.Contains(cfg.SkipPaths, c.Request.URL.Path) {
			c.Next()
			return
		}

		requestID := logging.ValidateAndExtractRequestID(c.GetHeader("x-request-id"))
		ctx := logging.WithRequestID(c.Request.Context(), requestID)
		c.Request = c.Request.WithContext(ctx)
		c.Header("x-request-id", requestID)

		start := time.Now()
		c.Next()
		elapsed := time.Since(start)

		status := c.Writer.Status()
		cfg.HTTPMetrics.Record(ctx, c.Request.Method, c.FullPath(), status, elapsed)

		level := slog.LevelInfo
		if status >= http.StatusInternalServerError {
			level = slog.LevelError
		}

		slog.Default().LogAttrs(ctx, level, "request completed",
			slog.String("module", string(cfg.Module)),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", status),
			slog.Duration("duration", elapsed),
		)
	}
}

// PanicRecoveryGin converts panics into 500 responses with a logged
// stack reference instead of tearing down the worker.
func PanicRecoveryGin() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				slog.ErrorContext(c.Request.Context(), "panic recovered",
					slog.Any("panic", r),
					slog.String("path", c.Request.URL.Path),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "internal server error",
				})
			}
		}()
		c.Next()
	}
}
