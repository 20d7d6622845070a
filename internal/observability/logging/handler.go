package logging

import (
	"context"
	"log/slog"
)

// ContextHandler decorates records with context-scoped correlation
// attributes: the request id and, on GCP, Cloud Logging trace fields.
type ContextHandler struct {
	inner     slog.Handler
	projectID string
}

func NewContextHandler(inner slog.Handler, projectID string) *ContextHandler {
	return &ContextHandler{
		inner:     inner,
		projectID: projectID,
	}
}

func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if id := RequestIDFromContext(ctx); id != "" {
		r.AddAttrs(slog.String("request_id", id))
	}
	if attrs := gcpTraceAttrs(ctx, h.projectID); len(attrs) > 0 {
		r.AddAttrs(attrs...)
	}
	return h.inner.Handle(ctx, r)
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{inner: h.inner.WithAttrs(attrs), projectID: h.projectID}
}

func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return &ContextHandler{inner: h.inner.WithGroup(name), projectID: h.projectID}
}
