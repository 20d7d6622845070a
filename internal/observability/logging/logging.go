package logging

import (
	"context"
	"log/slog"
	"os"

	"github.com/google/uuid"
)

// Environment selects the log output shape.
type Environment string

const (
	EnvDev  Environment = "dev"
	EnvProd Environment = "prod"
)

// Module labels log records with the emitting component.
type Module string

// ServiceInfo identifies the running service in logs and traces.
type ServiceInfo struct {
	Name     string
	Version  string
	Revision string
}

type requestIDKey struct{}

// WithRequestID stores the request id on the context for downstream
// log correlation and outbound header propagation.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the request id, or empty when absent.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok {
		return id
	}
	return ""
}

// ValidateAndExtractRequestID returns the id when it is a valid UUID
// and mints a fresh one otherwise, so malformed inbound headers never
// propagate.
func ValidateAndExtractRequestID(id string) string {
	if _, err := uuid.Parse(id); err == nil {
		return id
	}
	return uuid.NewString()
}

// NewHandler builds the slog handler for the environment. Both shapes
// are JSON; prod additionally carries service metadata and, under the
// gcloud build, Cloud Logging trace attributes.
func NewHandler(env Environment, level slog.Level, info ServiceInfo) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}

	handler := slog.NewJSONHandler(os.Stdout, opts)
	if env == EnvProd {
		return handler.WithAttrs([]slog.Attr{
			slog.String("service", info.Name),
			slog.String("version", info.Version),
		})
	}

	return handler
}
