package observability

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/KasumiMercury/primind-reminder-scan/internal/observability/logging"
)

type Config struct {
	ServiceInfo  logging.ServiceInfo
	Environment  logging.Environment
	GCPProjectID string
	SamplingRate float64
	LogLevel     slog.Level
}

// Resources holds the providers set up by Init; callers shut them down
// on exit.
type Resources struct {
	logger         *slog.Logger
	tracerProvider *sdktrace.TracerProvider
	meterProvider  *sdkmetric.MeterProvider
}

// Init wires the logger and, when an exporter target is configured,
// the otel trace and metric providers. Exporter construction is
// platform-specific (OTLP locally, GCP exporters under the gcloud
// build tag).
func Init(ctx context.Context, cfg Config) (*Resources, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceInfo.Name),
			semconv.ServiceVersion(cfg.ServiceInfo.Version),
		),
	)
	if err != nil {
		return nil, err
	}

	r := &Resources{}

	handler := logging.NewContextHandler(
		logging.NewHandler(cfg.Environment, cfg.LogLevel, cfg.ServiceInfo),
		cfg.GCPProjectID,
	)
	r.logger = slog.New(handler)

	traceExporter, err := newTraceExporter(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if traceExporter != nil {
		sampling := cfg.SamplingRate
		if sampling <= 0 {
			sampling = 1.0
		}
		tp := sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(traceExporter),
			sdktrace.WithResource(res),
			sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(sampling))),
		)
		otel.SetTracerProvider(tp)
		r.tracerProvider = tp
	}

	metricReader, err := newMetricReader(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if metricReader != nil {
		mp := sdkmetric.NewMeterProvider(
			sdkmetric.WithReader(metricReader),
			sdkmetric.WithResource(res),
		)
		otel.SetMeterProvider(mp)
		r.meterProvider = mp
	}

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return r, nil
}

func (r *Resources) Logger() *slog.Logger {
	return r.logger
}

func (r *Resources) Shutdown(ctx context.Context) error {
	var errs []error
	if r.tracerProvider != nil {
		if err := r.tracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if r.meterProvider != nil {
		if err := r.meterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
