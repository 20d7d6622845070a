package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/KasumiMercury/primind-reminder-scan/internal/config"
	"github.com/KasumiMercury/primind-reminder-scan/internal/handler"
	"github.com/KasumiMercury/primind-reminder-scan/internal/health"
	"github.com/KasumiMercury/primind-reminder-scan/internal/infra/repository"
	"github.com/KasumiMercury/primind-reminder-scan/internal/infra/scanlock"
	"github.com/KasumiMercury/primind-reminder-scan/internal/infra/scanrecorder"
	"github.com/KasumiMercury/primind-reminder-scan/internal/observability/logging"
	"github.com/KasumiMercury/primind-reminder-scan/internal/observability/metrics"
	"github.com/KasumiMercury/primind-reminder-scan/internal/observability/middleware"
	"github.com/KasumiMercury/primind-reminder-scan/internal/service/policy"
	"github.com/KasumiMercury/primind-reminder-scan/internal/service/scan"
	"github.com/KasumiMercury/primind-reminder-scan/internal/service/window"
)

// Version is set via ldflags at build time
var Version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	obs, err := initObservability(ctx)
	if err != nil {
		slog.Error("failed to initialize observability", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := obs.Shutdown(shutdownCtx); err != nil {
			slog.Warn("observability shutdown error", slog.String("error", err.Error()))
		}
	}()

	slog.SetDefault(obs.Logger())

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		return 1
	}

	// Validate configuration
	if err := config.ValidateForRun(cfg); err != nil {
		slog.Error("configuration validation error", slog.String("error", err.Error()))
		return 1
	}

	httpMetrics, err := metrics.NewHTTPMetrics()
	if err != nil {
		slog.Error("failed to initialize HTTP metrics", slog.String("error", err.Error()))
		return 1
	}

	scanMetrics, err := metrics.NewScanMetrics()
	if err != nil {
		slog.Error("failed to initialize scan metrics", slog.String("error", err.Error()))
		return 1
	}

	// Initialize scan result recorder (InfluxDB for local, BigQuery for gcloud)
	resultRecorderCfg := scanrecorder.LoadConfig()
	resultRecorder, err := scanrecorder.NewRecorder(ctx, resultRecorderCfg)
	if err != nil {
		slog.Error("failed to initialize scan result recorder", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		if err := resultRecorder.Close(); err != nil {
			slog.Warn("failed to close scan result recorder", slog.String("error", err.Error()))
		}
	}()

	// Initialize task queue
	taskQueue, cleanup, err := initTaskQueue(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize task queue", slog.String("error", err.Error()))
		return 1
	}
	if cleanup != nil {
		defer func() {
			if err := cleanup(); err != nil {
				slog.Error("task queue cleanup error", slog.String("error", err.Error()))
			}
		}()
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if err := redisotel.InstrumentTracing(redisClient); err != nil {
		slog.Error("failed to instrument redis tracing",
			slog.String("event", "redis.otel.tracing.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	if err := redisotel.InstrumentMetrics(redisClient); err != nil {
		slog.Error("failed to instrument redis metrics",
			slog.String("event", "redis.otel.metrics.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.Error("failed to connect redis",
			slog.String("event", "redis.connect.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Warn("failed to close redis client", slog.String("error", err.Error()))
		}
	}()

	slog.Info("redis connected",
		slog.String("addr", cfg.Redis.Addr),
	)

	db, err := gorm.Open(gormpostgres.Open(cfg.Postgres.DSN), &gorm.Config{})
	if err != nil {
		slog.Error("failed to connect postgres",
			slog.String("event", "postgres.connect.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				slog.Warn("failed to close postgres connection", slog.String("error", err.Error()))
			}
		}
	}()

	slog.Info("postgres connected")

	if cfg.Postgres.AutoMigrate {
		if err := repository.Migrate(db); err != nil {
			slog.Error("failed to migrate schema", slog.String("error", err.Error()))
			return 1
		}
		slog.Info("schema migration completed")
	}

	taskRepo := repository.NewTaskRepository(db)
	userRepo := repository.NewUserRepository(db)
	lock := scanlock.New(redisClient, cfg.Reminder.ScanLockTTL())

	windowPolicy := policy.New(nil)
	evaluator := window.NewEvaluator(cfg.Reminder.Location(), cfg.Reminder.DayOfHour)

	scanService := scan.NewService(
		taskRepo,
		userRepo,
		taskQueue,
		windowPolicy,
		evaluator,
		scanMetrics,
		cfg.Reminder.ScanHorizon(),
	)
	scanHandler := handler.NewScanHandler(scanService, lock, resultRecorder)
	resetHandler := handler.NewResetHandler(scanService)

	// Setup router with observability middleware
	r := gin.New()
	r.Use(middleware.Gin(middleware.GinConfig{
		SkipPaths:   []string{"/health", "/health/live", "/health/ready", "/metrics"},
		Module:      logging.Module("reminder-scan"),
		HTTPMetrics: httpMetrics,
	}))
	r.Use(middleware.PanicRecoveryGin())

	// Health check endpoints
	healthChecker := health.NewChecker(redisClient, db, Version)
	r.GET("/health/live", healthChecker.LiveHandler())
	r.GET("/health/ready", healthChecker.ReadyHandler())
	r.GET("/health", healthChecker.ReadyHandler())

	// API routes
	v1 := r.Group("/api/v1")
	{
		v1.POST("/reminders/check", scanHandler.HandleCheck)
		v1.POST("/reminders/reset", resetHandler.HandleReset)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	// Start server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Port),
			slog.Int("scan_horizon_hours", cfg.Reminder.ScanHorizonHours),
			slog.Int("day_of_hour", cfg.Reminder.DayOfHour),
		)
		serverErr <- srv.ListenAndServe()
	}()

	// Wait for shutdown signal or server error
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shutdown server", slog.String("error", err.Error()))
			return 1
		}

		slog.Info("server exited properly")
		return 0

	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return 0
		}
		slog.Error("server exited with error", slog.String("error", err.Error()))
		return 1
	}
}
