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

	"github.com/KasumiMercury/primind-dose-scheduling/internal/client"
	"github.com/KasumiMercury/primind-dose-scheduling/internal/config"
	"github.com/KasumiMercury/primind-dose-scheduling/internal/handler"
	"github.com/KasumiMercury/primind-dose-scheduling/internal/health"
	"github.com/KasumiMercury/primind-dose-scheduling/internal/infra/doserecorder"
	"github.com/KasumiMercury/primind-dose-scheduling/internal/infra/mealtimes"
	"github.com/KasumiMercury/primind-dose-scheduling/internal/infra/repository"
	"github.com/KasumiMercury/primind-dose-scheduling/internal/observability/logging"
	"github.com/KasumiMercury/primind-dose-scheduling/internal/observability/metrics"
	"github.com/KasumiMercury/primind-dose-scheduling/internal/observability/middleware"
	"github.com/KasumiMercury/primind-dose-scheduling/internal/service/generate"
	"github.com/KasumiMercury/primind-dose-scheduling/internal/service/mealrel"
	"github.com/KasumiMercury/primind-dose-scheduling/internal/service/nextoccur"
	"github.com/KasumiMercury/primind-dose-scheduling/internal/service/schedule"
	"github.com/KasumiMercury/primind-dose-scheduling/internal/service/slot"
	"github.com/KasumiMercury/primind-dose-scheduling/internal/service/trigger"
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

	if err := config.ValidateForRun(cfg); err != nil {
		slog.Error("configuration validation error", slog.String("error", err.Error()))
		return 1
	}

	httpMetrics, err := metrics.NewHTTPMetrics()
	if err != nil {
		slog.Error("failed to initialize HTTP metrics", slog.String("error", err.Error()))
		return 1
	}

	scheduleMetrics, err := metrics.NewScheduleMetrics()
	if err != nil {
		slog.Error("failed to initialize schedule metrics", slog.String("error", err.Error()))
		return 1
	}

	// Dose history recorder (InfluxDB for local, BigQuery for gcloud)
	historyCfg := doserecorder.LoadConfig()
	historyRecorder, err := doserecorder.NewRecorder(ctx, historyCfg)
	if err != nil {
		slog.Error("failed to initialize dose history recorder", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		if err := historyRecorder.Close(); err != nil {
			slog.Warn("failed to close dose history recorder", slog.String("error", err.Error()))
		}
	}()

	medicationStore := client.NewMedicationStoreClient(cfg.MedicationStoreURL)

	deliveryQueue, cleanup, err := initDeliveryQueue(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize delivery queue", slog.String("error", err.Error()))
		return 1
	}
	if cleanup != nil {
		defer func() {
			if err := cleanup(); err != nil {
				slog.Error("delivery queue cleanup error", slog.String("error", err.Error()))
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

	statusRepo := repository.NewDoseStatusRepository(redisClient)
	mealTimes := mealtimes.NewSource(cfg.MealTimes, redisClient)

	classifier := slot.NewClassifier()
	resolver := mealrel.NewResolver()
	generator := generate.NewGenerator(mealTimes, classifier, resolver, cfg.Scheduling.HourlyEndHour)
	deriver := trigger.NewDeriver(mealTimes, trigger.NewStrategy(cfg.Scheduling), nil)
	calculator := nextoccur.NewCalculator(mealTimes)

	scheduleService := schedule.NewService(
		medicationStore,
		generator,
		deriver,
		calculator,
		statusRepo,
		historyRecorder,
		deliveryQueue,
		scheduleMetrics,
		cfg.Scheduling.UpcomingWindowHours,
	)

	scheduleHandler := handler.NewScheduleHandler(scheduleService)
	doseHandler := handler.NewDoseHandler(scheduleService)

	// Setup router with observability middleware
	r := gin.New()
	r.Use(middleware.Gin(middleware.GinConfig{
		SkipPaths:   []string{"/healthz", "/health/live", "/health/ready"},
		Module:      logging.Module("dose-scheduling"),
		TracerName:  "github.com/KasumiMercury/primind-dose-scheduling/internal/observability/middleware",
		HTTPMetrics: httpMetrics,
	}))
	r.Use(middleware.PanicRecoveryGin())

	// Health check endpoints
	healthChecker := health.NewChecker(redisClient, Version)
	r.GET("/health/live", healthChecker.LiveHandler())
	r.GET("/health/ready", healthChecker.ReadyHandler())
	r.GET("/healthz", healthChecker.ReadyHandler())

	// API routes
	v1 := r.Group("/api/v1")
	{
		users := v1.Group("/users/:userID")
		users.POST("/schedule", scheduleHandler.HandleComputeSchedule)
		users.GET("/schedule/overdue", scheduleHandler.HandleOverdue)
		users.GET("/schedule/upcoming", scheduleHandler.HandleUpcoming)
		users.GET("/schedule/metrics", scheduleHandler.HandleMetrics)
		users.PATCH("/doses/:doseID", doseHandler.HandleUpdateDoseStatus)
		users.POST("/triggers", doseHandler.HandleRegisterTriggers)
		users.GET("/medications/:medicationID/next", scheduleHandler.HandleNextDose)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Port),
			slog.Int("upcoming_window_hours", cfg.Scheduling.UpcomingWindowHours),
			slog.Int("hourly_end_hour", cfg.Scheduling.HourlyEndHour),
			slog.Bool("smart_scheduling", cfg.Scheduling.SmartSchedulingEnabled),
		)
		serverErr <- srv.ListenAndServe()
	}()

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
