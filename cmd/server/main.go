package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/svebrant/product-api-assignment/internal/app"
	"github.com/svebrant/product-api-assignment/internal/config"
	"github.com/svebrant/product-api-assignment/internal/handler"
	"github.com/svebrant/product-api-assignment/internal/logger"
	"github.com/svebrant/product-api-assignment/internal/metrics"
	"github.com/svebrant/product-api-assignment/internal/middleware"
)

const (
	version           = "1.0.0"
	poolStatsInterval = 15 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration",
			slog.String("error", err.Error()))
	}

	log := logger.Setup(logger.Options{
		Level:      cfg.LogLevel,
		Format:     cfg.LogFormat,
		File:       cfg.LogFile,
		MaxSizeMB:  100,
		MaxBackups: 5,
		MaxAgeDays: 30,
	})
	defer logger.Close()

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.Open(rootCtx, cfg, log)
	if err != nil {
		logger.Fatal("Failed to open stores",
			slog.String("error", err.Error()))
	}

	poolStatsCollector := metrics.NewPoolStatsCollector(a.Pool)
	poolStatsCollector.Start(poolStatsInterval)

	orchestrator, sched, err := a.Pipeline(rootCtx)
	if err != nil {
		logger.Fatal("Failed to build ingestion pipeline",
			slog.String("error", err.Error()))
	}

	// The scheduler outlives the signal context; Stop cancels it.
	if err := sched.Start(context.WithoutCancel(rootCtx)); err != nil {
		logger.Fatal("Failed to start scheduler",
			slog.String("error", err.Error()))
	}

	healthHandler := handler.NewHealthHandler(a.Checks, orchestrator, version)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Metrics())
	router.Use(middleware.RequestLogger(log))

	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)
	router.GET("/live", healthHandler.Live)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	go func() {
		logger.Info("Starting ops server",
			slog.String("port", cfg.ServerPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server",
				slog.String("error", err.Error()))
		}
	}()

	<-rootCtx.Done()
	logger.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	// Stop the scheduler first so running jobs are recorded as interrupted
	// while the stores are still reachable.
	if err := sched.Stop(ctx); err != nil {
		logger.Error("Scheduler shutdown error",
			slog.String("error", err.Error()))
	}

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error",
			slog.String("error", err.Error()))
	}

	poolStatsCollector.Stop()
	if err := a.Close(ctx); err != nil {
		logger.Error("Failed to close stores",
			slog.String("error", err.Error()))
	}

	logger.Info("Server exited")
}
