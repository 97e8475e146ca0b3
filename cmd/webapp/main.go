package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/spacesedan/commentsense/config"
	"github.com/spacesedan/commentsense/internal/app"
	"github.com/spacesedan/commentsense/internal/logging"
	"github.com/spacesedan/commentsense/internal/monitoring"
	"github.com/spacesedan/commentsense/internal/sentiment"
	"github.com/spacesedan/commentsense/internal/server"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)

	cfg, err := config.Load()
	if err != nil {
		logging.InitLogger(config.DEFAULT_LOG_LEVEL)
		slog.Error("[Main] Invalid configuration", slog.String("error", err.Error()))
		if errors.Is(err, config.ErrMissingToken) {
			slog.Warn("[Main] Create config/envs/.env." + env + " and add HF_API_TOKEN='your_token_here'")
		}
		os.Exit(1)
	}
	logging.InitLogger(cfg.LogLevel)

	if cfg.AppEnv == config.PRODUCTION_ENV_NAME {
		gin.SetMode(gin.ReleaseMode)
	}

	backend, err := app.NewBackend(cfg)
	if err != nil {
		slog.Error("[Main] Failed to create sentiment backend", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	opts := []server.Option{}
	if backend.Health != nil {
		analyzerHealthy := &atomic.Bool{}
		analyzerHealthy.Store(true)
		go monitoring.MonitorAnalyzerHealth(ctx, backend.Health, analyzerHealthy, monitoring.HEALTHCHECK_TIMER)
		opts = append(opts, server.WithAnalyzerHealth(analyzerHealthy))
	}

	reconciler := sentiment.NewReconciler(backend.Classifier,
		sentiment.WithNotifier(sentiment.SlogNotifier{}))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           server.New(reconciler, backend.Name, opts...).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("[Main] Listening",
			slog.String("addr", srv.Addr),
			slog.String("backend", backend.Name))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("[Main] Server failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, os.Interrupt, syscall.SIGTERM)
	<-stopChan

	slog.Info("Shutting down webapp gracefully...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("[Main] Shutdown failed", slog.String("error", err.Error()))
	}
}
