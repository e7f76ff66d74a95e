package main

import (
	"context"
	"net"
	"net/http"
	"os"

	"github.com/Gudini108/tasktracker/pkg/api"
	"github.com/Gudini108/tasktracker/pkg/auth"
	"github.com/Gudini108/tasktracker/pkg/config"
	"github.com/Gudini108/tasktracker/pkg/observability"
	"github.com/Gudini108/tasktracker/pkg/storage"
	"github.com/Gudini108/tasktracker/pkg/tasks"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		observability.NewLogger(observability.ErrorLevel, os.Stderr).
			WithError(err).Error("failed to load configuration")
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.Observability.LogLevel, os.Stdout)

	store, err := storage.Open(cfg.Storage)
	if err != nil {
		logger.WithError(err).Error("failed to connect to database")
		os.Exit(1)
	}
	if err := store.InitSchema(context.Background()); err != nil {
		logger.WithError(err).Error("failed to initialize schema")
		os.Exit(1)
	}
	logger.Info("database connection established")

	authSvc := auth.NewService(
		store,
		auth.NewPasswordHasher(cfg.Auth.BcryptCost),
		auth.NewTokenService([]byte(cfg.Auth.JWTSecret), cfg.Auth.TokenTTL),
	)
	taskSvc := tasks.NewService(store)

	var metrics *observability.Metrics
	if cfg.Observability.MetricsEnabled {
		metrics = observability.NewMetrics(nil)
	}

	server := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:      api.NewServer(authSvc, taskSvc, logger, metrics),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	health := observability.NewHealthChecker(store.DB())
	healthMux := http.NewServeMux()
	healthMux.HandleFunc("/healthz", health.Liveness)
	healthMux.HandleFunc("/readyz", health.Readiness)
	if metrics != nil {
		healthMux.Handle("/metrics", metrics.Handler())
	}
	healthServer := &http.Server{
		Addr:    net.JoinHostPort(cfg.Server.Host, cfg.Server.HealthPort),
		Handler: healthMux,
	}

	go func() {
		logger.Infof("health server listening on %s", healthServer.Addr)
		if err := healthServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Error("health server failed")
		}
	}()

	go func() {
		logger.Infof("task tracker listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Error("server failed")
			os.Exit(1)
		}
	}()

	shutdown := observability.NewShutdownManager(logger, cfg.Server.ShutdownTimeout, server, healthServer)
	shutdown.RegisterShutdownFunc(func(context.Context) error {
		return store.Close()
	})
	if err := shutdown.WaitForShutdown(); err != nil {
		logger.WithError(err).Error("shutdown finished with errors")
		os.Exit(1)
	}
}
