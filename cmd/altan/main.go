package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/altanbooks/altanbooks/internal/app"
	"github.com/altanbooks/altanbooks/internal/approval"
	"github.com/altanbooks/altanbooks/internal/ebarimt"
	"github.com/altanbooks/altanbooks/internal/finance"
	financehttp "github.com/altanbooks/altanbooks/internal/finance/http"
	"github.com/altanbooks/altanbooks/internal/observability"
	"github.com/altanbooks/altanbooks/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := pgxpool.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	metrics := observability.NewMetrics()

	financeRepo := finance.NewPgRepository(dbpool)
	financeService := finance.NewService(financeRepo)
	reportCache := financehttp.NewReportCache(redisClient, cfg.ReportCacheTTL)
	reportHandler := financehttp.NewHandler(logger, financeService, reportCache, metrics)

	approvalRepo := approval.NewPgRepository(dbpool)
	approvalService := approval.NewService(approvalRepo)
	approvalHandler := approval.NewHandler(logger, approvalService)

	ebarimtClient := ebarimt.NewClient(cfg.EbarimtURL)
	ebarimtService := ebarimt.NewService(financeRepo, ebarimtClient)
	ebarimtHandler := ebarimt.NewHandler(logger, ebarimtService)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:          logger,
		Config:          cfg,
		ReportHandler:   reportHandler,
		ApprovalHandler: approvalHandler,
		EbarimtHandler:  ebarimtHandler,
		JobHandler:      jobHandler,
		Metrics:         metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
