package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/altanbooks/altanbooks/internal/app"
	"github.com/altanbooks/altanbooks/internal/ebarimt"
	"github.com/altanbooks/altanbooks/internal/finance"
	financehttp "github.com/altanbooks/altanbooks/internal/finance/http"
	"github.com/altanbooks/altanbooks/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
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

	pool, err := pgxpool.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect database", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}

	financeRepo := finance.NewPgRepository(pool)
	financeService := finance.NewService(financeRepo)
	reportCache := financehttp.NewReportCache(redisClient, cfg.ReportCacheTTL)
	warmupJob := jobs.NewVatWarmupJob(financeService, financeRepo, reportCache, logger)

	ebarimtClient := ebarimt.NewClient(cfg.EbarimtURL)
	ebarimtService := ebarimt.NewService(financeRepo, ebarimtClient)
	submitJob := jobs.NewEbarimtSubmitJob(ebarimtService, logger)

	warmupTask, err := jobs.NewVatWarmupTask(jobs.VatWarmupPayload{})
	if err != nil {
		logger.Error("build warmup task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskReportVatWarmup, Handler: warmupJob.Handle},
			{Type: jobs.TaskEbarimtSubmit, Handler: submitJob.Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: "15 1 * * *", Task: warmupTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
