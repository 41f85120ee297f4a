// Command worker refreshes the bookstore directory snapshot on a cron
// schedule and exposes health and metrics endpoints for the scheduler.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/robfig/cron/v3"

	"bookmap/internal/common/pagination"
	"bookmap/internal/handler/http/respond"
	pgRepo "bookmap/internal/infra/adapter/persistence/postgres"
	"bookmap/internal/infra/db"
	"bookmap/internal/infra/fetcher"
	workerPkg "bookmap/internal/infra/worker"
	"bookmap/internal/observability/logging"
	"bookmap/internal/observability/metrics"
	"bookmap/internal/resilience/retry"
	dirUC "bookmap/internal/usecase/directory"
)

// snapshotAgeInterval is how often the snapshot age gauge is refreshed.
const snapshotAgeInterval = 30 * time.Second

// worker holds everything a refresh run touches.
type worker struct {
	logger  *slog.Logger
	dirSvc  *dirUC.Service
	cfg     *workerPkg.WorkerConfig
	metrics *workerPkg.WorkerMetrics
}

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	database := db.Open()
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()
	waitForMigrations(logger, database)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	workerMetrics := workerPkg.NewWorkerMetrics()
	workerMetrics.MustRegister()
	cfg, err := workerPkg.LoadConfigFromEnv(logger, workerMetrics)
	if err != nil {
		logger.Error("failed to load worker configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("worker configuration loaded",
		slog.String("cron_schedule", cfg.CronSchedule),
		slog.String("timezone", cfg.Timezone),
		slog.Duration("refresh_timeout", cfg.RefreshTimeout),
		slog.Int("health_port", cfg.HealthPort))

	w := &worker{
		logger:  logger,
		dirSvc:  newDirectoryService(logger, database),
		cfg:     cfg,
		metrics: workerMetrics,
	}

	startMetricsServer(ctx, logger, w.dirSvc)

	healthAddr := fmt.Sprintf(":%d", cfg.HealthPort)
	healthServer := workerPkg.NewHealthServer(healthAddr, logger)
	go func() {
		if err := healthServer.Start(ctx); err != nil && err != http.ErrServerClosed {
			logger.Error("health server failed", slog.Any("error", err))
		}
	}()
	logger.Info("health check server started", slog.String("addr", healthAddr))

	go w.reportSnapshotAge(ctx)

	w.runScheduler(ctx, healthServer)
}

// waitForMigrations blocks until the api binary has applied the schema, since
// both containers start together and only the api runs migrations.
func waitForMigrations(logger *slog.Logger, database *sql.DB) {
	const probe = "SELECT 1 FROM user_bookstores LIMIT 1"
	for attempt := 1; attempt <= 10; attempt++ {
		if _, err := database.Exec(probe); err == nil {
			return
		}
		logger.Info("waiting for migrations, retrying in 3s", slog.Int("attempt", attempt))
		time.Sleep(3 * time.Second)
	}
	logger.Error("migrations did not complete in time")
	os.Exit(1)
}

func newDirectoryService(logger *slog.Logger, database *sql.DB) *dirUC.Service {
	fetcherCfg, err := fetcher.LoadConfigFromEnv(logger)
	if err != nil {
		logger.Error("failed to load directory fetcher configuration", slog.Any("error", err))
		os.Exit(1)
	}
	return &dirUC.Service{
		Fetcher: fetcher.NewClient(fetcherCfg, logger),
		Repo:    pgRepo.NewBookstoreRepo(database),
		Logger:  logger,
	}
}

// reportSnapshotAge keeps the age gauge current between refreshes.
func (w *worker) reportSnapshotAge(ctx context.Context) {
	ticker := time.NewTicker(snapshotAgeInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			metrics.UpdateSnapshotAge(w.dirSvc.Age())
		}
	}
}

// runScheduler starts the cron loop, runs one refresh immediately so the
// snapshot exists before the first tick, and blocks until the context is
// cancelled by a termination signal.
func (w *worker) runScheduler(ctx context.Context, healthServer *workerPkg.HealthServer) {
	loc, err := time.LoadLocation(w.cfg.Timezone)
	if err != nil {
		w.logger.Error("invalid timezone, using UTC",
			slog.String("timezone", w.cfg.Timezone), slog.Any("error", err))
		loc = time.UTC
	}

	c := cron.New(cron.WithLocation(loc))
	if _, err := c.AddFunc(w.cfg.CronSchedule, w.refresh); err != nil {
		w.logger.Error("failed to add cron job", slog.Any("error", err))
		os.Exit(1)
	}
	c.Start()
	go w.refresh()

	healthServer.SetReady(true)
	w.logger.Info("worker started",
		slog.String("schedule", w.cfg.CronSchedule),
		slog.String("timezone", w.cfg.Timezone))

	<-ctx.Done()
	w.logger.Info("shutting down worker...")

	healthServer.SetReady(false)
	stopCtx := c.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(w.cfg.RefreshTimeout):
		w.logger.Warn("running job did not finish before shutdown deadline")
	}
	w.logger.Info("worker stopped")
}

// refresh executes a single snapshot rebuild with timeout and retries.
func (w *worker) refresh() {
	start := time.Now()
	w.logger.Info("refresh started")

	ctx, cancel := context.WithTimeout(context.Background(), w.cfg.RefreshTimeout)
	defer cancel()

	// 外部ディレクトリは fetcher 側でフェイルソフトするため、ここでの失敗は
	// ほぼDB起因。一時的な接続断に備えて忍耐強くリトライする。
	err := retry.WithBackoff(ctx, retry.DirectoryRefreshConfig(), func() error {
		return w.dirSvc.Refresh(ctx)
	})
	w.metrics.RecordRefreshDuration(time.Since(start).Seconds())
	if err != nil {
		// 機密情報をマスクしてログ出力
		w.logger.Error("refresh failed", slog.Any("error", respond.SanitizeError(err)))
		w.metrics.RecordRefreshRun("failure")
		return
	}

	records := 0
	if result, err := w.dirSvc.List(ctx, pagination.Params{Page: 1, Limit: 1}); err == nil {
		records = int(result.Pagination.Total)
	}

	w.metrics.RecordRefreshRun("success")
	w.metrics.RecordRecordsFetched(records)
	w.metrics.RecordLastSuccess()
	metrics.UpdateSnapshotAge(w.dirSvc.Age())

	w.logger.Info("refresh completed",
		slog.Int("records", records),
		slog.Duration("duration", time.Since(start)),
	)
}
