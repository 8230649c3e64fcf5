package dispatcher

import (
	"context"
	"strings"
	"time"

	campaignPostgre "admissions-srv/internal/campaign/repository/postgre"
	metricPostgre "admissions-srv/internal/metric/repository/postgre"
	"admissions-srv/internal/report"
	reportProducer "admissions-srv/internal/report/delivery/kafka/producer"
	reportPostgre "admissions-srv/internal/report/repository/postgre"
	reportRedis "admissions-srv/internal/report/repository/redis"
	reportUsecase "admissions-srv/internal/report/usecase"
)

// Run starts the outbox drain and reconcile loops and blocks until the
// context is cancelled.
func (srv *DispatcherServer) Run(ctx context.Context) error {
	uc := srv.setupReportUseCase()

	reportCfg := srv.config.Report
	outboxInterval := time.Duration(reportCfg.OutboxIntervalSeconds) * time.Second
	reconcileInterval := time.Duration(reportCfg.ReconcileIntervalSeconds) * time.Second
	staleAfter := time.Duration(reportCfg.StaleAfterSeconds) * time.Second

	srv.l.Infof(ctx, "Dispatcher running: outbox every %s (batch %d), reconcile every %s (stale after %s)",
		outboxInterval, reportCfg.OutboxBatchSize, reconcileInterval, staleAfter)

	// Drain whatever accumulated while the dispatcher was down.
	srv.drainOutbox(ctx, uc, reportCfg.OutboxBatchSize)

	outboxTicker := time.NewTicker(outboxInterval)
	defer outboxTicker.Stop()
	reconcileTicker := time.NewTicker(reconcileInterval)
	defer reconcileTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			srv.l.Info(ctx, "Dispatcher stopped gracefully")
			return nil
		case <-outboxTicker.C:
			srv.drainOutbox(ctx, uc, reportCfg.OutboxBatchSize)
		case <-reconcileTicker.C:
			out, err := uc.Reconcile(ctx, staleAfter)
			if err != nil {
				srv.l.Errorf(ctx, "Reconcile sweep failed: %v", err)
				continue
			}
			if out.TotalChecked > 0 {
				srv.l.Infof(ctx, "Reconcile sweep requeued %d of %d stale reports in %s",
					out.Requeued, out.TotalChecked, out.Duration)
			}
		}
	}
}

// drainOutbox keeps dispatching until the pending backlog is below the batch
// size, so a burst of reports does not wait for several ticks.
func (srv *DispatcherServer) drainOutbox(ctx context.Context, uc report.UseCase, batchSize int) {
	for {
		out, err := uc.DispatchOutbox(ctx, batchSize)
		if err != nil {
			srv.l.Errorf(ctx, "Outbox drain failed: %v", err)
			return
		}
		if out.Claimed < batchSize || out.Dispatched == 0 {
			return
		}
	}
}

func (srv *DispatcherServer) setupReportUseCase() report.UseCase {
	repo := reportPostgre.New(srv.postgresDB, srv.l)
	cache := reportRedis.New(srv.redisClient, srv.l, time.Duration(srv.config.Report.CacheTTLSeconds)*time.Second)
	campaignRepo := campaignPostgre.New(srv.postgresDB, srv.l)
	metricRepo := metricPostgre.New(srv.postgresDB, srv.l)
	producer := reportProducer.New(srv.l, srv.kafkaProducer)

	return reportUsecase.New(
		srv.l,
		repo,
		cache,
		campaignRepo,
		metricRepo,
		srv.minioClient,
		srv.taskQueue,
		producer,
		reportUsecase.Config{
			Bucket:        srv.config.MinIO.Bucket,
			WebhookURL:    completionWebhookURL(srv.config.Report.WebhookBaseURL),
			PresignExpiry: time.Duration(srv.config.Report.PresignExpirySeconds) * time.Second,
		},
	)
}

func completionWebhookURL(base string) string {
	return strings.TrimRight(base, "/") + "/api/v1/reports/webhooks/completion"
}
