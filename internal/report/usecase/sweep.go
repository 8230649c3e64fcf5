package usecase

import (
	"context"
	"time"

	"admissions-srv/internal/report"
	"admissions-srv/internal/report/repository"
	"admissions-srv/pkg/util"
)

const reconcileBatchLimit = 100

// Reconcile re-enqueues reports stuck in a non-terminal state with no
// pending outbox delivery, typically after a lost task or a worker crash.
// The stored task id is reused so the retried task stays correlated with
// the original request.
func (uc *implUseCase) Reconcile(ctx context.Context, staleAfter time.Duration) (report.ReconcileOutput, error) {
	startTime := util.Now()

	stale, err := uc.repo.ListStaleReports(ctx, repository.ListStaleReportsOptions{
		StaleBefore: startTime.Add(-staleAfter),
		Limit:       reconcileBatchLimit,
	})
	if err != nil {
		uc.l.Errorf(ctx, "report.usecase.Reconcile: Failed to list stale reports: %v", err)
		return report.ReconcileOutput{}, err
	}

	var requeued int
	for _, rp := range stale {
		payload, err := buildTaskPayload(rp.TaskID, rp.ID, rp.Type, report.TaskParameters(rp), uc.cfg.WebhookURL)
		if err != nil {
			uc.l.Errorf(ctx, "report.usecase.Reconcile: Failed to build payload for report %d: %v", rp.ID, err)
			continue
		}

		if _, err := uc.repo.CreateOutboxEntry(ctx, repository.CreateOutboxOptions{
			ReportID: rp.ID,
			TaskID:   rp.TaskID,
			Payload:  payload,
		}); err != nil {
			uc.l.Errorf(ctx, "report.usecase.Reconcile: Failed to requeue report %d: %v", rp.ID, err)
			continue
		}

		uc.l.Infof(ctx, "report.usecase.Reconcile: Requeued stale report %d with task %s", rp.ID, rp.TaskID)
		requeued++
	}

	return report.ReconcileOutput{
		TotalChecked: len(stale),
		Requeued:     requeued,
		Duration:     time.Since(startTime),
	}, nil
}
