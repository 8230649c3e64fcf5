package usecase

import (
	"context"
	"encoding/json"

	"admissions-srv/internal/report"
	"admissions-srv/pkg/taskqueue"
)

// DispatchOutbox drains pending outbox entries: each claimed entry is
// published to the worker queue, marked sent, and its report promoted to
// processing. A failed publish leaves the entry pending for the next sweep,
// so delivery is at-least-once.
func (uc *implUseCase) DispatchOutbox(ctx context.Context, batchSize int) (report.DispatchOutboxOutput, error) {
	entries, err := uc.repo.ClaimPendingOutbox(ctx, batchSize)
	if err != nil {
		uc.l.Errorf(ctx, "report.usecase.DispatchOutbox: Failed to claim outbox entries: %v", err)
		return report.DispatchOutboxOutput{}, err
	}

	out := report.DispatchOutboxOutput{Claimed: len(entries)}
	for _, entry := range entries {
		var msg taskqueue.TaskMessage
		if err := json.Unmarshal(entry.Payload, &msg); err != nil {
			// The payload will never become readable, dead-letter the
			// entry instead of reclaiming it on every drain.
			uc.l.Errorf(ctx, "report.usecase.DispatchOutbox: Failed to unmarshal payload of outbox entry %d: %v", entry.ID, err)
			if err := uc.repo.MarkOutboxFailed(ctx, entry.ID); err != nil {
				uc.l.Errorf(ctx, "report.usecase.DispatchOutbox: Failed to mark outbox entry %d failed: %v", entry.ID, err)
			}
			continue
		}

		if _, err := uc.dispatcher.Dispatch(ctx, msg); err != nil {
			uc.l.Errorf(ctx, "report.usecase.DispatchOutbox: Failed to publish task %s for report %d: %v", entry.TaskID, entry.ReportID, err)
			continue
		}

		if err := uc.repo.MarkOutboxSent(ctx, entry.ID); err != nil {
			uc.l.Errorf(ctx, "report.usecase.DispatchOutbox: Failed to mark outbox entry %d sent: %v", entry.ID, err)
			continue
		}
		if err := uc.repo.MarkReportProcessing(ctx, entry.ReportID); err != nil {
			uc.l.Warnf(ctx, "report.usecase.DispatchOutbox: Failed to promote report %d to processing: %v", entry.ReportID, err)
		}
		if err := uc.cache.InvalidateReport(ctx, entry.ReportID); err != nil {
			uc.l.Warnf(ctx, "report.usecase.DispatchOutbox: Failed to invalidate cache for report %d: %v", entry.ReportID, err)
		}

		out.Dispatched++
	}

	if out.Claimed > 0 {
		uc.l.Infof(ctx, "report.usecase.DispatchOutbox: Dispatched %d of %d claimed outbox entries", out.Dispatched, out.Claimed)
	}

	return out, nil
}
