package usecase

import (
	"context"
	"errors"

	"admissions-srv/internal/model"
	"admissions-srv/internal/report"
	"admissions-srv/internal/report/repository"
)

// FinalizeReport applies a completion callback from the worker. The status
// transition is a single conditional update, so concurrent callbacks cannot
// double-finalize a report: a callback for an already terminal report is
// absorbed as an idempotent no-op.
func (uc *implUseCase) FinalizeReport(ctx context.Context, input report.FinalizeReportInput) (report.FinalizeReportOutput, error) {
	if !input.Status.IsTerminal() {
		return report.FinalizeReportOutput{}, report.ErrInvalidStatus
	}
	if input.Status == model.ReportStatusCompleted && input.FilePath == "" {
		return report.FinalizeReportOutput{}, report.ErrFilePathRequired
	}

	var filePath, failureReason *string
	if input.Status == model.ReportStatusCompleted {
		filePath = &input.FilePath
	} else if input.FailureReason != "" {
		failureReason = &input.FailureReason
	}

	rp, transitioned, err := uc.repo.FinalizeReport(ctx, repository.FinalizeReportOptions{
		ReportID:      input.ReportID,
		Status:        input.Status,
		FilePath:      filePath,
		FailureReason: failureReason,
	})
	if err != nil {
		if errors.Is(err, repository.ErrReportNotFound) {
			return report.FinalizeReportOutput{}, report.ErrReportNotFound
		}
		uc.l.Errorf(ctx, "report.usecase.FinalizeReport: Failed to finalize report %d: %v", input.ReportID, err)
		return report.FinalizeReportOutput{}, err
	}

	if input.TaskID != "" && input.TaskID != rp.TaskID {
		uc.l.Warnf(ctx, "report.usecase.FinalizeReport: Task id mismatch for report %d: got %s, stored %s", rp.ID, input.TaskID, rp.TaskID)
	}

	if !transitioned {
		uc.l.Infof(ctx, "report.usecase.FinalizeReport: Report %d is already %s, absorbing duplicate callback", rp.ID, rp.Status)
		return report.FinalizeReportOutput{Report: rp, AlreadyFinal: true}, nil
	}

	if err := uc.cache.InvalidateReport(ctx, rp.ID); err != nil {
		uc.l.Warnf(ctx, "report.usecase.FinalizeReport: Failed to invalidate cache for report %d: %v", rp.ID, err)
	}
	if err := uc.producer.PublishReportFinalized(ctx, rp); err != nil {
		uc.l.Warnf(ctx, "report.usecase.FinalizeReport: Failed to publish finalized event for report %d: %v", rp.ID, err)
	}

	return report.FinalizeReportOutput{Report: rp}, nil
}
