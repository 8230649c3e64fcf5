package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"path"
	"strings"

	"admissions-srv/internal/model"
	"admissions-srv/internal/report"
	"admissions-srv/internal/report/repository"
	"admissions-srv/pkg/minio"
	"admissions-srv/pkg/taskqueue"
)

// CreateReport validates and freezes the report request, then stores the
// report row and its outbox task in one transaction. The task is published
// asynchronously by the outbox dispatcher.
func (uc *implUseCase) CreateReport(ctx context.Context, sc model.Scope, input report.CreateReportInput) (*model.Report, error) {
	name := strings.TrimSpace(input.Name)
	if len(name) < report.MinNameLength || len(name) > report.MaxNameLength {
		return nil, report.ErrInvalidName
	}
	reportType := strings.TrimSpace(input.Type)
	if len(reportType) < report.MinTypeLength || len(reportType) > report.MaxTypeLength {
		return nil, report.ErrInvalidType
	}

	doc, err := uc.assembleParameters(ctx, input.Parameters)
	if err != nil {
		return nil, err
	}

	taskID := taskqueue.NewTaskID()
	rp, err := uc.repo.CreateReportWithOutbox(ctx, repository.CreateReportOptions{
		Name:        name,
		Type:        reportType,
		Parameters:  doc,
		TaskID:      taskID,
		RequestedBy: sc.UserID,
		BuildOutboxPayload: func(reportID int64) (json.RawMessage, error) {
			return buildTaskPayload(taskID, reportID, reportType, doc, uc.cfg.WebhookURL)
		},
	})
	if err != nil {
		uc.l.Errorf(ctx, "report.usecase.CreateReport: Failed to create report: %v", err)
		return nil, err
	}

	if err := uc.cache.SaveReport(ctx, rp); err != nil {
		uc.l.Warnf(ctx, "report.usecase.CreateReport: Failed to cache report %d: %v", rp.ID, err)
	}
	if err := uc.producer.PublishReportCreated(ctx, rp); err != nil {
		uc.l.Warnf(ctx, "report.usecase.CreateReport: Failed to publish created event for report %d: %v", rp.ID, err)
	}

	return rp, nil
}

func (uc *implUseCase) GetReport(ctx context.Context, sc model.Scope, input report.GetReportInput) (*model.Report, error) {
	return uc.getReport(ctx, input.ReportID)
}

// getReport reads the report through the cache. Cache failures fall back to
// the database.
func (uc *implUseCase) getReport(ctx context.Context, id int64) (*model.Report, error) {
	if rp, err := uc.cache.GetReport(ctx, id); err == nil {
		return rp, nil
	}

	rp, err := uc.repo.GetReportByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReportNotFound) {
			return nil, report.ErrReportNotFound
		}
		uc.l.Errorf(ctx, "report.usecase.getReport: Failed to get report %d: %v", id, err)
		return nil, err
	}

	if err := uc.cache.SaveReport(ctx, rp); err != nil {
		uc.l.Warnf(ctx, "report.usecase.getReport: Failed to cache report %d: %v", id, err)
	}

	return rp, nil
}

func (uc *implUseCase) ListReports(ctx context.Context, sc model.Scope, input report.ListReportsInput) (report.ListReportsOutput, error) {
	if input.Status != "" && !model.ReportStatus(input.Status).IsValid() {
		return report.ListReportsOutput{}, report.ErrInvalidStatus
	}

	reports, pag, err := uc.repo.ListReports(ctx, repository.ListReportsOptions{
		Type:     input.Type,
		Status:   input.Status,
		Paginate: input.PaginateQuery,
	})
	if err != nil {
		uc.l.Errorf(ctx, "report.usecase.ListReports: Failed to list reports: %v", err)
		return report.ListReportsOutput{}, err
	}

	return report.ListReportsOutput{
		Reports:   reports,
		Paginator: pag,
	}, nil
}

// DownloadReport issues a short-lived presigned URL for the generated file.
// Only completed reports are downloadable.
func (uc *implUseCase) DownloadReport(ctx context.Context, sc model.Scope, input report.DownloadReportInput) (report.DownloadReportOutput, error) {
	rp, err := uc.getReport(ctx, input.ReportID)
	if err != nil {
		return report.DownloadReportOutput{}, err
	}

	if rp.Status != model.ReportStatusCompleted {
		return report.DownloadReportOutput{}, report.ErrReportNotReady
	}
	if rp.FilePath == nil || *rp.FilePath == "" {
		uc.l.Warnf(ctx, "report.usecase.DownloadReport: Completed report %d has no file path", rp.ID)
		return report.DownloadReportOutput{}, report.ErrReportNotReady
	}

	presigned, err := uc.storage.GetPresignedDownloadURL(ctx, &minio.PresignedURLRequest{
		BucketName: uc.cfg.Bucket,
		ObjectName: *rp.FilePath,
		Method:     http.MethodGet,
		Expiry:     uc.cfg.PresignExpiry,
	})
	if err != nil {
		uc.l.Errorf(ctx, "report.usecase.DownloadReport: Failed to presign download for report %d: %v", rp.ID, err)
		return report.DownloadReportOutput{}, err
	}

	return report.DownloadReportOutput{
		ReportID:    rp.ID,
		FileName:    path.Base(*rp.FilePath),
		DownloadURL: presigned.URL,
		ExpiresAt:   presigned.ExpiresAt,
	}, nil
}

// DeleteReport removes the report row, drops it from cache and best-effort
// removes the generated file from storage.
func (uc *implUseCase) DeleteReport(ctx context.Context, sc model.Scope, input report.DeleteReportInput) error {
	rp, err := uc.repo.GetReportByID(ctx, input.ReportID)
	if err != nil {
		if errors.Is(err, repository.ErrReportNotFound) {
			return report.ErrReportNotFound
		}
		uc.l.Errorf(ctx, "report.usecase.DeleteReport: Failed to get report %d: %v", input.ReportID, err)
		return err
	}

	if err := uc.repo.DeleteReport(ctx, rp.ID); err != nil {
		if errors.Is(err, repository.ErrReportNotFound) {
			return report.ErrReportNotFound
		}
		uc.l.Errorf(ctx, "report.usecase.DeleteReport: Failed to delete report %d: %v", rp.ID, err)
		return err
	}

	if err := uc.cache.InvalidateReport(ctx, rp.ID); err != nil {
		uc.l.Warnf(ctx, "report.usecase.DeleteReport: Failed to invalidate cache for report %d: %v", rp.ID, err)
	}
	if rp.FilePath != nil && *rp.FilePath != "" {
		if err := uc.storage.DeleteFile(ctx, uc.cfg.Bucket, *rp.FilePath); err != nil {
			uc.l.Warnf(ctx, "report.usecase.DeleteReport: Failed to delete file %s for report %d: %v", *rp.FilePath, rp.ID, err)
		}
	}

	return nil
}

// buildTaskPayload freezes the worker task envelope stored on the outbox
// row.
func buildTaskPayload(taskID string, reportID int64, reportType string, params json.RawMessage, webhookURL string) (json.RawMessage, error) {
	msg := taskqueue.TaskMessage{
		TaskID: taskID,
		TaskData: taskqueue.TaskData{
			ReportID:   reportID,
			ReportType: reportType,
			Parameters: params,
		},
		Webhook: taskqueue.Webhook{
			URL:    webhookURL,
			Method: http.MethodPost,
		},
	}
	return json.Marshal(msg)
}
