package report

import (
	"context"
	"time"

	"admissions-srv/internal/model"
)

//go:generate mockery --name UseCase
type UseCase interface {
	CreateReport(ctx context.Context, sc model.Scope, input CreateReportInput) (*model.Report, error)
	GetReport(ctx context.Context, sc model.Scope, input GetReportInput) (*model.Report, error)
	ListReports(ctx context.Context, sc model.Scope, input ListReportsInput) (ListReportsOutput, error)
	DownloadReport(ctx context.Context, sc model.Scope, input DownloadReportInput) (DownloadReportOutput, error)
	DeleteReport(ctx context.Context, sc model.Scope, input DeleteReportInput) error
	FinalizeReport(ctx context.Context, input FinalizeReportInput) (FinalizeReportOutput, error)
	DispatchOutbox(ctx context.Context, batchSize int) (DispatchOutboxOutput, error)
	Reconcile(ctx context.Context, staleAfter time.Duration) (ReconcileOutput, error)
}

// Producer publishes report lifecycle events for downstream consumers.
type Producer interface {
	PublishReportCreated(ctx context.Context, r *model.Report) error
	PublishReportFinalized(ctx context.Context, r *model.Report) error
}
